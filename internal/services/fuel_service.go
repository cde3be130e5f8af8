package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fuelbook/internal/core"
	"fuelbook/internal/stats"
	"fuelbook/internal/storage"
)

type FuelService struct {
	repo *storage.Repository
	now  func() time.Time
}

func NewFuelService(repo *storage.Repository) *FuelService {
	return &FuelService{repo: repo, now: time.Now}
}

// AddEntry validates and stores a fuel-up for one vehicle. Entries are
// never mutated after creation.
func (s *FuelService) AddEntry(ctx context.Context, sess core.Session, e core.FuelEntry) (core.FuelEntry, error) {
	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return core.FuelEntry{}, fmt.Errorf("load vehicles: %w", err)
	}
	var vehicle core.Vehicle
	found := false
	for _, v := range vehicles {
		if v.ID == e.VehicleID {
			vehicle, found = v, true
			break
		}
	}
	if !found {
		return core.FuelEntry{}, ErrVehicleNotFound
	}

	entries, err := s.repo.FuelEntries(ctx, sess.Email)
	if err != nil {
		return core.FuelEntry{}, fmt.Errorf("load fuel entries: %w", err)
	}

	if err := core.ValidateFuelEntry(e, vehicle, entries); err != nil {
		return core.FuelEntry{}, err
	}

	now := s.now()
	e.ID = core.NewID(now)
	if e.Date.IsZero() {
		e.Date = now
	}

	if err := s.repo.SaveFuelEntries(ctx, sess.Email, append(entries, e)); err != nil {
		return core.FuelEntry{}, fmt.Errorf("save fuel entries: %w", err)
	}

	slog.InfoContext(ctx, "fuel entry added", "entry_id", e.ID,
		"vehicle_id", e.VehicleID, "liters", e.Liters, "kilometers", e.Kilometers)
	return e, nil
}

// EntriesForVehicle returns the stored entries for one vehicle, in
// insertion order.
func (s *FuelService) EntriesForVehicle(ctx context.Context, sess core.Session, vehicleID string) ([]core.FuelEntry, error) {
	entries, err := s.repo.FuelEntries(ctx, sess.Email)
	if err != nil {
		return nil, fmt.Errorf("load fuel entries: %w", err)
	}
	var own []core.FuelEntry
	for _, e := range entries {
		if e.VehicleID == vehicleID {
			own = append(own, e)
		}
	}
	return own, nil
}

// VehicleStats computes the full statistics summary for one vehicle.
func (s *FuelService) VehicleStats(ctx context.Context, sess core.Session, vehicleID string) (stats.Summary, error) {
	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("load vehicles: %w", err)
	}
	var vehicle core.Vehicle
	found := false
	for _, v := range vehicles {
		if v.ID == vehicleID {
			vehicle, found = v, true
			break
		}
	}
	if !found {
		return stats.Summary{}, ErrVehicleNotFound
	}

	entries, err := s.EntriesForVehicle(ctx, sess, vehicleID)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(entries, vehicle.StartKilometers, s.now()), nil
}

// Overview builds the fleet dashboard. The two partitions are independent
// reads, so they load concurrently; nothing here writes.
func (s *FuelService) Overview(ctx context.Context, sess core.Session) (stats.Overview, error) {
	var (
		vehicles []core.Vehicle
		entries  []core.FuelEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vehicles, err = s.repo.Vehicles(gctx, sess.Email)
		if err != nil {
			return fmt.Errorf("load vehicles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.repo.FuelEntries(gctx, sess.Email)
		if err != nil {
			return fmt.Errorf("load fuel entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return stats.Overview{}, err
	}

	return stats.BuildOverview(vehicles, entries), nil
}
