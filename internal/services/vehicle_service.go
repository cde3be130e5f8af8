package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fuelbook/internal/core"
	"fuelbook/internal/storage"
)

type VehicleService struct {
	repo *storage.Repository
	now  func() time.Time
}

func NewVehicleService(repo *storage.Repository) *VehicleService {
	return &VehicleService{repo: repo, now: time.Now}
}

func (s *VehicleService) List(ctx context.Context, sess core.Session) ([]core.Vehicle, error) {
	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *VehicleService) Get(ctx context.Context, sess core.Session, id string) (core.Vehicle, error) {
	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("load vehicles: %w", err)
	}
	for _, v := range vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return core.Vehicle{}, ErrVehicleNotFound
}

// Add validates and stores a new vehicle, assigning a timestamp identifier.
func (s *VehicleService) Add(ctx context.Context, sess core.Session, v core.Vehicle) (core.Vehicle, error) {
	now := s.now()
	if err := core.ValidateVehicle(v, now); err != nil {
		return core.Vehicle{}, err
	}

	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("load vehicles: %w", err)
	}

	v.ID = core.NewID(now)
	if err := s.repo.SaveVehicles(ctx, sess.Email, append(vehicles, v)); err != nil {
		return core.Vehicle{}, fmt.Errorf("save vehicles: %w", err)
	}

	slog.InfoContext(ctx, "vehicle added", "vehicle_id", v.ID, "plate", v.Plate)
	return v, nil
}

// Update replaces an existing vehicle after edit validation: the starting
// odometer cannot move past already-recorded fuel-up mileage.
func (s *VehicleService) Update(ctx context.Context, sess core.Session, v core.Vehicle) error {
	entries, err := s.repo.FuelEntries(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("load fuel entries: %w", err)
	}
	if err := core.ValidateVehicleEdit(v, entries, s.now()); err != nil {
		return err
	}

	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("load vehicles: %w", err)
	}

	found := false
	updated := make([]core.Vehicle, len(vehicles))
	for i, existing := range vehicles {
		if existing.ID == v.ID {
			updated[i] = v
			found = true
		} else {
			updated[i] = existing
		}
	}
	if !found {
		return ErrVehicleNotFound
	}

	if err := s.repo.SaveVehicles(ctx, sess.Email, updated); err != nil {
		return fmt.Errorf("save vehicles: %w", err)
	}

	slog.InfoContext(ctx, "vehicle updated", "vehicle_id", v.ID)
	return nil
}

// Delete removes a vehicle and cascades to its fuel entries. The cascade
// is two independent writes with no rollback: a crash after the first
// write leaves orphaned entries behind.
func (s *VehicleService) Delete(ctx context.Context, sess core.Session, id string) error {
	vehicles, err := s.repo.Vehicles(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("load vehicles: %w", err)
	}

	kept := vehicles[:0:0]
	for _, v := range vehicles {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(vehicles) {
		return ErrVehicleNotFound
	}
	if err := s.repo.SaveVehicles(ctx, sess.Email, kept); err != nil {
		return fmt.Errorf("save vehicles: %w", err)
	}

	entries, err := s.repo.FuelEntries(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("load fuel entries: %w", err)
	}
	keptEntries := entries[:0:0]
	for _, e := range entries {
		if e.VehicleID != id {
			keptEntries = append(keptEntries, e)
		}
	}
	if err := s.repo.SaveFuelEntries(ctx, sess.Email, keptEntries); err != nil {
		return fmt.Errorf("save fuel entries: %w", err)
	}

	slog.InfoContext(ctx, "vehicle deleted", "vehicle_id", id,
		"cascaded_entries", len(entries)-len(keptEntries))
	return nil
}
