// Package storage translates between the key-value collaborator and the
// domain collections. Keys follow the layout of the source data: a global
// accounts list, a global current-session record, and per-user partitions
// for vehicles and fuel entries. An absent key always decodes as the
// empty collection; the storage layer enforces no referential integrity.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fuelbook/internal/cache"
	"fuelbook/internal/core"
	"fuelbook/internal/kv"
)

const (
	accountsKey       = "users"
	sessionKey        = "currentUser"
	vehiclesPrefix    = "vehicles_"
	fuelEntriesPrefix = "fuelEntries_"

	partitionCacheSize = 16
)

type Repository struct {
	store kv.Store

	// Decoded partitions, invalidated on every write. Safe because this
	// process is the only writer against the store.
	vehicles *cache.LRU[[]core.Vehicle]
	entries  *cache.LRU[[]core.FuelEntry]
}

func NewRepository(store kv.Store) *Repository {
	return &Repository{
		store:    store,
		vehicles: cache.NewLRU[[]core.Vehicle](partitionCacheSize),
		entries:  cache.NewLRU[[]core.FuelEntry](partitionCacheSize),
	}
}

// VehiclesKey returns the partition key for one user's vehicles.
func VehiclesKey(email string) string {
	return vehiclesPrefix + email
}

// FuelEntriesKey returns the partition key for one user's fuel entries.
func FuelEntriesKey(email string) string {
	return fuelEntriesPrefix + email
}

func (r *Repository) Accounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	if err := r.read(ctx, accountsKey, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *Repository) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	return r.write(ctx, accountsKey, accounts)
}

// Session returns the current session; ok is false when nobody is logged in.
func (r *Repository) Session(ctx context.Context) (core.Session, bool, error) {
	raw, ok, err := r.store.Get(ctx, sessionKey)
	if err != nil {
		return core.Session{}, false, fmt.Errorf("read %s: %w", sessionKey, err)
	}
	if !ok {
		return core.Session{}, false, nil
	}
	var sess core.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return core.Session{}, false, fmt.Errorf("decode %s: %w", sessionKey, err)
	}
	return sess, true, nil
}

func (r *Repository) SaveSession(ctx context.Context, sess core.Session) error {
	return r.write(ctx, sessionKey, sess)
}

func (r *Repository) ClearSession(ctx context.Context) error {
	if err := r.store.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear %s: %w", sessionKey, err)
	}
	return nil
}

func (r *Repository) Vehicles(ctx context.Context, email string) ([]core.Vehicle, error) {
	key := VehiclesKey(email)
	if cached, ok := r.vehicles.Get(key); ok {
		return cached, nil
	}
	var vehicles []core.Vehicle
	if err := r.read(ctx, key, &vehicles); err != nil {
		return nil, err
	}
	r.vehicles.Set(key, vehicles)
	return vehicles, nil
}

func (r *Repository) SaveVehicles(ctx context.Context, email string, vehicles []core.Vehicle) error {
	key := VehiclesKey(email)
	r.vehicles.Delete(key)
	if err := r.write(ctx, key, vehicles); err != nil {
		return err
	}
	slog.DebugContext(ctx, "vehicles partition saved", "email", email, "count", len(vehicles))
	return nil
}

func (r *Repository) FuelEntries(ctx context.Context, email string) ([]core.FuelEntry, error) {
	key := FuelEntriesKey(email)
	if cached, ok := r.entries.Get(key); ok {
		return cached, nil
	}
	var entries []core.FuelEntry
	if err := r.read(ctx, key, &entries); err != nil {
		return nil, err
	}
	r.entries.Set(key, entries)
	return entries, nil
}

func (r *Repository) SaveFuelEntries(ctx context.Context, email string, entries []core.FuelEntry) error {
	key := FuelEntriesKey(email)
	r.entries.Delete(key)
	if err := r.write(ctx, key, entries); err != nil {
		return err
	}
	slog.DebugContext(ctx, "fuel entries partition saved", "email", email, "count", len(entries))
	return nil
}

// read decodes the JSON array stored under key into dst, leaving dst
// untouched (the empty collection) when the key is absent.
func (r *Repository) read(ctx context.Context, key string, dst any) error {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
