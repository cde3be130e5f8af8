package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuelbook/internal/core"
	"fuelbook/internal/kv/memory"
)

func TestRepository_AbsentKeysDecodeEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())

	accounts, err := repo.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	vehicles, err := repo.Vehicles(ctx, "mario@example.com")
	require.NoError(t, err)
	assert.Empty(t, vehicles)

	entries, err := repo.FuelEntries(ctx, "mario@example.com")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, ok, err := repo.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_AccountsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())

	want := []core.Account{{Email: "mario@example.com", Name: "Mario", Password: "secret1"}}
	require.NoError(t, repo.SaveAccounts(ctx, want))

	got, err := repo.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())

	want := core.Session{Email: "mario@example.com", Name: "Mario"}
	require.NoError(t, repo.SaveSession(ctx, want))

	got, ok, err := repo.Session(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, repo.ClearSession(ctx))
	_, ok, err = repo.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-absent session is a no-op.
	require.NoError(t, repo.ClearSession(ctx))
}

func TestRepository_PartitionIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())

	marioVehicles := []core.Vehicle{{ID: "v1", Name: "Panda"}}
	luigiVehicles := []core.Vehicle{{ID: "v2", Name: "Clio"}}
	require.NoError(t, repo.SaveVehicles(ctx, "mario@example.com", marioVehicles))
	require.NoError(t, repo.SaveVehicles(ctx, "luigi@example.com", luigiVehicles))

	got, err := repo.Vehicles(ctx, "mario@example.com")
	require.NoError(t, err)
	assert.Equal(t, marioVehicles, got)

	got, err = repo.Vehicles(ctx, "luigi@example.com")
	require.NoError(t, err)
	assert.Equal(t, luigiVehicles, got)
}

func TestRepository_KeyLayout(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)

	require.NoError(t, repo.SaveVehicles(ctx, "mario@example.com", []core.Vehicle{{ID: "v1"}}))
	require.NoError(t, repo.SaveFuelEntries(ctx, "mario@example.com", []core.FuelEntry{{ID: "e1"}}))

	_, ok, err := store.Get(ctx, "vehicles_mario@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "vehicles partition key")

	_, ok, err = store.Get(ctx, "fuelEntries_mario@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "fuel entries partition key")
}

func TestRepository_CacheInvalidatedOnSave(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	email := "mario@example.com"

	require.NoError(t, repo.SaveVehicles(ctx, email, []core.Vehicle{{ID: "v1"}}))

	// Prime the cache.
	first, err := repo.Vehicles(ctx, email)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, repo.SaveVehicles(ctx, email, []core.Vehicle{{ID: "v1"}, {ID: "v2"}}))

	second, err := repo.Vehicles(ctx, email)
	require.NoError(t, err)
	assert.Len(t, second, 2, "stale cached partition served after save")
}

func TestRepository_FuelEntriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(memory.New())
	cost := 12.5

	want := []core.FuelEntry{{ID: "e1", VehicleID: "v1", Liters: 8, Kilometers: 10200, Cost: &cost}}
	require.NoError(t, repo.SaveFuelEntries(ctx, "mario@example.com", want))

	got, err := repo.FuelEntries(ctx, "mario@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_CorruptValueFails(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := NewRepository(store)

	require.NoError(t, store.Set(ctx, "users", "not json"))

	_, err := repo.Accounts(ctx)
	assert.Error(t, err)
}
