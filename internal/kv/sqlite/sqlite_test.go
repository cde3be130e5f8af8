package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := store.Set(ctx, "users", `[{"email":"mario@example.com"}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok, err := store.Get(ctx, "users")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v, want hit", ok, err)
	}
	if v != `[{"email":"mario@example.com"}]` {
		t.Errorf("Get() = %q, want stored value", v)
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Set(ctx, "k", "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "k", "second"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _, _ := store.Get(ctx, "k"); v != "second" {
		t.Errorf("Get() = %q, want second", v)
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Error("Get() after delete reports the key as present")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
