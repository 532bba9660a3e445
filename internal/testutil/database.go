package testutil

import (
	"testing"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/database"
)

// NewTestStore creates an in-memory SQLite store with all migrations
// applied, a FixedClock and sequential IDs. The catalog is not seeded;
// call SeededTestStore for that. The store is closed when the test
// completes.
func NewTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	store, err := database.NewSQLiteStore(":memory:", FixedClock(), NewStubIDGenerator())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// SeededTestStore is NewTestStore plus the built-in food catalog.
func SeededTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	store := NewTestStore(t)
	if err := store.Seed(); err != nil {
		t.Fatalf("failed to seed test store: %v", err)
	}
	return store
}
