package store

import (
	"testing"

	"github.com/albertomt/cricheck/internal/db"
)

// testStores returns both Store implementations, so every behavioural test
// runs against the SQLite and the in-memory backend.
func testStores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"sqlite": NewSQLite(db.NewTestDB(t)),
		"memory": NewMemory(),
	}
}
