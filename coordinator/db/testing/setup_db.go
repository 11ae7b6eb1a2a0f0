// Package testing allows for spinning up a real bolt-db instance for unit
// tests throughout the coordinator packages.
package testing

import (
	"testing"

	"github.com/althof3/votara/coordinator/db"
	"github.com/althof3/votara/coordinator/db/kv"
)

// SetupDB instantiates and returns a database backed by a real key value
// store, torn down when the test finishes.
func SetupDB(t testing.TB) db.Database {
	s, err := kv.NewKVStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to instantiate database: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})
	return s
}
