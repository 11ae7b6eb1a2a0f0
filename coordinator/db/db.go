// Package db defines the ability to create a new database for the Votara
// coordinator.
package db

import (
	"github.com/althof3/votara/coordinator/db/iface"
	"github.com/althof3/votara/coordinator/db/kv"
)

// ReadOnlyDatabase exposes the coordinator DB's read only functions.
type ReadOnlyDatabase = iface.ReadOnlyDatabase

// WriteAccessDatabase exposes the coordinator DB's writing functions.
type WriteAccessDatabase = iface.WriteAccessDatabase

// FullAccessDatabase exposes the coordinator DB's write and read functions.
type FullAccessDatabase = iface.FullAccessDatabase

// Database defines the necessary methods for the coordinator's DB which may
// be implemented by any key-value or relational database in practice. This
// is the full database interface which should not be used often. Prefer a
// more restrictive interface in this package.
type Database = iface.Database

// Store mutation sentinels, re-exported so callers never import kv directly.
var (
	ErrNotFound      = kv.ErrNotFound
	ErrAlreadyExists = kv.ErrAlreadyExists
	ErrWrongStatus   = kv.ErrWrongStatus
	ErrNotCreator    = kv.ErrNotCreator
	ErrRosterSet     = kv.ErrRosterSet
	ErrLeaseLost     = kv.ErrLeaseLost
)

// NewDB initializes a new DB at the specified directory.
func NewDB(dirPath string) (Database, error) {
	return kv.NewKVStore(dirPath)
}
