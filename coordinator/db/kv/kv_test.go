package kv

import (
	"testing"

	"github.com/althof3/votara/testing/require"
	bolt "go.etcd.io/bbolt"
)

// setupDB instantiates and returns a Store instance.
func setupDB(t testing.TB) *Store {
	db, err := NewKVStore(t.TempDir())
	require.NoError(t, err, "Failed to instantiate DB")
	t.Cleanup(func() {
		require.NoError(t, db.Close(), "Failed to close database")
	})
	return db
}

func TestNewKVStore_CreatesSchemaBuckets(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.db.View(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{
			pollsBucket,
			votesBucket,
			usersBucket,
			pendingCreatorsBucket,
			pollStatusIndexBucket,
			pollCreatorIndexBucket,
			votePollIndexBucket,
			chainMetadataBucket,
		} {
			if tx.Bucket(bucket) == nil {
				t.Errorf("Bucket %s was not created", bucket)
			}
		}
		return nil
	}))
}
