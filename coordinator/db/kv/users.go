package kv

import (
	"context"

	"github.com/althof3/votara/coordinator/types"
	"github.com/ethereum/go-ethereum/common"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// SaveUser upserts the login record for a wallet. Raw address bytes key the
// bucket, so checksummed and lowercased spellings land on the same row.
func (s *Store) SaveUser(ctx context.Context, user *types.User) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SaveUser")
	defer span.End()

	enc, err := encode(ctx, user)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).Put(user.Address.Bytes(), enc)
	})
}

// User returns the login record for an address, or nil if the wallet has
// never authenticated.
func (s *Store) User(ctx context.Context, address common.Address) (*types.User, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.User")
	defer span.End()

	var user *types.User
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(usersBucket).Get(address.Bytes())
		if enc == nil {
			return nil
		}
		user = &types.User{}
		return decode(ctx, enc, user)
	})
	return user, err
}
