package kv

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// VotingContractAddress returns the address of the voting contract this
// database was built against, or nil when none has been recorded yet.
func (s *Store) VotingContractAddress(ctx context.Context) ([]byte, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.VotingContractAddress")
	defer span.End()
	var addr []byte
	// #nosec G104. Always returns nil.
	s.db.View(func(tx *bolt.Tx) error {
		addr = tx.Bucket(chainMetadataBucket).Get(votingContractAddressKey)
		return nil
	})
	return addr, nil
}

// SaveVotingContractAddress pins the voting contract the database belongs to.
// Every record in the store is derived from this contract's events, so the
// pin may be written once and never overridden.
func (s *Store) SaveVotingContractAddress(ctx context.Context, addr common.Address) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SaveVotingContractAddress")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chainMetadataBucket)
		if existing := bkt.Get(votingContractAddressKey); existing != nil {
			return errors.Errorf("cannot override voting contract address: %#x", existing)
		}
		return bkt.Put(votingContractAddressKey, addr.Bytes())
	})
}
