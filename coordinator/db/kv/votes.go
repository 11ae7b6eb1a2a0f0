package kv

import (
	"bytes"
	"context"
	"math/big"
	"time"

	dbtypes "github.com/althof3/votara/coordinator/db/types"
	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/encoding/bytesutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// SaveVote records one VoteCast projection. The outcome mirrors what an
// event replay would do: duplicates, unknown polls and out-of-range options
// are skips, not errors.
func (s *Store) SaveVote(ctx context.Context, vote *types.Vote) (dbtypes.VoteOutcome, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SaveVote")
	defer span.End()

	nullifier, ok := new(big.Int).SetString(vote.NullifierHash, 10)
	if !ok {
		return 0, errors.Errorf("invalid nullifier hash %q", vote.NullifierHash)
	}
	ev := &types.ChainEvent{
		Kind:          types.EventVoteCast,
		PollID:        vote.PollID,
		OptionIndex:   vote.OptionIndex,
		NullifierHash: nullifier,
		TxHash:        vote.TxHash,
		BlockNumber:   vote.BlockNumber,
		LogIndex:      vote.LogIndex,
	}
	var outcome dbtypes.VoteOutcome
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		outcome, err = applyVote(ctx, tx, ev, vote.CreatedAt)
		return err
	})
	return outcome, err
}

// VoteCounts aggregates ballots for a poll into per-option counts plus the
// total. Options with no votes are absent from the map.
func (s *Store) VoteCounts(ctx context.Context, pollID common.Hash) (map[uint8]uint64, uint64, error) {
	_, span := trace.StartSpan(ctx, "CoordinatorDB.VoteCounts")
	defer span.End()

	counts := make(map[uint8]uint64)
	var total uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(votePollIndexBucket).Cursor()
		prefix := pollID.Bytes()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if len(v) != 1 {
				continue
			}
			counts[v[0]]++
			total++
		}
		return nil
	})
	return counts, total, err
}

// HasVote reports whether the nullifier hash has already been spent.
func (s *Store) HasVote(ctx context.Context, nullifier *big.Int) bool {
	_, span := trace.StartSpan(ctx, "CoordinatorDB.HasVote")
	defer span.End()

	exists := false
	// #nosec G104. Always returns nil.
	s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(votesBucket).Get(nullifierKey(nullifier)) != nil
		return nil
	})
	return exists
}

// applyVote is the transaction-level vote step shared by SaveVote and
// ApplyEventBatch. The nullifier's fixed-width key makes the first write
// win and every replay a duplicate.
func applyVote(ctx context.Context, tx *bolt.Tx, ev *types.ChainEvent, createdAt time.Time) (dbtypes.VoteOutcome, error) {
	key := nullifierKey(ev.NullifierHash)
	votes := tx.Bucket(votesBucket)
	if votes.Get(key) != nil {
		return dbtypes.VoteDuplicate, nil
	}
	poll, err := getPoll(ctx, tx, ev.PollID)
	if err != nil {
		return 0, err
	}
	if poll == nil {
		return dbtypes.VotePollUnknown, nil
	}
	if !poll.HasOptionIndex(ev.OptionIndex) {
		return dbtypes.VoteBadOption, nil
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	vote := &types.Vote{
		PollID:        ev.PollID,
		OptionIndex:   ev.OptionIndex,
		NullifierHash: ev.NullifierHash.String(),
		TxHash:        ev.TxHash,
		BlockNumber:   ev.BlockNumber,
		LogIndex:      ev.LogIndex,
		CreatedAt:     createdAt,
	}
	enc, err := encode(ctx, vote)
	if err != nil {
		return 0, err
	}
	if err := votes.Put(key, enc); err != nil {
		return 0, err
	}
	if err := tx.Bucket(votePollIndexBucket).Put(voteIndexKey(ev.PollID, key), []byte{ev.OptionIndex}); err != nil {
		return 0, err
	}
	return dbtypes.VoteApplied, nil
}

func countVotes(tx *bolt.Tx, pollID common.Hash) uint64 {
	var count uint64
	c := tx.Bucket(votePollIndexBucket).Cursor()
	prefix := pollID.Bytes()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		count++
	}
	return count
}

// nullifierKey converts a nullifier hash into its fixed-width big-endian
// bucket key, so numeric equality and key equality coincide.
func nullifierKey(nullifier *big.Int) []byte {
	return bytesutil.PadLeft(nullifier.Bytes(), 32)
}

func voteIndexKey(pollID common.Hash, nullifierKey []byte) []byte {
	return append(pollID.Bytes(), nullifierKey...)
}
