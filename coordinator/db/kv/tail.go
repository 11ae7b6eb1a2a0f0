package kv

import (
	"context"
	"time"

	dbtypes "github.com/althof3/votara/coordinator/db/types"
	"github.com/althof3/votara/coordinator/types"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// TailCursor returns the persisted tail position, or nil when the tail has
// never committed a window.
func (s *Store) TailCursor(ctx context.Context) (*types.TailCursor, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.TailCursor")
	defer span.End()

	var cursor *types.TailCursor
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(chainMetadataBucket).Get(tailCursorKey)
		if enc == nil {
			return nil
		}
		cursor = &types.TailCursor{}
		return decode(ctx, enc, cursor)
	})
	return cursor, err
}

// SaveTailCursor persists the tail position. The cursor only moves forward;
// attempts to rewind it are ignored.
func (s *Store) SaveTailCursor(ctx context.Context, block uint64) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SaveTailCursor")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		return saveCursor(ctx, tx, block)
	})
}

// ApplyEventBatch applies one decoded window of contract events and advances
// the cursor in the same transaction, so a crash can never separate the two.
// Events must already be sorted by (blockNumber, logIndex).
func (s *Store) ApplyEventBatch(ctx context.Context, events []*types.ChainEvent, newCursor uint64) (*dbtypes.BatchSummary, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.ApplyEventBatch")
	defer span.End()

	summary := &dbtypes.BatchSummary{}
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, ev := range events {
			switch ev.Kind {
			case types.EventPollCreated:
				stamped, parked, err := applyPollCreated(ctx, tx, ev)
				if err != nil {
					return err
				}
				switch {
				case stamped:
					summary.CreationsStamped++
				case parked:
					summary.CreationsPending++
				default:
					summary.Skipped++
				}
			case types.EventPollActivated:
				outcome, err := applyActivation(ctx, tx, ev.PollID, ev.GroupID, ev.TxHash, ev.BlockNumber)
				if err != nil {
					return err
				}
				switch outcome {
				case dbtypes.ActivationApplied:
					summary.ActivationsApplied++
				case dbtypes.ActivationAlreadyActive:
					summary.Skipped++
				default:
					summary.Skipped++
					log.WithFields(logrus.Fields{
						"pollId":  ev.PollID.Hex(),
						"block":   ev.BlockNumber,
						"outcome": outcome.String(),
					}).Warn("Could not honor activation event")
				}
			case types.EventVoteCast:
				outcome, err := applyVote(ctx, tx, ev, time.Time{})
				if err != nil {
					return err
				}
				switch outcome {
				case dbtypes.VoteApplied:
					summary.VotesApplied++
				case dbtypes.VoteDuplicate:
					summary.Skipped++
				default:
					summary.Skipped++
					log.WithFields(logrus.Fields{
						"pollId":  ev.PollID.Hex(),
						"block":   ev.BlockNumber,
						"outcome": outcome.String(),
					}).Warn("Could not honor vote event")
				}
			default:
				summary.Skipped++
			}
		}
		return saveCursor(ctx, tx, newCursor)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// AcquireTailLease attempts to take the singleton tail lease. It reports
// true when this owner now holds an unexpired lease, either fresh or by
// re-signing its own earlier entry.
func (s *Store) AcquireTailLease(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.AcquireTailLease")
	defer span.End()

	acquired := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chainMetadataBucket)
		if enc := bkt.Get(tailLeaseKey); enc != nil {
			lease := &types.TailLease{}
			if err := decode(ctx, enc, lease); err != nil {
				return err
			}
			if lease.Owner != owner && time.Now().Before(lease.ExpiresAt) {
				return nil
			}
		}
		enc, err := encode(ctx, &types.TailLease{Owner: owner, ExpiresAt: time.Now().Add(ttl)})
		if err != nil {
			return err
		}
		if err := bkt.Put(tailLeaseKey, enc); err != nil {
			return err
		}
		acquired = true
		return nil
	})
	return acquired, err
}

// RenewTailLease extends the lease when the owner still holds it and
// returns ErrLeaseLost otherwise. An expired entry that was not taken over
// can still be renewed by its owner.
func (s *Store) RenewTailLease(ctx context.Context, owner string, ttl time.Duration) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.RenewTailLease")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chainMetadataBucket)
		enc := bkt.Get(tailLeaseKey)
		if enc == nil {
			return ErrLeaseLost
		}
		lease := &types.TailLease{}
		if err := decode(ctx, enc, lease); err != nil {
			return err
		}
		if lease.Owner != owner {
			return ErrLeaseLost
		}
		renewed, err := encode(ctx, &types.TailLease{Owner: owner, ExpiresAt: time.Now().Add(ttl)})
		if err != nil {
			return err
		}
		return bkt.Put(tailLeaseKey, renewed)
	})
}

// ReleaseTailLease drops the lease if this owner holds it.
func (s *Store) ReleaseTailLease(ctx context.Context, owner string) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.ReleaseTailLease")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chainMetadataBucket)
		enc := bkt.Get(tailLeaseKey)
		if enc == nil {
			return nil
		}
		lease := &types.TailLease{}
		if err := decode(ctx, enc, lease); err != nil {
			return err
		}
		if lease.Owner != owner {
			return nil
		}
		return bkt.Delete(tailLeaseKey)
	})
}

// saveCursor writes the monotone cursor inside an open transaction.
func saveCursor(ctx context.Context, tx *bolt.Tx, block uint64) error {
	bkt := tx.Bucket(chainMetadataBucket)
	if enc := bkt.Get(tailCursorKey); enc != nil {
		cur := &types.TailCursor{}
		if err := decode(ctx, enc, cur); err != nil {
			return err
		}
		if cur.LastProcessedBlock >= block {
			return nil
		}
	}
	enc, err := encode(ctx, &types.TailCursor{LastProcessedBlock: block, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return bkt.Put(tailCursorKey, enc)
}
