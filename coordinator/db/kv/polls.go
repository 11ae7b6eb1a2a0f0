package kv

import (
	"bytes"
	"context"
	"math/big"
	"sort"
	"time"

	dbtypes "github.com/althof3/votara/coordinator/db/types"
	"github.com/althof3/votara/coordinator/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

// SavePoll inserts a new draft record. If a pending creator binding exists
// for the pollId (its PollCreated event arrived before the draft), the
// binding is consumed: the creation transaction hash is stamped onto the
// poll and the binding deleted. The insert is rejected with ErrNotCreator
// when the on-chain creator differs from the draft's creator.
func (s *Store) SavePoll(ctx context.Context, poll *types.Poll) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SavePoll")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(pollsBucket).Get(poll.ID.Bytes()) != nil {
			return ErrAlreadyExists
		}
		pending := tx.Bucket(pendingCreatorsBucket)
		if enc := pending.Get(poll.ID.Bytes()); enc != nil {
			pc := &types.PendingCreator{}
			if err := decode(ctx, enc, pc); err != nil {
				return err
			}
			if pc.Creator != poll.Creator {
				return ErrNotCreator
			}
			txHash := pc.TxHash
			poll.CreationTxHash = &txHash
			if err := pending.Delete(poll.ID.Bytes()); err != nil {
				return err
			}
		}
		if err := putPoll(ctx, tx, poll); err != nil {
			return err
		}
		if err := tx.Bucket(pollStatusIndexBucket).Put(statusIndexKey(poll.Status, poll.ID), []byte{}); err != nil {
			return err
		}
		return tx.Bucket(pollCreatorIndexBucket).Put(creatorIndexKey(poll.Creator, poll.ID), []byte{})
	})
}

// Poll retrieves the record for the given pollId, or nil if none exists.
// The returned status is end-time aware and VoteCount is filled from the
// vote index.
func (s *Store) Poll(ctx context.Context, pollID common.Hash) (*types.Poll, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.Poll")
	defer span.End()

	var poll *types.Poll
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		poll, err = getPoll(ctx, tx, pollID)
		if err != nil || poll == nil {
			return err
		}
		poll.Status = poll.EffectiveStatus(time.Now())
		poll.VoteCount = countVotes(tx, pollID)
		return nil
	})
	return poll, err
}

// ListPolls returns the page of polls matching the filter, newest first,
// along with the total number of matches. Status filtering applies to the
// effective status: ACTIVE excludes polls whose window has closed and ENDED
// selects exactly those.
func (s *Store) ListPolls(ctx context.Context, f *dbtypes.PollFilter) ([]*types.Poll, uint64, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.ListPolls")
	defer span.End()

	if f == nil {
		f = &dbtypes.PollFilter{}
	}
	now := time.Now()
	var (
		page  []*types.Poll
		total uint64
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		candidates, err := candidatePollIDs(tx, f)
		if err != nil {
			return err
		}
		var matched []*types.Poll
		for _, id := range candidates {
			poll, err := getPoll(ctx, tx, id)
			if err != nil {
				return err
			}
			if poll == nil {
				continue
			}
			poll.Status = poll.EffectiveStatus(now)
			if f.Status != nil && poll.Status != *f.Status {
				continue
			}
			if f.Creator != nil && poll.Creator != *f.Creator {
				continue
			}
			matched = append(matched, poll)
		}
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return bytes.Compare(matched[i].ID.Bytes(), matched[j].ID.Bytes()) < 0
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
		total = uint64(len(matched))
		start, end := pageBounds(total, f.Page, f.Limit)
		page = matched[start:end]
		for _, poll := range page {
			poll.VoteCount = countVotes(tx, poll.ID)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

// UpdatePollMetadata applies draft edits. Only the creator may edit and only
// while the poll is still a draft; both checks run inside the transaction so
// a concurrent activation cannot be clobbered.
func (s *Store) UpdatePollMetadata(ctx context.Context, pollID common.Hash, actor common.Address, upd *dbtypes.PollMetadataUpdate) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.UpdatePollMetadata")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		poll, err := getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if poll == nil {
			return ErrNotFound
		}
		if poll.Status != types.PollStatusDraft {
			return ErrWrongStatus
		}
		if poll.Creator != actor {
			return ErrNotCreator
		}
		if upd.Title != nil {
			poll.Title = *upd.Title
		}
		if upd.Description != nil {
			poll.Description = *upd.Description
		}
		if upd.StartTime != nil {
			poll.StartTime = *upd.StartTime
		}
		if upd.EndTime != nil {
			poll.EndTime = *upd.EndTime
		}
		if upd.Options != nil {
			poll.Options = upd.Options
		}
		poll.UpdatedAt = time.Now().UTC()
		return putPoll(ctx, tx, poll)
	})
}

// SetRoster attaches the membership group and its identity commitments to a
// draft poll. The roster is written exactly once; activation refuses to run
// without it.
func (s *Store) SetRoster(ctx context.Context, pollID common.Hash, groupID *big.Int, commitments []string) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SetRoster")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		poll, err := getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}
		if poll == nil {
			return ErrNotFound
		}
		if poll.Status != types.PollStatusDraft {
			return ErrWrongStatus
		}
		if poll.GroupID != nil || len(poll.Roster) > 0 {
			return ErrRosterSet
		}
		poll.GroupID = new(big.Int).Set(groupID)
		poll.Roster = commitments
		poll.UpdatedAt = time.Now().UTC()
		return putPoll(ctx, tx, poll)
	})
}

// ApplyActivation marks a poll ACTIVE in response to a PollActivated event.
// The operation is idempotent; replays and events that cannot be honored
// report their outcome without touching the record.
func (s *Store) ApplyActivation(ctx context.Context, pollID common.Hash, groupID *big.Int, txHash common.Hash, blockNumber uint64) (dbtypes.ActivationOutcome, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.ApplyActivation")
	defer span.End()

	var outcome dbtypes.ActivationOutcome
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		outcome, err = applyActivation(ctx, tx, pollID, groupID, txHash, blockNumber)
		return err
	})
	return outcome, err
}

// SavePendingCreator parks the creator binding of a PollCreated event whose
// draft has not been inserted yet. The first binding wins; replays are
// no-ops.
func (s *Store) SavePendingCreator(ctx context.Context, pc *types.PendingCreator) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.SavePendingCreator")
	defer span.End()

	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(pendingCreatorsBucket)
		if bkt.Get(pc.PollID.Bytes()) != nil {
			return nil
		}
		enc, err := encode(ctx, pc)
		if err != nil {
			return err
		}
		return bkt.Put(pc.PollID.Bytes(), enc)
	})
}

// PendingCreator returns the parked creator binding for a pollId, or nil.
func (s *Store) PendingCreator(ctx context.Context, pollID common.Hash) (*types.PendingCreator, error) {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.PendingCreator")
	defer span.End()

	var pc *types.PendingCreator
	err := s.db.View(func(tx *bolt.Tx) error {
		enc := tx.Bucket(pendingCreatorsBucket).Get(pollID.Bytes())
		if enc == nil {
			return nil
		}
		pc = &types.PendingCreator{}
		return decode(ctx, enc, pc)
	})
	return pc, err
}

// applyActivation is the transaction-level activation step shared by
// ApplyActivation and ApplyEventBatch. The groupId carried by the event is
// authoritative when it disagrees with the stored one.
func applyActivation(ctx context.Context, tx *bolt.Tx, pollID common.Hash, groupID *big.Int, txHash common.Hash, blockNumber uint64) (dbtypes.ActivationOutcome, error) {
	poll, err := getPoll(ctx, tx, pollID)
	if err != nil {
		return 0, err
	}
	if poll == nil {
		return dbtypes.ActivationNotFound, nil
	}
	if poll.Status == types.PollStatusActive {
		return dbtypes.ActivationAlreadyActive, nil
	}
	if len(poll.Roster) == 0 {
		return dbtypes.ActivationMissingRoster, nil
	}
	if poll.GroupID != nil && groupID != nil && poll.GroupID.Cmp(groupID) != 0 {
		log.WithFields(logrus.Fields{
			"pollId":        poll.ID.Hex(),
			"storedGroupId": poll.GroupID.String(),
			"eventGroupId":  groupID.String(),
		}).Warn("Activation event carries a different groupId than stored, event wins")
	}
	if groupID != nil {
		poll.GroupID = new(big.Int).Set(groupID)
	}
	hash := txHash
	poll.Status = types.PollStatusActive
	poll.ActivationTxHash = &hash
	poll.ActivationBlock = blockNumber
	poll.UpdatedAt = time.Now().UTC()

	statusIdx := tx.Bucket(pollStatusIndexBucket)
	if err := statusIdx.Delete(statusIndexKey(types.PollStatusDraft, pollID)); err != nil {
		return 0, err
	}
	if err := statusIdx.Put(statusIndexKey(types.PollStatusActive, pollID), []byte{}); err != nil {
		return 0, err
	}
	if err := putPoll(ctx, tx, poll); err != nil {
		return 0, err
	}
	return dbtypes.ActivationApplied, nil
}

// applyPollCreated stamps the creation transaction onto an existing poll or
// parks a pending creator binding until the draft arrives.
func applyPollCreated(ctx context.Context, tx *bolt.Tx, ev *types.ChainEvent) (stamped, parked bool, err error) {
	poll, err := getPoll(ctx, tx, ev.PollID)
	if err != nil {
		return false, false, err
	}
	if poll != nil {
		if poll.Creator != ev.Creator {
			log.WithFields(logrus.Fields{
				"pollId":        ev.PollID.Hex(),
				"storedCreator": poll.Creator.Hex(),
				"eventCreator":  ev.Creator.Hex(),
			}).Warn("PollCreated creator differs from stored draft, not stamping")
			return false, false, nil
		}
		if poll.CreationTxHash != nil {
			return false, false, nil
		}
		hash := ev.TxHash
		poll.CreationTxHash = &hash
		poll.UpdatedAt = time.Now().UTC()
		if err := putPoll(ctx, tx, poll); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	pending := tx.Bucket(pendingCreatorsBucket)
	if pending.Get(ev.PollID.Bytes()) != nil {
		return false, false, nil
	}
	enc, err := encode(ctx, &types.PendingCreator{
		PollID:      ev.PollID,
		Creator:     ev.Creator,
		TxHash:      ev.TxHash,
		BlockNumber: ev.BlockNumber,
	})
	if err != nil {
		return false, false, err
	}
	if err := pending.Put(ev.PollID.Bytes(), enc); err != nil {
		return false, false, err
	}
	return false, true, nil
}

func getPoll(ctx context.Context, tx *bolt.Tx, pollID common.Hash) (*types.Poll, error) {
	enc := tx.Bucket(pollsBucket).Get(pollID.Bytes())
	if enc == nil {
		return nil, nil
	}
	poll := &types.Poll{}
	if err := decode(ctx, enc, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

// putPoll persists the record with the derived VoteCount zeroed, keeping
// stored bytes canonical.
func putPoll(ctx context.Context, tx *bolt.Tx, poll *types.Poll) error {
	record := *poll
	record.VoteCount = 0
	enc, err := encode(ctx, &record)
	if err != nil {
		return err
	}
	return tx.Bucket(pollsBucket).Put(poll.ID.Bytes(), enc)
}

// candidatePollIDs narrows the scan using the most selective index available.
func candidatePollIDs(tx *bolt.Tx, f *dbtypes.PollFilter) ([]common.Hash, error) {
	switch {
	case f.Creator != nil:
		return scanIndexSuffixes(tx.Bucket(pollCreatorIndexBucket), f.Creator.Bytes()), nil
	case f.Status != nil:
		stored := *f.Status
		if stored == types.PollStatusEnded {
			// ENDED is never stored; ended polls are ACTIVE records whose
			// window has closed.
			stored = types.PollStatusActive
		}
		return scanIndexSuffixes(tx.Bucket(pollStatusIndexBucket), []byte{byte(stored)}), nil
	default:
		var ids []common.Hash
		err := tx.Bucket(pollsBucket).ForEach(func(k, _ []byte) error {
			ids = append(ids, common.BytesToHash(k))
			return nil
		})
		return ids, err
	}
}

func scanIndexSuffixes(bkt *bolt.Bucket, prefix []byte) []common.Hash {
	var ids []common.Hash
	c := bkt.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		ids = append(ids, common.BytesToHash(k[len(prefix):]))
	}
	return ids
}

func pageBounds(total, page, limit uint64) (uint64, uint64) {
	if limit == 0 {
		return 0, total
	}
	if page == 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start > total {
		return total, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

func statusIndexKey(status types.PollStatus, pollID common.Hash) []byte {
	return append([]byte{byte(status)}, pollID.Bytes()...)
}

func creatorIndexKey(creator common.Address, pollID common.Hash) []byte {
	return append(creator.Bytes(), pollID.Bytes()...)
}
