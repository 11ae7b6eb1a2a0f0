package kv

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func TestStore_TailCursor_MonotoneAdvance(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	cursor, err := db.TailCursor(ctx)
	require.NoError(t, err)
	require.Equal(t, true, cursor == nil)

	require.NoError(t, db.SaveTailCursor(ctx, 10))
	cursor, err = db.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(10), cursor.LastProcessedBlock)

	// Rewinds are silently ignored.
	require.NoError(t, db.SaveTailCursor(ctx, 5))
	cursor, err = db.TailCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), cursor.LastProcessedBlock)

	require.NoError(t, db.SaveTailCursor(ctx, 20))
	cursor, err = db.TailCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), cursor.LastProcessedBlock)
}

func TestStore_ApplyEventBatch_AppliesWindowAtomically(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")

	poll := draftPoll('a', creator)
	require.NoError(t, db.SavePoll(ctx, poll))
	require.NoError(t, db.SetRoster(ctx, poll.ID, big.NewInt(7), []string{"11", "22"}))

	events := []*types.ChainEvent{
		{
			Kind:        types.EventPollCreated,
			PollID:      poll.ID,
			Creator:     creator,
			TxHash:      common.Hash{'c'},
			BlockNumber: 100,
			LogIndex:    0,
		},
		{
			Kind:        types.EventPollActivated,
			PollID:      poll.ID,
			GroupID:     big.NewInt(7),
			TxHash:      common.Hash{'g'},
			BlockNumber: 101,
			LogIndex:    0,
		},
		{
			Kind:          types.EventVoteCast,
			PollID:        poll.ID,
			OptionIndex:   0,
			NullifierHash: big.NewInt(501),
			TxHash:        common.Hash{'v', 1},
			BlockNumber:   102,
			LogIndex:      0,
		},
		{
			Kind:          types.EventVoteCast,
			PollID:        poll.ID,
			OptionIndex:   1,
			NullifierHash: big.NewInt(502),
			TxHash:        common.Hash{'v', 2},
			BlockNumber:   102,
			LogIndex:      1,
		},
		{
			// Same nullifier replayed within the window.
			Kind:          types.EventVoteCast,
			PollID:        poll.ID,
			OptionIndex:   1,
			NullifierHash: big.NewInt(501),
			TxHash:        common.Hash{'v', 3},
			BlockNumber:   103,
			LogIndex:      0,
		},
	}

	summary, err := db.ApplyEventBatch(ctx, events, 110)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.CreationsStamped)
	assert.Equal(t, uint64(1), summary.ActivationsApplied)
	assert.Equal(t, uint64(2), summary.VotesApplied)
	assert.Equal(t, uint64(1), summary.Skipped)
	assert.Equal(t, uint64(5), summary.Total())

	cursor, err := db.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(110), cursor.LastProcessedBlock)

	retrieved, err := db.Poll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, types.PollStatusActive, retrieved.Status)
	require.NotNil(t, retrieved.CreationTxHash)
	assert.Equal(t, common.Hash{'c'}, *retrieved.CreationTxHash)
	require.NotNil(t, retrieved.ActivationTxHash)
	assert.Equal(t, common.Hash{'g'}, *retrieved.ActivationTxHash)
	assert.Equal(t, uint64(101), retrieved.ActivationBlock)
	assert.Equal(t, uint64(2), retrieved.VoteCount)

	counts, total, err := db.VoteCounts(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Equal(t, uint64(1), counts[0])
	assert.Equal(t, uint64(1), counts[1])
}

func TestStore_ApplyEventBatch_ReplayIsHarmless(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")

	poll := draftPoll('a', creator)
	require.NoError(t, db.SavePoll(ctx, poll))
	require.NoError(t, db.SetRoster(ctx, poll.ID, big.NewInt(7), []string{"11"}))

	events := []*types.ChainEvent{
		{Kind: types.EventPollActivated, PollID: poll.ID, GroupID: big.NewInt(7), TxHash: common.Hash{'g'}, BlockNumber: 101},
		{Kind: types.EventVoteCast, PollID: poll.ID, OptionIndex: 0, NullifierHash: big.NewInt(501), TxHash: common.Hash{'v'}, BlockNumber: 102},
	}
	_, err := db.ApplyEventBatch(ctx, events, 110)
	require.NoError(t, err)

	// The same window fetched again after a crash-and-restart.
	summary, err := db.ApplyEventBatch(ctx, events, 110)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), summary.ActivationsApplied)
	assert.Equal(t, uint64(0), summary.VotesApplied)
	assert.Equal(t, uint64(2), summary.Skipped)

	_, total, err := db.VoteCounts(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestStore_ApplyEventBatch_ParksUnknownCreation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	pollID := common.Hash{'z'}

	summary, err := db.ApplyEventBatch(ctx, []*types.ChainEvent{
		{Kind: types.EventPollCreated, PollID: pollID, Creator: creator, TxHash: common.Hash{'c'}, BlockNumber: 100},
	}, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.CreationsPending)

	pending, err := db.PendingCreator(ctx, pollID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, creator, pending.Creator)
	assert.Equal(t, common.Hash{'c'}, pending.TxHash)
}

func TestStore_ApplyEventBatch_SkipsUnhonorableEvents(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	summary, err := db.ApplyEventBatch(ctx, []*types.ChainEvent{
		{Kind: types.EventPollActivated, PollID: common.Hash{'m'}, GroupID: big.NewInt(7), BlockNumber: 100},
		{Kind: types.EventVoteCast, PollID: common.Hash{'m'}, NullifierHash: big.NewInt(501), BlockNumber: 101},
	}, 101)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.Skipped)
	assert.Equal(t, uint64(2), summary.Total())

	// The cursor still advances past a window of skips.
	cursor, err := db.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(101), cursor.LastProcessedBlock)
}

func TestStore_AcquireTailLease_SingleHolder(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	acquired, err := db.AcquireTailLease(ctx, "instance-a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, true, acquired)

	acquired, err = db.AcquireTailLease(ctx, "instance-b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, false, acquired, "Second instance should not take an unexpired lease")

	// The holder may re-sign its own lease.
	acquired, err = db.AcquireTailLease(ctx, "instance-a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, true, acquired)
}

func TestStore_AcquireTailLease_TakesOverExpired(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	acquired, err := db.AcquireTailLease(ctx, "instance-a", -time.Second)
	require.NoError(t, err)
	require.Equal(t, true, acquired)

	acquired, err = db.AcquireTailLease(ctx, "instance-b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, true, acquired, "Expired lease should be up for grabs")
}

func TestStore_RenewTailLease(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.ErrorIs(t, db.RenewTailLease(ctx, "instance-a", time.Minute), ErrLeaseLost)

	acquired, err := db.AcquireTailLease(ctx, "instance-a", time.Minute)
	require.NoError(t, err)
	require.Equal(t, true, acquired)

	require.NoError(t, db.RenewTailLease(ctx, "instance-a", time.Minute))
	require.ErrorIs(t, db.RenewTailLease(ctx, "instance-b", time.Minute), ErrLeaseLost)
}

func TestStore_ReleaseTailLease(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	acquired, err := db.AcquireTailLease(ctx, "instance-a", time.Minute)
	require.NoError(t, err)
	require.Equal(t, true, acquired)

	// Releasing someone else's lease is a no-op.
	require.NoError(t, db.ReleaseTailLease(ctx, "instance-b"))
	acquired, err = db.AcquireTailLease(ctx, "instance-b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, false, acquired)

	require.NoError(t, db.ReleaseTailLease(ctx, "instance-a"))
	acquired, err = db.AcquireTailLease(ctx, "instance-b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, true, acquired)
}
