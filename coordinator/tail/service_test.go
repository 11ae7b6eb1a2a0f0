package tail

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	chaintest "github.com/althof3/votara/coordinator/chain/testing"
	"github.com/althof3/votara/coordinator/db"
	dbtest "github.com/althof3/votara/coordinator/db/testing"
	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
)

func newTestService(t *testing.T, d db.Database, c *chaintest.Chain, opts ...Option) *Service {
	all := append([]Option{WithDatabase(d), WithChainReader(c)}, opts...)
	s, err := New(context.Background(), all...)
	require.NoError(t, err)
	t.Cleanup(s.cancel)
	return s
}

// insertReadyPoll stores a draft with a bound roster, the state a poll is in
// right before its on-chain activation lands.
func insertReadyPoll(t *testing.T, d db.Database, id common.Hash, creator common.Address) {
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, d.SavePoll(ctx, &types.Poll{
		ID:          id,
		Creator:     creator,
		Title:       "Protocol upgrade",
		Description: "Adopt the new parameters",
		Options: []types.PollOption{
			{ID: 0, Label: "Approve"},
			{ID: 1, Label: "Reject"},
		},
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		Status:    types.PollStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, d.SetRoster(ctx, id, big.NewInt(7), []string{"11", "22"}))
}

func TestService_ProcessWindow_AppliesConfirmedEvents(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	pollID := common.Hash{'p'}
	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	nullifier := big.NewInt(987654321)

	insertReadyPoll(t, d, pollID, creator)
	mock.Head = 105
	mock.InsertLog(pollCreatedLog(t, pollID, creator, 100, 0)).
		InsertLog(pollActivatedLog(t, pollID, big.NewInt(7), 100, 1)).
		InsertLog(voteCastLog(t, pollID, 1, nullifier, 101, 0))

	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(1), WithMaxWindow(2000))
	res, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passIdle, res)

	// One fetch covering deployment block through head minus confirmations.
	require.Equal(t, 1, len(mock.FilteredRanges))
	assert.DeepEqual(t, [2]uint64{100, 104}, mock.FilteredRanges[0])

	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(104), cursor.LastProcessedBlock)

	poll, err := d.Poll(ctx, pollID)
	require.NoError(t, err)
	require.NotNil(t, poll)
	assert.Equal(t, types.PollStatusActive, poll.Status)
	require.NotNil(t, poll.CreationTxHash)
	require.NotNil(t, poll.ActivationTxHash)
	assert.Equal(t, uint64(100), poll.ActivationBlock)

	counts, total, err := d.VoteCounts(ctx, pollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, uint64(1), counts[1])
	assert.Equal(t, true, d.HasVote(ctx, nullifier))
}

func TestService_ProcessWindow_HonorsWindowCap(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	mock.Head = 500

	s := newTestService(t, d, mock, WithDeploymentBlock(1), WithConfirmations(0), WithMaxWindow(100))

	res, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passAdvanced, res)
	res, err = s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passAdvanced, res)

	require.Equal(t, 2, len(mock.FilteredRanges))
	assert.DeepEqual(t, [2]uint64{1, 100}, mock.FilteredRanges[0])
	assert.DeepEqual(t, [2]uint64{101, 200}, mock.FilteredRanges[1])

	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(200), cursor.LastProcessedBlock)
}

func TestService_ProcessWindow_RetriesWithoutMovingCursor(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	s := newTestService(t, d, mock, WithDeploymentBlock(1), WithConfirmations(0))

	mock.HeadErr = errors.New("connection refused")
	res, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passRetry, res)

	mock.HeadErr = nil
	mock.Head = 50
	mock.FilterErr = errors.New("rate limited")
	res, err = s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passRetry, res)

	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.Equal(t, true, cursor == nil)
}

func TestService_ProcessWindow_IdleAtFollowDistance(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(1))

	// The head has not reached the confirmation depth yet.
	mock.Head = 0
	res, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passIdle, res)
	assert.Equal(t, 0, len(mock.FilteredRanges))

	// Catch up to the follow block, then confirm the next pass fetches
	// nothing new.
	mock.Head = 120
	res, err = s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passIdle, res)
	require.Equal(t, 1, len(mock.FilteredRanges))
	assert.DeepEqual(t, [2]uint64{100, 119}, mock.FilteredRanges[0])

	res, err = s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passIdle, res)
	assert.Equal(t, 1, len(mock.FilteredRanges))
}

func TestService_ProcessWindow_ReplayLeavesStateUntouched(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	pollID := common.Hash{'p'}
	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	nullifier := big.NewInt(555)

	insertReadyPoll(t, d, pollID, creator)

	// Apply the events once, holding the cursor just before their blocks so
	// the tail refetches the same window, as it would after a crash.
	decoder, err := newEventDecoder()
	require.NoError(t, err)
	ev1, err := decoder.decode(pollCreatedLog(t, pollID, creator, 100, 0))
	require.NoError(t, err)
	ev2, err := decoder.decode(pollActivatedLog(t, pollID, big.NewInt(7), 100, 1))
	require.NoError(t, err)
	ev3, err := decoder.decode(voteCastLog(t, pollID, 1, nullifier, 101, 0))
	require.NoError(t, err)
	_, err = d.ApplyEventBatch(ctx, []*types.ChainEvent{ev1, ev2, ev3}, 99)
	require.NoError(t, err)

	mock.Head = 101
	mock.InsertLog(pollCreatedLog(t, pollID, creator, 100, 0)).
		InsertLog(pollActivatedLog(t, pollID, big.NewInt(7), 100, 1)).
		InsertLog(voteCastLog(t, pollID, 1, nullifier, 101, 0))

	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(0))
	res, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passIdle, res)

	poll, err := d.Poll(ctx, pollID)
	require.NoError(t, err)
	require.NotNil(t, poll)
	assert.Equal(t, types.PollStatusActive, poll.Status)
	counts, total, err := d.VoteCounts(ctx, pollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, uint64(1), counts[1])

	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(101), cursor.LastProcessedBlock)
}

func TestService_ProcessWindow_CacheDropsReplayedVote(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	pollID := common.Hash{'p'}
	creator := common.HexToAddress("0x1111111111111111111111111111111111111111")
	nullifier := big.NewInt(777)

	insertReadyPoll(t, d, pollID, creator)
	mock.Head = 101
	mock.InsertLog(pollActivatedLog(t, pollID, big.NewInt(7), 100, 0)).
		InsertLog(voteCastLog(t, pollID, 0, nullifier, 101, 0))

	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(0))
	_, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, s.seen.Contains(nullifier.String()))

	// The same nullifier surfaces again in a later block. The cache drops it
	// before it costs a store transaction.
	mock.Head = 102
	mock.InsertLog(voteCastLog(t, pollID, 0, nullifier, 102, 0))
	_, err = s.processWindow(ctx)
	require.NoError(t, err)

	_, total, err := d.VoteCounts(ctx, pollID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(102), cursor.LastProcessedBlock)
}

func TestService_ProcessWindow_ParksUnknownCreator(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	pollID := common.Hash{'u'}
	creator := common.HexToAddress("0x3333333333333333333333333333333333333333")

	mock.Head = 100
	mock.InsertLog(pollCreatedLog(t, pollID, creator, 100, 0))

	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(0))
	_, err := s.processWindow(ctx)
	require.NoError(t, err)

	pending, err := d.PendingCreator(ctx, pollID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, creator, pending.Creator)
	assert.Equal(t, uint64(100), pending.BlockNumber)
}

func TestService_ProcessWindow_SkipsVoteForUnknownPoll(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	nullifier := big.NewInt(42)

	mock.Head = 100
	mock.InsertLog(voteCastLog(t, common.Hash{'g', 'h', 'o', 's', 't'}, 0, nullifier, 100, 0))

	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(0))
	res, err := s.processWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, passIdle, res)

	assert.Equal(t, false, d.HasVote(ctx, nullifier))
	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, uint64(100), cursor.LastProcessedBlock)
}

func TestService_ProcessWindow_HaltsOnUndecodableLog(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()

	// A VoteCast topic with a truncated data segment cannot be unpacked.
	bad := voteCastLog(t, common.Hash{'p'}, 0, big.NewInt(1), 100, 0)
	bad.Data = bad.Data[:8]
	mock.Head = 100
	mock.InsertLog(bad)

	s := newTestService(t, d, mock, WithDeploymentBlock(100), WithConfirmations(0))
	_, err := s.processWindow(ctx)
	require.ErrorContains(t, "could not decode log", err)

	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.Equal(t, true, cursor == nil)
}

func TestService_Lead_YieldsWhenLeaseLost(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()

	held, err := d.AcquireTailLease(ctx, "rival", time.Hour)
	require.NoError(t, err)
	require.Equal(t, true, held)

	s := newTestService(t, d, mock, WithLeaseTTL(time.Hour))
	assert.Equal(t, true, s.lead())
	assert.Equal(t, 0, len(mock.FilteredRanges))
}

func TestService_RunStandsByBehindForeignLease(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	mock.Head = 100

	held, err := d.AcquireTailLease(ctx, "rival", time.Hour)
	require.NoError(t, err)
	require.Equal(t, true, held)

	s := newTestService(t, d, mock,
		WithDeploymentBlock(1),
		WithConfirmations(0),
		WithLeaseTTL(10*time.Millisecond),
		WithPollInterval(10*time.Millisecond),
	)
	s.Start()
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Stop())

	assert.Equal(t, 0, len(mock.FilteredRanges))
	assert.NoError(t, s.Status())
	cursor, err := d.TailCursor(ctx)
	require.NoError(t, err)
	require.Equal(t, true, cursor == nil)
}

func TestService_RunKeepsRetryingUnderCappedBackoff(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	mock.HeadErr = errors.New("connection refused")

	s := newTestService(t, d, mock,
		WithDeploymentBlock(1),
		WithConfirmations(0),
		WithBackoffCeiling(5*time.Millisecond),
		WithLeaseTTL(time.Hour),
	)
	s.Start()
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, s.Stop())

	// The ceiling caps every retry delay, including the first, so a short
	// run fits several attempts. RPC failures never halt the tail.
	assert.Equal(t, true, mock.HeadCalls >= 3)
	assert.NoError(t, s.Status())
	assert.Equal(t, 0, len(mock.FilteredRanges))
}

func TestService_Status_GoroutineCeiling(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()

	s := newTestService(t, d, mock, WithMaxGoroutines(1))
	require.ErrorContains(t, "too many goroutines", s.Status())
}

func TestService_StopReleasesLease(t *testing.T) {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	ctx := context.Background()
	mock.Head = 0

	s := newTestService(t, d, mock,
		WithDeploymentBlock(1),
		WithConfirmations(0),
		WithLeaseTTL(time.Hour),
		WithPollInterval(5*time.Millisecond),
	)
	s.Start()
	time.Sleep(50 * time.Millisecond)

	held, err := d.AcquireTailLease(ctx, "probe", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, false, held)

	require.NoError(t, s.Stop())

	held, err = d.AcquireTailLease(ctx, "probe", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, true, held)
}
