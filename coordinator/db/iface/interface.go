// Package iface exists to prevent circular imports when implementing the
// database interface.
package iface

import (
	"context"
	"io"
	"math/big"
	"time"

	dbtypes "github.com/althof3/votara/coordinator/db/types"
	"github.com/althof3/votara/coordinator/types"
	"github.com/ethereum/go-ethereum/common"
)

// ReadOnlyDatabase represents a read only database with functions that do not modify the DB.
type ReadOnlyDatabase interface {
	// Poll related methods.
	Poll(ctx context.Context, pollID common.Hash) (*types.Poll, error)
	ListPolls(ctx context.Context, f *dbtypes.PollFilter) ([]*types.Poll, uint64, error)

	// Vote related methods.
	VoteCounts(ctx context.Context, pollID common.Hash) (map[uint8]uint64, uint64, error)
	HasVote(ctx context.Context, nullifier *big.Int) bool

	// User related methods.
	User(ctx context.Context, address common.Address) (*types.User, error)

	// Chain tail related methods.
	TailCursor(ctx context.Context) (*types.TailCursor, error)
	PendingCreator(ctx context.Context, pollID common.Hash) (*types.PendingCreator, error)
	VotingContractAddress(ctx context.Context) ([]byte, error)
}

// WriteAccessDatabase represents a write access database with only functions that can modify the DB.
type WriteAccessDatabase interface {
	// Poll related methods.
	SavePoll(ctx context.Context, poll *types.Poll) error
	UpdatePollMetadata(ctx context.Context, pollID common.Hash, actor common.Address, upd *dbtypes.PollMetadataUpdate) error
	SetRoster(ctx context.Context, pollID common.Hash, groupID *big.Int, commitments []string) error
	ApplyActivation(ctx context.Context, pollID common.Hash, groupID *big.Int, txHash common.Hash, blockNumber uint64) (dbtypes.ActivationOutcome, error)

	// Vote related methods.
	SaveVote(ctx context.Context, vote *types.Vote) (dbtypes.VoteOutcome, error)

	// User related methods.
	SaveUser(ctx context.Context, user *types.User) error

	// Chain tail related methods.
	SaveTailCursor(ctx context.Context, block uint64) error
	ApplyEventBatch(ctx context.Context, events []*types.ChainEvent, newCursor uint64) (*dbtypes.BatchSummary, error)
	SavePendingCreator(ctx context.Context, pc *types.PendingCreator) error
	SaveVotingContractAddress(ctx context.Context, addr common.Address) error
	AcquireTailLease(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	RenewTailLease(ctx context.Context, owner string, ttl time.Duration) error
	ReleaseTailLease(ctx context.Context, owner string) error
}

// FullAccessDatabase represents a full access database with only DB interaction functions.
type FullAccessDatabase interface {
	ReadOnlyDatabase
	WriteAccessDatabase
}

// Database represents a full access database with the proper DB helper functions.
type Database interface {
	io.Closer
	FullAccessDatabase

	DatabasePath() string
	ClearDB() error
	Backup(ctx context.Context, outputDir string, permissionOverride bool) error
}
