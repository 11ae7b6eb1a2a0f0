package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TailCursor marks the highest block whose events have been fully applied.
// Windows are half-open on the left: the next fetch starts at
// LastProcessedBlock+1.
type TailCursor struct {
	LastProcessedBlock uint64    `json:"lastProcessedBlock"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TailLease is the cooperative single-instance lock for the chain tail. A
// tail may only run while it owns an unexpired lease.
type TailLease struct {
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PendingCreator binds a pollId to its on-chain creator when the PollCreated
// event arrives before the API draft exists. The binding is consumed when the
// draft is inserted.
type PendingCreator struct {
	PollID      common.Hash    `json:"pollId"`
	Creator     common.Address `json:"creator"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
}

// ChainEventKind discriminates the decoded voting contract events.
type ChainEventKind uint8

const (
	// EventPollCreated is emitted when a poll is anchored on chain.
	EventPollCreated ChainEventKind = iota
	// EventPollActivated is emitted when a poll's membership group is bound.
	EventPollActivated
	// EventVoteCast is emitted for every accepted anonymous ballot.
	EventVoteCast
)

func (k ChainEventKind) String() string {
	switch k {
	case EventPollCreated:
		return "PollCreated"
	case EventPollActivated:
		return "PollActivated"
	case EventVoteCast:
		return "VoteCast"
	default:
		return "Unknown"
	}
}

// ChainEvent is a decoded voting contract log in the neutral form the store
// applies. Only the fields matching Kind are populated.
type ChainEvent struct {
	Kind   ChainEventKind
	PollID common.Hash

	// PollCreated.
	Creator common.Address

	// PollActivated.
	GroupID *big.Int

	// VoteCast.
	OptionIndex   uint8
	NullifierHash *big.Int

	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
}
