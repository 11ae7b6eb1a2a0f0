package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PollOption is one of the choices voters pick from. IDs are dense uint8
// indices starting at zero; the on-chain VoteCast event carries the same
// index.
type PollOption struct {
	ID    uint8  `json:"id"`
	Label string `json:"label"`
}

// Poll is the authoritative off-chain record of a poll. Options are frozen
// once the poll leaves DRAFT, the creator never changes, and the roster is
// written exactly once during activation.
type Poll struct {
	ID          common.Hash    `json:"pollId"`
	Creator     common.Address `json:"creator"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Options     []PollOption   `json:"options"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     time.Time      `json:"endTime"`
	Status      PollStatus     `json:"status"`

	// Chain linkage, populated during activation and by the chain tail.
	GroupID          *big.Int     `json:"groupId,omitempty"`
	CreationTxHash   *common.Hash `json:"creationTxHash,omitempty"`
	ActivationTxHash *common.Hash `json:"activationTxHash,omitempty"`
	ActivationBlock  uint64       `json:"activationBlock,omitempty"`

	// Roster holds the member identity commitments as decimal strings. Empty
	// until the membership group is built.
	Roster []string `json:"roster,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// VoteCount is recomputed from the vote index on every read path; any
	// value carried in the stored record is ignored.
	VoteCount uint64 `json:"voteCount"`
}

// EffectiveStatus derives the externally visible status at the given time.
// An ACTIVE poll whose voting window has closed reads as ENDED; a DRAFT never
// ends because it was never live.
func (p *Poll) EffectiveStatus(now time.Time) PollStatus {
	if p.Status == PollStatusActive && !now.Before(p.EndTime) {
		return PollStatusEnded
	}
	return p.Status
}

// OptionByID returns the option with the given index.
func (p *Poll) OptionByID(id uint8) (PollOption, bool) {
	for _, opt := range p.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return PollOption{}, false
}

// HasOptionIndex reports whether idx addresses a valid option.
func (p *Poll) HasOptionIndex(idx uint8) bool {
	return int(idx) < len(p.Options)
}

// DenseOptionIDs reports whether option IDs are exactly 0..n-1 in order.
func DenseOptionIDs(options []PollOption) bool {
	for i, opt := range options {
		if int(opt.ID) != i {
			return false
		}
	}
	return true
}
