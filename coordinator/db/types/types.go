// Package types includes database-related types shared between the store
// implementation, its interface and its callers.
package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/althof3/votara/coordinator/types"
)

// ActivationOutcome reports what applying a PollActivated event did to the
// stored poll. Everything except ActivationApplied leaves the record
// untouched, so replaying the same event is safe.
type ActivationOutcome uint8

const (
	// ActivationApplied flipped the poll from DRAFT to ACTIVE.
	ActivationApplied ActivationOutcome = iota
	// ActivationAlreadyActive means the poll was activated earlier.
	ActivationAlreadyActive
	// ActivationMissingRoster means no membership roster is attached yet, so
	// the event cannot be honored.
	ActivationMissingRoster
	// ActivationNotFound means no poll record exists for the event's pollId.
	ActivationNotFound
)

// String returns the name of the activation outcome.
func (o ActivationOutcome) String() string {
	names := [...]string{
		"Applied",
		"AlreadyActive",
		"MissingRoster",
		"NotFound",
	}
	if int(o) >= len(names) {
		return "Unknown"
	}
	return names[o]
}

// VoteOutcome reports what applying a VoteCast event did. Only VoteApplied
// changes state; the rest are skips and replays of them stay skips.
type VoteOutcome uint8

const (
	// VoteApplied recorded a new ballot.
	VoteApplied VoteOutcome = iota
	// VoteDuplicate means the nullifier hash was already spent.
	VoteDuplicate
	// VoteBadOption means the option index is outside the poll's options.
	VoteBadOption
	// VotePollUnknown means no poll record exists for the event's pollId.
	VotePollUnknown
)

// String returns the name of the vote outcome.
func (o VoteOutcome) String() string {
	names := [...]string{
		"Applied",
		"Duplicate",
		"BadOption",
		"PollUnknown",
	}
	if int(o) >= len(names) {
		return "Unknown"
	}
	return names[o]
}

// PollFilter narrows and pages ListPolls. Nil pointer fields match
// everything. Status is matched against the effective (end-time aware)
// status. Page starts at 1; Limit of zero returns all matches.
type PollFilter struct {
	Status  *types.PollStatus
	Creator *common.Address
	Page    uint64
	Limit   uint64
}

// PollMetadataUpdate carries the mutable draft fields of a poll. Nil fields
// are left unchanged; Options replaces the whole option set when non-nil.
type PollMetadataUpdate struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Options     []types.PollOption
}

// BatchSummary tallies what one atomically applied event batch changed.
type BatchSummary struct {
	// CreationsStamped counts PollCreated events matched to an existing poll.
	CreationsStamped uint64
	// CreationsPending counts PollCreated events parked for a future draft.
	CreationsPending uint64
	// ActivationsApplied counts DRAFT to ACTIVE transitions.
	ActivationsApplied uint64
	// VotesApplied counts newly recorded ballots.
	VotesApplied uint64
	// Skipped counts events that were replays or could not be honored.
	Skipped uint64
}

// Total returns the number of events the batch examined.
func (s *BatchSummary) Total() uint64 {
	return s.CreationsStamped + s.CreationsPending + s.ActivationsApplied + s.VotesApplied + s.Skipped
}
