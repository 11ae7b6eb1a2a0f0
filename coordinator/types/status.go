// Package types defines the records the coordinator persists and serves:
// polls, votes, users, and the chain tail bookkeeping around them.
package types

import (
	"github.com/pkg/errors"
)

// PollStatus tracks a poll through its lifecycle. The only legal transitions
// are DRAFT -> ACTIVE -> ENDED; a status never moves backwards.
type PollStatus uint8

const (
	// PollStatusDraft is the initial state: editable metadata, no group, no votes.
	PollStatusDraft PollStatus = iota
	// PollStatusActive means the on-chain group exists and voting is open.
	PollStatusActive
	// PollStatusEnded means the voting window has closed. The state is derived
	// from the end time rather than persisted.
	PollStatusEnded
)

var statusNames = map[PollStatus]string{
	PollStatusDraft:  "DRAFT",
	PollStatusActive: "ACTIVE",
	PollStatusEnded:  "ENDED",
}

// ErrUnknownStatus is returned when parsing an unrecognized status string.
var ErrUnknownStatus = errors.New("unknown poll status")

func (s PollStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParsePollStatus converts the wire representation back to a status.
func ParsePollStatus(s string) (PollStatus, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, errors.Wrap(ErrUnknownStatus, s)
}

// MarshalJSON encodes the status as its string name.
func (s PollStatus) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStatus, "%d", uint8(s))
	}
	return []byte(`"` + name + `"`), nil
}

// UnmarshalJSON decodes a status from its string name.
func (s *PollStatus) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.Wrap(ErrUnknownStatus, string(b))
	}
	parsed, err := ParsePollStatus(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// step of the lifecycle.
func (s PollStatus) CanTransitionTo(next PollStatus) bool {
	switch s {
	case PollStatusDraft:
		return next == PollStatusActive
	case PollStatusActive:
		return next == PollStatusEnded
	default:
		return false
	}
}
