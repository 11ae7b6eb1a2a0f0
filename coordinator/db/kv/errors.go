package kv

import "github.com/pkg/errors"

// Sentinel errors returned by store mutations. Callers map these onto the
// API error taxonomy, so their identity matters more than their text.
var (
	// ErrNotFound is returned when no record exists for the given key.
	ErrNotFound = errors.New("not found in database")
	// ErrAlreadyExists is returned when inserting over an existing record.
	ErrAlreadyExists = errors.New("already exists in database")
	// ErrWrongStatus is returned for mutations that require a DRAFT poll.
	ErrWrongStatus = errors.New("poll is not in draft status")
	// ErrNotCreator is returned when the acting address does not own the poll.
	ErrNotCreator = errors.New("caller is not the poll creator")
	// ErrRosterSet is returned when a membership roster was already attached.
	ErrRosterSet = errors.New("poll roster has already been attached")
	// ErrLeaseLost is returned when renewing a tail lease owned by another
	// instance.
	ErrLeaseLost = errors.New("tail lease is held by another instance")
)
