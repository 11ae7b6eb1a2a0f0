package kv

// The schema defines how poll state is laid out across BoltDB buckets.
// Primary records are JSON-encoded and keyed by their natural identifier:
// pollId bytes for polls, the 32-byte big-endian nullifier hash for votes
// and the raw address bytes for users. Index buckets hold composite keys
// (attribute bytes followed by the primary key) with small or empty values,
// so filtered lookups become prefix scans.
var (
	pollsBucket           = []byte("polls")
	votesBucket           = []byte("votes")
	usersBucket           = []byte("users")
	pendingCreatorsBucket = []byte("pending-creators")

	// Index buckets.
	pollStatusIndexBucket  = []byte("poll-status-index")
	pollCreatorIndexBucket = []byte("poll-creator-index")
	votePollIndexBucket    = []byte("vote-poll-index")

	// Tail bookkeeping, all under one bucket.
	chainMetadataBucket      = []byte("chain-metadata")
	tailCursorKey            = []byte("tail-cursor")
	tailLeaseKey             = []byte("tail-lease")
	votingContractAddressKey = []byte("voting-contract-address")
)
