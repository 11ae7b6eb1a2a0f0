package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Vote is the off-chain projection of one VoteCast event. The nullifier hash
// is globally unique across all polls; it is stored as a decimal string of
// the on-chain uint256.
type Vote struct {
	PollID        common.Hash `json:"pollId"`
	OptionIndex   uint8       `json:"optionIndex"`
	NullifierHash string      `json:"nullifierHash"`
	TxHash        common.Hash `json:"txHash"`
	BlockNumber   uint64      `json:"blockNumber"`
	LogIndex      uint        `json:"logIndex"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// User records a wallet that has authenticated against the coordinator.
// Addresses are stored lowercased, so one wallet maps to exactly one row.
type User struct {
	Address      common.Address `json:"address"`
	ChainID      uint64         `json:"chainId"`
	FirstLoginAt time.Time      `json:"firstLoginAt"`
	LastLoginAt  time.Time      `json:"lastLoginAt"`
	LoginCount   uint64         `json:"loginCount"`
}
