// Package testing provides a canned chain gateway as needed by unit tests
// for the coordinator.
package testing

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/althof3/votara/coordinator/chain"
)

var _ = chain.Gateway(&Chain{})

// Chain defines a properly functioning mock for the chain gateway.
type Chain struct {
	Head        uint64
	HeadErr     error
	Logs        []gethTypes.Log
	FilterErr   error
	NextGroupID int64
	CreateErr   error
	EnrollErr   error
	TxHash      common.Hash
	Polls       map[common.Hash]*chain.OnChainPoll
	MerkleInfos map[string]*chain.MerkleInfo

	// Call records, for asserting what the service under test asked for.
	HeadCalls      int
	CreatedGroups  []*big.Int
	AddedMembers   map[string][]*big.Int
	FilteredRanges [][2]uint64
}

// NewChain creates a new mock gateway with no canned state.
func NewChain() *Chain {
	return &Chain{
		NextGroupID:  1,
		TxHash:       common.HexToHash("0xaa11"),
		Polls:        make(map[common.Hash]*chain.OnChainPoll),
		MerkleInfos:  make(map[string]*chain.MerkleInfo),
		AddedMembers: make(map[string][]*big.Int),
	}
}

// BlockNumber --
func (m *Chain) BlockNumber(_ context.Context) (uint64, error) {
	m.HeadCalls++
	if m.HeadErr != nil {
		return 0, m.HeadErr
	}
	return m.Head, nil
}

// FilterVotingLogs --
func (m *Chain) FilterVotingLogs(_ context.Context, from, to uint64) ([]gethTypes.Log, error) {
	m.FilteredRanges = append(m.FilteredRanges, [2]uint64{from, to})
	if m.FilterErr != nil {
		return nil, m.FilterErr
	}
	var out []gethTypes.Log
	for _, l := range m.Logs {
		if l.BlockNumber >= from && l.BlockNumber <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

// CreateGroup --
func (m *Chain) CreateGroup(_ context.Context) (*big.Int, common.Hash, error) {
	if m.CreateErr != nil {
		return nil, common.Hash{}, m.CreateErr
	}
	id := big.NewInt(m.NextGroupID)
	m.NextGroupID++
	m.CreatedGroups = append(m.CreatedGroups, id)
	return id, m.TxHash, nil
}

// AddMembers --
func (m *Chain) AddMembers(_ context.Context, groupID *big.Int, commitments []*big.Int) (common.Hash, error) {
	if m.EnrollErr != nil {
		return common.Hash{}, m.EnrollErr
	}
	if len(commitments) == 0 {
		return common.Hash{}, fmt.Errorf("no commitments to enroll in group %s", groupID)
	}
	k := groupID.String()
	m.AddedMembers[k] = append(m.AddedMembers[k], commitments...)
	return m.TxHash, nil
}

// PollOnChain --
func (m *Chain) PollOnChain(_ context.Context, pollID common.Hash) (*chain.OnChainPoll, error) {
	if p, ok := m.Polls[pollID]; ok {
		return p, nil
	}
	return &chain.OnChainPoll{}, nil
}

// GroupMerkleInfo --
func (m *Chain) GroupMerkleInfo(_ context.Context, groupID *big.Int) (*chain.MerkleInfo, error) {
	info, ok := m.MerkleInfos[groupID.String()]
	if !ok {
		return nil, fmt.Errorf("no merkle info for group %s", groupID)
	}
	return info, nil
}

// InsertLog adds a canned voting log to the mock's event history.
func (m *Chain) InsertLog(l gethTypes.Log) *Chain {
	m.Logs = append(m.Logs, l)
	return m
}
