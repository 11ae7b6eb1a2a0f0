package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// BlockNumber returns the head block of the connected chain.
func (s *Service) BlockNumber(ctx context.Context) (uint64, error) {
	eth, _, _, err := s.backend()
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.rpcTimeout)
	defer cancel()

	start := time.Now()
	head, err := eth.BlockNumber(ctx)
	rpcLatency.WithLabelValues("eth_blockNumber").Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		rpcErrorCount.WithLabelValues("eth_blockNumber").Inc()
		return 0, errors.Wrap(err, "could not fetch head block")
	}
	return head, nil
}

// FilterVotingLogs fetches all PollCreated, PollActivated and VoteCast logs
// emitted by the Voting contract in the inclusive block range [from, to],
// in one eth_getLogs query.
func (s *Service) FilterVotingLogs(ctx context.Context, from, to uint64) ([]gethTypes.Log, error) {
	eth, _, _, err := s.backend()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.rpcTimeout)
	defer cancel()

	query := ethereum.FilterQuery{
		Addresses: []common.Address{s.cfg.votingAddr},
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Topics:    [][]common.Hash{s.votingTopics},
	}
	start := time.Now()
	logs, err := eth.FilterLogs(ctx, query)
	rpcLatency.WithLabelValues("eth_getLogs").Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		rpcErrorCount.WithLabelValues("eth_getLogs").Inc()
		return nil, errors.Wrapf(err, "could not filter voting logs in range [%d, %d]", from, to)
	}
	return logs, nil
}

// PollOnChain reads the Voting contract's record of a poll together with
// its tallies. A poll unknown to the contract returns Exists == false.
func (s *Service) PollOnChain(ctx context.Context, pollID common.Hash) (*OnChainPoll, error) {
	_, voting, _, err := s.backend()
	if err != nil {
		return nil, err
	}
	opts, cancel := s.callOpts(ctx)
	defer cancel()

	record, err := voting.GetPoll(opts, pollID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read poll")
	}
	if !record.Exists {
		return &OnChainPoll{}, nil
	}
	counts, err := voting.GetVoteCounts(opts, pollID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read vote counts")
	}
	total, err := voting.GetTotalVotes(opts, pollID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read total votes")
	}
	return &OnChainPoll{
		Exists:      true,
		Creator:     record.Creator,
		GroupID:     record.GroupId,
		OptionCount: record.OptionCount,
		VoteCounts:  counts,
		TotalVotes:  total,
	}, nil
}

// GroupMerkleInfo reads the registry's merkle tree state for a group. Reads
// are cached for the configured TTL; group trees only change when the
// coordinator itself enrolls members, which invalidates the entry.
func (s *Service) GroupMerkleInfo(ctx context.Context, groupID *big.Int) (*MerkleInfo, error) {
	key := groupID.String()
	if cached, ok := s.groupInfoCache.Get(key); ok {
		if info, ok := cached.(*MerkleInfo); ok {
			return info, nil
		}
	}
	_, _, registry, err := s.backend()
	if err != nil {
		return nil, err
	}
	opts, cancel := s.callOpts(ctx)
	defer cancel()

	root, err := registry.GetMerkleTreeRoot(opts, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read merkle tree root")
	}
	depth, err := registry.GetMerkleTreeDepth(opts, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read merkle tree depth")
	}
	size, err := registry.GetMerkleTreeSize(opts, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read merkle tree size")
	}
	info := &MerkleInfo{Root: root, Depth: depth, Size: size}
	s.groupInfoCache.Set(key, info, cache.DefaultExpiration)
	return info, nil
}
