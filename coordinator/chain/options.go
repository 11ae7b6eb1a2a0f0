package chain

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Option configures the gateway service.
type Option func(s *Service) error

// WithRPCEndpoint sets the chain RPC URL (http, ws or ipc).
func WithRPCEndpoint(endpoint string) Option {
	return func(s *Service) error {
		s.cfg.rpcEndpoint = endpoint
		return nil
	}
}

// WithChainID pins the expected chain id. A mismatching endpoint is refused
// at connect time; zero disables the check.
func WithChainID(id uint64) Option {
	return func(s *Service) error {
		s.cfg.chainID = id
		return nil
	}
}

// WithVotingContract sets the Voting contract address.
func WithVotingContract(addr common.Address) Option {
	return func(s *Service) error {
		s.cfg.votingAddr = addr
		return nil
	}
}

// WithMembershipContract sets the Membership Registry address.
func WithMembershipContract(addr common.Address) Option {
	return func(s *Service) error {
		s.cfg.registryAddr = addr
		return nil
	}
}

// WithSigningKey parses the hex-encoded service private key. Group creation
// and member enrollment transactions are signed with it.
func WithSigningKey(hexKey string) Option {
	return func(s *Service) error {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return errors.Wrap(err, "could not parse signing key")
		}
		s.cfg.signingKey = key
		return nil
	}
}

// WithMerkleTreeDuration makes group creation call the duration overload of
// createGroup. Zero keeps the registry default.
func WithMerkleTreeDuration(seconds uint64) Option {
	return func(s *Service) error {
		if seconds > 0 {
			s.cfg.merkleTreeDuration = new(big.Int).SetUint64(seconds)
		}
		return nil
	}
}

// WithRPCTimeout bounds individual read calls.
func WithRPCTimeout(d time.Duration) Option {
	return func(s *Service) error {
		s.cfg.rpcTimeout = d
		return nil
	}
}

// WithMiningTimeout bounds how long a write waits for inclusion.
func WithMiningTimeout(d time.Duration) Option {
	return func(s *Service) error {
		s.cfg.miningTimeout = d
		return nil
	}
}

// WithGroupInfoTTL sets how long merkle tree reads are served from cache.
func WithGroupInfoTTL(d time.Duration) Option {
	return func(s *Service) error {
		s.cfg.groupInfoTTL = d
		return nil
	}
}
