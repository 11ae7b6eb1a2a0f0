// Package chain implements the coordinator's gateway to the voting chain:
// a managed RPC connection, read access to the Voting contract, and the
// membership group lifecycle writes signed with the service key.
package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	gethRPC "github.com/ethereum/go-ethereum/rpc"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/althof3/votara/async"
	membershipregistry "github.com/althof3/votara/contracts/membership-registry"
	votingcontract "github.com/althof3/votara/contracts/voting-contract"
	"github.com/althof3/votara/io/logs"
)

var log = logrus.WithField("prefix", "chain")

// Reader is the gateway surface the chain tail consumes.
type Reader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterVotingLogs(ctx context.Context, from, to uint64) ([]gethTypes.Log, error)
}

// Writer is the gateway surface behind the group lifecycle: both writes are
// signed with the service key and block until the transaction is mined.
type Writer interface {
	CreateGroup(ctx context.Context) (*big.Int, common.Hash, error)
	AddMembers(ctx context.Context, groupID *big.Int, commitments []*big.Int) (common.Hash, error)
}

// InfoFetcher is the gateway surface behind the read-only API handlers.
type InfoFetcher interface {
	PollOnChain(ctx context.Context, pollID common.Hash) (*OnChainPoll, error)
	GroupMerkleInfo(ctx context.Context, groupID *big.Int) (*MerkleInfo, error)
}

// Gateway bundles every consumer-facing surface of the service.
type Gateway interface {
	Reader
	Writer
	InfoFetcher
}

// OnChainPoll is the Voting contract's view of one poll.
type OnChainPoll struct {
	Exists      bool
	Creator     common.Address
	GroupID     *big.Int
	OptionCount uint8
	VoteCounts  []*big.Int
	TotalVotes  *big.Int
}

// MerkleInfo is the registry's current view of one membership tree.
type MerkleInfo struct {
	Root  *big.Int
	Depth *big.Int
	Size  *big.Int
}

type config struct {
	rpcEndpoint        string
	chainID            uint64
	votingAddr         common.Address
	registryAddr       common.Address
	signingKey         *ecdsa.PrivateKey
	merkleTreeDuration *big.Int
	rpcTimeout         time.Duration
	miningTimeout      time.Duration
	groupInfoTTL       time.Duration
	dialInterval       time.Duration
}

// Service maintains the RPC connection and the contract bindings. All writes
// go through one keyed transactor guarded by a mutex, so transactions from
// the single service key are submitted with strictly increasing nonces.
type Service struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config

	mu        sync.RWMutex
	rpcClient *gethRPC.Client
	eth       *ethclient.Client
	voting    *votingcontract.Voting
	registry  *membershipregistry.Registry
	connected bool
	runError  error

	txLock sync.Mutex
	txOpts *bind.TransactOpts

	votingTopics    []common.Hash
	errorBySelector map[[4]byte]string

	groupInfoCache *cache.Cache
}

// New constructs the gateway. The RPC connection is established by Start;
// until then every call reports ErrNotConnected.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg: &config{
			rpcTimeout:    10 * time.Second,
			miningTimeout: 2 * time.Minute,
			groupInfoTTL:  30 * time.Second,
			dialInterval:  5 * time.Second,
		},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			cancel()
			return nil, err
		}
	}
	if s.cfg.rpcEndpoint == "" {
		cancel()
		return nil, errors.New("chain gateway requires an RPC endpoint")
	}
	if s.cfg.signingKey == nil {
		cancel()
		return nil, errors.New("chain gateway requires a signing key")
	}

	votingABI, err := votingcontract.VotingMetaData.GetAbi()
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "could not parse voting contract ABI")
	}
	for _, name := range []string{"PollCreated", "PollActivated", "VoteCast"} {
		s.votingTopics = append(s.votingTopics, votingABI.Events[name].ID)
	}
	registryABI, err := membershipregistry.RegistryMetaData.GetAbi()
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "could not parse membership registry ABI")
	}
	s.errorBySelector = selectorIndex(registryABI.Errors)

	s.groupInfoCache = cache.New(s.cfg.groupInfoTTL, 2*s.cfg.groupInfoTTL)
	return s, nil
}

// Start dials the RPC endpoint in the background, retrying until it
// succeeds or the service is stopped, then keeps the connection under a
// periodic liveness probe.
func (s *Service) Start() {
	log.WithField("endpoint", logs.MaskCredentialsLogging(s.cfg.rpcEndpoint)).Info("Connecting to chain RPC")
	go func() {
		s.connectLoop()
		async.RunEvery(s.ctx, livenessInterval, s.checkConnection)
	}()
}

// Stop tears down the RPC connection.
func (s *Service) Stop() error {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rpcClient != nil {
		s.rpcClient.Close()
	}
	s.connected = false
	connectedGauge.Set(0)
	return nil
}

// Status reports nil once a connection is established.
func (s *Service) Status() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.runError != nil {
		return s.runError
	}
	if !s.connected {
		return ErrNotConnected
	}
	return nil
}

// SigningAddress returns the address of the service key, the admin of every
// group the coordinator creates.
func (s *Service) SigningAddress() common.Address {
	return crypto.PubkeyToAddress(s.cfg.signingKey.PublicKey)
}

func (s *Service) connectLoop() {
	interval := s.cfg.dialInterval
	for {
		err := s.connect()
		if err == nil {
			return
		}
		log.WithError(err).Errorf("Could not connect to chain RPC, retrying in %v", interval)
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(interval):
		}
		if interval < maxDialInterval {
			interval *= 2
			if interval > maxDialInterval {
				interval = maxDialInterval
			}
		}
	}
}

const maxDialInterval = time.Minute

// livenessInterval is how often the established connection is probed with a
// head read.
const livenessInterval = 30 * time.Second

// checkConnection probes the endpoint and redials when the probe fails.
// Reads and writes fail fast with ErrNotConnected while the redial is in
// flight.
func (s *Service) checkConnection() {
	_, err := s.BlockNumber(s.ctx)
	if err == nil || errors.Is(err, ErrNotConnected) {
		return
	}
	if s.ctx.Err() != nil {
		return
	}
	log.WithError(err).Error("Chain RPC connection lost, redialing")
	s.mu.Lock()
	if s.rpcClient != nil {
		s.rpcClient.Close()
	}
	s.connected = false
	s.mu.Unlock()
	connectedGauge.Set(0)
	go s.connectLoop()
}

func (s *Service) connect() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.rpcTimeout)
	defer cancel()

	rpcClient, err := gethRPC.DialContext(ctx, s.cfg.rpcEndpoint)
	if err != nil {
		return errors.Wrap(err, "could not dial RPC endpoint")
	}
	eth := ethclient.NewClient(rpcClient)

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		return errors.Wrap(err, "could not read chain id")
	}
	if s.cfg.chainID != 0 && chainID.Uint64() != s.cfg.chainID {
		rpcClient.Close()
		err := errors.Errorf("endpoint serves chain id %d, expected %d", chainID.Uint64(), s.cfg.chainID)
		s.mu.Lock()
		s.runError = err
		s.mu.Unlock()
		return err
	}

	voting, err := votingcontract.NewVoting(s.cfg.votingAddr, eth)
	if err != nil {
		rpcClient.Close()
		return errors.Wrap(err, "could not bind voting contract")
	}
	registry, err := membershipregistry.NewRegistry(s.cfg.registryAddr, eth)
	if err != nil {
		rpcClient.Close()
		return errors.Wrap(err, "could not bind membership registry")
	}
	txOpts, err := bind.NewKeyedTransactorWithChainID(s.cfg.signingKey, chainID)
	if err != nil {
		rpcClient.Close()
		return errors.Wrap(err, "could not build transactor")
	}

	s.mu.Lock()
	s.rpcClient = rpcClient
	s.eth = eth
	s.voting = voting
	s.registry = registry
	s.txOpts = txOpts
	s.connected = true
	s.runError = nil
	s.mu.Unlock()

	connectedGauge.Set(1)
	log.WithFields(logrus.Fields{
		"chainId": chainID.Uint64(),
		"signer":  s.SigningAddress().Hex(),
	}).Info("Connected to chain RPC")
	return nil
}

// backend returns the live client handles, or ErrNotConnected.
func (s *Service) backend() (*ethclient.Client, *votingcontract.Voting, *membershipregistry.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected {
		return nil, nil, nil, ErrNotConnected
	}
	return s.eth, s.voting, s.registry, nil
}

func (s *Service) callOpts(ctx context.Context) (*bind.CallOpts, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.rpcTimeout)
	return &bind.CallOpts{Context: ctx}, cancel
}

func selectorIndex(abiErrors map[string]abi.Error) map[[4]byte]string {
	index := make(map[[4]byte]string, len(abiErrors))
	for name, abiErr := range abiErrors {
		var sel [4]byte
		copy(sel[:], abiErr.ID[:4])
		index[sel] = name
	}
	return index
}
