// Package node defines the coordinator process. It assembles the store, the
// chain gateway, the event tail and the HTTP API into a service registry and
// handles the lifecycle of the entire system.
package node

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/althof3/votara/cmd"
	"github.com/althof3/votara/cmd/coordinator/flags"
	"github.com/althof3/votara/config/params"
	"github.com/althof3/votara/coordinator/auth"
	"github.com/althof3/votara/coordinator/chain"
	"github.com/althof3/votara/coordinator/db"
	"github.com/althof3/votara/coordinator/rpc"
	"github.com/althof3/votara/coordinator/tail"
	"github.com/althof3/votara/monitoring/backup"
	"github.com/althof3/votara/monitoring/prometheus"
	"github.com/althof3/votara/monitoring/tracing"
	"github.com/althof3/votara/runtime"
	"github.com/althof3/votara/runtime/debug"
	"github.com/althof3/votara/runtime/prereqs"
	"github.com/althof3/votara/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "node")

const coordinatorDBDirName = "coordinatordata"

// CoordinatorNode defines a struct that handles the services running a Votara
// coordinator. It handles the lifecycle of the entire system and registers
// services to a service registry.
type CoordinatorNode struct {
	cliCtx   *cli.Context
	ctx      context.Context
	cancel   context.CancelFunc
	services *runtime.ServiceRegistry
	lock     sync.RWMutex
	stop     chan struct{} // Channel to wait for termination notifications.
	db       db.Database
}

// New creates a new node instance, sets up configuration options, and registers
// every required service to the node.
func New(cliCtx *cli.Context) (*CoordinatorNode, error) {
	if err := tracing.Setup(
		"coordinator", // service name
		cliCtx.String(cmd.TracingProcessNameFlag.Name),
		cliCtx.String(cmd.TracingEndpointFlag.Name),
		cliCtx.Float64(cmd.TraceSampleFractionFlag.Name),
		cliCtx.Bool(cmd.EnableTracingFlag.Name),
	); err != nil {
		return nil, err
	}

	// Warn if user's platform is not supported
	prereqs.WarnIfPlatformNotSupported(cliCtx.Context)

	if err := configureChainParams(cliCtx); err != nil {
		return nil, err
	}

	registry := runtime.NewServiceRegistry()

	ctx, cancel := context.WithCancel(cliCtx.Context)
	coordinator := &CoordinatorNode{
		cliCtx:   cliCtx,
		ctx:      ctx,
		cancel:   cancel,
		services: registry,
		stop:     make(chan struct{}),
	}

	if err := coordinator.startDB(cliCtx); err != nil {
		return nil, err
	}

	if err := coordinator.registerChainService(); err != nil {
		return nil, err
	}

	if err := coordinator.registerTailService(); err != nil {
		return nil, err
	}

	if err := coordinator.registerAPIService(); err != nil {
		return nil, err
	}

	if !cliCtx.Bool(cmd.DisableMonitoringFlag.Name) {
		if err := coordinator.registerPrometheusService(cliCtx); err != nil {
			return nil, err
		}
	}

	return coordinator, nil
}

// configureChainParams resolves the active coordinator config: the named
// network first, then the chain config file, then explicit flag overrides.
func configureChainParams(cliCtx *cli.Context) error {
	cfg, err := params.ByName(cliCtx.String(flags.ChainFlag.Name))
	if err != nil {
		return err
	}
	log.WithField("chain", cfg.ConfigName).Info("Using chain parameters")
	params.OverrideCoordinatorConfig(cfg)

	if cliCtx.IsSet(cmd.ChainConfigFileFlag.Name) {
		chainConfigFileName := cliCtx.String(cmd.ChainConfigFileFlag.Name)
		params.LoadChainConfigFile(chainConfigFileName)
	}

	if cliCtx.IsSet(flags.VotingContractFlag.Name) {
		c := params.CoordinatorConfig()
		c.VotingContractAddress = cliCtx.String(flags.VotingContractFlag.Name)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.MembershipContractFlag.Name) {
		c := params.CoordinatorConfig()
		c.MembershipContractAddress = cliCtx.String(flags.MembershipContractFlag.Name)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.DeploymentBlockFlag.Name) {
		c := params.CoordinatorConfig()
		c.DeploymentBlock = cliCtx.Uint64(flags.DeploymentBlockFlag.Name)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.TailPollIntervalFlag.Name) {
		c := params.CoordinatorConfig()
		c.SecondsPerTailPoll = uint64(cliCtx.Duration(flags.TailPollIntervalFlag.Name) / time.Second)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.TailMaxWindowFlag.Name) {
		c := params.CoordinatorConfig()
		c.TailMaxWindow = cliCtx.Uint64(flags.TailMaxWindowFlag.Name)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.ConfirmationsFlag.Name) {
		c := params.CoordinatorConfig()
		c.Confirmations = cliCtx.Uint64(flags.ConfirmationsFlag.Name)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.TokenTTLFlag.Name) {
		c := params.CoordinatorConfig()
		c.TokenTTLSeconds = uint64(cliCtx.Duration(flags.TokenTTLFlag.Name) / time.Second)
		params.OverrideCoordinatorConfig(c)
	}
	if cliCtx.IsSet(flags.LoginDomainFlag.Name) {
		c := params.CoordinatorConfig()
		c.LoginDomain = cliCtx.String(flags.LoginDomainFlag.Name)
		params.OverrideCoordinatorConfig(c)
	}
	return nil
}

// Start the coordinator node and kick off every registered service.
func (n *CoordinatorNode) Start() {
	n.lock.Lock()

	log.WithFields(logrus.Fields{
		"version": version.GetVersion(),
	}).Info("Starting coordinator node")

	n.services.StartAll()

	stop := n.stop
	n.lock.Unlock()

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
		<-sigc
		log.Info("Got interrupt, shutting down...")
		debug.Exit(n.cliCtx) // Ensure trace and CPU profile data are flushed.
		go n.Close()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				log.WithField("times", i-1).Info("Already shutting down, interrupt more to panic")
			}
		}
		panic("Panic closing the coordinator node")
	}()

	// Wait for stop channel to be closed.
	<-stop
}

// Close handles graceful shutdown of the system.
func (n *CoordinatorNode) Close() {
	n.lock.Lock()
	defer n.lock.Unlock()

	log.Info("Stopping coordinator node")
	n.services.StopAll()
	if err := n.db.Close(); err != nil {
		log.Errorf("Failed to close database: %v", err)
	}
	n.cancel()
	close(n.stop)
}

func (n *CoordinatorNode) startDB(cliCtx *cli.Context) error {
	baseDir := cliCtx.String(cmd.DataDirFlag.Name)
	dbPath := filepath.Join(baseDir, coordinatorDBDirName)
	clearDB := cliCtx.Bool(cmd.ClearDB.Name)
	forceClearDB := cliCtx.Bool(cmd.ForceClearDB.Name)

	log.WithField("database-path", dbPath).Info("Checking DB")

	d, err := db.NewDB(dbPath)
	if err != nil {
		return err
	}
	clearDBConfirmed := false
	if clearDB && !forceClearDB {
		actionText := "This will delete your coordinator database stored in your data directory. " +
			"Your database backups will not be removed - do you want to proceed? (Y/N)"
		deniedText := "Database will not be deleted. No changes have been made."
		clearDBConfirmed, err = cmd.ConfirmAction(actionText, deniedText)
		if err != nil {
			return err
		}
	}
	if clearDBConfirmed || forceClearDB {
		log.Warning("Removing database")
		if err := d.Close(); err != nil {
			return errors.Wrap(err, "could not close db prior to clearing")
		}
		if err := d.ClearDB(); err != nil {
			return errors.Wrap(err, "could not clear database")
		}
		d, err = db.NewDB(dbPath)
		if err != nil {
			return errors.Wrap(err, "could not create new database")
		}
	}

	n.db = d
	return nil
}

func (n *CoordinatorNode) registerChainService() error {
	cfg := params.CoordinatorConfig()
	votingAddr := cfg.VotingContractAddress
	if votingAddr == "" {
		log.Fatal("Valid voting contract is required, provide one with --voting-contract")
	}
	if !common.IsHexAddress(votingAddr) {
		log.Fatalf("Invalid voting contract address given: %s", votingAddr)
	}
	registryAddr := cfg.MembershipContractAddress
	if registryAddr == "" {
		log.Fatal("Valid membership contract is required, provide one with --membership-contract")
	}
	if !common.IsHexAddress(registryAddr) {
		log.Fatalf("Invalid membership contract address given: %s", registryAddr)
	}
	if n.cliCtx.String(flags.SigningKeyFlag.Name) == "" {
		log.Fatal("Valid signing key is required, provide one with --signing-key")
	}

	opts := []chain.Option{
		chain.WithRPCEndpoint(n.cliCtx.String(flags.RPCEndpointFlag.Name)),
		chain.WithChainID(cfg.ChainID),
		chain.WithVotingContract(common.HexToAddress(votingAddr)),
		chain.WithMembershipContract(common.HexToAddress(registryAddr)),
		chain.WithSigningKey(n.cliCtx.String(flags.SigningKeyFlag.Name)),
		chain.WithRPCTimeout(time.Duration(cfg.RPCTimeoutSeconds) * time.Second),
		chain.WithMiningTimeout(time.Duration(cfg.TxMiningTimeoutSeconds) * time.Second),
		chain.WithGroupInfoTTL(time.Duration(cfg.GroupInfoCacheTTLSeconds) * time.Second),
	}
	if n.cliCtx.IsSet(flags.MerkleTreeDurationFlag.Name) {
		opts = append(opts, chain.WithMerkleTreeDuration(n.cliCtx.Uint64(flags.MerkleTreeDurationFlag.Name)))
	}
	chainService, err := chain.New(n.ctx, opts...)
	if err != nil {
		return errors.Wrap(err, "could not register chain gateway")
	}

	votingContract := common.HexToAddress(votingAddr)
	knownContract, err := n.db.VotingContractAddress(n.ctx)
	if err != nil {
		return err
	}
	if len(knownContract) == 0 {
		if err := n.db.SaveVotingContractAddress(n.ctx, votingContract); err != nil {
			return errors.Wrap(err, "could not save voting contract")
		}
	}
	if len(knownContract) > 0 && !bytes.Equal(votingContract.Bytes(), knownContract) {
		return fmt.Errorf("database contract is %#x but tried to run with %#x. This likely means "+
			"you are trying to run on a different network than what the database contains. You can run once with "+
			"'--clear-db' to wipe the old database or use an alternative data directory with '--datadir'",
			knownContract, votingContract.Bytes())
	}

	log.Infof("Voting contract: %#x", votingContract.Bytes())
	return n.services.RegisterService(chainService)
}

func (n *CoordinatorNode) registerTailService() error {
	var chainService *chain.Service
	if err := n.services.FetchService(&chainService); err != nil {
		return err
	}

	// Window, confirmations, poll cadence and lease settings all come from
	// the active coordinator config resolved in configureChainParams.
	svc, err := tail.New(n.ctx,
		tail.WithDatabase(n.db),
		tail.WithChainReader(chainService),
		tail.WithMaxGoroutines(n.cliCtx.Int(cmd.MaxGoroutines.Name)),
	)
	if err != nil {
		return errors.Wrap(err, "could not register chain tail")
	}
	return n.services.RegisterService(svc)
}

func (n *CoordinatorNode) registerAPIService() error {
	var chainService *chain.Service
	if err := n.services.FetchService(&chainService); err != nil {
		return err
	}

	cfg := params.CoordinatorConfig()
	serverKey, err := hex.DecodeString(strings.TrimPrefix(n.cliCtx.String(flags.ServerKeyFlag.Name), "0x"))
	if err != nil {
		return errors.Wrap(err, "could not decode server key")
	}
	gate, err := auth.NewGate(&auth.Config{
		ServerKey: serverKey,
		Domain:    cfg.LoginDomain,
		ChainID:   cfg.ChainID,
		TokenTTL:  time.Duration(cfg.TokenTTLSeconds) * time.Second,
		NonceTTL:  time.Duration(cfg.NonceTTLSeconds) * time.Second,
	})
	if err != nil {
		return errors.Wrap(err, "could not build auth gate")
	}

	svc, err := rpc.New(n.ctx,
		rpc.WithListenAddr(n.cliCtx.String(flags.HTTPListenAddrFlag.Name)),
		rpc.WithAllowedOrigins(strings.Split(n.cliCtx.String(flags.HTTPCorsDomainFlag.Name), ",")),
		rpc.WithDatabase(n.db),
		rpc.WithChainGateway(chainService),
		rpc.WithAuthGate(gate),
		rpc.WithRosterCacheTTL(time.Duration(cfg.GroupInfoCacheTTLSeconds)*time.Second),
	)
	if err != nil {
		return errors.Wrap(err, "could not register API service")
	}
	return n.services.RegisterService(svc)
}

func (n *CoordinatorNode) registerPrometheusService(cliCtx *cli.Context) error {
	var additionalHandlers []prometheus.Handler
	if cliCtx.IsSet(cmd.EnableBackupWebhookFlag.Name) {
		additionalHandlers = append(
			additionalHandlers,
			prometheus.Handler{
				Path:    "/db/backup",
				Handler: backup.Handler(n.db, cliCtx.String(cmd.BackupWebhookOutputDir.Name)),
			},
		)
	}

	service := prometheus.NewService(
		fmt.Sprintf("%s:%d", cliCtx.String(cmd.MonitoringHostFlag.Name), cliCtx.Int(flags.MonitoringPortFlag.Name)),
		n.services,
		additionalHandlers...,
	)
	hook := prometheus.NewLogrusCollector()
	logrus.AddHook(hook)
	return n.services.RegisterService(service)
}
