// Package flags contains all configuration runtime flags for
// the coordinator service.
package flags

import (
	cmdflags "github.com/althof3/votara/cmd/flags"
	"github.com/althof3/votara/config/params"
	"github.com/urfave/cli/v2"
)

var chainName = params.MainnetName

var (
	// ChainFlag selects the named Votara deployment to run against.
	ChainFlag = (cmdflags.EnumValue{
		Name:        "chain",
		Usage:       "Name of the Votara deployment to run against",
		Destination: &chainName,
		Enum:        []string{params.MainnetName, params.SepoliaName, params.DevName},
		Value:       params.MainnetName,
		EnvVars:     []string{"CHAIN"},
	}).GenericFlag()
	// RPCEndpointFlag defines the chain JSON-RPC endpoint.
	RPCEndpointFlag = &cli.StringFlag{
		Name:    "rpc-endpoint",
		Usage:   "Chain JSON-RPC endpoint (http, ws or ipc)",
		Value:   "http://127.0.0.1:8545",
		EnvVars: []string{"RPC_URL"},
	}
	// VotingContractFlag overrides the Voting contract address of the selected chain.
	VotingContractFlag = &cli.StringFlag{
		Name:    "voting-contract",
		Usage:   "Address of the Voting contract. Overrides the selected chain's default.",
		EnvVars: []string{"VOTING_CONTRACT_ADDRESS"},
	}
	// MembershipContractFlag overrides the membership registry address of the selected chain.
	MembershipContractFlag = &cli.StringFlag{
		Name:    "membership-contract",
		Usage:   "Address of the membership registry contract. Overrides the selected chain's default.",
		EnvVars: []string{"MEMBERSHIP_CONTRACT_ADDRESS"},
	}
	// SigningKeyFlag defines the private key of the service account.
	SigningKeyFlag = &cli.StringFlag{
		Name:    "signing-key",
		Usage:   "Hex-encoded private key of the service account that administers membership groups",
		EnvVars: []string{"SIGNING_KEY"},
	}
	// DeploymentBlockFlag overrides the block number the chain tail starts scanning from.
	DeploymentBlockFlag = &cli.Uint64Flag{
		Name:  "deployment-block",
		Usage: "Block number of the Voting contract deployment. Overrides the selected chain's default.",
	}
	// MerkleTreeDurationFlag defines the merkle tree duration passed to group creation.
	MerkleTreeDurationFlag = &cli.Uint64Flag{
		Name:  "merkle-tree-duration",
		Usage: "Merkle tree duration in seconds used when creating membership groups. 0 uses the registry default.",
	}
	// HTTPListenAddrFlag defines the listen address of the coordinator HTTP API.
	HTTPListenAddrFlag = &cli.StringFlag{
		Name:    "http-listen-addr",
		Usage:   "Listen address (host:port) of the coordinator HTTP API",
		Value:   "127.0.0.1:3000",
		EnvVars: []string{"LISTEN_ADDR"},
	}
	// HTTPCorsDomainFlag defines the origins allowed to call the HTTP API.
	HTTPCorsDomainFlag = &cli.StringFlag{
		Name:    "http-cors-domain",
		Usage:   "Comma separated list of domains from which to accept cross origin requests (browser enforced)",
		Value:   "*",
		EnvVars: []string{"CORS_ORIGIN"},
	}
	// ServerKeyFlag defines the HMAC key behind nonce envelopes and session tokens.
	ServerKeyFlag = &cli.StringFlag{
		Name:    "server-key",
		Usage:   "Hex-encoded HMAC key of at least 32 bytes that signs nonce envelopes and session tokens",
		EnvVars: []string{"SERVER_KEY"},
	}
	// TokenTTLFlag overrides the session token lifetime of the selected chain.
	TokenTTLFlag = &cli.DurationFlag{
		Name:    "token-ttl",
		Usage:   "Lifetime of issued session tokens, eg 168h. Overrides the selected chain's default.",
		EnvVars: []string{"TOKEN_TTL"},
	}
	// LoginDomainFlag overrides the domain string bound into login messages.
	LoginDomainFlag = &cli.StringFlag{
		Name:  "login-domain",
		Usage: "Domain string bound into signed login messages. Overrides the selected chain's default.",
	}
	// TailPollIntervalFlag overrides how often the chain tail polls for new blocks.
	TailPollIntervalFlag = &cli.DurationFlag{
		Name:    "tail-poll-interval",
		Usage:   "How often the chain tail polls for new blocks, eg 4s. Overrides the selected chain's default.",
		EnvVars: []string{"POLL_INTERVAL"},
	}
	// TailMaxWindowFlag overrides the maximum number of blocks per tail fetch.
	TailMaxWindowFlag = &cli.Uint64Flag{
		Name:    "tail-max-window",
		Usage:   "Maximum number of blocks fetched per tail window. Overrides the selected chain's default.",
		EnvVars: []string{"MAX_WINDOW"},
	}
	// ConfirmationsFlag overrides the confirmation depth of the tail.
	ConfirmationsFlag = &cli.Uint64Flag{
		Name:    "confirmations",
		Usage:   "Number of confirmations a block needs before the tail processes it. Overrides the selected chain's default.",
		EnvVars: []string{"CONFIRMATIONS"},
	}
	// MonitoringPortFlag defines the http port used to serve prometheus metrics.
	MonitoringPortFlag = &cli.IntFlag{
		Name:  "monitoring-port",
		Usage: "Port used to listening and respond metrics for prometheus.",
		Value: 8081,
	}
)

// ChainName returns the network selected with --chain.
func ChainName() string {
	return chainName
}
