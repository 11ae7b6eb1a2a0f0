package params

import (
	"github.com/pkg/errors"
)

// Supported network names accepted by the --chain flag.
const (
	MainnetName = "mainnet"
	SepoliaName = "sepolia"
	DevName     = "dev"
)

// MainnetConfig returns the config for the Ethereum mainnet deployment.
func MainnetConfig() *Config {
	return &Config{
		ConfigName:                MainnetName,
		ChainID:                   1,
		VotingContractAddress:     "0x5C79b2F1529a44C4bA3F945E5d6e1b57C159a503",
		MembershipContractAddress: "0x3889927F0b5Eb1a02C6E2C20b39a1Bd4EAd76131",
		DeploymentBlock:           19862140,

		SecondsPerTailPoll:        4,
		TailMaxWindow:             2000,
		TailBackoffCeilingSeconds: 60,
		Confirmations:             1,
		TailLeaseTTLSeconds:       30,

		LoginDomain:     "votara.app",
		TokenTTLSeconds: 7 * 24 * 3600,
		NonceTTLSeconds: 300,

		DefaultPageSize:      10,
		MaxPageSize:          50,
		MinPollOptions:       2,
		MaxPollOptions:       256,
		MaxTitleLength:       200,
		MaxDescriptionLength: 5000,
		MaxOptionLabelLength: 100,
		MaxRosterSize:        10000,

		RPCTimeoutSeconds:        10,
		TxMiningTimeoutSeconds:   180,
		GroupInfoCacheTTLSeconds: 30,
	}
}

// SepoliaConfig returns the config for the Sepolia testnet deployment.
func SepoliaConfig() *Config {
	cfg := MainnetConfig()
	cfg.ConfigName = SepoliaName
	cfg.ChainID = 11155111
	cfg.VotingContractAddress = "0x0FCCf2d8E38C2Ae33EedC04D720E70FbFf4a2cB1"
	cfg.MembershipContractAddress = "0x7bE9b61A32Ba9C9A66e7F1eCF2AbF853cCbcF0cd"
	cfg.DeploymentBlock = 5733801
	return cfg
}

// DevConfig returns the config for a local development chain. Contract
// addresses must be supplied through flags or a chain config file.
func DevConfig() *Config {
	cfg := MainnetConfig()
	cfg.ConfigName = DevName
	cfg.ChainID = 31337
	cfg.VotingContractAddress = ""
	cfg.MembershipContractAddress = ""
	cfg.DeploymentBlock = 0
	cfg.SecondsPerTailPoll = 1
	cfg.Confirmations = 0
	return cfg
}

// ByName resolves a network name to its config.
func ByName(name string) (*Config, error) {
	switch name {
	case MainnetName:
		return MainnetConfig(), nil
	case SepoliaName:
		return SepoliaConfig(), nil
	case DevName:
		return DevConfig(), nil
	default:
		return nil, errors.Errorf("unknown chain name %q, supported chains: %s, %s, %s",
			name, MainnetName, SepoliaName, DevName)
	}
}
