// Package params defines the deployment parameters and protocol constants the
// coordinator needs for each supported network.
package params

// Config contains constant configs for the coordinator to operate against a
// Votara deployment. Values tagged with yaml can be overridden through a
// chain config file. Durations are expressed in seconds so that config files
// stay plain integers.
type Config struct {
	ConfigName                string `yaml:"CONFIG_NAME"`
	ChainID                   uint64 `yaml:"CHAIN_ID"`
	VotingContractAddress     string `yaml:"VOTING_CONTRACT_ADDRESS"`
	MembershipContractAddress string `yaml:"MEMBERSHIP_CONTRACT_ADDRESS"`
	DeploymentBlock           uint64 `yaml:"DEPLOYMENT_BLOCK"`

	// Chain tail settings.
	SecondsPerTailPoll        uint64 `yaml:"SECONDS_PER_TAIL_POLL"`
	TailMaxWindow             uint64 `yaml:"TAIL_MAX_WINDOW"`
	TailBackoffCeilingSeconds uint64 `yaml:"TAIL_BACKOFF_CEILING_SECONDS"`
	Confirmations             uint64 `yaml:"CONFIRMATIONS"`
	TailLeaseTTLSeconds       uint64 `yaml:"TAIL_LEASE_TTL_SECONDS"`

	// Auth gate settings.
	LoginDomain     string `yaml:"LOGIN_DOMAIN"`
	TokenTTLSeconds uint64 `yaml:"TOKEN_TTL_SECONDS"`
	NonceTTLSeconds uint64 `yaml:"NONCE_TTL_SECONDS"`

	// API limits.
	DefaultPageSize      int `yaml:"DEFAULT_PAGE_SIZE"`
	MaxPageSize          int `yaml:"MAX_PAGE_SIZE"`
	MinPollOptions       int `yaml:"MIN_POLL_OPTIONS"`
	MaxPollOptions       int `yaml:"MAX_POLL_OPTIONS"`
	MaxTitleLength       int `yaml:"MAX_TITLE_LENGTH"`
	MaxDescriptionLength int `yaml:"MAX_DESCRIPTION_LENGTH"`
	MaxOptionLabelLength int `yaml:"MAX_OPTION_LABEL_LENGTH"`
	MaxRosterSize        int `yaml:"MAX_ROSTER_SIZE"`

	// Chain gateway settings.
	RPCTimeoutSeconds        uint64 `yaml:"RPC_TIMEOUT_SECONDS"`
	TxMiningTimeoutSeconds   uint64 `yaml:"TX_MINING_TIMEOUT_SECONDS"`
	GroupInfoCacheTTLSeconds uint64 `yaml:"GROUP_INFO_CACHE_TTL_SECONDS"`
}

var coordinatorConfig = MainnetConfig()

// CoordinatorConfig retrieves the active coordinator config.
func CoordinatorConfig() *Config {
	return coordinatorConfig
}

// OverrideCoordinatorConfig by replacing the config. The preferred pattern is
// to call CoordinatorConfig(), change the specific parameters, and then call
// OverrideCoordinatorConfig(c). Any subsequent calls to
// params.CoordinatorConfig() will return this new configuration.
func OverrideCoordinatorConfig(c *Config) {
	coordinatorConfig = c
}

// Copy returns a copy of the config object. The struct is flat, so a value
// copy is sufficient.
func (c *Config) Copy() *Config {
	config := *c
	return &config
}
