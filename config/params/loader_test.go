package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
)

func TestByName(t *testing.T) {
	cfg, err := ByName(SepoliaName)
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), cfg.ChainID)

	cfg, err = ByName(DevName)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), cfg.ChainID)
	assert.Equal(t, "", cfg.VotingContractAddress)

	_, err = ByName("ropsten")
	assert.ErrorContains(t, "unknown chain name", err)
}

func TestConfigCopy_Isolated(t *testing.T) {
	orig := MainnetConfig()
	cp := orig.Copy()
	cp.ChainID = 5
	cp.TailMaxWindow = 42
	assert.Equal(t, uint64(1), orig.ChainID)
	assert.Equal(t, uint64(2000), orig.TailMaxWindow)
}

func TestLoadChainConfigFile(t *testing.T) {
	prev := CoordinatorConfig()
	defer OverrideCoordinatorConfig(prev)
	OverrideCoordinatorConfig(DevConfig())

	file := filepath.Join(t.TempDir(), "chain.yaml")
	content := `CHAIN_ID: 1337
VOTING_CONTRACT_ADDRESS: "0x000000000000000000000000000000000000dEaD"
TAIL_MAX_WINDOW: 500
CONFIRMATIONS: 3
TOKEN_TTL_SECONDS: 86400
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	LoadChainConfigFile(file)

	cfg := CoordinatorConfig()
	assert.Equal(t, uint64(1337), cfg.ChainID)
	assert.Equal(t, "0x000000000000000000000000000000000000dEaD", cfg.VotingContractAddress)
	assert.Equal(t, uint64(500), cfg.TailMaxWindow)
	assert.Equal(t, uint64(3), cfg.Confirmations)
	assert.Equal(t, uint64(86400), cfg.TokenTTLSeconds)
	// Untouched keys keep the values of the active config.
	assert.Equal(t, "", cfg.MembershipContractAddress)
	assert.Equal(t, 10, cfg.DefaultPageSize)
}
