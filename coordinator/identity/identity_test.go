package identity

import (
	"math/big"
	"testing"

	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func TestProject_Deterministic(t *testing.T) {
	addr := common.HexToAddress("0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc")
	first := Project(addr)
	second := Project(addr)
	assert.Equal(t, 0, first.Cmp(second), "Same address must project to the same commitment")
}

func TestProject_StaysBelowModulus(t *testing.T) {
	p := Modulus()
	for _, addr := range []common.Address{
		{},
		common.HexToAddress("0x0000000000000000000000000000000000000001"),
		common.HexToAddress("0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc"),
		common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff"),
	} {
		c := Project(addr)
		assert.Equal(t, -1, c.Cmp(p), "Commitment for %s escaped the field", addr.Hex())
		assert.Equal(t, true, c.Sign() >= 0)
	}
}

func TestProject_DistinctAddresses(t *testing.T) {
	seen := make(map[string]common.Address)
	for _, addr := range []common.Address{
		{},
		common.HexToAddress("0x0000000000000000000000000000000000000001"),
		common.HexToAddress("0x0000000000000000000000000000000000000100"),
		common.HexToAddress("0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc"),
		common.HexToAddress("0x976EA74026E726554dB657fA54763abd0C3a0aa9"),
	} {
		c := Project(addr).String()
		if prev, dup := seen[c]; dup {
			t.Fatalf("Addresses %s and %s collide on %s", prev.Hex(), addr.Hex(), c)
		}
		seen[c] = addr
	}
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	addrs := []string{
		"0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc",
		"0x976EA74026E726554dB657fA54763abd0C3a0aa9",
	}
	commitments, err := ProjectAll(addrs)
	require.NoError(t, err)
	require.Equal(t, 2, len(commitments))
	assert.Equal(t, 0, commitments[0].Cmp(Project(common.HexToAddress(addrs[0]))))
	assert.Equal(t, 0, commitments[1].Cmp(Project(common.HexToAddress(addrs[1]))))
}

func TestProjectAll_RejectsNonAddress(t *testing.T) {
	_, err := ProjectAll([]string{"0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc", "not-an-address"})
	require.ErrorContains(t, "entry 1", err)
}

func TestParseCommitment(t *testing.T) {
	p := Modulus()

	c, err := ParseCommitment("12345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", c.String())

	c, err = ParseCommitment("0xff")
	require.NoError(t, err)
	assert.Equal(t, int64(255), c.Int64())

	// The modulus itself is the smallest non-canonical value.
	_, err = ParseCommitment(p.String())
	require.ErrorIs(t, err, ErrNotInField)

	justBelow := new(big.Int).Sub(p, big.NewInt(1))
	c, err = ParseCommitment(justBelow.String())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Cmp(justBelow))

	_, err = ParseCommitment("-5")
	require.NotNil(t, err)

	_, err = ParseCommitment("0xzz")
	require.ErrorContains(t, "cannot parse commitment", err)
}

func TestParseCommitments_PreservesOrder(t *testing.T) {
	commitments, err := ParseCommitments([]string{"7", "11", "13"})
	require.NoError(t, err)
	require.Equal(t, 3, len(commitments))
	assert.Equal(t, int64(7), commitments[0].Int64())
	assert.Equal(t, int64(11), commitments[1].Int64())
	assert.Equal(t, int64(13), commitments[2].Int64())

	_, err = ParseCommitments([]string{"7", "bogus!"})
	require.ErrorContains(t, "entry 1", err)
}
