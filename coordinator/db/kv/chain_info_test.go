package kv

import (
	"bytes"
	"context"
	"testing"

	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func TestStore_VotingContractAddress_PinOnce(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	addr, err := db.VotingContractAddress(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, len(addr))

	pinned := common.HexToAddress("0x4242424242424242424242424242424242424242")
	require.NoError(t, db.SaveVotingContractAddress(ctx, pinned))

	addr, err = db.VotingContractAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, bytes.Equal(pinned.Bytes(), addr))

	other := common.HexToAddress("0x1717171717171717171717171717171717171717")
	err = db.SaveVotingContractAddress(ctx, other)
	require.ErrorContains(t, "cannot override voting contract address", err)

	addr, err = db.VotingContractAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, bytes.Equal(pinned.Bytes(), addr))
}
