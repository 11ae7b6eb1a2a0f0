package kv

import (
	"context"
	"testing"
	"time"

	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func TestStore_SaveUser_RoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")

	retrieved, err := db.User(ctx, address)
	require.NoError(t, err)
	require.Equal(t, true, retrieved == nil)

	now := time.Now().UTC()
	user := &types.User{
		Address:      address,
		ChainID:      31337,
		FirstLoginAt: now,
		LastLoginAt:  now,
		LoginCount:   1,
	}
	require.NoError(t, db.SaveUser(ctx, user))

	retrieved, err = db.User(ctx, address)
	require.NoError(t, err)
	require.DeepEqual(t, user, retrieved)
}

func TestStore_SaveUser_Upserts(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")

	first := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.SaveUser(ctx, &types.User{
		Address:      address,
		FirstLoginAt: first,
		LastLoginAt:  first,
		LoginCount:   1,
	}))

	again := time.Now().UTC()
	require.NoError(t, db.SaveUser(ctx, &types.User{
		Address:      address,
		FirstLoginAt: first,
		LastLoginAt:  again,
		LoginCount:   2,
	}))

	retrieved, err := db.User(ctx, address)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), retrieved.LoginCount)
	assert.DeepEqual(t, first, retrieved.FirstLoginAt)
	assert.DeepEqual(t, again, retrieved.LastLoginAt)
}
