package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

var halfWad = types.WadInt.QuoRaw(2)

// testAddr derives a deterministic 20-byte test address from a name.
func testAddr(name string) sdk.AccAddress {
	b := make([]byte, 20)
	copy(b, name)
	return sdk.AccAddress(b)
}

// createTestPool seeds a symmetric two-asset pool: 1000 uatom and 1000 uosmo
// at unit weights, 1-k = 0.5 and no fee. The creator is funded generously so
// follow-up operations never fail on funds.
func createTestPool(t *testing.T, f keepertest.AmmFixture, creator sdk.AccAddress) types.Pool {
	t.Helper()

	f.Bank.FundAccount(creator, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1_000_000)),
		sdk.NewCoin("uosmo", math.NewInt(1_000_000)),
	))

	pool, err := f.Keeper.CreatePool(f.Ctx, creator,
		[]string{"uatom", "uosmo"},
		[]math.Int{math.NewInt(1000), math.NewInt(1000)},
		[]math.Int{math.OneInt(), math.OneInt()},
		halfWad, math.LegacyZeroDec(),
	)
	require.NoError(t, err)
	return *pool
}

// connectPools marks two local pools as counterparts over a channel, both
// directions, standing in for the two chains of a real deployment.
func connectPools(f keepertest.AmmFixture, a, b types.Pool, channelID string) {
	f.Keeper.SetConnection(f.Ctx, a.ID, channelID, b.ID, true)
	f.Keeper.SetConnection(f.Ctx, b.ID, channelID, a.ID, true)
}
