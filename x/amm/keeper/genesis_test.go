package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	// leave an escrow in flight so the export carries one
	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	units, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)

	exported := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 2)
	require.Len(t, exported.Connections, 2)
	require.Len(t, exported.AssetEscrows, 1)
	require.Equal(t, uint64(3), exported.NextPoolID)

	// replay into a fresh store
	g := keepertest.AmmKeeper(t)
	g.Keeper.InitGenesis(g.Ctx, *exported)

	restored, found := g.Keeper.GetPool(g.Ctx, from.ID)
	require.True(t, found)
	require.Equal(t, units, restored.UnitTracker)
	require.Equal(t, math.NewInt(100), restored.EscrowedAmounts[0])
	require.True(t, g.Keeper.HasConnection(g.Ctx, from.ID, "channel-0", to.ID))
	require.True(t, g.Keeper.HasConnection(g.Ctx, to.ID, "channel-0", from.ID))

	hash := keeper.ComputeEscrowHash(f.Channel.Packets[0].Data)
	escrow, found := g.Keeper.GetAssetEscrow(g.Ctx, from.ID, hash)
	require.True(t, found)
	require.Equal(t, math.NewInt(100), escrow.Amount)

	// the counter continues where the export left off
	next := createTestPoolInFixture(t, g)
	require.Equal(t, uint64(3), next)
}

func createTestPoolInFixture(t *testing.T, f keepertest.AmmFixture) uint64 {
	t.Helper()
	pool := createTestPool(t, f, testAddr("creator3"))
	return pool.ID
}

func TestDefaultGenesis(t *testing.T) {
	f := keepertest.AmmKeeper(t)

	exported := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, exported.Validate())
	require.Empty(t, exported.Pools)
	require.Equal(t, uint64(1), exported.NextPoolID)
	require.Equal(t, types.PortID, exported.PortID)
	require.Equal(t, types.DefaultParams(), exported.Params)
}
