package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestInvariantsHealthy(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	// an in-flight escrow is a valid state
	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	_, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)

	_, broken := keeper.EscrowBackingInvariant(f.Keeper)(f.Ctx)
	require.False(t, broken)
	_, broken = keeper.EscrowTotalsInvariant(f.Keeper)(f.Ctx)
	require.False(t, broken)
	_, broken = keeper.CapacityBoundsInvariant(f.Keeper)(f.Ctx)
	require.False(t, broken)
}

func TestEscrowBackingInvariantBroken(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	// claim more escrowed tokens than the pool account holds
	pool.EscrowedAmounts[0] = math.NewInt(1_000_000)
	f.Keeper.SetPool(f.Ctx, pool)

	msg, broken := keeper.EscrowBackingInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken, msg)
}

func TestEscrowTotalsInvariantBroken(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	// an escrowed total with no record behind it
	pool.EscrowedAmounts[0] = math.NewInt(10)
	f.Keeper.SetPool(f.Ctx, pool)

	msg, broken := keeper.EscrowTotalsInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken, msg)
}

func TestCapacityBoundsInvariantBroken(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	pool.UsedUnitCapacity = pool.MaxUnitCapacity.AddRaw(1)
	f.Keeper.SetPool(f.Ctx, pool)

	msg, broken := keeper.CapacityBoundsInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken, msg)
}
