package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestLocalSwap(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := testAddr("creator")
	pool := createTestPool(t, f, creator)

	trader := testAddr("trader")
	f.Bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(10_000))))

	out, err := f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "uatom", "uosmo", math.NewInt(100), math.ZeroInt())
	require.NoError(t, err)

	// 100 into a balanced 1000/1000 pool at 1-k = 0.5 returns ~95
	require.True(t, out.GTE(math.NewInt(94)), "out = %s", out)
	require.True(t, out.LTE(math.NewInt(96)), "out = %s", out)

	// tokens actually moved
	require.Equal(t, math.NewInt(9_900), f.Bank.GetBalance(f.Ctx, trader, "uatom").Amount)
	require.Equal(t, out, f.Bank.GetBalance(f.Ctx, trader, "uosmo").Amount)
	require.Equal(t, math.NewInt(1100), f.Keeper.PoolAssetBalance(f.Ctx, pool, "uatom"))
	require.Equal(t, math.NewInt(1000).Sub(out), f.Keeper.PoolAssetBalance(f.Ctx, pool, "uosmo"))

	// the security limit follows the weighted balance shift
	updated, _ := f.Keeper.GetPool(f.Ctx, pool.ID)
	require.Equal(t, math.NewInt(2100).Sub(out), updated.MaxUnitCapacity)
}

func TestLocalSwapRoundTripLosesValue(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	trader := testAddr("trader")
	f.Bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(10_000))))

	out, err := f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "uatom", "uosmo", math.NewInt(100), math.ZeroInt())
	require.NoError(t, err)

	back, err := f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "uosmo", "uatom", out, math.ZeroInt())
	require.NoError(t, err)
	require.True(t, back.LT(math.NewInt(100)), "round trip returned %s", back)
}

func TestLocalSwapMinOut(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	trader := testAddr("trader")
	f.Bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(10_000))))

	_, err := f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "uatom", "uosmo", math.NewInt(100), math.NewInt(100))
	require.ErrorIs(t, err, types.ErrInsufficientReturn)

	// nothing moved on the failed swap
	require.Equal(t, math.NewInt(10_000), f.Bank.GetBalance(f.Ctx, trader, "uatom").Amount)
	require.Equal(t, math.NewInt(1000), f.Keeper.PoolAssetBalance(f.Ctx, pool, "uatom"))
}

func TestLocalSwapErrors(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))
	trader := testAddr("trader")
	f.Bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(10_000))))

	_, err := f.Keeper.LocalSwap(f.Ctx, trader, 99, "uatom", "uosmo", math.NewInt(100), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	_, err = f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "ujuno", "uosmo", math.NewInt(100), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidAsset)

	_, err = f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "uatom", "ujuno", math.NewInt(100), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidAsset)

	_, err = f.Keeper.LocalSwap(f.Ctx, trader, pool.ID, "uatom", "uosmo", math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestLocalSwapFee(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := testAddr("creator")
	f.Bank.FundAccount(creator, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1_000_000)),
		sdk.NewCoin("uosmo", math.NewInt(1_000_000)),
	))

	// 1% fee pool next to the fee-free default
	feePool, err := f.Keeper.CreatePool(f.Ctx, creator,
		[]string{"uatom", "uosmo"},
		[]math.Int{math.NewInt(1000), math.NewInt(1000)},
		[]math.Int{math.OneInt(), math.OneInt()},
		halfWad, math.LegacyNewDecWithPrec(1, 2),
	)
	require.NoError(t, err)
	freePool := createTestPool(t, f, testAddr("creator2"))

	trader := testAddr("trader")
	f.Bank.FundAccount(trader, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(10_000))))

	feeOut, err := f.Keeper.LocalSwap(f.Ctx, trader, feePool.ID, "uatom", "uosmo", math.NewInt(100), math.ZeroInt())
	require.NoError(t, err)
	freeOut, err := f.Keeper.LocalSwap(f.Ctx, trader, freePool.ID, "uatom", "uosmo", math.NewInt(100), math.ZeroInt())
	require.NoError(t, err)
	require.True(t, feeOut.LT(freeOut), "fee swap %s should pay less than free swap %s", feeOut, freeOut)

	// with no collector configured, the whole fee stays in the pool
	require.Equal(t, math.NewInt(1100), f.Keeper.PoolAssetBalance(f.Ctx, *feePool, "uatom"))
}
