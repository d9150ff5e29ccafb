package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestSetAmplification(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	target := math.NewInt(750_000_000_000_000_000) // 0.75 in WAD
	deadline := f.Ctx.BlockTime().Add(30 * 24 * time.Hour).Unix()

	require.NoError(t, f.Keeper.SetAmplification(f.Ctx, pool.ID, target, deadline))

	stored, _ := f.Keeper.GetPool(f.Ctx, pool.ID)
	require.Equal(t, target, stored.TargetOneMinusAmp)
	require.Equal(t, deadline, stored.AmpAdjustmentDeadline)
	require.Equal(t, halfWad, stored.OneMinusAmp)
}

func TestUpdateAmplificationInterpolates(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	target := math.NewInt(750_000_000_000_000_000)
	deadline := f.Ctx.BlockTime().Add(30 * 24 * time.Hour).Unix()
	require.NoError(t, f.Keeper.SetAmplification(f.Ctx, pool.ID, target, deadline))

	// halfway through the runway the value is halfway to the target
	ctx := f.Ctx.WithBlockTime(f.Ctx.BlockTime().Add(15 * 24 * time.Hour))
	stored, _ := f.Keeper.GetPool(f.Ctx, pool.ID)
	f.Keeper.UpdateAmplification(ctx, &stored)
	require.Equal(t, math.NewInt(625_000_000_000_000_000), stored.OneMinusAmp)
	require.Equal(t, deadline, stored.AmpAdjustmentDeadline)

	// past the deadline the value snaps to the target and the schedule clears
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(20 * 24 * time.Hour))
	f.Keeper.UpdateAmplification(ctx, &stored)
	require.Equal(t, target, stored.OneMinusAmp)
	require.Equal(t, int64(0), stored.AmpAdjustmentDeadline)

	// with no schedule the update is a no-op
	before := stored.OneMinusAmp
	f.Keeper.UpdateAmplification(ctx.WithBlockTime(ctx.BlockTime().Add(time.Hour)), &stored)
	require.Equal(t, before, stored.OneMinusAmp)
}

func TestSetAmplificationValidation(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	goodDeadline := f.Ctx.BlockTime().Add(30 * 24 * time.Hour).Unix()
	goodTarget := math.NewInt(750_000_000_000_000_000)

	// unknown pool
	err := f.Keeper.SetAmplification(f.Ctx, 99, goodTarget, goodDeadline)
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	// runway too short and too long
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, goodTarget, f.Ctx.BlockTime().Add(time.Hour).Unix())
	require.ErrorIs(t, err, types.ErrInvalidAmplification)
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, goodTarget, f.Ctx.BlockTime().Add(2*366*24*time.Hour).Unix())
	require.ErrorIs(t, err, types.ErrInvalidAmplification)

	// target out of (0, 1]
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, math.ZeroInt(), goodDeadline)
	require.ErrorIs(t, err, types.ErrInvalidAmplification)
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, types.WadInt.AddRaw(1), goodDeadline)
	require.ErrorIs(t, err, types.ErrInvalidAmplification)

	// more than halving the amplification: current amp 0.5, target below 0.25
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, goodTarget.AddRaw(1), goodDeadline)
	require.ErrorIs(t, err, types.ErrInvalidAmplification)

	// a connected pool cannot change its curve
	f.Keeper.SetConnection(f.Ctx, pool.ID, "channel-0", 7, true)
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, goodTarget, goodDeadline)
	require.ErrorIs(t, err, types.ErrInvalidAmplification)
}

func TestSetAmplificationFactorOfTwoBound(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := testAddr("creator")
	f.Bank.FundAccount(creator, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1_000_000)),
		sdk.NewCoin("uosmo", math.NewInt(1_000_000)),
	))

	// a mildly amplified pool: 1-k = 0.9, amplification 0.1
	pool, err := f.Keeper.CreatePool(f.Ctx, creator,
		[]string{"uatom", "uosmo"},
		[]math.Int{math.NewInt(1000), math.NewInt(1000)},
		[]math.Int{math.OneInt(), math.OneInt()},
		math.NewInt(900_000_000_000_000_000), math.LegacyZeroDec(),
	)
	require.NoError(t, err)
	deadline := f.Ctx.BlockTime().Add(30 * 24 * time.Hour).Unix()

	// the bound is on the amplification, not on 1-k: moving 1-k from 0.9
	// to 0.75 would more than double the amplification (0.1 to 0.25)
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, math.NewInt(750_000_000_000_000_000), deadline)
	require.ErrorIs(t, err, types.ErrInvalidAmplification)

	// less than half the amplification (0.1 to 0.04) is out too
	err = f.Keeper.SetAmplification(f.Ctx, pool.ID, math.NewInt(960_000_000_000_000_000), deadline)
	require.ErrorIs(t, err, types.ErrInvalidAmplification)

	// 0.1 to 0.15 is within a factor of two
	require.NoError(t, f.Keeper.SetAmplification(f.Ctx, pool.ID, math.NewInt(850_000_000_000_000_000), deadline))
}
