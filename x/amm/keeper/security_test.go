package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestConsumeUnitCapacity(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	// seeded limit is 2000; flows below it pass and accumulate
	require.NoError(t, f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.NewInt(800)))
	require.Equal(t, math.NewInt(800), pool.UsedUnitCapacity)

	require.NoError(t, f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.NewInt(1200)))
	require.Equal(t, math.NewInt(2000), pool.UsedUnitCapacity)

	// the limit is exhausted
	err := f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.OneInt())
	require.ErrorIs(t, err, types.ErrExceedsSecurityLimit)
	require.Equal(t, math.NewInt(2000), pool.UsedUnitCapacity)
}

func TestUnitCapacityDecay(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	require.NoError(t, f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.NewInt(1500)))

	// six hours decay a quarter of the maximum: 2000 * 21600/86400 = 500
	ctx := f.Ctx.WithBlockTime(f.Ctx.BlockTime().Add(6 * time.Hour))
	f.Keeper.UpdateUnitCapacity(ctx, &pool)
	require.Equal(t, math.NewInt(1000), pool.UsedUnitCapacity)

	// a full window later everything is forgotten
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(types.DecayWindowSeconds) * time.Second))
	f.Keeper.UpdateUnitCapacity(ctx, &pool)
	require.True(t, pool.UsedUnitCapacity.IsZero())

	// decay never goes below zero
	require.NoError(t, f.Keeper.ConsumeUnitCapacity(ctx, &pool, math.NewInt(100)))
	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(12 * time.Hour))
	f.Keeper.UpdateUnitCapacity(ctx, &pool)
	require.True(t, pool.UsedUnitCapacity.IsZero())
}

func TestUnitCapacityDecayFreesLimit(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	require.NoError(t, f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.NewInt(2000)))
	require.ErrorIs(t, f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.NewInt(500)), types.ErrExceedsSecurityLimit)

	// after part of the window the same flow fits again
	ctx := f.Ctx.WithBlockTime(f.Ctx.BlockTime().Add(12 * time.Hour))
	require.NoError(t, f.Keeper.ConsumeUnitCapacity(ctx, &pool, math.NewInt(500)))
}

func TestReleaseUnitCapacity(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	pool := createTestPool(t, f, testAddr("creator"))

	require.NoError(t, f.Keeper.ConsumeUnitCapacity(f.Ctx, &pool, math.NewInt(300)))

	keeper.ReleaseUnitCapacity(&pool, math.NewInt(200))
	require.Equal(t, math.NewInt(100), pool.UsedUnitCapacity)
	require.Equal(t, math.NewInt(2200), pool.MaxUnitCapacity)

	// releasing more than was used saturates at zero
	keeper.ReleaseUnitCapacity(&pool, math.NewInt(500))
	require.True(t, pool.UsedUnitCapacity.IsZero())
	require.Equal(t, math.NewInt(2700), pool.MaxUnitCapacity)
}
