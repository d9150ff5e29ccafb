package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// UpdateAmplification advances a pool's amplification toward its target.
// Every operation that reads OneMinusAmp calls this first so the curve
// parameter is current for the block. The caller persists the pool.
func (k Keeper) UpdateAmplification(ctx sdk.Context, pool *types.Pool) {
	if pool.AmpAdjustmentDeadline == 0 {
		return
	}

	now := ctx.BlockTime().Unix()
	if now >= pool.AmpAdjustmentDeadline {
		pool.OneMinusAmp = pool.TargetOneMinusAmp
		pool.AmpAdjustmentDeadline = 0
		pool.AmpLastUpdate = now
		return
	}
	if now <= pool.AmpLastUpdate {
		return
	}

	// Linear interpolation over the remaining runway. Recomputing from the
	// current value rather than the original keeps the step exact even when
	// updates land at irregular intervals.
	remaining := pool.AmpAdjustmentDeadline - pool.AmpLastUpdate
	elapsed := now - pool.AmpLastUpdate
	diff := pool.TargetOneMinusAmp.Sub(pool.OneMinusAmp)
	step := diff.Mul(math.NewInt(elapsed)).Quo(math.NewInt(remaining))
	pool.OneMinusAmp = pool.OneMinusAmp.Add(step)
	pool.AmpLastUpdate = now
}

// SetAmplification schedules a gradual amplification change. Only allowed
// while the pool has no cross-chain connections: connected pools must share
// the curve parameter and there is no synchronized update across chains.
func (k Keeper) SetAmplification(ctx sdk.Context, poolID uint64, target math.Int, deadline int64) error {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if k.HasAnyConnection(ctx, poolID) {
		return types.ErrInvalidAmplification.Wrap("cannot change amplification on a connected pool")
	}

	k.UpdateAmplification(ctx, &pool)

	now := ctx.BlockTime().Unix()
	runway := deadline - now
	if runway < types.MinAdjustmentTime || runway > types.MaxAdjustmentTime {
		return types.ErrInvalidAmplification.Wrapf("adjustment runway %ds outside [%d, %d]", runway, types.MinAdjustmentTime, types.MaxAdjustmentTime)
	}
	if target.IsNil() || !target.IsPositive() || target.GT(types.WadInt) {
		return types.ErrInvalidAmplification.Wrap("target one minus amp must be in (0, 1] WAD")
	}

	// Bound the change to a factor of two per adjustment. The bound is on
	// the amplification itself, 1 - (1-k): a pool at one minus amp 0.9
	// carries amplification 0.1 and may move it within [0.05, 0.2].
	currentAmp := types.WadInt.Sub(pool.OneMinusAmp)
	targetAmp := types.WadInt.Sub(target)
	if targetAmp.GT(currentAmp.MulRaw(2)) || targetAmp.LT(currentAmp.QuoRaw(2)) {
		return types.ErrInvalidAmplification.Wrap("target amplification must be within a factor of two of the current value")
	}

	pool.TargetOneMinusAmp = target
	pool.AmpAdjustmentDeadline = deadline
	pool.AmpLastUpdate = now
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAmplification,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(poolID).String()),
			sdk.NewAttribute(types.AttributeKeyTargetAmp, target.String()),
			sdk.NewAttribute(types.AttributeKeyDeadline, math.NewInt(deadline).String()),
		),
	)

	return nil
}
