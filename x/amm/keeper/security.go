package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// The security limit caps the value that can flow into a pool from other
// chains before local liquidity providers have had a chance to react. The
// limit is measured in weighted token amounts: MaxUnitCapacity tracks the
// weighted sum of pool balances and UsedUnitCapacity accumulates inbound
// flow, decaying linearly to zero over the decay window.

// UpdateUnitCapacity applies the linear decay to a pool's used capacity.
// The caller persists the pool.
func (k Keeper) UpdateUnitCapacity(ctx sdk.Context, pool *types.Pool) {
	now := ctx.BlockTime().Unix()
	elapsed := now - pool.CapacityLastUpdate
	if elapsed <= 0 {
		return
	}
	pool.CapacityLastUpdate = now

	if pool.UsedUnitCapacity.IsZero() {
		return
	}
	if elapsed >= types.DecayWindowSeconds {
		pool.UsedUnitCapacity = math.ZeroInt()
		return
	}
	decay := pool.MaxUnitCapacity.Mul(math.NewInt(elapsed)).Quo(math.NewInt(types.DecayWindowSeconds))
	pool.UsedUnitCapacity = saturatingSub(pool.UsedUnitCapacity, decay)
}

// ConsumeUnitCapacity charges an inbound flow against the security limit.
func (k Keeper) ConsumeUnitCapacity(ctx sdk.Context, pool *types.Pool, weighted math.Int) error {
	k.UpdateUnitCapacity(ctx, pool)
	used := pool.UsedUnitCapacity.Add(weighted)
	if used.GT(pool.MaxUnitCapacity) {
		securityLimitRejections.WithLabelValues(math.NewIntFromUint64(pool.ID).String()).Inc()
		return types.ErrExceedsSecurityLimit.Wrapf("flow %s would raise used capacity to %s of %s", weighted, used, pool.MaxUnitCapacity)
	}
	pool.UsedUnitCapacity = used
	return nil
}

// ReleaseUnitCapacity credits back capacity after an outbound leg settles
// successfully. Saturating: settlement callbacks must never fail on
// accounting drift.
func ReleaseUnitCapacity(pool *types.Pool, weighted math.Int) {
	pool.UsedUnitCapacity = saturatingSub(pool.UsedUnitCapacity, weighted)
	pool.MaxUnitCapacity = pool.MaxUnitCapacity.Add(weighted)
}

func saturatingSub(a, b math.Int) math.Int {
	if b.GTE(a) {
		return math.ZeroInt()
	}
	return a.Sub(b)
}
