package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// TrueBalances returns the pool's asset balances exactly as the bank ledger
// holds them, escrows included. The reference balance is anchored on these:
// escrowed tokens only move at settlement, so the reference stays constant
// while swaps are in flight and cannot be shifted by opening escrows.
func (k Keeper) TrueBalances(ctx context.Context, pool types.Pool) []math.Int {
	balances := make([]math.Int, len(pool.Assets))
	for i, asset := range pool.Assets {
		balances[i] = k.PoolAssetBalance(ctx, pool, asset)
	}
	return balances
}

// EffectiveBalances returns the pool's asset balances with in-flight escrow
// amounts removed. Escrowed tokens sit in the pool account but may still be
// refunded, so curve pricing must not count them. Reference-balance math
// uses TrueBalances instead; the withdraw-all path is the one exception.
func (k Keeper) EffectiveBalances(ctx context.Context, pool types.Pool) []math.Int {
	balances := make([]math.Int, len(pool.Assets))
	for i, asset := range pool.Assets {
		bal := k.PoolAssetBalance(ctx, pool, asset).Sub(pool.EscrowedAmounts[i])
		if bal.IsNegative() {
			bal = math.ZeroInt()
		}
		balances[i] = bal
	}
	return balances
}

// ComputeBalance0Amped returns the amplified reference balance terms:
//
//	nWalphaAmped = sum_i (w_i * b_i * WAD)^(1-k) - unitTracker
//	walphaAmped  = nWalphaAmped / N
//
// walphaAmped is walpha0^(1-k) in WAD, the per-asset reference the share
// math is anchored on. A negative sum means the tracker claims more value
// than the pool holds, which is unrecoverable.
func (k Keeper) ComputeBalance0Amped(ctx context.Context, pool types.Pool, balances []math.Int) (nWalphaAmped, walphaAmped math.Int, err error) {
	sum := math.ZeroInt()
	for i := range pool.Assets {
		powered, perr := ammmath.PowWadDown(pool.Weights[i].Mul(balances[i]).Mul(ammmath.WAD), pool.OneMinusAmp)
		if perr != nil {
			return math.Int{}, math.Int{}, perr
		}
		sum = sum.Add(powered)
	}

	nWalphaAmped = sum.Sub(pool.UnitTracker)
	if nWalphaAmped.IsNegative() {
		return math.Int{}, math.Int{}, types.ErrInvariantViolation.Wrapf("unit tracker %s exceeds pool value %s", pool.UnitTracker, sum)
	}
	walphaAmped = nWalphaAmped.Quo(math.NewInt(int64(len(pool.Assets))))
	return nWalphaAmped, walphaAmped, nil
}

// OneMinusAmpInverse returns WAD^2 / (1-k), i.e. 1/(1-amplification) in WAD.
func OneMinusAmpInverse(oneMinusAmp math.Int) math.Int {
	return ammmath.WADWAD.Quo(oneMinusAmp)
}
