package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// LocalSwap swaps between two assets of one pool in a single transaction.
// The output is priced by pushing the net input through the price curve
// area and pulling the result back out against the destination balance.
func (k Keeper) LocalSwap(ctx sdk.Context, sender sdk.AccAddress, poolID uint64, fromAsset, toAsset string, amount, minOut math.Int) (math.Int, error) {
	// 1. Resolve the pool and bring the curve parameter current
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	k.UpdateAmplification(ctx, &pool)

	fromIdx := pool.AssetIndex(fromAsset)
	toIdx := pool.AssetIndex(toAsset)
	if fromIdx < 0 {
		return math.Int{}, types.ErrInvalidAsset.Wrapf("%s not in pool %d", fromAsset, poolID)
	}
	if toIdx < 0 {
		return math.Int{}, types.ErrInvalidAsset.Wrapf("%s not in pool %d", toAsset, poolID)
	}
	if !amount.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}

	// 2. Fee off the top, then price the net input
	net, fee := TakePoolFee(amount, pool.PoolFee)
	balances := k.EffectiveBalances(ctx, pool)

	out, err := ammmath.CalcCombinedPriceCurves(net, balances[fromIdx], balances[toIdx], pool.Weights[fromIdx], pool.Weights[toIdx], pool.OneMinusAmp)
	if err != nil {
		return math.Int{}, err
	}
	out = ammmath.ApplySmallSwapDiscount(out, net, balances[fromIdx])

	// 3. Slippage guard
	if out.LT(minOut) {
		return math.Int{}, types.ErrInsufficientReturn.Wrapf("output %s below minimum %s", out, minOut)
	}

	// 4. Move tokens: full input in (fee stays in the pool), output out
	poolAddr := pool.GetAddress()
	if err := k.bankKeeper.SendCoins(ctx, sender, poolAddr, sdk.NewCoins(sdk.NewCoin(fromAsset, amount))); err != nil {
		return math.Int{}, err
	}
	if out.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, poolAddr, sender, sdk.NewCoins(sdk.NewCoin(toAsset, out))); err != nil {
			return math.Int{}, err
		}
	}
	if err := k.CollectGovernanceFee(ctx, pool, fromAsset, fee); err != nil {
		return math.Int{}, err
	}

	// 5. The security limit follows the weighted balance shift
	delta := pool.Weights[fromIdx].Mul(amount).Sub(pool.Weights[toIdx].Mul(out))
	if delta.IsNegative() {
		pool.MaxUnitCapacity = saturatingSub(pool.MaxUnitCapacity, delta.Neg())
	} else {
		pool.MaxUnitCapacity = pool.MaxUnitCapacity.Add(delta)
	}
	k.SetPool(ctx, pool)

	// 6. Announce
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLocalSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(poolID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, sender.String()),
			sdk.NewAttribute(types.AttributeKeyFromAsset, fromAsset),
			sdk.NewAttribute(types.AttributeKeyToAsset, toAsset),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amount.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, out.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
		),
	)
	localSwapsCounter.WithLabelValues(math.NewIntFromUint64(poolID).String(), "ok").Inc()

	return out, nil
}
