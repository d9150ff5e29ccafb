package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// QuoteLocalSwap prices a local swap without moving tokens or writing
// state. It applies the same fee, curve and discount steps as LocalSwap,
// including the current value of an in-flight amplification adjustment.
func (k Keeper) QuoteLocalSwap(ctx sdk.Context, poolID uint64, fromAsset, toAsset string, amount math.Int) (math.Int, error) {
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

	net, _ := TakePoolFee(amount, pool.PoolFee)
	balances := k.EffectiveBalances(ctx, pool)

	out, err := ammmath.CalcCombinedPriceCurves(net, balances[fromIdx], balances[toIdx], pool.Weights[fromIdx], pool.Weights[toIdx], pool.OneMinusAmp)
	if err != nil {
		return math.Int{}, err
	}
	return ammmath.ApplySmallSwapDiscount(out, net, balances[fromIdx]), nil
}

// QuoteSendAsset prices the units an outbound cross-chain swap leg would
// produce. The destination leg is priced by the remote pool, so the quote
// stops at units.
func (k Keeper) QuoteSendAsset(ctx sdk.Context, poolID uint64, fromAsset string, amount math.Int) (math.Int, error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	fromIdx := pool.AssetIndex(fromAsset)
	if fromIdx < 0 {
		return math.Int{}, types.ErrInvalidAsset.Wrapf("%s not in pool %d", fromAsset, poolID)
	}
	if !amount.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("swap amount must be positive")
	}
	k.UpdateAmplification(ctx, &pool)

	net, _ := TakePoolFee(amount, pool.PoolFee)
	balances := k.EffectiveBalances(ctx, pool)
	units, err := ammmath.CalcPriceCurveArea(net, balances[fromIdx], pool.Weights[fromIdx], pool.OneMinusAmp)
	if err != nil {
		return math.Int{}, err
	}
	if units.GT(ammmath.MaxWorkingUnits) {
		return math.Int{}, types.ErrCurveOverflow.Wrap("units exceed the working range")
	}
	return units, nil
}
