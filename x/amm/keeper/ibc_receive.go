package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// ReceiveAsset completes an inbound asset swap: it converts the units into
// an output amount, charges the security limit and pays the receiver. Any
// error rolls the whole receive back and surfaces as an error ack, which
// triggers the refund on the source chain.
func (k Keeper) ReceiveAsset(ctx sdk.Context, channelID string, data types.AssetSwapPacketData) (math.Int, error) {
	pool, found := k.GetPool(ctx, data.ToPool)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", data.ToPool)
	}
	if !k.HasConnection(ctx, data.ToPool, channelID, data.FromPool) {
		return math.Int{}, types.ErrPoolNotConnected.Wrapf("pool %d has no counterpart %d on %s", data.ToPool, data.FromPool, channelID)
	}
	if int(data.ToAssetIndex) >= len(pool.Assets) {
		return math.Int{}, types.ErrInvalidAsset.Wrapf("asset index %d out of range", data.ToAssetIndex)
	}
	receiver, err := sdk.AccAddressFromBech32(data.ToAccount)
	if err != nil {
		return math.Int{}, types.ErrInvalidAddress.Wrapf("receiver: %s", err)
	}
	k.UpdateAmplification(ctx, &pool)

	// 1. Units to output amount
	idx := int(data.ToAssetIndex)
	asset := pool.Assets[idx]
	balances := k.EffectiveBalances(ctx, pool)
	out, err := ammmath.CalcPriceCurveLimit(data.Units, balances[idx], pool.Weights[idx], pool.OneMinusAmp)
	if err != nil {
		return math.Int{}, err
	}
	if out.LT(data.MinOut) {
		return math.Int{}, types.ErrInsufficientReturn.Wrapf("output %s below minimum %s", out, data.MinOut)
	}

	// 2. Security limit: inbound flow consumes capacity, and the paid out
	// balance no longer backs the limit
	weighted := pool.Weights[idx].Mul(out)
	if err := k.ConsumeUnitCapacity(ctx, &pool, weighted); err != nil {
		return math.Int{}, err
	}
	pool.MaxUnitCapacity = saturatingSub(pool.MaxUnitCapacity, weighted)

	// 3. Book the units and pay
	pool.UnitTracker = pool.UnitTracker.Sub(data.Units)
	k.SetPool(ctx, pool)

	if out.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, pool.GetAddress(), receiver, sdk.NewCoins(sdk.NewCoin(asset, out))); err != nil {
			return math.Int{}, err
		}
	}

	// 4. Call data hook: a failing hook aborts the receive so the source
	// refunds
	if len(data.CallData) > 0 && k.unitsReceiver != nil {
		if err := k.unitsReceiver.OnUnitsReceived(ctx, pool.ID, receiver, asset, out, data.CallData); err != nil {
			return math.Int{}, types.ErrReceiverHookFailed.Wrap(err.Error())
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReceiveAsset,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(pool.ID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, data.ToAccount),
			sdk.NewAttribute(types.AttributeKeyToAsset, asset),
			sdk.NewAttribute(types.AttributeKeyAmountOut, out.String()),
			sdk.NewAttribute(types.AttributeKeyUnits, data.Units.String()),
			sdk.NewAttribute(types.AttributeKeyChannelID, channelID),
		),
	)
	crossChainReceivesCounter.WithLabelValues(math.NewIntFromUint64(pool.ID).String(), types.PacketTypeAssetSwap).Inc()

	return out, nil
}

// ReceiveLiquidity completes an inbound liquidity swap by minting shares
// for the carried units.
func (k Keeper) ReceiveLiquidity(ctx sdk.Context, channelID string, data types.LiquiditySwapPacketData) (math.Int, error) {
	pool, found := k.GetPool(ctx, data.ToPool)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", data.ToPool)
	}
	if !k.HasConnection(ctx, data.ToPool, channelID, data.FromPool) {
		return math.Int{}, types.ErrPoolNotConnected.Wrapf("pool %d has no counterpart %d on %s", data.ToPool, data.FromPool, channelID)
	}
	receiver, err := sdk.AccAddressFromBech32(data.ToAccount)
	if err != nil {
		return math.Int{}, types.ErrInvalidAddress.Wrapf("receiver: %s", err)
	}
	k.UpdateAmplification(ctx, &pool)

	// 1. Units to shares. Units claiming the entire reference balance have
	// no finite share price and are rejected outright.
	balances := k.TrueBalances(ctx, pool)
	nWalphaAmped, walphaAmped, err := k.ComputeBalance0Amped(ctx, pool, balances)
	if err != nil {
		return math.Int{}, err
	}
	if data.Units.GTE(nWalphaAmped) {
		return math.Int{}, types.ErrExceedsSecurityLimit.Wrapf("units %s claim the whole reference balance %s", data.Units, nWalphaAmped)
	}
	totalSupply := k.PoolShareSupply(ctx, pool).Add(pool.EscrowedShares)
	shares, err := ammmath.CalcPriceCurveLimitShare(data.Units, totalSupply, nWalphaAmped, OneMinusAmpInverse(pool.OneMinusAmp))
	if err != nil {
		return math.Int{}, err
	}
	if shares.LT(data.MinOut) {
		return math.Int{}, types.ErrInsufficientReturn.Wrapf("shares %s below minimum %s", shares, data.MinOut)
	}
	if !data.MinReferenceAsset.IsNil() && data.MinReferenceAsset.IsPositive() {
		// The sender may floor the reference value backing the minted
		// shares: walpha0 * pt / (ts + pt).
		walpha0, err := ammmath.PowWadDown(walphaAmped, OneMinusAmpInverse(pool.OneMinusAmp))
		if err != nil {
			return math.Int{}, err
		}
		reference := walpha0.Mul(shares).Quo(totalSupply.Add(shares)).Quo(ammmath.WAD)
		if reference.LT(data.MinReferenceAsset) {
			return math.Int{}, types.ErrInsufficientReturn.Wrapf("reference value %s below minimum %s", reference, data.MinReferenceAsset)
		}
	}

	// 2. Security limit: convert the minted shares to an equivalent
	// weighted balance via their fraction of the grown supply
	equivalent := pool.MaxUnitCapacity.Mul(shares).Quo(totalSupply.Add(shares))
	if err := k.ConsumeUnitCapacity(ctx, &pool, equivalent); err != nil {
		return math.Int{}, err
	}

	// 3. Book the units and mint
	pool.UnitTracker = pool.UnitTracker.Sub(data.Units)
	k.SetPool(ctx, pool)

	if shares.IsPositive() {
		minted := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, shares))
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, minted); err != nil {
			return math.Int{}, err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, receiver, minted); err != nil {
			return math.Int{}, err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReceiveLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(pool.ID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, data.ToAccount),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyUnits, data.Units.String()),
			sdk.NewAttribute(types.AttributeKeyChannelID, channelID),
		),
	)
	crossChainReceivesCounter.WithLabelValues(math.NewIntFromUint64(pool.ID).String(), types.PacketTypeLiquiditySwap).Inc()

	return shares, nil
}
