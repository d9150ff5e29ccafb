package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// TakePoolFee splits an input amount into the net amount and the pool fee.
func TakePoolFee(amount math.Int, poolFee math.LegacyDec) (net, fee math.Int) {
	fee = poolFee.MulInt(amount).TruncateInt()
	return amount.Sub(fee), fee
}

// CollectGovernanceFee forwards the governance share of a collected fee to
// the configured collector. The rest of the fee simply stays in the pool,
// accruing to the share holders. No collector configured means the whole
// fee accrues to the pool.
func (k Keeper) CollectGovernanceFee(ctx sdk.Context, pool types.Pool, asset string, fee math.Int) error {
	if fee.IsZero() || pool.GovernanceFeeShare.IsZero() {
		return nil
	}
	collector := k.GetParams(ctx).GovernanceFeeCollector
	if collector == "" {
		return nil
	}
	collectorAddr, err := sdk.AccAddressFromBech32(collector)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("governance fee collector: %s", err)
	}

	govFee := pool.GovernanceFeeShare.MulInt(fee).TruncateInt()
	if govFee.IsZero() {
		return nil
	}
	return k.bankKeeper.SendCoins(ctx, pool.GetAddress(), collectorAddr, sdk.NewCoins(sdk.NewCoin(asset, govFee)))
}

// SetFees updates a pool's fee configuration.
func (k Keeper) SetFees(ctx sdk.Context, poolID uint64, poolFee, govShare math.LegacyDec) error {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if poolFee.IsNil() || poolFee.IsNegative() || poolFee.GTE(math.LegacyOneDec()) {
		return types.ErrInvalidFee.Wrap("pool fee must be in [0, 1)")
	}
	if govShare.IsNil() || govShare.IsNegative() || govShare.GT(types.MaxGovernanceFeeShare) {
		return types.ErrInvalidFee.Wrapf("governance fee share must be in [0, %s]", types.MaxGovernanceFeeShare)
	}

	pool.PoolFee = poolFee
	pool.GovernanceFeeShare = govShare
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeChange,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(poolID).String()),
			sdk.NewAttribute(types.AttributeKeyFee, poolFee.String()),
		),
	)
	return nil
}
