package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// Settlement of outbound legs. Each escrow is settled exactly once: the
// record is deleted on the first settlement and a second attempt fails
// with ErrEscrowNotFound. Success commits the sent value; failure (error
// ack or timeout) refunds the fallback account and reverses the unit
// tracker so the books read as if the swap never happened.

// SettleAssetSuccess finalizes a successful outbound asset swap.
func (k Keeper) SettleAssetSuccess(ctx sdk.Context, packetBytes []byte, data types.AssetSwapPacketData) error {
	pool, found := k.GetPool(ctx, data.FromPool)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", data.FromPool)
	}
	hash := ComputeEscrowHash(packetBytes)
	escrow, found := k.GetAssetEscrow(ctx, data.FromPool, hash)
	if !found {
		return types.ErrEscrowNotFound.Wrapf("asset escrow %x", hash)
	}
	k.DeleteAssetEscrow(ctx, data.FromPool, hash)

	pool.EscrowedAmounts[escrow.AssetIndex] = saturatingSub(pool.EscrowedAmounts[escrow.AssetIndex], escrow.Amount)

	// The committed input now backs the security limit and frees the
	// capacity the outbound flow was charged against.
	weighted := pool.Weights[escrow.AssetIndex].Mul(escrow.Amount)
	k.UpdateUnitCapacity(ctx, &pool)
	ReleaseUnitCapacity(&pool, weighted)
	k.SetPool(ctx, pool)

	k.emitSettlement(ctx, pool.ID, "success")
	return nil
}

// SettleAssetFailure refunds a failed or timed out outbound asset swap.
func (k Keeper) SettleAssetFailure(ctx sdk.Context, packetBytes []byte, data types.AssetSwapPacketData) error {
	pool, found := k.GetPool(ctx, data.FromPool)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", data.FromPool)
	}
	hash := ComputeEscrowHash(packetBytes)
	escrow, found := k.GetAssetEscrow(ctx, data.FromPool, hash)
	if !found {
		return types.ErrEscrowNotFound.Wrapf("asset escrow %x", hash)
	}
	k.DeleteAssetEscrow(ctx, data.FromPool, hash)

	pool.EscrowedAmounts[escrow.AssetIndex] = saturatingSub(pool.EscrowedAmounts[escrow.AssetIndex], escrow.Amount)
	pool.UnitTracker = pool.UnitTracker.Sub(escrow.Units)
	k.SetPool(ctx, pool)

	fallback, err := sdk.AccAddressFromBech32(escrow.FallbackAccount)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("fallback: %s", err)
	}
	asset := pool.Assets[escrow.AssetIndex]
	if escrow.Amount.IsPositive() {
		if err := k.bankKeeper.SendCoins(ctx, pool.GetAddress(), fallback, sdk.NewCoins(sdk.NewCoin(asset, escrow.Amount))); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("refunded failed cross-chain asset swap",
		"pool", pool.ID, "asset", asset, "amount", escrow.Amount.String(), "fallback", escrow.FallbackAccount)
	k.emitSettlement(ctx, pool.ID, "failure")
	return nil
}

// SettleLiquiditySuccess finalizes a successful outbound liquidity swap.
func (k Keeper) SettleLiquiditySuccess(ctx sdk.Context, packetBytes []byte, data types.LiquiditySwapPacketData) error {
	pool, found := k.GetPool(ctx, data.FromPool)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", data.FromPool)
	}
	hash := ComputeEscrowHash(packetBytes)
	escrow, found := k.GetLiquidityEscrow(ctx, data.FromPool, hash)
	if !found {
		return types.ErrEscrowNotFound.Wrapf("liquidity escrow %x", hash)
	}
	k.DeleteLiquidityEscrow(ctx, data.FromPool, hash)

	pool.EscrowedShares = saturatingSub(pool.EscrowedShares, escrow.Shares)
	k.SetPool(ctx, pool)

	k.emitSettlement(ctx, pool.ID, "success")
	return nil
}

// SettleLiquidityFailure mints the burned shares back to the fallback.
func (k Keeper) SettleLiquidityFailure(ctx sdk.Context, packetBytes []byte, data types.LiquiditySwapPacketData) error {
	pool, found := k.GetPool(ctx, data.FromPool)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", data.FromPool)
	}
	hash := ComputeEscrowHash(packetBytes)
	escrow, found := k.GetLiquidityEscrow(ctx, data.FromPool, hash)
	if !found {
		return types.ErrEscrowNotFound.Wrapf("liquidity escrow %x", hash)
	}
	k.DeleteLiquidityEscrow(ctx, data.FromPool, hash)

	pool.EscrowedShares = saturatingSub(pool.EscrowedShares, escrow.Shares)
	pool.UnitTracker = pool.UnitTracker.Sub(escrow.Units)
	k.SetPool(ctx, pool)

	fallback, err := sdk.AccAddressFromBech32(escrow.FallbackAccount)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("fallback: %s", err)
	}
	if escrow.Shares.IsPositive() {
		minted := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, escrow.Shares))
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, minted); err != nil {
			return err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, fallback, minted); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("refunded failed cross-chain liquidity swap",
		"pool", pool.ID, "shares", escrow.Shares.String(), "fallback", escrow.FallbackAccount)
	k.emitSettlement(ctx, pool.ID, "failure")
	return nil
}

// OnAcknowledgementPacket routes an ack to the matching settlement.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packetBytes []byte, success bool) error {
	data, err := types.ParsePacketData(packetBytes)
	if err != nil {
		return err
	}
	switch p := data.(type) {
	case types.AssetSwapPacketData:
		if success {
			return k.SettleAssetSuccess(ctx, packetBytes, p)
		}
		return k.SettleAssetFailure(ctx, packetBytes, p)
	case types.LiquiditySwapPacketData:
		if success {
			return k.SettleLiquiditySuccess(ctx, packetBytes, p)
		}
		return k.SettleLiquidityFailure(ctx, packetBytes, p)
	default:
		return types.ErrInvalidPacket.Wrap("unknown packet payload")
	}
}

// OnTimeoutPacket settles a timed out packet as a failure.
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packetBytes []byte) error {
	return k.OnAcknowledgementPacket(ctx, packetBytes, false)
}

func (k Keeper) emitSettlement(ctx sdk.Context, poolID uint64, outcome string) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEscrowSettled,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(poolID).String()),
			sdk.NewAttribute(types.AttributeKeyOutcome, outcome),
		),
	)
	escrowSettlementsCounter.WithLabelValues(math.NewIntFromUint64(poolID).String(), outcome).Inc()
}
