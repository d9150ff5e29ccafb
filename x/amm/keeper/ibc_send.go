package keeper

import (
	"encoding/hex"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
	host "github.com/cosmos/ibc-go/v8/modules/core/24-host"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// DefaultPacketTimeout is used when the sender does not set one.
const DefaultPacketTimeout = time.Hour

// SendAsset swaps an asset into units and sends the units to a connected
// pool. The net input is locked in escrow until the destination chain
// acknowledges; only the fee is committed immediately.
func (k Keeper) SendAsset(ctx sdk.Context, msg *types.MsgSendAsset) (math.Int, error) {
	pool, found := k.GetPool(ctx, msg.PoolID)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", msg.PoolID)
	}
	if !k.HasConnection(ctx, msg.PoolID, msg.ChannelID, msg.ToPool) {
		return math.Int{}, types.ErrPoolNotConnected.Wrapf("pool %d has no counterpart %d on %s", msg.PoolID, msg.ToPool, msg.ChannelID)
	}
	fromIdx := pool.AssetIndex(msg.FromAsset)
	if fromIdx < 0 {
		return math.Int{}, types.ErrInvalidAsset.Wrapf("%s not in pool %d", msg.FromAsset, msg.PoolID)
	}
	k.UpdateAmplification(ctx, &pool)

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return math.Int{}, types.ErrInvalidAddress.Wrapf("sender: %s", err)
	}
	fallback := sender
	if msg.Fallback != "" {
		fallback, err = sdk.AccAddressFromBech32(msg.Fallback)
		if err != nil {
			return math.Int{}, types.ErrInvalidAddress.Wrapf("fallback: %s", err)
		}
	}

	// 1. Price the net input into units
	net, fee := TakePoolFee(msg.Amount, pool.PoolFee)
	balances := k.EffectiveBalances(ctx, pool)
	units, err := ammmath.CalcPriceCurveArea(net, balances[fromIdx], pool.Weights[fromIdx], pool.OneMinusAmp)
	if err != nil {
		return math.Int{}, err
	}
	if units.GT(ammmath.MaxWorkingUnits) {
		return math.Int{}, types.ErrCurveOverflow.Wrap("units exceed the working range")
	}

	// 2. Build the packet; its bytes are the escrow identity
	packetData := types.AssetSwapPacketData{
		Type:         types.PacketTypeAssetSwap,
		FromPool:     msg.PoolID,
		ToPool:       msg.ToPool,
		ToAccount:    msg.ToAccount,
		Units:        units,
		ToAssetIndex: msg.ToAssetIndex,
		MinOut:       msg.MinOut,
		FromAmount:   net,
		FromAsset:    msg.FromAsset,
		BlockHeight:  ctx.BlockHeight(),
		CallData:     msg.CallData,
	}
	packetBytes := packetData.GetBytes()
	hash := ComputeEscrowHash(packetBytes)

	escrow := types.AssetEscrow{
		FallbackAccount: fallback.String(),
		AssetIndex:      fromIdx,
		Amount:          net,
		Units:           units,
		BlockHeight:     ctx.BlockHeight(),
	}
	if err := k.SetAssetEscrow(ctx, msg.PoolID, hash, escrow); err != nil {
		return math.Int{}, err
	}

	// 3. Commit local state: pull the input, lock the net amount, record
	// the units as in flight
	if err := k.bankKeeper.SendCoins(ctx, sender, pool.GetAddress(), sdk.NewCoins(sdk.NewCoin(msg.FromAsset, msg.Amount))); err != nil {
		return math.Int{}, err
	}
	if err := k.CollectGovernanceFee(ctx, pool, msg.FromAsset, fee); err != nil {
		return math.Int{}, err
	}
	pool.UnitTracker = pool.UnitTracker.Add(units)
	pool.EscrowedAmounts[fromIdx] = pool.EscrowedAmounts[fromIdx].Add(net)
	k.SetPool(ctx, pool)

	// 4. Ship it
	if err := k.sendPacket(ctx, msg.ChannelID, packetBytes, msg.TimeoutSeconds); err != nil {
		return math.Int{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSendAsset,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(msg.PoolID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, msg.Sender),
			sdk.NewAttribute(types.AttributeKeyFromAsset, msg.FromAsset),
			sdk.NewAttribute(types.AttributeKeyAmountIn, msg.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyUnits, units.String()),
			sdk.NewAttribute(types.AttributeKeyChannelID, msg.ChannelID),
			sdk.NewAttribute(types.AttributeKeyRemotePool, math.NewIntFromUint64(msg.ToPool).String()),
			sdk.NewAttribute(types.AttributeKeyEscrowHash, hex.EncodeToString(hash)),
		),
	)
	crossChainSendsCounter.WithLabelValues(math.NewIntFromUint64(msg.PoolID).String(), types.PacketTypeAssetSwap).Inc()

	return units, nil
}

// SendLiquidity burns pool shares into units and sends the units to a
// connected pool. The shares are burned up front; a failed leg mints them
// back to the fallback account.
func (k Keeper) SendLiquidity(ctx sdk.Context, msg *types.MsgSendLiquidity) (math.Int, error) {
	pool, found := k.GetPool(ctx, msg.PoolID)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", msg.PoolID)
	}
	if !k.HasConnection(ctx, msg.PoolID, msg.ChannelID, msg.ToPool) {
		return math.Int{}, types.ErrPoolNotConnected.Wrapf("pool %d has no counterpart %d on %s", msg.PoolID, msg.ToPool, msg.ChannelID)
	}
	k.UpdateAmplification(ctx, &pool)

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return math.Int{}, types.ErrInvalidAddress.Wrapf("sender: %s", err)
	}
	fallback := sender
	if msg.Fallback != "" {
		fallback, err = sdk.AccAddressFromBech32(msg.Fallback)
		if err != nil {
			return math.Int{}, types.ErrInvalidAddress.Wrapf("fallback: %s", err)
		}
	}

	// 1. Burn first, then value the burned shares:
	//
	//	U = N * walpha0^(1-k) * ((ts / (ts - pt))^(1-k) - 1)
	//
	// with ts the pre-burn supply including escrowed shares.
	totalSupply := k.PoolShareSupply(ctx, pool).Add(pool.EscrowedShares)
	if msg.Shares.GTE(totalSupply) {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("shares %s must leave supply behind", msg.Shares)
	}
	burned := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, msg.Shares))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, burned); err != nil {
		return math.Int{}, err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, burned); err != nil {
		return math.Int{}, err
	}

	balances := k.TrueBalances(ctx, pool)
	_, walphaAmped, err := k.ComputeBalance0Amped(ctx, pool, balances)
	if err != nil {
		return math.Int{}, err
	}
	ratio, err := ammmath.DivWadDown(totalSupply, totalSupply.Sub(msg.Shares))
	if err != nil {
		return math.Int{}, err
	}
	powered, err := ammmath.PowWadDown(ratio, pool.OneMinusAmp)
	if err != nil {
		return math.Int{}, err
	}
	if powered.LT(ammmath.WAD) {
		powered = ammmath.WAD
	}
	inner, err := ammmath.MulWadDown(walphaAmped, powered.Sub(ammmath.WAD))
	if err != nil {
		return math.Int{}, err
	}
	units := inner.Mul(math.NewInt(int64(len(pool.Assets))))
	if units.GT(ammmath.MaxWorkingUnits) {
		return math.Int{}, types.ErrCurveOverflow.Wrap("units exceed the working range")
	}

	// 2. Escrow identity and record
	packetData := types.LiquiditySwapPacketData{
		Type:              types.PacketTypeLiquiditySwap,
		FromPool:          msg.PoolID,
		ToPool:            msg.ToPool,
		ToAccount:         msg.ToAccount,
		Units:             units,
		MinOut:            msg.MinOut,
		MinReferenceAsset: msg.MinReferenceAsset,
		FromShares:        msg.Shares,
		BlockHeight:       ctx.BlockHeight(),
	}
	packetBytes := packetData.GetBytes()
	hash := ComputeEscrowHash(packetBytes)

	escrow := types.LiquidityEscrow{
		FallbackAccount: fallback.String(),
		Shares:          msg.Shares,
		Units:           units,
		BlockHeight:     ctx.BlockHeight(),
	}
	if err := k.SetLiquidityEscrow(ctx, msg.PoolID, hash, escrow); err != nil {
		return math.Int{}, err
	}

	pool.UnitTracker = pool.UnitTracker.Add(units)
	pool.EscrowedShares = pool.EscrowedShares.Add(msg.Shares)
	k.SetPool(ctx, pool)

	// 3. Ship it
	if err := k.sendPacket(ctx, msg.ChannelID, packetBytes, msg.TimeoutSeconds); err != nil {
		return math.Int{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSendLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(msg.PoolID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, msg.Sender),
			sdk.NewAttribute(types.AttributeKeyShares, msg.Shares.String()),
			sdk.NewAttribute(types.AttributeKeyUnits, units.String()),
			sdk.NewAttribute(types.AttributeKeyChannelID, msg.ChannelID),
			sdk.NewAttribute(types.AttributeKeyRemotePool, math.NewIntFromUint64(msg.ToPool).String()),
		),
	)
	crossChainSendsCounter.WithLabelValues(math.NewIntFromUint64(msg.PoolID).String(), types.PacketTypeLiquiditySwap).Inc()

	return units, nil
}

func (k Keeper) sendPacket(ctx sdk.Context, channelID string, data []byte, timeoutSeconds uint64) error {
	chanCap, ok := k.scopedKeeper.GetCapability(ctx, host.ChannelCapabilityPath(types.PortID, channelID))
	if !ok {
		return types.ErrInvalidPacket.Wrapf("no capability for channel %s", channelID)
	}

	timeout := DefaultPacketTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	timeoutTimestamp := uint64(ctx.BlockTime().Add(timeout).UnixNano())

	_, err := k.channelKeeper.SendPacket(ctx, chanCap, types.PortID, channelID, clienttypes.ZeroHeight(), timeoutTimestamp, data)
	return err
}
