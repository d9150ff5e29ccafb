package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new amplified pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	pool, err := ms.Keeper.CreatePool(ctx, creator, msg.Assets, msg.Amounts, msg.Weights, msg.OneMinusAmp, msg.PoolFee)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{PoolID: pool.ID}, nil
}

// LocalSwap handles a same-chain swap between two pool assets
func (ms msgServer) LocalSwap(goCtx context.Context, msg *types.MsgLocalSwap) (*types.MsgLocalSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("LocalSwap: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("LocalSwap: invalid sender address: %w", err)
	}

	out, err := ms.Keeper.LocalSwap(ctx, sender, msg.PoolID, msg.FromAsset, msg.ToAsset, msg.Amount, msg.MinOut)
	if err != nil {
		return nil, fmt.Errorf("LocalSwap: %w", err)
	}

	return &types.MsgLocalSwapResponse{AmountOut: out}, nil
}

// Deposit handles a mixed-asset deposit
func (ms msgServer) Deposit(goCtx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Deposit: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	depositor, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("Deposit: invalid sender address: %w", err)
	}

	shares, err := ms.Keeper.DepositMixed(ctx, depositor, msg.PoolID, msg.Amounts, msg.MinShares)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	return &types.MsgDepositResponse{Shares: shares}, nil
}

// WithdrawAll handles a proportional withdrawal
func (ms msgServer) WithdrawAll(goCtx context.Context, msg *types.MsgWithdrawAll) (*types.MsgWithdrawAllResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("WithdrawAll: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("WithdrawAll: invalid sender address: %w", err)
	}

	amounts, err := ms.Keeper.WithdrawAll(ctx, sender, msg.PoolID, msg.Shares, msg.MinOut)
	if err != nil {
		return nil, fmt.Errorf("WithdrawAll: %w", err)
	}

	return &types.MsgWithdrawAllResponse{Amounts: amounts}, nil
}

// WithdrawMixed handles a custom-mix withdrawal
func (ms msgServer) WithdrawMixed(goCtx context.Context, msg *types.MsgWithdrawMixed) (*types.MsgWithdrawMixedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("WithdrawMixed: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("WithdrawMixed: invalid sender address: %w", err)
	}

	amounts, err := ms.Keeper.WithdrawMixed(ctx, sender, msg.PoolID, msg.Shares, msg.WithdrawRatios, msg.MinOut)
	if err != nil {
		return nil, fmt.Errorf("WithdrawMixed: %w", err)
	}

	return &types.MsgWithdrawMixedResponse{Amounts: amounts}, nil
}

// SendAsset handles an outbound cross-chain asset swap
func (ms msgServer) SendAsset(goCtx context.Context, msg *types.MsgSendAsset) (*types.MsgSendAssetResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SendAsset: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	units, err := ms.Keeper.SendAsset(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("SendAsset: %w", err)
	}

	return &types.MsgSendAssetResponse{Units: units}, nil
}

// SendLiquidity handles an outbound cross-chain liquidity swap
func (ms msgServer) SendLiquidity(goCtx context.Context, msg *types.MsgSendLiquidity) (*types.MsgSendLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SendLiquidity: validate: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	units, err := ms.Keeper.SendLiquidity(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("SendLiquidity: %w", err)
	}

	return &types.MsgSendLiquidityResponse{Units: units}, nil
}

// SetAmplification schedules an amplification change
func (ms msgServer) SetAmplification(goCtx context.Context, msg *types.MsgSetAmplification) (*types.MsgSetAmplificationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetAmplification: validate: %w", err)
	}
	if msg.Authority != ms.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.GetAuthority(), msg.Authority)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := ms.Keeper.SetAmplification(ctx, msg.PoolID, msg.TargetOneMinusAmp, msg.Deadline); err != nil {
		return nil, fmt.Errorf("SetAmplification: %w", err)
	}

	return &types.MsgSetAmplificationResponse{}, nil
}

// SetFees updates a pool's fee configuration
func (ms msgServer) SetFees(goCtx context.Context, msg *types.MsgSetFees) (*types.MsgSetFeesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetFees: validate: %w", err)
	}
	if msg.Authority != ms.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.GetAuthority(), msg.Authority)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := ms.Keeper.SetFees(ctx, msg.PoolID, msg.PoolFee, msg.GovernanceFeeShare); err != nil {
		return nil, fmt.Errorf("SetFees: %w", err)
	}

	return &types.MsgSetFeesResponse{}, nil
}

// SetConnection marks or unmarks a remote pool as a trusted counterpart
func (ms msgServer) SetConnection(goCtx context.Context, msg *types.MsgSetConnection) (*types.MsgSetConnectionResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetConnection: validate: %w", err)
	}
	if msg.Authority != ms.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.GetAuthority(), msg.Authority)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	if _, found := ms.Keeper.GetPool(ctx, msg.PoolID); !found {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", msg.PoolID)
	}
	ms.Keeper.SetConnection(ctx, msg.PoolID, msg.ChannelID, msg.RemotePool, msg.Connected)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConnection,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", msg.PoolID)),
			sdk.NewAttribute(types.AttributeKeyChannelID, msg.ChannelID),
			sdk.NewAttribute(types.AttributeKeyRemotePool, fmt.Sprintf("%d", msg.RemotePool)),
			sdk.NewAttribute(types.AttributeKeyConnected, fmt.Sprintf("%t", msg.Connected)),
		),
	)

	return &types.MsgSetConnectionResponse{}, nil
}
