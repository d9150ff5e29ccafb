package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer is the transaction-handling surface of the amm module.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	LocalSwap(context.Context, *MsgLocalSwap) (*MsgLocalSwapResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	WithdrawAll(context.Context, *MsgWithdrawAll) (*MsgWithdrawAllResponse, error)
	WithdrawMixed(context.Context, *MsgWithdrawMixed) (*MsgWithdrawMixedResponse, error)
	SendAsset(context.Context, *MsgSendAsset) (*MsgSendAssetResponse, error)
	SendLiquidity(context.Context, *MsgSendLiquidity) (*MsgSendLiquidityResponse, error)
	SetAmplification(context.Context, *MsgSetAmplification) (*MsgSetAmplificationResponse, error)
	SetFees(context.Context, *MsgSetFees) (*MsgSetFeesResponse, error)
	SetConnection(context.Context, *MsgSetConnection) (*MsgSetConnectionResponse, error)
}

// MsgCreatePoolResponse is the response for MsgCreatePool
type MsgCreatePoolResponse struct {
	PoolID uint64 `json:"pool_id"`
}

// MsgLocalSwapResponse is the response for MsgLocalSwap
type MsgLocalSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// MsgDepositResponse is the response for MsgDeposit
type MsgDepositResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgWithdrawAllResponse is the response for MsgWithdrawAll
type MsgWithdrawAllResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// MsgWithdrawMixedResponse is the response for MsgWithdrawMixed
type MsgWithdrawMixedResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// MsgSendAssetResponse is the response for MsgSendAsset
type MsgSendAssetResponse struct {
	Units math.Int `json:"units"`
}

// MsgSendLiquidityResponse is the response for MsgSendLiquidity
type MsgSendLiquidityResponse struct {
	Units math.Int `json:"units"`
}

// MsgSetAmplificationResponse is the response for MsgSetAmplification
type MsgSetAmplificationResponse struct{}

// MsgSetFeesResponse is the response for MsgSetFees
type MsgSetFeesResponse struct{}

// MsgSetConnectionResponse is the response for MsgSetConnection
type MsgSetConnectionResponse struct{}
