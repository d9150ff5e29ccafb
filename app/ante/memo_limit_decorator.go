package ante

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MemoLimitDecorator rejects transactions whose memo exceeds a byte budget.
// Cross-chain senders tend to stuff routing hints into the memo; the cap
// keeps that payload from inflating blocks. Runs early in the ante chain so
// oversized memos are dropped before any expensive processing.
type MemoLimitDecorator struct {
	limit int
}

// NewMemoLimitDecorator builds the decorator with the given byte budget.
func NewMemoLimitDecorator(limit int) MemoLimitDecorator {
	return MemoLimitDecorator{limit: limit}
}

// AnteHandle implements sdk.AnteDecorator.
func (d MemoLimitDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	memoTx, ok := tx.(sdk.TxWithMemo)
	if !ok {
		return next(ctx, tx, simulate)
	}
	if n := len(memoTx.GetMemo()); n > d.limit {
		return ctx, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "memo is %d bytes, limit is %d", n, d.limit)
	}
	return next(ctx, tx, simulate)
}
