package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgLocalSwap{}

// MsgLocalSwap defines a message to swap between two assets of one pool
type MsgLocalSwap struct {
	Sender    string   `json:"sender"`
	PoolID    uint64   `json:"pool_id"`
	FromAsset string   `json:"from_asset"`
	ToAsset   string   `json:"to_asset"`
	Amount    math.Int `json:"amount"`
	MinOut    math.Int `json:"min_out"`
}

// NewMsgLocalSwap creates a new MsgLocalSwap instance
func NewMsgLocalSwap(sender string, poolID uint64, fromAsset, toAsset string, amount, minOut math.Int) *MsgLocalSwap {
	return &MsgLocalSwap{
		Sender:    sender,
		PoolID:    poolID,
		FromAsset: fromAsset,
		ToAsset:   toAsset,
		Amount:    amount,
		MinOut:    minOut,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgLocalSwap) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgLocalSwap) Type() string {
	return "local_swap"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgLocalSwap) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgLocalSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgLocalSwap) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}

	if msg.PoolID == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool id must be positive")
	}
	if msg.FromAsset == "" || msg.ToAsset == "" {
		return sdkerrors.Wrap(ErrInvalidAsset, "asset denominations cannot be empty")
	}
	if msg.FromAsset == msg.ToAsset {
		return sdkerrors.Wrap(ErrInvalidAsset, "from and to assets must differ")
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "swap amount must be positive")
	}
	if msg.MinOut.IsNil() || msg.MinOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min out must be non-negative")
	}

	return nil
}
