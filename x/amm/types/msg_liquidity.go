package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgWithdrawAll{}
	_ sdk.Msg = &MsgWithdrawMixed{}
)

// MsgDeposit defines a message to deposit an arbitrary mix of pool assets
// in exchange for pool shares. Amounts align with the pool's asset list
// and individual entries may be zero.
type MsgDeposit struct {
	Sender    string     `json:"sender"`
	PoolID    uint64     `json:"pool_id"`
	Amounts   []math.Int `json:"amounts"`
	MinShares math.Int   `json:"min_shares"`
}

// NewMsgDeposit creates a new MsgDeposit instance
func NewMsgDeposit(sender string, poolID uint64, amounts []math.Int, minShares math.Int) *MsgDeposit {
	return &MsgDeposit{
		Sender:    sender,
		PoolID:    poolID,
		Amounts:   amounts,
		MinShares: minShares,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgDeposit) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgDeposit) Type() string {
	return "deposit"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgDeposit) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgDeposit) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if msg.PoolID == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool id must be positive")
	}
	if len(msg.Amounts) == 0 || len(msg.Amounts) > MaxAssets {
		return sdkerrors.Wrap(ErrInvalidAmount, "deposit amounts must align with pool assets")
	}
	for i, amt := range msg.Amounts {
		if amt.IsNil() || amt.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidAmount, "deposit amount %d must be non-negative", i)
		}
	}
	if msg.MinShares.IsNil() || msg.MinShares.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min shares must be non-negative")
	}
	return nil
}

// MsgWithdrawAll defines a message to burn shares for a proportional slice
// of every pool asset.
type MsgWithdrawAll struct {
	Sender string     `json:"sender"`
	PoolID uint64     `json:"pool_id"`
	Shares math.Int   `json:"shares"`
	MinOut []math.Int `json:"min_out"`
}

// NewMsgWithdrawAll creates a new MsgWithdrawAll instance
func NewMsgWithdrawAll(sender string, poolID uint64, shares math.Int, minOut []math.Int) *MsgWithdrawAll {
	return &MsgWithdrawAll{
		Sender: sender,
		PoolID: poolID,
		Shares: shares,
		MinOut: minOut,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgWithdrawAll) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgWithdrawAll) Type() string {
	return "withdraw_all"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgWithdrawAll) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgWithdrawAll) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgWithdrawAll) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if msg.PoolID == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool id must be positive")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "shares must be positive")
	}
	if len(msg.MinOut) > MaxAssets {
		return sdkerrors.Wrap(ErrInvalidAmount, "min out must align with pool assets")
	}
	for i, m := range msg.MinOut {
		if m.IsNil() || m.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidAmount, "min out %d must be non-negative", i)
		}
	}
	return nil
}

// MsgWithdrawMixed defines a message to burn shares for a custom mix of
// pool assets. WithdrawRatios are WAD fractions of the remaining withdrawal
// value assigned to each asset in order; the last ratio must consume the
// remainder exactly and every ratio after a full consumption must be zero.
type MsgWithdrawMixed struct {
	Sender         string     `json:"sender"`
	PoolID         uint64     `json:"pool_id"`
	Shares         math.Int   `json:"shares"`
	WithdrawRatios []math.Int `json:"withdraw_ratios"`
	MinOut         []math.Int `json:"min_out"`
}

// NewMsgWithdrawMixed creates a new MsgWithdrawMixed instance
func NewMsgWithdrawMixed(sender string, poolID uint64, shares math.Int, ratios, minOut []math.Int) *MsgWithdrawMixed {
	return &MsgWithdrawMixed{
		Sender:         sender,
		PoolID:         poolID,
		Shares:         shares,
		WithdrawRatios: ratios,
		MinOut:         minOut,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgWithdrawMixed) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgWithdrawMixed) Type() string {
	return "withdraw_mixed"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgWithdrawMixed) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgWithdrawMixed) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgWithdrawMixed) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if msg.PoolID == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool id must be positive")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "shares must be positive")
	}
	if len(msg.WithdrawRatios) == 0 || len(msg.WithdrawRatios) > MaxAssets {
		return sdkerrors.Wrap(ErrInvalidAmount, "withdraw ratios must align with pool assets")
	}
	if len(msg.MinOut) != len(msg.WithdrawRatios) {
		return sdkerrors.Wrap(ErrInvalidAmount, "min out must align with withdraw ratios")
	}
	for i, r := range msg.WithdrawRatios {
		if r.IsNil() || r.IsNegative() || r.GT(WadInt) {
			return sdkerrors.Wrapf(ErrInvalidAmount, "withdraw ratio %d must be in [0, 1] WAD", i)
		}
		if msg.MinOut[i].IsNil() || msg.MinOut[i].IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidAmount, "min out %d must be non-negative", i)
		}
	}
	return nil
}
