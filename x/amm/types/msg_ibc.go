package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgSendAsset{}
	_ sdk.Msg = &MsgSendLiquidity{}
)

// MsgSendAsset defines a message to swap an asset into units and send the
// units to a connected pool on another chain. Fallback receives the refund
// if the remote leg fails or times out; empty means the sender.
type MsgSendAsset struct {
	Sender         string   `json:"sender"`
	PoolID         uint64   `json:"pool_id"`
	ChannelID      string   `json:"channel_id"`
	ToPool         uint64   `json:"to_pool"`
	ToAccount      string   `json:"to_account"`
	FromAsset      string   `json:"from_asset"`
	ToAssetIndex   uint8    `json:"to_asset_index"`
	Amount         math.Int `json:"amount"`
	MinOut         math.Int `json:"min_out"`
	Fallback       string   `json:"fallback,omitempty"`
	CallData       []byte   `json:"call_data,omitempty"`
	TimeoutSeconds uint64   `json:"timeout_seconds,omitempty"`
}

// NewMsgSendAsset creates a new MsgSendAsset instance
func NewMsgSendAsset(sender string, poolID uint64, channelID string, toPool uint64, toAccount, fromAsset string, toAssetIndex uint8, amount, minOut math.Int) *MsgSendAsset {
	return &MsgSendAsset{
		Sender:       sender,
		PoolID:       poolID,
		ChannelID:    channelID,
		ToPool:       toPool,
		ToAccount:    toAccount,
		FromAsset:    fromAsset,
		ToAssetIndex: toAssetIndex,
		Amount:       amount,
		MinOut:       minOut,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSendAsset) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSendAsset) Type() string {
	return "send_asset"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSendAsset) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSendAsset) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSendAsset) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if msg.PoolID == 0 || msg.ToPool == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool ids must be positive")
	}
	if msg.ChannelID == "" {
		return sdkerrors.Wrap(ErrInvalidPacket, "channel id cannot be empty")
	}
	if msg.ToAccount == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "destination account cannot be empty")
	}
	if msg.FromAsset == "" {
		return sdkerrors.Wrap(ErrInvalidAsset, "from asset cannot be empty")
	}
	if int(msg.ToAssetIndex) >= MaxAssets {
		return sdkerrors.Wrapf(ErrInvalidAsset, "to asset index out of range: %d", msg.ToAssetIndex)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "swap amount must be positive")
	}
	if msg.MinOut.IsNil() || msg.MinOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min out must be non-negative")
	}
	if msg.Fallback != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Fallback); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid fallback address: %s", err)
		}
	}
	return nil
}

// MsgSendLiquidity defines a message to burn pool shares into units and
// send the units to a connected pool on another chain. MinOut floors the
// minted share count at the destination; MinReferenceAsset floors the
// reference-asset value backing those shares.
type MsgSendLiquidity struct {
	Sender            string   `json:"sender"`
	PoolID            uint64   `json:"pool_id"`
	ChannelID         string   `json:"channel_id"`
	ToPool            uint64   `json:"to_pool"`
	ToAccount         string   `json:"to_account"`
	Shares            math.Int `json:"shares"`
	MinOut            math.Int `json:"min_out"`
	MinReferenceAsset math.Int `json:"min_reference_asset"`
	Fallback          string   `json:"fallback,omitempty"`
	TimeoutSeconds    uint64   `json:"timeout_seconds,omitempty"`
}

// NewMsgSendLiquidity creates a new MsgSendLiquidity instance
func NewMsgSendLiquidity(sender string, poolID uint64, channelID string, toPool uint64, toAccount string, shares, minOut, minReferenceAsset math.Int) *MsgSendLiquidity {
	return &MsgSendLiquidity{
		Sender:            sender,
		PoolID:            poolID,
		ChannelID:         channelID,
		ToPool:            toPool,
		ToAccount:         toAccount,
		Shares:            shares,
		MinOut:            minOut,
		MinReferenceAsset: minReferenceAsset,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSendLiquidity) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSendLiquidity) Type() string {
	return "send_liquidity"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSendLiquidity) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSendLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSendLiquidity) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if msg.PoolID == 0 || msg.ToPool == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool ids must be positive")
	}
	if msg.ChannelID == "" {
		return sdkerrors.Wrap(ErrInvalidPacket, "channel id cannot be empty")
	}
	if msg.ToAccount == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "destination account cannot be empty")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "shares must be positive")
	}
	if msg.MinOut.IsNil() || msg.MinOut.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min out must be non-negative")
	}
	if msg.MinReferenceAsset.IsNil() || msg.MinReferenceAsset.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "min reference asset must be non-negative")
	}
	if msg.Fallback != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Fallback); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid fallback address: %s", err)
		}
	}
	return nil
}
