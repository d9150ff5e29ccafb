package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgSetAmplification{}
	_ sdk.Msg = &MsgSetFees{}
	_ sdk.Msg = &MsgSetConnection{}
)

// MsgSetAmplification schedules a gradual amplification change. The pool
// interpolates OneMinusAmp linearly from its current value to the target
// until Deadline (unix seconds).
type MsgSetAmplification struct {
	Authority         string   `json:"authority"`
	PoolID            uint64   `json:"pool_id"`
	TargetOneMinusAmp math.Int `json:"target_one_minus_amp"`
	Deadline          int64    `json:"deadline"`
}

// NewMsgSetAmplification creates a new MsgSetAmplification instance
func NewMsgSetAmplification(authority string, poolID uint64, target math.Int, deadline int64) *MsgSetAmplification {
	return &MsgSetAmplification{
		Authority:         authority,
		PoolID:            poolID,
		TargetOneMinusAmp: target,
		Deadline:          deadline,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSetAmplification) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSetAmplification) Type() string {
	return "set_amplification"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSetAmplification) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetAmplification) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetAmplification) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolID == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool id must be positive")
	}
	if msg.TargetOneMinusAmp.IsNil() || !msg.TargetOneMinusAmp.IsPositive() || msg.TargetOneMinusAmp.GT(WadInt) {
		return sdkerrors.Wrap(ErrInvalidAmplification, "target one minus amp must be in (0, 1] WAD")
	}
	if msg.Deadline <= 0 {
		return sdkerrors.Wrap(ErrInvalidAmplification, "deadline must be positive")
	}
	return nil
}

// MsgSetFees updates a pool's fee configuration.
type MsgSetFees struct {
	Authority          string         `json:"authority"`
	PoolID             uint64         `json:"pool_id"`
	PoolFee            math.LegacyDec `json:"pool_fee"`
	GovernanceFeeShare math.LegacyDec `json:"governance_fee_share"`
}

// NewMsgSetFees creates a new MsgSetFees instance
func NewMsgSetFees(authority string, poolID uint64, poolFee, govShare math.LegacyDec) *MsgSetFees {
	return &MsgSetFees{
		Authority:          authority,
		PoolID:             poolID,
		PoolFee:            poolFee,
		GovernanceFeeShare: govShare,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSetFees) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSetFees) Type() string {
	return "set_fees"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSetFees) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetFees) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetFees) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolID == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool id must be positive")
	}
	if msg.PoolFee.IsNil() || msg.PoolFee.IsNegative() || msg.PoolFee.GTE(math.LegacyOneDec()) {
		return sdkerrors.Wrap(ErrInvalidFee, "pool fee must be in [0, 1)")
	}
	if msg.GovernanceFeeShare.IsNil() || msg.GovernanceFeeShare.IsNegative() || msg.GovernanceFeeShare.GT(MaxGovernanceFeeShare) {
		return sdkerrors.Wrapf(ErrInvalidFee, "governance fee share must be in [0, %s]", MaxGovernanceFeeShare)
	}
	return nil
}

// MsgSetConnection marks a remote pool on an IBC channel as a trusted
// counterpart of a local pool, or removes the mark.
type MsgSetConnection struct {
	Authority  string `json:"authority"`
	PoolID     uint64 `json:"pool_id"`
	ChannelID  string `json:"channel_id"`
	RemotePool uint64 `json:"remote_pool"`
	Connected  bool   `json:"connected"`
}

// NewMsgSetConnection creates a new MsgSetConnection instance
func NewMsgSetConnection(authority string, poolID uint64, channelID string, remotePool uint64, connected bool) *MsgSetConnection {
	return &MsgSetConnection{
		Authority:  authority,
		PoolID:     poolID,
		ChannelID:  channelID,
		RemotePool: remotePool,
		Connected:  connected,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSetConnection) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSetConnection) Type() string {
	return "set_connection"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSetConnection) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetConnection) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetConnection) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolID == 0 || msg.RemotePool == 0 {
		return sdkerrors.Wrap(ErrInvalidPoolID, "pool ids must be positive")
	}
	if msg.ChannelID == "" {
		return sdkerrors.Wrap(ErrInvalidPacket, "channel id cannot be empty")
	}
	return nil
}
