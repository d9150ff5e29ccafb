package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgCreatePool{}

// MsgCreatePool defines a message to create a new amplified pool
type MsgCreatePool struct {
	Creator     string         `json:"creator"`
	Assets      []string       `json:"assets"`
	Amounts     []math.Int     `json:"amounts"`
	Weights     []math.Int     `json:"weights"`
	OneMinusAmp math.Int       `json:"one_minus_amp"`
	PoolFee     math.LegacyDec `json:"pool_fee"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator string, assets []string, amounts, weights []math.Int, oneMinusAmp math.Int, poolFee math.LegacyDec) *MsgCreatePool {
	return &MsgCreatePool{
		Creator:     creator,
		Assets:      assets,
		Amounts:     amounts,
		Weights:     weights,
		OneMinusAmp: oneMinusAmp,
		PoolFee:     poolFee,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgCreatePool) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgCreatePool) Type() string {
	return "create_pool"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{creator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgCreatePool) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgCreatePool) ValidateBasic() error {
	_, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid creator address: %s", err)
	}

	if len(msg.Assets) == 0 || len(msg.Assets) > MaxAssets {
		return sdkerrors.Wrapf(ErrInvalidSetup, "pool must hold 1..%d assets, got %d", MaxAssets, len(msg.Assets))
	}
	if len(msg.Amounts) != len(msg.Assets) || len(msg.Weights) != len(msg.Assets) {
		return sdkerrors.Wrap(ErrInvalidSetup, "assets, amounts and weights must align")
	}

	seen := make(map[string]struct{}, len(msg.Assets))
	for i, asset := range msg.Assets {
		if err := sdk.ValidateDenom(asset); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAsset, "asset %d: %s", i, err)
		}
		if _, dup := seen[asset]; dup {
			return sdkerrors.Wrapf(ErrInvalidSetup, "duplicate asset %s", asset)
		}
		seen[asset] = struct{}{}
		if msg.Amounts[i].IsNil() || !msg.Amounts[i].IsPositive() {
			return sdkerrors.Wrapf(ErrInvalidAmount, "initial amount for %s must be positive", asset)
		}
		if msg.Weights[i].IsNil() || !msg.Weights[i].IsPositive() {
			return sdkerrors.Wrapf(ErrInvalidSetup, "weight for %s must be positive", asset)
		}
	}

	if msg.OneMinusAmp.IsNil() || !msg.OneMinusAmp.IsPositive() || msg.OneMinusAmp.GT(WadInt) {
		return sdkerrors.Wrap(ErrInvalidAmplification, "one minus amp must be in (0, 1] WAD")
	}
	if msg.PoolFee.IsNil() || msg.PoolFee.IsNegative() || msg.PoolFee.GTE(math.LegacyOneDec()) {
		return sdkerrors.Wrap(ErrInvalidFee, "pool fee must be in [0, 1)")
	}

	return nil
}
