package types

import (
	"encoding/json"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Packet type discriminators. Every amm packet is JSON with a "type" field
// so a single channel can carry both asset and liquidity swaps.
const (
	PacketTypeAssetSwap     = "asset_swap"
	PacketTypeLiquiditySwap = "liquidity_swap"
)

// PacketData is implemented by all amm packet payloads.
type PacketData interface {
	GetType() string
	GetBytes() []byte
	ValidateBasic() error
}

// AssetSwapPacketData carries a cross-chain asset swap. Units is the
// chain-independent value being moved; everything else identifies the
// source leg so the destination can verify the connection and the source
// can settle its escrow.
type AssetSwapPacketData struct {
	Type         string   `json:"type"`
	FromPool     uint64   `json:"from_pool"`
	ToPool       uint64   `json:"to_pool"`
	ToAccount    string   `json:"to_account"`
	Units        math.Int `json:"units"`
	ToAssetIndex uint8    `json:"to_asset_index"`
	MinOut       math.Int `json:"min_out"`
	FromAmount   math.Int `json:"from_amount"`
	FromAsset    string   `json:"from_asset"`
	BlockHeight  int64    `json:"block_height"`
	CallData     []byte   `json:"call_data,omitempty"`
}

// GetType returns the packet type discriminator
func (p AssetSwapPacketData) GetType() string { return PacketTypeAssetSwap }

// GetBytes returns the canonical wire encoding of the packet
func (p AssetSwapPacketData) GetBytes() []byte {
	p.Type = PacketTypeAssetSwap
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// ValidateBasic performs stateless validation of the packet
func (p AssetSwapPacketData) ValidateBasic() error {
	if p.FromPool == 0 || p.ToPool == 0 {
		return ErrInvalidPacket.Wrap("pool ids must be positive")
	}
	if p.ToAccount == "" {
		return ErrInvalidPacket.Wrap("missing destination account")
	}
	if p.Units.IsNil() || p.Units.IsNegative() {
		return ErrInvalidPacket.Wrap("units must be non-negative")
	}
	if p.MinOut.IsNil() || p.MinOut.IsNegative() {
		return ErrInvalidPacket.Wrap("min out must be non-negative")
	}
	if p.FromAmount.IsNil() || p.FromAmount.IsNegative() {
		return ErrInvalidPacket.Wrap("from amount must be non-negative")
	}
	if p.FromAsset == "" {
		return ErrInvalidPacket.Wrap("missing source asset")
	}
	if p.BlockHeight <= 0 {
		return ErrInvalidPacket.Wrap("block height must be positive")
	}
	return nil
}

// LiquiditySwapPacketData carries a cross-chain liquidity move. Shares were
// burned at the source and are re-minted at the destination from Units.
// MinOut floors the minted share count; MinReferenceAsset floors the
// reference-asset value backing those shares, which holds across pools with
// different share supplies.
type LiquiditySwapPacketData struct {
	Type              string   `json:"type"`
	FromPool          uint64   `json:"from_pool"`
	ToPool            uint64   `json:"to_pool"`
	ToAccount         string   `json:"to_account"`
	Units             math.Int `json:"units"`
	MinOut            math.Int `json:"min_out"`
	MinReferenceAsset math.Int `json:"min_reference_asset"`
	FromShares        math.Int `json:"from_shares"`
	BlockHeight       int64    `json:"block_height"`
}

// GetType returns the packet type discriminator
func (p LiquiditySwapPacketData) GetType() string { return PacketTypeLiquiditySwap }

// GetBytes returns the canonical wire encoding of the packet
func (p LiquiditySwapPacketData) GetBytes() []byte {
	p.Type = PacketTypeLiquiditySwap
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// ValidateBasic performs stateless validation of the packet
func (p LiquiditySwapPacketData) ValidateBasic() error {
	if p.FromPool == 0 || p.ToPool == 0 {
		return ErrInvalidPacket.Wrap("pool ids must be positive")
	}
	if p.ToAccount == "" {
		return ErrInvalidPacket.Wrap("missing destination account")
	}
	if p.Units.IsNil() || p.Units.IsNegative() {
		return ErrInvalidPacket.Wrap("units must be non-negative")
	}
	if p.MinOut.IsNil() || p.MinOut.IsNegative() {
		return ErrInvalidPacket.Wrap("min out must be non-negative")
	}
	if p.MinReferenceAsset.IsNil() || p.MinReferenceAsset.IsNegative() {
		return ErrInvalidPacket.Wrap("min reference asset must be non-negative")
	}
	if p.FromShares.IsNil() || !p.FromShares.IsPositive() {
		return ErrInvalidPacket.Wrap("from shares must be positive")
	}
	if p.BlockHeight <= 0 {
		return ErrInvalidPacket.Wrap("block height must be positive")
	}
	return nil
}

// ParsePacketData decodes raw packet bytes into the concrete payload type.
func ParsePacketData(bz []byte) (PacketData, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(bz, &envelope); err != nil {
		return nil, ErrInvalidPacket.Wrapf("malformed packet: %s", err)
	}
	switch envelope.Type {
	case PacketTypeAssetSwap:
		var p AssetSwapPacketData
		if err := json.Unmarshal(bz, &p); err != nil {
			return nil, ErrInvalidPacket.Wrapf("malformed asset swap packet: %s", err)
		}
		return p, nil
	case PacketTypeLiquiditySwap:
		var p LiquiditySwapPacketData
		if err := json.Unmarshal(bz, &p); err != nil {
			return nil, ErrInvalidPacket.Wrapf("malformed liquidity swap packet: %s", err)
		}
		return p, nil
	default:
		return nil, ErrInvalidPacket.Wrapf("unknown packet type %q", envelope.Type)
	}
}
