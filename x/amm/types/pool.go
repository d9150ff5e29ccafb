package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// MaxAssets is the maximum number of assets per pool
	MaxAssets = 3

	// MinAdjustmentTime is the minimum runway for an amplification change
	MinAdjustmentTime = int64(7 * 24 * 60 * 60) // 7 days in seconds

	// MaxAdjustmentTime is the maximum runway for an amplification change
	MaxAdjustmentTime = int64(365 * 24 * 60 * 60) // 365 days in seconds
)

var (
	// WadInt is the fixed-point scale shared with the ammmath package.
	WadInt = math.NewInt(1_000_000_000_000_000_000)

	// InitialPoolShares is minted to the creator when a pool is set up.
	InitialPoolShares = math.NewInt(1_000_000_000_000_000_000)

	// MaxGovernanceFeeShare caps the governance cut of collected fees.
	MaxGovernanceFeeShare = math.LegacyMustNewDecFromStr("0.75")
)

// Pool is the amplified multi-asset pool aggregate. True asset balances are
// owned by the bank ledger at Address and are never cached here; everything
// the bank cannot know (weights, curve parameter, escrow totals, the unit
// tracker and the capacity counters) lives in this record.
type Pool struct {
	ID      uint64 `json:"id"`
	Address string `json:"address"`
	Creator string `json:"creator"`

	// Assets and Weights are index-addressed and immutable after setup.
	Assets  []string   `json:"assets"`
	Weights []math.Int `json:"weights"`

	// OneMinusAmp is 1 - amplification in WAD, 0 < value <= WAD.
	// The remaining three fields are the adjustment schedule; a zero
	// AmpAdjustmentDeadline means no adjustment is in progress.
	OneMinusAmp           math.Int `json:"one_minus_amp"`
	TargetOneMinusAmp     math.Int `json:"target_one_minus_amp"`
	AmpAdjustmentDeadline int64    `json:"amp_adjustment_deadline"`
	AmpLastUpdate         int64    `json:"amp_last_update"`

	// UnitTracker is the signed sum of units sent minus units received.
	UnitTracker math.Int `json:"unit_tracker"`

	// Security limit counters. UsedUnitCapacity decays linearly to zero
	// over the decay window; CapacityLastUpdate anchors the decay.
	MaxUnitCapacity    math.Int `json:"max_unit_capacity"`
	UsedUnitCapacity   math.Int `json:"used_unit_capacity"`
	CapacityLastUpdate int64    `json:"capacity_last_update"`

	PoolFee            math.LegacyDec `json:"pool_fee"`
	GovernanceFeeShare math.LegacyDec `json:"governance_fee_share"`

	// Escrow totals, always covered by the bank balance / share supply.
	EscrowedAmounts []math.Int `json:"escrowed_amounts"`
	EscrowedShares  math.Int   `json:"escrowed_shares"`

	ShareDenom string `json:"share_denom"`
}

// ShareDenomForPool returns the bank denom of a pool's share token.
func ShareDenomForPool(poolID uint64) string {
	return fmt.Sprintf("%s/pool/%d", ModuleName, poolID)
}

// AssetIndex returns the index of denom in the pool, or -1.
func (p Pool) AssetIndex(denom string) int {
	for i, a := range p.Assets {
		if a == denom {
			return i
		}
	}
	return -1
}

// GetAddress parses the pool's bech32 account address.
func (p Pool) GetAddress() sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(p.Address)
	if err != nil {
		panic(fmt.Errorf("pool %d has invalid address: %w", p.ID, err))
	}
	return addr
}

// Validate checks the structural pool invariants.
func (p Pool) Validate() error {
	if p.ID == 0 {
		return ErrInvalidPoolID.Wrap("pool id must be positive")
	}
	if _, err := sdk.AccAddressFromBech32(p.Address); err != nil {
		return ErrInvalidAddress.Wrapf("pool address: %s", err)
	}
	if len(p.Assets) == 0 || len(p.Assets) > MaxAssets {
		return ErrInvalidSetup.Wrapf("pool must hold 1..%d assets, got %d", MaxAssets, len(p.Assets))
	}
	if len(p.Weights) != len(p.Assets) || len(p.EscrowedAmounts) != len(p.Assets) {
		return ErrInvalidSetup.Wrap("assets, weights and escrow totals must align")
	}
	seen := make(map[string]struct{}, len(p.Assets))
	for i, a := range p.Assets {
		if a == "" {
			return ErrInvalidSetup.Wrapf("asset %d has empty denom", i)
		}
		if _, dup := seen[a]; dup {
			return ErrInvalidSetup.Wrapf("duplicate asset %s", a)
		}
		seen[a] = struct{}{}
		if p.Weights[i].IsNil() || !p.Weights[i].IsPositive() {
			return ErrInvalidSetup.Wrapf("asset %s has non-positive weight", a)
		}
		if p.EscrowedAmounts[i].IsNil() || p.EscrowedAmounts[i].IsNegative() {
			return ErrInvalidSetup.Wrapf("asset %s has negative escrow total", a)
		}
	}
	if p.OneMinusAmp.IsNil() || !p.OneMinusAmp.IsPositive() || p.OneMinusAmp.GT(WadInt) {
		return ErrInvalidAmplification.Wrap("one minus amp must be in (0, 1] WAD")
	}
	if p.AmpAdjustmentDeadline != 0 {
		if p.TargetOneMinusAmp.IsNil() || !p.TargetOneMinusAmp.IsPositive() || p.TargetOneMinusAmp.GT(WadInt) {
			return ErrInvalidAmplification.Wrap("target one minus amp must be in (0, 1] WAD")
		}
	}
	if p.UnitTracker.IsNil() {
		return ErrInvalidSetup.Wrap("unit tracker must be set")
	}
	if p.MaxUnitCapacity.IsNil() || p.MaxUnitCapacity.IsNegative() {
		return ErrInvalidSetup.Wrap("max unit capacity must be non-negative")
	}
	if p.UsedUnitCapacity.IsNil() || p.UsedUnitCapacity.IsNegative() {
		return ErrInvalidSetup.Wrap("used unit capacity must be non-negative")
	}
	if p.PoolFee.IsNil() || p.PoolFee.IsNegative() || p.PoolFee.GTE(math.LegacyOneDec()) {
		return ErrInvalidFee.Wrap("pool fee must be in [0, 1)")
	}
	if p.GovernanceFeeShare.IsNil() || p.GovernanceFeeShare.IsNegative() || p.GovernanceFeeShare.GT(MaxGovernanceFeeShare) {
		return ErrInvalidFee.Wrapf("governance fee share must be in [0, %s]", MaxGovernanceFeeShare)
	}
	if p.EscrowedShares.IsNil() || p.EscrowedShares.IsNegative() {
		return ErrInvalidSetup.Wrap("escrowed shares must be non-negative")
	}
	if p.ShareDenom == "" {
		return ErrInvalidSetup.Wrap("share denom must be set")
	}
	return nil
}

// AssetEscrow is the durable memory of an in-flight outbound asset swap.
// Exactly one settlement (success, failure or timeout-driven failure)
// deletes it; its absence marks the leg as already settled.
type AssetEscrow struct {
	FallbackAccount string   `json:"fallback_account"`
	AssetIndex      int      `json:"asset_index"`
	Amount          math.Int `json:"amount"`
	Units           math.Int `json:"units"`
	BlockHeight     int64    `json:"block_height"`
}

// LiquidityEscrow is the durable memory of an in-flight outbound
// liquidity swap.
type LiquidityEscrow struct {
	FallbackAccount string   `json:"fallback_account"`
	Shares          math.Int `json:"shares"`
	Units           math.Int `json:"units"`
	BlockHeight     int64    `json:"block_height"`
}
