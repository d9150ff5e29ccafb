package types

import (
	"fmt"

	"cosmossdk.io/math"
	"gopkg.in/yaml.v2"
)

// DecayWindowSeconds is the period over which used unit capacity decays
// linearly back to zero.
const DecayWindowSeconds = int64(24 * 60 * 60)

// Params defines the parameters for the amm module.
type Params struct {
	// DefaultPoolFee is applied to new pools whose creator does not set one.
	DefaultPoolFee math.LegacyDec `json:"default_pool_fee"`

	// DefaultGovernanceFeeShare is the initial governance cut of pool fees.
	DefaultGovernanceFeeShare math.LegacyDec `json:"default_governance_fee_share"`

	// GovernanceFeeCollector receives the governance share of fees. Empty
	// means the governance share stays in the pool.
	GovernanceFeeCollector string `json:"governance_fee_collector"`
}

// NewParams creates a new Params instance.
func NewParams(poolFee, govShare math.LegacyDec, collector string) Params {
	return Params{
		DefaultPoolFee:            poolFee,
		DefaultGovernanceFeeShare: govShare,
		GovernanceFeeCollector:    collector,
	}
}

// DefaultParams returns the default module parameters.
func DefaultParams() Params {
	return NewParams(
		math.LegacyMustNewDecFromStr("0.003"),
		math.LegacyMustNewDecFromStr("0.1"),
		"",
	)
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if p.DefaultPoolFee.IsNil() || p.DefaultPoolFee.IsNegative() || p.DefaultPoolFee.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("default pool fee must be in [0, 1): %s", p.DefaultPoolFee)
	}
	if p.DefaultGovernanceFeeShare.IsNil() || p.DefaultGovernanceFeeShare.IsNegative() || p.DefaultGovernanceFeeShare.GT(MaxGovernanceFeeShare) {
		return fmt.Errorf("default governance fee share must be in [0, %s]: %s", MaxGovernanceFeeShare, p.DefaultGovernanceFeeShare)
	}
	return nil
}

// String implements the Stringer interface.
func (p Params) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}
