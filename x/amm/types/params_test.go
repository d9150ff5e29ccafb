package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/unitdex/unitdex/x/amm/types"
)

func TestDefaultParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.Params)
		valid  bool
	}{
		{"zero fee", func(p *types.Params) { p.DefaultPoolFee = math.LegacyZeroDec() }, true},
		{"collector set", func(p *types.Params) { p.GovernanceFeeCollector = testAcc }, true},
		{"nil fee", func(p *types.Params) { p.DefaultPoolFee = math.LegacyDec{} }, false},
		{"negative fee", func(p *types.Params) { p.DefaultPoolFee = math.LegacyNewDec(-1) }, false},
		{"fee of one", func(p *types.Params) { p.DefaultPoolFee = math.LegacyOneDec() }, false},
		{"nil governance share", func(p *types.Params) { p.DefaultGovernanceFeeShare = math.LegacyDec{} }, false},
		{"governance share above cap", func(p *types.Params) {
			p.DefaultGovernanceFeeShare = types.MaxGovernanceFeeShare.Add(math.LegacySmallestDec())
		}, false},
		{"governance share at cap", func(p *types.Params) {
			p.DefaultGovernanceFeeShare = types.MaxGovernanceFeeShare
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := types.DefaultParams()
			tc.mutate(&p)
			if tc.valid {
				require.NoError(t, p.Validate())
			} else {
				require.Error(t, p.Validate())
			}
		})
	}
}
