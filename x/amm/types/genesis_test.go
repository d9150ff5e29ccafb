package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/unitdex/unitdex/x/amm/types"
)

func validPool(id uint64) types.Pool {
	return types.Pool{
		ID:                 id,
		Address:            sdk.AccAddress(make([]byte, 20)).String(),
		Creator:            sdk.AccAddress(append(make([]byte, 19), 1)).String(),
		Assets:             []string{"uatom", "uosmo"},
		Weights:            []math.Int{math.OneInt(), math.OneInt()},
		OneMinusAmp:        wad.QuoRaw(2),
		TargetOneMinusAmp:  wad.QuoRaw(2),
		UnitTracker:        math.ZeroInt(),
		MaxUnitCapacity:    math.NewInt(2000),
		UsedUnitCapacity:   math.ZeroInt(),
		PoolFee:            math.LegacyZeroDec(),
		GovernanceFeeShare: math.LegacyZeroDec(),
		EscrowedAmounts:    []math.Int{math.ZeroInt(), math.ZeroInt()},
		EscrowedShares:     math.ZeroInt(),
		ShareDenom:         types.ShareDenomForPool(id),
	}
}

func TestDefaultGenesisValidates(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())
}

func TestGenesisValidate(t *testing.T) {
	base := func() *types.GenesisState {
		gs := types.DefaultGenesis()
		gs.NextPoolID = 2
		gs.Pools = []types.Pool{validPool(1)}
		return gs
	}
	require.NoError(t, base().Validate())

	cases := []struct {
		name   string
		mutate func(*types.GenesisState)
	}{
		{"empty port", func(gs *types.GenesisState) { gs.PortID = "" }},
		{"zero next pool id", func(gs *types.GenesisState) { gs.NextPoolID = 0 }},
		{"pool id not covered", func(gs *types.GenesisState) { gs.NextPoolID = 1 }},
		{"duplicate pool", func(gs *types.GenesisState) {
			gs.Pools = append(gs.Pools, validPool(1))
			gs.NextPoolID = 3
		}},
		{"invalid pool", func(gs *types.GenesisState) { gs.Pools[0].OneMinusAmp = math.ZeroInt() }},
		{"connection to unknown pool", func(gs *types.GenesisState) {
			gs.Connections = []types.Connection{{PoolID: 9, ChannelID: "channel-0", RemotePool: 1}}
		}},
		{"connection without channel", func(gs *types.GenesisState) {
			gs.Connections = []types.Connection{{PoolID: 1, ChannelID: "", RemotePool: 1}}
		}},
		{"escrow for unknown pool", func(gs *types.GenesisState) {
			gs.AssetEscrows = []types.AssetEscrowRecord{{
				PoolID: 9, Hash: "ff",
				Escrow: types.AssetEscrow{Amount: math.OneInt(), Units: math.OneInt()},
			}}
		}},
		{"escrow with bad hash", func(gs *types.GenesisState) {
			gs.AssetEscrows = []types.AssetEscrowRecord{{
				PoolID: 1, Hash: "not-hex",
				Escrow: types.AssetEscrow{Amount: math.OneInt(), Units: math.OneInt()},
			}}
		}},
		{"escrow without amount", func(gs *types.GenesisState) {
			gs.AssetEscrows = []types.AssetEscrowRecord{{
				PoolID: 1, Hash: "ff",
				Escrow: types.AssetEscrow{Amount: math.ZeroInt(), Units: math.OneInt()},
			}}
		}},
		{"liquidity escrow without shares", func(gs *types.GenesisState) {
			gs.LiquidityEscrows = []types.LiquidityEscrowRecord{{
				PoolID: 1, Hash: "ff",
				Escrow: types.LiquidityEscrow{Shares: math.ZeroInt(), Units: math.OneInt()},
			}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gs := base()
			tc.mutate(gs)
			require.Error(t, gs.Validate())
		})
	}
}

func TestPoolValidate(t *testing.T) {
	require.NoError(t, validPool(1).Validate())

	cases := []struct {
		name   string
		mutate func(*types.Pool)
	}{
		{"zero id", func(p *types.Pool) { p.ID = 0 }},
		{"bad address", func(p *types.Pool) { p.Address = "nope" }},
		{"no assets", func(p *types.Pool) { p.Assets = nil }},
		{"misaligned escrow totals", func(p *types.Pool) { p.EscrowedAmounts = p.EscrowedAmounts[:1] }},
		{"duplicate asset", func(p *types.Pool) { p.Assets[1] = "uatom" }},
		{"zero weight", func(p *types.Pool) { p.Weights[0] = math.ZeroInt() }},
		{"negative escrow total", func(p *types.Pool) { p.EscrowedAmounts[0] = math.NewInt(-1) }},
		{"amp above wad", func(p *types.Pool) { p.OneMinusAmp = wad.AddRaw(1) }},
		{"nil tracker", func(p *types.Pool) { p.UnitTracker = math.Int{} }},
		{"negative used capacity", func(p *types.Pool) { p.UsedUnitCapacity = math.NewInt(-1) }},
		{"fee of one", func(p *types.Pool) { p.PoolFee = math.LegacyOneDec() }},
		{"governance share too high", func(p *types.Pool) { p.GovernanceFeeShare = math.LegacyOneDec() }},
		{"missing share denom", func(p *types.Pool) { p.ShareDenom = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPool(1)
			tc.mutate(&p)
			require.Error(t, p.Validate())
		})
	}
}

func TestPoolAssetIndex(t *testing.T) {
	p := validPool(1)
	require.Equal(t, 0, p.AssetIndex("uatom"))
	require.Equal(t, 1, p.AssetIndex("uosmo"))
	require.Equal(t, -1, p.AssetIndex("ujuno"))
}

func TestShareDenomForPool(t *testing.T) {
	require.Equal(t, "amm/pool/7", types.ShareDenomForPool(7))
}
