package app

import (
	"encoding/json"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	crisistypes "github.com/cosmos/cosmos-sdk/x/crisis/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
)

// GenesisState represents the genesis state of the blockchain.
// It is a map from module name to module genesis state.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default state for the application,
// with the network's staking denom applied across modules.
func NewDefaultGenesisState(cdc codec.JSONCodec) GenesisState {
	genesis := ModuleBasics.DefaultGenesis(cdc)

	// Staking module - validator and delegation management
	stakingGenesis := stakingtypes.DefaultGenesisState()
	stakingGenesis.Params.BondDenom = BondDenom
	stakingGenesis.Params.UnbondingTime = time.Duration(1814400) * time.Second // 21 days
	stakingGenesis.Params.MinCommissionRate = math.LegacyMustNewDecFromStr("0.05")
	genesis[stakingtypes.ModuleName] = cdc.MustMarshalJSON(stakingGenesis)

	// Governance module - on-chain governance
	govGenesis := govtypes.DefaultGenesisState()
	govGenesis.Params.MinDeposit = sdk.NewCoins(sdk.NewInt64Coin(BondDenom, 10000000000))
	genesis["gov"] = cdc.MustMarshalJSON(govGenesis)

	// Mint module - token emission
	mintGenesis := minttypes.DefaultGenesisState()
	mintGenesis.Params.MintDenom = BondDenom
	genesis[minttypes.ModuleName] = cdc.MustMarshalJSON(mintGenesis)

	// Crisis module - invariant checking
	crisisGenesis := crisistypes.DefaultGenesisState()
	crisisGenesis.ConstantFee = sdk.NewInt64Coin(BondDenom, 1000000000)
	genesis[crisistypes.ModuleName] = cdc.MustMarshalJSON(crisisGenesis)

	return genesis
}
