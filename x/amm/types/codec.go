package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the necessary interfaces and concrete types
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "amm/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgLocalSwap{}, "amm/MsgLocalSwap", nil)
	cdc.RegisterConcrete(&MsgDeposit{}, "amm/MsgDeposit", nil)
	cdc.RegisterConcrete(&MsgWithdrawAll{}, "amm/MsgWithdrawAll", nil)
	cdc.RegisterConcrete(&MsgWithdrawMixed{}, "amm/MsgWithdrawMixed", nil)
	cdc.RegisterConcrete(&MsgSendAsset{}, "amm/MsgSendAsset", nil)
	cdc.RegisterConcrete(&MsgSendLiquidity{}, "amm/MsgSendLiquidity", nil)
	cdc.RegisterConcrete(&MsgSetAmplification{}, "amm/MsgSetAmplification", nil)
	cdc.RegisterConcrete(&MsgSetFees{}, "amm/MsgSetFees", nil)
	cdc.RegisterConcrete(&MsgSetConnection{}, "amm/MsgSetConnection", nil)
}

// RegisterInterfaces registers the module's interfaces with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgLocalSwap{},
		&MsgDeposit{},
		&MsgWithdrawAll{},
		&MsgWithdrawMixed{},
		&MsgSendAsset{},
		&MsgSendLiquidity{},
		&MsgSetAmplification{},
		&MsgSetFees{},
		&MsgSetConnection{},
	)
}

var (
	amino     = codec.NewLegacyAmino()
	ModuleCdc = codec.NewAminoCodec(amino)
)

func init() {
	RegisterCodec(amino)
	amino.Seal()
}
