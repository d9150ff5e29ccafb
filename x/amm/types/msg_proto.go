package types

import (
	"encoding/json"

	"github.com/cosmos/gogoproto/proto"
)

// The messages in this package are hand-written JSON types rather than
// protobuf-generated ones. sdk.Msg aliases gogoproto's proto.Message, so
// each message carries the three stub methods below.

var (
	_ proto.Message = (*MsgCreatePool)(nil)
	_ proto.Message = (*MsgLocalSwap)(nil)
	_ proto.Message = (*MsgDeposit)(nil)
	_ proto.Message = (*MsgWithdrawAll)(nil)
	_ proto.Message = (*MsgWithdrawMixed)(nil)
	_ proto.Message = (*MsgSendAsset)(nil)
	_ proto.Message = (*MsgSendLiquidity)(nil)
	_ proto.Message = (*MsgSetAmplification)(nil)
	_ proto.Message = (*MsgSetFees)(nil)
	_ proto.Message = (*MsgSetConnection)(nil)
)

func msgString(msg interface{}) string {
	bz, err := json.Marshal(msg)
	if err != nil {
		return err.Error()
	}
	return string(bz)
}

func (msg *MsgCreatePool) Reset()         { *msg = MsgCreatePool{} }
func (msg *MsgCreatePool) String() string { return msgString(msg) }
func (msg *MsgCreatePool) ProtoMessage()  {}

func (msg *MsgLocalSwap) Reset()         { *msg = MsgLocalSwap{} }
func (msg *MsgLocalSwap) String() string { return msgString(msg) }
func (msg *MsgLocalSwap) ProtoMessage()  {}

func (msg *MsgDeposit) Reset()         { *msg = MsgDeposit{} }
func (msg *MsgDeposit) String() string { return msgString(msg) }
func (msg *MsgDeposit) ProtoMessage()  {}

func (msg *MsgWithdrawAll) Reset()         { *msg = MsgWithdrawAll{} }
func (msg *MsgWithdrawAll) String() string { return msgString(msg) }
func (msg *MsgWithdrawAll) ProtoMessage()  {}

func (msg *MsgWithdrawMixed) Reset()         { *msg = MsgWithdrawMixed{} }
func (msg *MsgWithdrawMixed) String() string { return msgString(msg) }
func (msg *MsgWithdrawMixed) ProtoMessage()  {}

func (msg *MsgSendAsset) Reset()         { *msg = MsgSendAsset{} }
func (msg *MsgSendAsset) String() string { return msgString(msg) }
func (msg *MsgSendAsset) ProtoMessage()  {}

func (msg *MsgSendLiquidity) Reset()         { *msg = MsgSendLiquidity{} }
func (msg *MsgSendLiquidity) String() string { return msgString(msg) }
func (msg *MsgSendLiquidity) ProtoMessage()  {}

func (msg *MsgSetAmplification) Reset()         { *msg = MsgSetAmplification{} }
func (msg *MsgSetAmplification) String() string { return msgString(msg) }
func (msg *MsgSetAmplification) ProtoMessage()  {}

func (msg *MsgSetFees) Reset()         { *msg = MsgSetFees{} }
func (msg *MsgSetFees) String() string { return msgString(msg) }
func (msg *MsgSetFees) ProtoMessage()  {}

func (msg *MsgSetConnection) Reset()         { *msg = MsgSetConnection{} }
func (msg *MsgSetConnection) String() string { return msgString(msg) }
func (msg *MsgSetConnection) ProtoMessage()  {}
