package ante

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	protov2 "google.golang.org/protobuf/proto"
)

// mockMemoTx is a minimal sdk.Tx carrying only messages and a memo.
type mockMemoTx struct {
	msgs []sdk.Msg
	memo string
}

func (tx mockMemoTx) GetMsgs() []sdk.Msg { return tx.msgs }

func (tx mockMemoTx) GetMsgsV2() ([]protov2.Message, error) { return nil, nil }

func (tx mockMemoTx) GetMemo() string { return tx.memo }
