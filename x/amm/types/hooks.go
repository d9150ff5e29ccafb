package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// UnitsReceiver is invoked after an inbound asset swap has paid out, when
// the packet carries call data. An error aborts the whole receive so the
// source chain refunds the sender.
type UnitsReceiver interface {
	OnUnitsReceived(ctx sdk.Context, poolID uint64, receiver sdk.AccAddress, asset string, amount math.Int, callData []byte) error
}
