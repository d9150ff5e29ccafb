package ante

import (
	"strings"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestMemoLimitDecorator(t *testing.T) {
	ante := sdk.ChainAnteDecorators(NewMemoLimitDecorator(16))
	ctx := sdk.Context{}.WithTxBytes([]byte{})

	// a memo at the budget passes, one byte over does not
	_, err := ante(ctx, mockMemoTx{memo: strings.Repeat("m", 16)}, false)
	require.NoError(t, err)

	_, err = ante(ctx, mockMemoTx{memo: strings.Repeat("m", 17)}, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "memo")
}
