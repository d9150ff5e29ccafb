package ante

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	ammtypes "github.com/unitdex/unitdex/x/amm/types"
)

func TestAMMDecorator(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	creator := sdk.AccAddress([]byte("creator_____________"))
	f.Bank.FundAccount(creator, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1000)),
		sdk.NewCoin("uosmo", math.NewInt(1000)),
	))

	pool, err := f.Keeper.CreatePool(f.Ctx, creator,
		[]string{"uatom", "uosmo"},
		[]math.Int{math.NewInt(1000), math.NewInt(1000)},
		[]math.Int{math.OneInt(), math.OneInt()},
		ammtypes.WadInt.QuoRaw(2),
		math.LegacyZeroDec(),
	)
	require.NoError(t, err)

	ante := sdk.ChainAnteDecorators(NewAMMDecorator(f.Keeper))

	swap := &ammtypes.MsgLocalSwap{
		Sender:    creator.String(),
		PoolID:    pool.ID,
		FromAsset: "uatom",
		ToAsset:   "uosmo",
		Amount:    math.NewInt(10),
		MinOut:    math.ZeroInt(),
	}

	// known pool and assets pass
	_, err = ante(f.Ctx, mockMemoTx{msgs: []sdk.Msg{swap}}, false)
	require.NoError(t, err)

	// unknown pool fails
	badPool := *swap
	badPool.PoolID = 99
	_, err = ante(f.Ctx, mockMemoTx{msgs: []sdk.Msg{&badPool}}, false)
	require.ErrorIs(t, err, ammtypes.ErrPoolNotFound)

	// asset outside the pool fails
	badAsset := *swap
	badAsset.ToAsset = "ujuno"
	_, err = ante(f.Ctx, mockMemoTx{msgs: []sdk.Msg{&badAsset}}, false)
	require.ErrorIs(t, err, ammtypes.ErrInvalidAsset)

	// simulation skips the lookup entirely
	_, err = ante(f.Ctx, mockMemoTx{msgs: []sdk.Msg{&badPool}}, true)
	require.NoError(t, err)
}

func TestAMMDecoratorSendMsgs(t *testing.T) {
	f := keepertest.AmmKeeper(t)

	ante := sdk.ChainAnteDecorators(NewAMMDecorator(f.Keeper))

	send := ammtypes.NewMsgSendAsset(
		sdk.AccAddress([]byte("sender______________")).String(),
		7, "channel-0", 2,
		sdk.AccAddress([]byte("receiver____________")).String(),
		"uatom", 0, math.NewInt(100), math.ZeroInt(),
	)

	_, err := ante(f.Ctx, mockMemoTx{msgs: []sdk.Msg{send}}, false)
	require.ErrorIs(t, err, ammtypes.ErrPoolNotFound)

	liq := ammtypes.NewMsgSendLiquidity(
		sdk.AccAddress([]byte("sender______________")).String(),
		7, "channel-0", 2,
		sdk.AccAddress([]byte("receiver____________")).String(),
		math.NewInt(100), math.ZeroInt(), math.ZeroInt(),
	)

	_, err = ante(f.Ctx, mockMemoTx{msgs: []sdk.Msg{liq}}, false)
	require.ErrorIs(t, err, ammtypes.ErrPoolNotFound)
}
