package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestMsgServerCreatePoolAndSwap(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)

	creator := testAddr("creator")
	f.Bank.FundAccount(creator, sdk.NewCoins(
		sdk.NewCoin("uatom", math.NewInt(1_000_000)),
		sdk.NewCoin("uosmo", math.NewInt(1_000_000)),
	))

	created, err := ms.CreatePool(f.Ctx, &types.MsgCreatePool{
		Creator:     creator.String(),
		Assets:      []string{"uatom", "uosmo"},
		Amounts:     []math.Int{math.NewInt(1000), math.NewInt(1000)},
		Weights:     []math.Int{math.OneInt(), math.OneInt()},
		OneMinusAmp: halfWad,
		PoolFee:     math.LegacyZeroDec(),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), created.PoolID)

	swapped, err := ms.LocalSwap(f.Ctx, &types.MsgLocalSwap{
		Sender:    creator.String(),
		PoolID:    created.PoolID,
		FromAsset: "uatom",
		ToAsset:   "uosmo",
		Amount:    math.NewInt(100),
		MinOut:    math.ZeroInt(),
	})
	require.NoError(t, err)
	require.True(t, swapped.AmountOut.IsPositive())

	// a message that fails stateless validation never reaches the keeper
	_, err = ms.LocalSwap(f.Ctx, &types.MsgLocalSwap{
		Sender:    "not-an-address",
		PoolID:    created.PoolID,
		FromAsset: "uatom",
		ToAsset:   "uosmo",
		Amount:    math.NewInt(100),
		MinOut:    math.ZeroInt(),
	})
	require.Error(t, err)
}

func TestMsgServerAuthorityGating(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)
	pool := createTestPool(t, f, testAddr("creator"))
	intruder := testAddr("intruder").String()

	_, err := ms.SetFees(f.Ctx, &types.MsgSetFees{
		Authority:          intruder,
		PoolID:             pool.ID,
		PoolFee:            math.LegacyNewDecWithPrec(5, 3),
		GovernanceFeeShare: math.LegacyNewDecWithPrec(1, 1),
	})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = ms.SetConnection(f.Ctx, &types.MsgSetConnection{
		Authority:  intruder,
		PoolID:     pool.ID,
		ChannelID:  "channel-0",
		RemotePool: 7,
		Connected:  true,
	})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = ms.SetAmplification(f.Ctx, &types.MsgSetAmplification{
		Authority:         intruder,
		PoolID:            pool.ID,
		TargetOneMinusAmp: math.NewInt(750_000_000_000_000_000),
		Deadline:          f.Ctx.BlockTime().Add(30 * 24 * time.Hour).Unix(),
	})
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestMsgServerGovernanceOps(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)
	pool := createTestPool(t, f, testAddr("creator"))

	_, err := ms.SetFees(f.Ctx, &types.MsgSetFees{
		Authority:          keepertest.Authority,
		PoolID:             pool.ID,
		PoolFee:            math.LegacyNewDecWithPrec(5, 3),
		GovernanceFeeShare: math.LegacyNewDecWithPrec(1, 1),
	})
	require.NoError(t, err)

	updated, _ := f.Keeper.GetPool(f.Ctx, pool.ID)
	require.Equal(t, math.LegacyNewDecWithPrec(5, 3), updated.PoolFee)
	require.Equal(t, math.LegacyNewDecWithPrec(1, 1), updated.GovernanceFeeShare)

	_, err = ms.SetConnection(f.Ctx, &types.MsgSetConnection{
		Authority:  keepertest.Authority,
		PoolID:     pool.ID,
		ChannelID:  "channel-0",
		RemotePool: 7,
		Connected:  true,
	})
	require.NoError(t, err)
	require.True(t, f.Keeper.HasConnection(f.Ctx, pool.ID, "channel-0", 7))

	// connecting an unknown pool fails
	_, err = ms.SetConnection(f.Ctx, &types.MsgSetConnection{
		Authority:  keepertest.Authority,
		PoolID:     99,
		ChannelID:  "channel-0",
		RemotePool: 7,
		Connected:  true,
	})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
