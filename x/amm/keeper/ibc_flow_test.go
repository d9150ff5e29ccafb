package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/unitdex/unitdex/testutil/keeper"
	"github.com/unitdex/unitdex/x/amm/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

func TestSendAsset(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())

	units, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)
	require.True(t, units.IsPositive())

	// the packet left through the channel
	require.Len(t, f.Channel.Packets, 1)
	require.Equal(t, types.PortID, f.Channel.Packets[0].SourcePort)
	require.Equal(t, "channel-0", f.Channel.Packets[0].SourceChannel)

	// the escrow record matches the packet bytes
	hash := keeper.ComputeEscrowHash(f.Channel.Packets[0].Data)
	escrow, found := f.Keeper.GetAssetEscrow(f.Ctx, from.ID, hash)
	require.True(t, found)
	require.Equal(t, math.NewInt(100), escrow.Amount)
	require.Equal(t, units, escrow.Units)
	require.Equal(t, sender.String(), escrow.FallbackAccount)

	// in-flight units and escrowed input are booked on the pool
	updated, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	require.Equal(t, units, updated.UnitTracker)
	require.Equal(t, math.NewInt(100), updated.EscrowedAmounts[0])

	// the full input sits in the pool account while in flight
	require.Equal(t, math.NewInt(1100), f.Keeper.PoolAssetBalance(f.Ctx, updated, "uatom"))
}

func TestSendAssetErrors(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)

	// no connection
	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", 99,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	_, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.ErrorIs(t, err, types.ErrPoolNotConnected)

	// unknown asset
	f.Keeper.SetConnection(f.Ctx, from.ID, "channel-0", 99, true)
	msg.ToPool = 99
	msg.FromAsset = "ujuno"
	_, err = f.Keeper.SendAsset(f.Ctx, msg)
	require.ErrorIs(t, err, types.ErrInvalidAsset)
}

func TestReceiveAsset(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")
	receiver := testAddr("receiver")

	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		receiver.String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	units, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)

	parsed, err := types.ParsePacketData(f.Channel.Packets[0].Data)
	require.NoError(t, err)
	data, ok := parsed.(types.AssetSwapPacketData)
	require.True(t, ok)
	require.Equal(t, units, data.Units)

	out, err := f.Keeper.ReceiveAsset(f.Ctx, "channel-0", data)
	require.NoError(t, err)

	// the destination leg pays about as much as a local swap would
	require.True(t, out.GTE(math.NewInt(93)), "out = %s", out)
	require.True(t, out.LTE(math.NewInt(96)), "out = %s", out)
	require.Equal(t, out, f.Bank.GetBalance(f.Ctx, receiver, "uosmo").Amount)

	// inbound units drive the tracker negative and consume capacity
	dest, _ := f.Keeper.GetPool(f.Ctx, to.ID)
	require.Equal(t, units.Neg(), dest.UnitTracker)
	require.Equal(t, dest.UsedUnitCapacity, out)
	require.Equal(t, math.NewInt(2000).Sub(out), dest.MaxUnitCapacity)
}

func TestReceiveAssetErrors(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	from := createTestPool(t, f, testAddr("sender"))
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	data := types.AssetSwapPacketData{
		Type:         types.PacketTypeAssetSwap,
		FromPool:     from.ID,
		ToPool:       to.ID,
		ToAccount:    testAddr("receiver").String(),
		Units:        math.NewInt(1_000_000_000_000_000_000),
		ToAssetIndex: 1,
		MinOut:       math.ZeroInt(),
		FromAmount:   math.NewInt(100),
		FromAsset:    "uatom",
	}

	// wrong channel is not a trusted counterpart
	_, err := f.Keeper.ReceiveAsset(f.Ctx, "channel-9", data)
	require.ErrorIs(t, err, types.ErrPoolNotConnected)

	// asset index out of range
	bad := data
	bad.ToAssetIndex = 2
	_, err = f.Keeper.ReceiveAsset(f.Ctx, "channel-0", bad)
	require.ErrorIs(t, err, types.ErrInvalidAsset)

	// min out not met
	bad = data
	bad.MinOut = math.NewInt(10_000)
	_, err = f.Keeper.ReceiveAsset(f.Ctx, "channel-0", bad)
	require.ErrorIs(t, err, types.ErrInsufficientReturn)
}

func TestReceiveAssetSecurityLimit(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	from := createTestPool(t, f, testAddr("sender"))
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	// squeeze the destination's limit so any meaningful inbound flow trips it
	dest, _ := f.Keeper.GetPool(f.Ctx, to.ID)
	dest.MaxUnitCapacity = math.NewInt(10)
	f.Keeper.SetPool(f.Ctx, dest)

	data := types.AssetSwapPacketData{
		Type:         types.PacketTypeAssetSwap,
		FromPool:     from.ID,
		ToPool:       to.ID,
		ToAccount:    testAddr("receiver").String(),
		Units:        math.NewInt(1_000_000_000_000_000_000),
		ToAssetIndex: 1,
		MinOut:       math.ZeroInt(),
		FromAmount:   math.NewInt(100),
		FromAsset:    "uatom",
	}
	_, err := f.Keeper.ReceiveAsset(f.Ctx, "channel-0", data)
	require.ErrorIs(t, err, types.ErrExceedsSecurityLimit)

	// the rejected receive left no trace
	after, _ := f.Keeper.GetPool(f.Ctx, to.ID)
	require.True(t, after.UnitTracker.IsZero())
	require.True(t, after.UsedUnitCapacity.IsZero())
	require.True(t, f.Bank.GetBalance(f.Ctx, testAddr("receiver"), "uosmo").Amount.IsZero())
}

func TestSettleAssetSuccess(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	units, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)
	packetBytes := f.Channel.Packets[0].Data

	require.NoError(t, f.Keeper.OnAcknowledgementPacket(f.Ctx, packetBytes, true))

	// the committed input backs the pool: escrow cleared, tracker keeps the
	// sent units, the security limit grew by the weighted input
	settled, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	require.True(t, settled.EscrowedAmounts[0].IsZero())
	require.Equal(t, units, settled.UnitTracker)
	require.Equal(t, math.NewInt(2100), settled.MaxUnitCapacity)

	hash := keeper.ComputeEscrowHash(packetBytes)
	_, found := f.Keeper.GetAssetEscrow(f.Ctx, from.ID, hash)
	require.False(t, found)

	// settling the same packet twice fails
	err = f.Keeper.OnAcknowledgementPacket(f.Ctx, packetBytes, true)
	require.ErrorIs(t, err, types.ErrEscrowNotFound)
}

func TestSendAssetTimeoutIsNetNoOp(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	before, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	senderBefore := f.Bank.GetBalance(f.Ctx, sender, "uatom").Amount

	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	_, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)
	packetBytes := f.Channel.Packets[0].Data

	require.NoError(t, f.Keeper.OnTimeoutPacket(f.Ctx, packetBytes))

	// with no fee, a timed out send leaves no trace on the books
	after, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	require.Equal(t, before.UnitTracker, after.UnitTracker)
	require.Equal(t, before.EscrowedAmounts[0], after.EscrowedAmounts[0])
	require.Equal(t, before.MaxUnitCapacity, after.MaxUnitCapacity)
	require.Equal(t, senderBefore, f.Bank.GetBalance(f.Ctx, sender, "uatom").Amount)
	require.Equal(t, math.NewInt(1000), f.Keeper.PoolAssetBalance(f.Ctx, after, "uatom"))
}

func TestSendAssetFailureRefundsFallback(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	fallback := testAddr("fallback")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	msg.Fallback = fallback.String()
	_, err := f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)

	require.NoError(t, f.Keeper.OnAcknowledgementPacket(f.Ctx, f.Channel.Packets[0].Data, false))
	require.Equal(t, math.NewInt(100), f.Bank.GetBalance(f.Ctx, fallback, "uatom").Amount)
}

func TestSendLiquidityFlow(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")
	receiver := testAddr("receiver")

	shares := types.InitialPoolShares.QuoRaw(10)
	msg := types.NewMsgSendLiquidity(sender.String(), from.ID, "channel-0", to.ID,
		receiver.String(), shares, math.ZeroInt(), math.ZeroInt())

	units, err := f.Keeper.SendLiquidity(f.Ctx, msg)
	require.NoError(t, err)
	require.True(t, units.IsPositive())

	// the shares are burned up front and recorded as escrowed
	source, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	require.Equal(t, shares, source.EscrowedShares)
	require.Equal(t, units, source.UnitTracker)
	require.Equal(t, types.InitialPoolShares.Sub(shares), f.Keeper.PoolShareSupply(f.Ctx, source))

	// destination mints roughly the same share fraction
	parsed, err := types.ParsePacketData(f.Channel.Packets[0].Data)
	require.NoError(t, err)
	data, ok := parsed.(types.LiquiditySwapPacketData)
	require.True(t, ok)

	minted, err := f.Keeper.ReceiveLiquidity(f.Ctx, "channel-0", data)
	require.NoError(t, err)
	require.True(t, minted.IsPositive())

	// burning 10% of the source supply entitles the receiver to 10% of the
	// grown destination supply: ts/9, less rounding
	target := types.InitialPoolShares.QuoRaw(9)
	require.True(t, minted.LTE(target), "minted = %s", minted)
	require.True(t, minted.GTE(target.MulRaw(99).QuoRaw(100)), "minted = %s", minted)
	require.Equal(t, minted, f.Bank.GetBalance(f.Ctx, receiver, to.ShareDenom).Amount)

	// success settlement clears the escrowed shares for good
	require.NoError(t, f.Keeper.OnAcknowledgementPacket(f.Ctx, f.Channel.Packets[0].Data, true))
	source, _ = f.Keeper.GetPool(f.Ctx, from.ID)
	require.True(t, source.EscrowedShares.IsZero())
	require.Equal(t, units, source.UnitTracker)
}

func TestSendLiquidityTimeoutRestoresShares(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	shares := types.InitialPoolShares.QuoRaw(10)
	msg := types.NewMsgSendLiquidity(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), shares, math.ZeroInt(), math.ZeroInt())
	_, err := f.Keeper.SendLiquidity(f.Ctx, msg)
	require.NoError(t, err)

	require.NoError(t, f.Keeper.OnTimeoutPacket(f.Ctx, f.Channel.Packets[0].Data))

	// the burned shares come back to the fallback and the books are clean
	source, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	require.True(t, source.EscrowedShares.IsZero())
	require.True(t, source.UnitTracker.IsZero())
	require.Equal(t, types.InitialPoolShares, f.Bank.GetBalance(f.Ctx, sender, from.ShareDenom).Amount)
	require.Equal(t, types.InitialPoolShares, f.Keeper.PoolShareSupply(f.Ctx, source))
}

func TestSendLiquidityCannotBurnEntireSupply(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	msg := types.NewMsgSendLiquidity(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), types.InitialPoolShares, math.ZeroInt(), math.ZeroInt())
	_, err := f.Keeper.SendLiquidity(f.Ctx, msg)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestReferenceBalanceSteadyDuringInFlightSend(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")

	pool, _ := f.Keeper.GetPool(f.Ctx, from.ID)
	before, _, err := f.Keeper.ComputeBalance0Amped(f.Ctx, pool, f.Keeper.TrueBalances(f.Ctx, pool))
	require.NoError(t, err)

	msg := types.NewMsgSendAsset(sender.String(), from.ID, "channel-0", to.ID,
		testAddr("receiver").String(), "uatom", 1, math.NewInt(100), math.ZeroInt())
	_, err = f.Keeper.SendAsset(f.Ctx, msg)
	require.NoError(t, err)

	// the escrowed input sits in the pool account and the tracker carries
	// the in-flight units, so the reference balance holds to within a WAD
	// quantum of rounding
	pool, _ = f.Keeper.GetPool(f.Ctx, from.ID)
	after, _, err := f.Keeper.ComputeBalance0Amped(f.Ctx, pool, f.Keeper.TrueBalances(f.Ctx, pool))
	require.NoError(t, err)
	require.True(t, after.Sub(before).Abs().LTE(math.NewInt(2)), "reference moved from %s to %s", before, after)
}

func TestReceiveLiquidityRejectsUnitsAboveReference(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	from := createTestPool(t, f, testAddr("sender"))
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")
	receiver := testAddr("receiver")

	data := types.LiquiditySwapPacketData{
		Type:              types.PacketTypeLiquiditySwap,
		FromPool:          from.ID,
		ToPool:            to.ID,
		ToAccount:         receiver.String(),
		Units:             types.WadInt.MulRaw(1000),
		MinOut:            math.ZeroInt(),
		MinReferenceAsset: math.ZeroInt(),
		FromShares:        types.InitialPoolShares.QuoRaw(10),
		BlockHeight:       1,
	}
	_, err := f.Keeper.ReceiveLiquidity(f.Ctx, "channel-0", data)
	require.ErrorIs(t, err, types.ErrExceedsSecurityLimit)

	// the rejected receive left no trace
	after, _ := f.Keeper.GetPool(f.Ctx, to.ID)
	require.True(t, after.UnitTracker.IsZero())
	require.True(t, f.Bank.GetBalance(f.Ctx, receiver, to.ShareDenom).Amount.IsZero())
}

func TestReceiveLiquidityMinReferenceAsset(t *testing.T) {
	f := keepertest.AmmKeeper(t)
	sender := testAddr("sender")
	from := createTestPool(t, f, sender)
	to := createTestPool(t, f, testAddr("creator2"))
	connectPools(f, from, to, "channel-0")
	receiver := testAddr("receiver")

	shares := types.InitialPoolShares.QuoRaw(10)
	msg := types.NewMsgSendLiquidity(sender.String(), from.ID, "channel-0", to.ID,
		receiver.String(), shares, math.ZeroInt(), math.NewInt(1000))
	_, err := f.Keeper.SendLiquidity(f.Ctx, msg)
	require.NoError(t, err)

	parsed, err := types.ParsePacketData(f.Channel.Packets[0].Data)
	require.NoError(t, err)
	data, ok := parsed.(types.LiquiditySwapPacketData)
	require.True(t, ok)
	require.Equal(t, math.NewInt(1000), data.MinReferenceAsset)

	// a tenth of the source supply backs about a hundred reference tokens
	// at the destination, so a floor of a thousand fails
	_, err = f.Keeper.ReceiveLiquidity(f.Ctx, "channel-0", data)
	require.ErrorIs(t, err, types.ErrInsufficientReturn)

	// a floor below the backed value passes
	data.MinReferenceAsset = math.NewInt(50)
	minted, err := f.Keeper.ReceiveLiquidity(f.Ctx, "channel-0", data)
	require.NoError(t, err)
	require.True(t, minted.IsPositive())
}
