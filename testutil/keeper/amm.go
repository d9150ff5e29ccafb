package keeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v8/modules/core/04-channel/types"
	"github.com/stretchr/testify/require"

	"github.com/unitdex/unitdex/x/amm/keeper"
	"github.com/unitdex/unitdex/x/amm/types"
)

// Authority is the governance address used by test keepers.
var Authority = authtypes.NewModuleAddress("gov").String()

// MockBankKeeper is an in-memory token ledger implementing types.BankKeeper.
// Module accounts are addressed by their derived module address.
type MockBankKeeper struct {
	Balances map[string]sdk.Coins
	Supply   sdk.Coins
}

// NewMockBankKeeper creates an empty in-memory ledger
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{
		Balances: make(map[string]sdk.Coins),
		Supply:   sdk.NewCoins(),
	}
}

// FundAccount credits an account out of thin air, tracking supply.
func (m *MockBankKeeper) FundAccount(addr sdk.AccAddress, amt sdk.Coins) {
	m.Balances[addr.String()] = m.Balances[addr.String()].Add(amt...)
	m.Supply = m.Supply.Add(amt...)
}

// GetBalance implements types.BankKeeper
func (m *MockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.Balances[addr.String()].AmountOf(denom))
}

// GetSupply implements types.BankKeeper
func (m *MockBankKeeper) GetSupply(_ context.Context, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.Supply.AmountOf(denom))
}

// SendCoins implements types.BankKeeper
func (m *MockBankKeeper) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	from := m.Balances[fromAddr.String()]
	if !amt.IsAllLTE(from) {
		return fmt.Errorf("insufficient funds: %s has %s, wants %s", fromAddr, from, amt)
	}
	m.Balances[fromAddr.String()] = from.Sub(amt...)
	m.Balances[toAddr.String()] = m.Balances[toAddr.String()].Add(amt...)
	return nil
}

// SendCoinsFromAccountToModule implements types.BankKeeper
func (m *MockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount implements types.BankKeeper
func (m *MockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// MintCoins implements types.BankKeeper
func (m *MockBankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	addr := authtypes.NewModuleAddress(moduleName).String()
	m.Balances[addr] = m.Balances[addr].Add(amt...)
	m.Supply = m.Supply.Add(amt...)
	return nil
}

// BurnCoins implements types.BankKeeper
func (m *MockBankKeeper) BurnCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	addr := authtypes.NewModuleAddress(moduleName).String()
	have := m.Balances[addr]
	if !amt.IsAllLTE(have) {
		return fmt.Errorf("insufficient module funds to burn: %s has %s, wants %s", moduleName, have, amt)
	}
	m.Balances[addr] = have.Sub(amt...)
	m.Supply = m.Supply.Sub(amt...)
	return nil
}

// SentPacket captures an outbound IBC packet for assertions.
type SentPacket struct {
	SourcePort       string
	SourceChannel    string
	TimeoutTimestamp uint64
	Data             []byte
}

// MockChannelKeeper records packets instead of sending them.
type MockChannelKeeper struct {
	Packets []SentPacket
	seq     uint64
}

// GetChannel implements types.ChannelKeeper
func (m *MockChannelKeeper) GetChannel(_ sdk.Context, _, _ string) (channeltypes.Channel, bool) {
	return channeltypes.Channel{State: channeltypes.OPEN}, true
}

// GetNextSequenceSend implements types.ChannelKeeper
func (m *MockChannelKeeper) GetNextSequenceSend(_ sdk.Context, _, _ string) (uint64, bool) {
	return m.seq + 1, true
}

// SendPacket implements types.ChannelKeeper
func (m *MockChannelKeeper) SendPacket(_ sdk.Context, _ *capabilitytypes.Capability, sourcePort, sourceChannel string, _ clienttypes.Height, timeoutTimestamp uint64, data []byte) (uint64, error) {
	m.seq++
	m.Packets = append(m.Packets, SentPacket{
		SourcePort:       sourcePort,
		SourceChannel:    sourceChannel,
		TimeoutTimestamp: timeoutTimestamp,
		Data:             data,
	})
	return m.seq, nil
}

// MockPortKeeper hands out a static capability.
type MockPortKeeper struct{}

// BindPort implements types.PortKeeper
func (MockPortKeeper) BindPort(_ sdk.Context, _ string) *capabilitytypes.Capability {
	return capabilitytypes.NewCapability(1)
}

// MockScopedKeeper accepts every capability claim.
type MockScopedKeeper struct{}

// GetCapability implements types.ScopedKeeper
func (MockScopedKeeper) GetCapability(_ sdk.Context, _ string) (*capabilitytypes.Capability, bool) {
	return capabilitytypes.NewCapability(1), true
}

// AuthenticateCapability implements types.ScopedKeeper
func (MockScopedKeeper) AuthenticateCapability(_ sdk.Context, _ *capabilitytypes.Capability, _ string) bool {
	return true
}

// ClaimCapability implements types.ScopedKeeper
func (MockScopedKeeper) ClaimCapability(_ sdk.Context, _ *capabilitytypes.Capability, _ string) error {
	return nil
}

// AmmFixture bundles the keeper with its mocks for tests.
type AmmFixture struct {
	Keeper  keeper.Keeper
	Ctx     sdk.Context
	Bank    *MockBankKeeper
	Channel *MockChannelKeeper
}

// AmmKeeper creates a test keeper for the amm module with mock dependencies
func AmmKeeper(t testing.TB) AmmFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	bank := NewMockBankKeeper()
	channel := &MockChannelKeeper{}

	k := keeper.NewKeeper(
		cdc,
		storeKey,
		bank,
		channel,
		MockPortKeeper{},
		MockScopedKeeper{},
		Authority,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: time.Unix(1_700_000_000, 0)}, false, log.NewNopLogger())

	k.InitGenesis(ctx, *types.DefaultGenesis())

	return AmmFixture{Keeper: *k, Ctx: ctx, Bank: bank, Channel: channel}
}
