package app

import (
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/testutil/sims"
	"github.com/stretchr/testify/require"

	ammtypes "github.com/unitdex/unitdex/x/amm/types"
)

func TestNewUnitdexApp(t *testing.T) {
	db := dbm.NewMemDB()
	app := NewUnitdexApp(log.NewNopLogger(), db, nil, true, sims.EmptyAppOptions{})

	require.Equal(t, Name, app.Name())
	require.NotNil(t, app.AppCodec())
	require.NotNil(t, app.InterfaceRegistry())
	require.NotNil(t, app.TxConfig())
	require.NotNil(t, app.GetKey(ammtypes.StoreKey))
}

func TestDefaultGenesisIncludesAmm(t *testing.T) {
	db := dbm.NewMemDB()
	app := NewUnitdexApp(log.NewNopLogger(), db, nil, true, sims.EmptyAppOptions{})

	genesis := NewDefaultGenesisState(app.AppCodec())
	require.Contains(t, genesis, ammtypes.ModuleName)

	require.NoError(t, ModuleBasics.ValidateGenesis(app.AppCodec(), app.TxConfig(), genesis))
}

func TestBlockedModuleAccountAddrs(t *testing.T) {
	blocked := BlockedModuleAccountAddrs()
	require.NotEmpty(t, blocked)

	// the amm module account must stay unblocked so pool share mint and
	// burn can move through it
	for addr, isBlocked := range blocked {
		require.True(t, isBlocked, addr)
	}
}
