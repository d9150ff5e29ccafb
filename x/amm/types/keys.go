package types

import (
	"encoding/binary"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// PortID is the default port ID the amm module binds to
	PortID = "amm"

	// IBCVersion is the expected channel version for amm channels
	IBCVersion = "unitdex-amm-1"
)

var (
	// ParamsKey stores the module parameters
	ParamsKey = []byte{0x00}

	// PoolKeyPrefix is the prefix for pool records
	PoolKeyPrefix = []byte("Pool/value/")

	// NextPoolIDKey stores the pool id counter
	NextPoolIDKey = []byte("Pool/next/")

	// AssetEscrowKeyPrefix is the prefix for asset escrow records
	AssetEscrowKeyPrefix = []byte("Escrow/asset/")

	// LiquidityEscrowKeyPrefix is the prefix for liquidity escrow records
	LiquidityEscrowKeyPrefix = []byte("Escrow/liquidity/")

	// ConnectionKeyPrefix indexes connected remote pools by (pool, channel, remote)
	ConnectionKeyPrefix = []byte("Connection/value/")
)

// PoolKey returns the store key for a pool
func PoolKey(poolID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	return append(PoolKeyPrefix, bz...)
}

// AssetEscrowKey returns the store key for an asset escrow record
func AssetEscrowKey(poolID uint64, hash []byte) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	key := append(AssetEscrowKeyPrefix, bz...)
	return append(key, hash...)
}

// LiquidityEscrowKey returns the store key for a liquidity escrow record
func LiquidityEscrowKey(poolID uint64, hash []byte) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	key := append(LiquidityEscrowKeyPrefix, bz...)
	return append(key, hash...)
}

// ConnectionKey returns the store key marking a remote pool as connected
func ConnectionKey(poolID uint64, channelID string, remotePool string) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	key := append(ConnectionKeyPrefix, bz...)
	key = append(key, []byte(channelID)...)
	key = append(key, byte('/'))
	return append(key, []byte(remotePool)...)
}
