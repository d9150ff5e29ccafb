package types

import (
	"encoding/hex"
	"fmt"
)

// Connection marks a remote pool as a trusted counterpart of a local pool.
type Connection struct {
	PoolID     uint64 `json:"pool_id"`
	ChannelID  string `json:"channel_id"`
	RemotePool uint64 `json:"remote_pool"`
}

// AssetEscrowRecord pairs an escrow with its identifying hash for genesis.
type AssetEscrowRecord struct {
	PoolID uint64      `json:"pool_id"`
	Hash   string      `json:"hash"`
	Escrow AssetEscrow `json:"escrow"`
}

// LiquidityEscrowRecord pairs a liquidity escrow with its hash for genesis.
type LiquidityEscrowRecord struct {
	PoolID uint64          `json:"pool_id"`
	Hash   string          `json:"hash"`
	Escrow LiquidityEscrow `json:"escrow"`
}

// GenesisState defines the amm module's genesis state.
type GenesisState struct {
	Params           Params                  `json:"params"`
	PortID           string                  `json:"port_id"`
	NextPoolID       uint64                  `json:"next_pool_id"`
	Pools            []Pool                  `json:"pools"`
	Connections      []Connection            `json:"connections"`
	AssetEscrows     []AssetEscrowRecord     `json:"asset_escrows"`
	LiquidityEscrows []LiquidityEscrowRecord `json:"liquidity_escrows"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		PortID:     PortID,
		NextPoolID: 1,
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.PortID == "" {
		return fmt.Errorf("port id cannot be empty")
	}
	if gs.NextPoolID == 0 {
		return fmt.Errorf("next pool id must be positive")
	}

	poolIDs := make(map[uint64]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", pool.ID, err)
		}
		if pool.ID >= gs.NextPoolID {
			return fmt.Errorf("pool %d not covered by next pool id %d", pool.ID, gs.NextPoolID)
		}
		if _, dup := poolIDs[pool.ID]; dup {
			return fmt.Errorf("duplicate pool id %d", pool.ID)
		}
		poolIDs[pool.ID] = struct{}{}
	}

	for _, conn := range gs.Connections {
		if _, ok := poolIDs[conn.PoolID]; !ok {
			return fmt.Errorf("connection references unknown pool %d", conn.PoolID)
		}
		if conn.ChannelID == "" || conn.RemotePool == 0 {
			return fmt.Errorf("invalid connection for pool %d", conn.PoolID)
		}
	}

	for _, rec := range gs.AssetEscrows {
		if _, ok := poolIDs[rec.PoolID]; !ok {
			return fmt.Errorf("asset escrow references unknown pool %d", rec.PoolID)
		}
		if _, err := hex.DecodeString(rec.Hash); err != nil {
			return fmt.Errorf("asset escrow for pool %d has invalid hash: %w", rec.PoolID, err)
		}
		if rec.Escrow.Amount.IsNil() || !rec.Escrow.Amount.IsPositive() {
			return fmt.Errorf("asset escrow for pool %d must hold a positive amount", rec.PoolID)
		}
	}

	for _, rec := range gs.LiquidityEscrows {
		if _, ok := poolIDs[rec.PoolID]; !ok {
			return fmt.Errorf("liquidity escrow references unknown pool %d", rec.PoolID)
		}
		if _, err := hex.DecodeString(rec.Hash); err != nil {
			return fmt.Errorf("liquidity escrow for pool %d has invalid hash: %w", rec.PoolID, err)
		}
		if rec.Escrow.Shares.IsNil() || !rec.Escrow.Shares.IsPositive() {
			return fmt.Errorf("liquidity escrow for pool %d must hold positive shares", rec.PoolID)
		}
	}

	return nil
}
