package keeper

import (
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// InitGenesis initializes the amm module state from a genesis state
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(err)
	}
	k.SetNextPoolID(ctx, genState.NextPoolID)

	for _, pool := range genState.Pools {
		k.SetPool(ctx, pool)
	}
	for _, conn := range genState.Connections {
		k.SetConnection(ctx, conn.PoolID, conn.ChannelID, conn.RemotePool, true)
	}
	for _, rec := range genState.AssetEscrows {
		hash, err := hex.DecodeString(rec.Hash)
		if err != nil {
			panic(fmt.Errorf("asset escrow hash: %w", err))
		}
		if err := k.SetAssetEscrow(ctx, rec.PoolID, hash, rec.Escrow); err != nil {
			panic(err)
		}
	}
	for _, rec := range genState.LiquidityEscrows {
		hash, err := hex.DecodeString(rec.Hash)
		if err != nil {
			panic(fmt.Errorf("liquidity escrow hash: %w", err))
		}
		if err := k.SetLiquidityEscrow(ctx, rec.PoolID, hash, rec.Escrow); err != nil {
			panic(err)
		}
	}

	if err := k.BindPort(ctx); err != nil {
		panic(err)
	}
}

// ExportGenesis returns the amm module's current state as a genesis state
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genState := types.GenesisState{
		Params:     k.GetParams(ctx),
		PortID:     types.PortID,
		NextPoolID: k.PeekNextPoolID(ctx),
	}

	k.IteratePools(ctx, func(pool types.Pool) bool {
		genState.Pools = append(genState.Pools, pool)

		k.IterateAssetEscrows(ctx, pool.ID, func(hash []byte, escrow types.AssetEscrow) bool {
			genState.AssetEscrows = append(genState.AssetEscrows, types.AssetEscrowRecord{
				PoolID: pool.ID,
				Hash:   hex.EncodeToString(hash),
				Escrow: escrow,
			})
			return false
		})
		k.IterateLiquidityEscrows(ctx, pool.ID, func(hash []byte, escrow types.LiquidityEscrow) bool {
			genState.LiquidityEscrows = append(genState.LiquidityEscrows, types.LiquidityEscrowRecord{
				PoolID: pool.ID,
				Hash:   hex.EncodeToString(hash),
				Escrow: escrow,
			})
			return false
		})
		return false
	})

	k.IterateConnections(ctx, func(conn types.Connection) bool {
		genState.Connections = append(genState.Connections, conn)
		return false
	})

	return &genState
}
