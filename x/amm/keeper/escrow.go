package keeper

import (
	"context"
	"crypto/sha256"
	"encoding/json"

	storetypes "cosmossdk.io/store/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// ComputeEscrowHash derives the escrow identity from the packet bytes. Two
// identical sends in the same block produce the same hash and the second
// is rejected with ErrEscrowCollision; the block height inside the packet
// keeps distinct blocks apart.
func ComputeEscrowHash(packetBytes []byte) []byte {
	h := sha256.Sum256(packetBytes)
	return h[:]
}

// SetAssetEscrow stores an asset escrow record. Fails on hash collision.
func (k Keeper) SetAssetEscrow(ctx context.Context, poolID uint64, hash []byte, escrow types.AssetEscrow) error {
	store := k.getStore(ctx)
	key := types.AssetEscrowKey(poolID, hash)
	if store.Has(key) {
		return types.ErrEscrowCollision.Wrapf("asset escrow %x", hash)
	}
	bz, err := json.Marshal(escrow)
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// GetAssetEscrow returns an asset escrow record by hash.
func (k Keeper) GetAssetEscrow(ctx context.Context, poolID uint64, hash []byte) (types.AssetEscrow, bool) {
	store := k.getStore(ctx)
	bz := store.Get(types.AssetEscrowKey(poolID, hash))
	if bz == nil {
		return types.AssetEscrow{}, false
	}
	var escrow types.AssetEscrow
	if err := json.Unmarshal(bz, &escrow); err != nil {
		panic(err)
	}
	return escrow, true
}

// DeleteAssetEscrow removes a settled asset escrow record.
func (k Keeper) DeleteAssetEscrow(ctx context.Context, poolID uint64, hash []byte) {
	store := k.getStore(ctx)
	store.Delete(types.AssetEscrowKey(poolID, hash))
}

// IterateAssetEscrows calls cb for every asset escrow of a pool.
func (k Keeper) IterateAssetEscrows(ctx context.Context, poolID uint64, cb func(hash []byte, escrow types.AssetEscrow) bool) {
	store := k.getStore(ctx)
	prefix := types.AssetEscrowKey(poolID, nil)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var escrow types.AssetEscrow
		if err := json.Unmarshal(iterator.Value(), &escrow); err != nil {
			panic(err)
		}
		if cb(iterator.Key()[len(prefix):], escrow) {
			break
		}
	}
}

// SetLiquidityEscrow stores a liquidity escrow record. Fails on collision.
func (k Keeper) SetLiquidityEscrow(ctx context.Context, poolID uint64, hash []byte, escrow types.LiquidityEscrow) error {
	store := k.getStore(ctx)
	key := types.LiquidityEscrowKey(poolID, hash)
	if store.Has(key) {
		return types.ErrEscrowCollision.Wrapf("liquidity escrow %x", hash)
	}
	bz, err := json.Marshal(escrow)
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// GetLiquidityEscrow returns a liquidity escrow record by hash.
func (k Keeper) GetLiquidityEscrow(ctx context.Context, poolID uint64, hash []byte) (types.LiquidityEscrow, bool) {
	store := k.getStore(ctx)
	bz := store.Get(types.LiquidityEscrowKey(poolID, hash))
	if bz == nil {
		return types.LiquidityEscrow{}, false
	}
	var escrow types.LiquidityEscrow
	if err := json.Unmarshal(bz, &escrow); err != nil {
		panic(err)
	}
	return escrow, true
}

// DeleteLiquidityEscrow removes a settled liquidity escrow record.
func (k Keeper) DeleteLiquidityEscrow(ctx context.Context, poolID uint64, hash []byte) {
	store := k.getStore(ctx)
	store.Delete(types.LiquidityEscrowKey(poolID, hash))
}

// IterateLiquidityEscrows calls cb for every liquidity escrow of a pool.
func (k Keeper) IterateLiquidityEscrows(ctx context.Context, poolID uint64, cb func(hash []byte, escrow types.LiquidityEscrow) bool) {
	store := k.getStore(ctx)
	prefix := types.LiquidityEscrowKey(poolID, nil)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var escrow types.LiquidityEscrow
		if err := json.Unmarshal(iterator.Value(), &escrow); err != nil {
			panic(err)
		}
		if cb(iterator.Key()[len(prefix):], escrow) {
			break
		}
	}
}
