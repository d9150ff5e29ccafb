package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/unitdex/unitdex/x/amm/types"
)

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.NextPoolIDKey)

	var poolID uint64
	if bz == nil {
		poolID = 1
	} else {
		poolID = binary.BigEndian.Uint64(bz)
	}

	nextBz := make([]byte, 8)
	binary.BigEndian.PutUint64(nextBz, poolID+1)
	store.Set(types.NextPoolIDKey, nextBz)

	return poolID
}

// SetNextPoolID sets the pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(types.NextPoolIDKey, bz)
}

// PeekNextPoolID reads the counter without incrementing it
func (k Keeper) PeekNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.NextPoolIDKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// PoolAddress derives the deterministic account address holding a pool's
// assets.
func PoolAddress(poolID uint64) sdk.AccAddress {
	return address.Module(types.ModuleName, []byte(fmt.Sprintf("pool/%d", poolID)))
}

// SetPool persists a pool record
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) {
	store := k.getStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		panic(err)
	}
	store.Set(types.PoolKey(pool.ID), bz)
}

// GetPool returns a pool by ID
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, false
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		panic(err)
	}
	return pool, true
}

// IteratePools calls cb for every pool until cb returns true
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			panic(err)
		}
		if cb(pool) {
			break
		}
	}
}

// CreatePool creates a new amplified pool, pulls the initial deposits from
// the creator and mints the initial share supply.
func (k Keeper) CreatePool(ctx sdk.Context, creator sdk.AccAddress, assets []string, amounts, weights []math.Int, oneMinusAmp math.Int, poolFee math.LegacyDec) (*types.Pool, error) {
	// 1. Input validation
	if len(assets) == 0 || len(assets) > types.MaxAssets {
		return nil, types.ErrInvalidSetup.Wrapf("pool must hold 1..%d assets, got %d", types.MaxAssets, len(assets))
	}
	if len(amounts) != len(assets) || len(weights) != len(assets) {
		return nil, types.ErrInvalidSetup.Wrap("assets, amounts and weights must align")
	}
	seen := make(map[string]struct{}, len(assets))
	for i, asset := range assets {
		if asset == "" {
			return nil, types.ErrInvalidAsset.Wrapf("asset %d has empty denom", i)
		}
		if _, dup := seen[asset]; dup {
			return nil, types.ErrInvalidSetup.Wrapf("duplicate asset %s", asset)
		}
		seen[asset] = struct{}{}
		if amounts[i].IsNil() || !amounts[i].IsPositive() {
			return nil, types.ErrInvalidAmount.Wrapf("initial amount for %s must be positive", asset)
		}
		if weights[i].IsNil() || !weights[i].IsPositive() {
			return nil, types.ErrInvalidSetup.Wrapf("weight for %s must be positive", asset)
		}
	}
	if oneMinusAmp.IsNil() || !oneMinusAmp.IsPositive() || oneMinusAmp.GT(types.WadInt) {
		return nil, types.ErrInvalidAmplification.Wrap("one minus amp must be in (0, 1] WAD")
	}
	if poolFee.IsNil() || poolFee.IsNegative() || poolFee.GTE(math.LegacyOneDec()) {
		return nil, types.ErrInvalidFee.Wrap("pool fee must be in [0, 1)")
	}

	params := k.GetParams(ctx)

	// 2. Allocate identity
	poolID := k.GetNextPoolID(ctx)
	poolAddr := PoolAddress(poolID)

	// 3. The security limit starts at the weighted sum of the seeded
	// balances and tracks it from then on.
	maxCapacity := math.ZeroInt()
	escrowed := make([]math.Int, len(assets))
	for i := range assets {
		maxCapacity = maxCapacity.Add(weights[i].Mul(amounts[i]))
		escrowed[i] = math.ZeroInt()
	}

	pool := types.Pool{
		ID:                 poolID,
		Address:            poolAddr.String(),
		Creator:            creator.String(),
		Assets:             assets,
		Weights:            weights,
		OneMinusAmp:        oneMinusAmp,
		TargetOneMinusAmp:  oneMinusAmp,
		AmpLastUpdate:      ctx.BlockTime().Unix(),
		UnitTracker:        math.ZeroInt(),
		MaxUnitCapacity:    maxCapacity,
		UsedUnitCapacity:   math.ZeroInt(),
		CapacityLastUpdate: ctx.BlockTime().Unix(),
		PoolFee:            poolFee,
		GovernanceFeeShare: params.DefaultGovernanceFeeShare,
		EscrowedAmounts:    escrowed,
		EscrowedShares:     math.ZeroInt(),
		ShareDenom:         types.ShareDenomForPool(poolID),
	}

	// 4. Pull the initial deposits into the pool account
	deposit := sdk.NewCoins()
	for i, asset := range assets {
		deposit = deposit.Add(sdk.NewCoin(asset, amounts[i]))
	}
	if err := k.bankKeeper.SendCoins(ctx, creator, poolAddr, deposit); err != nil {
		return nil, types.ErrInvalidAmount.Wrapf("funding pool: %s", err)
	}

	// 5. Mint the initial share supply to the creator
	shares := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, types.InitialPoolShares))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, shares); err != nil {
		return nil, err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, creator, shares); err != nil {
		return nil, err
	}

	// 6. Persist and announce
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyAccount, creator.String()),
			sdk.NewAttribute(types.AttributeKeyShares, types.InitialPoolShares.String()),
		),
	)
	poolsCreatedCounter.Inc()

	return &pool, nil
}

// PoolAssetBalance reads a pool's true asset balance from the bank ledger.
func (k Keeper) PoolAssetBalance(ctx context.Context, pool types.Pool, asset string) math.Int {
	return k.bankKeeper.GetBalance(ctx, pool.GetAddress(), asset).Amount
}

// PoolShareSupply reads the total share supply from the bank ledger. The
// supply of the share denom is the pool's outstanding share count.
func (k Keeper) PoolShareSupply(ctx context.Context, pool types.Pool) math.Int {
	return k.bankKeeper.GetSupply(ctx, pool.ShareDenom).Amount
}

// SetConnection marks or unmarks a remote pool as a trusted counterpart.
func (k Keeper) SetConnection(ctx context.Context, poolID uint64, channelID string, remotePool uint64, connected bool) {
	store := k.getStore(ctx)
	key := types.ConnectionKey(poolID, channelID, fmt.Sprintf("%d", remotePool))
	if !connected {
		store.Delete(key)
		return
	}
	bz, err := json.Marshal(types.Connection{PoolID: poolID, ChannelID: channelID, RemotePool: remotePool})
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

// HasConnection reports whether a remote pool is a trusted counterpart.
func (k Keeper) HasConnection(ctx context.Context, poolID uint64, channelID string, remotePool uint64) bool {
	store := k.getStore(ctx)
	return store.Has(types.ConnectionKey(poolID, channelID, fmt.Sprintf("%d", remotePool)))
}

// HasAnyConnection reports whether the pool has at least one counterpart.
// Amplification changes are only allowed while a pool is unconnected, so
// the scan is bounded and rare.
func (k Keeper) HasAnyConnection(ctx context.Context, poolID uint64) bool {
	found := false
	k.IterateConnections(ctx, func(conn types.Connection) bool {
		if conn.PoolID == poolID {
			found = true
			return true
		}
		return false
	})
	return found
}

// IterateConnections calls cb for every stored connection.
func (k Keeper) IterateConnections(ctx context.Context, cb func(conn types.Connection) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.ConnectionKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var conn types.Connection
		if err := json.Unmarshal(iterator.Value(), &conn); err != nil {
			panic(err)
		}
		if cb(conn) {
			break
		}
	}
}
