package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/types"
)

// RegisterInvariants registers all amm module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "escrow-backing", EscrowBackingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "escrow-totals", EscrowTotalsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "capacity-bounds", CapacityBoundsInvariant(k))
}

// EscrowBackingInvariant checks that every pool's escrowed amounts and
// shares are covered by the bank ledger: the pool account must hold at
// least the escrowed amount of every asset.
func EscrowBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		k.IteratePools(ctx, func(pool types.Pool) bool {
			for i, asset := range pool.Assets {
				balance := k.PoolAssetBalance(ctx, pool, asset)
				if pool.EscrowedAmounts[i].GT(balance) {
					broken = true
					msg += fmt.Sprintf("pool %d escrows %s %s but holds %s\n", pool.ID, pool.EscrowedAmounts[i], asset, balance)
				}
			}
			if pool.EscrowedShares.IsNegative() {
				broken = true
				msg += fmt.Sprintf("pool %d has negative escrowed shares %s\n", pool.ID, pool.EscrowedShares)
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "escrow-backing", msg), broken
	}
}

// EscrowTotalsInvariant checks that the per-pool escrow totals equal the
// sum of the individual escrow records.
func EscrowTotalsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		k.IteratePools(ctx, func(pool types.Pool) bool {
			assetSums := make([]math.Int, len(pool.Assets))
			for i := range assetSums {
				assetSums[i] = math.ZeroInt()
			}
			k.IterateAssetEscrows(ctx, pool.ID, func(_ []byte, escrow types.AssetEscrow) bool {
				if escrow.AssetIndex >= 0 && escrow.AssetIndex < len(assetSums) {
					assetSums[escrow.AssetIndex] = assetSums[escrow.AssetIndex].Add(escrow.Amount)
				}
				return false
			})
			for i, sum := range assetSums {
				if !sum.Equal(pool.EscrowedAmounts[i]) {
					broken = true
					msg += fmt.Sprintf("pool %d asset %d escrow total %s but records sum to %s\n", pool.ID, i, pool.EscrowedAmounts[i], sum)
				}
			}

			shareSum := math.ZeroInt()
			k.IterateLiquidityEscrows(ctx, pool.ID, func(_ []byte, escrow types.LiquidityEscrow) bool {
				shareSum = shareSum.Add(escrow.Shares)
				return false
			})
			if !shareSum.Equal(pool.EscrowedShares) {
				broken = true
				msg += fmt.Sprintf("pool %d share escrow total %s but records sum to %s\n", pool.ID, pool.EscrowedShares, shareSum)
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "escrow-totals", msg), broken
	}
}

// CapacityBoundsInvariant checks that used capacity never exceeds the
// maximum and that both counters are non-negative.
func CapacityBoundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		broken := false

		k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.UsedUnitCapacity.IsNegative() || pool.MaxUnitCapacity.IsNegative() {
				broken = true
				msg += fmt.Sprintf("pool %d has negative capacity counters\n", pool.ID)
			}
			if pool.UsedUnitCapacity.GT(pool.MaxUnitCapacity) {
				broken = true
				msg += fmt.Sprintf("pool %d used capacity %s exceeds max %s\n", pool.ID, pool.UsedUnitCapacity, pool.MaxUnitCapacity)
			}
			return false
		})

		return sdk.FormatInvariant(types.ModuleName, "capacity-bounds", msg), broken
	}
}
