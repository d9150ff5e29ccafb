package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/unitdex/unitdex/x/amm/ammmath"
	"github.com/unitdex/unitdex/x/amm/types"
)

// DepositMixed deposits an arbitrary mix of pool assets and mints shares
// proportional to the value added relative to the reference balance. Zero
// entries are allowed; an all-zero deposit mints zero shares.
func (k Keeper) DepositMixed(ctx sdk.Context, depositor sdk.AccAddress, poolID uint64, amounts []math.Int, minShares math.Int) (math.Int, error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return math.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if len(amounts) != len(pool.Assets) {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("expected %d amounts, got %d", len(pool.Assets), len(amounts))
	}
	k.UpdateAmplification(ctx, &pool)

	// 1. Value the deposit in units against the true balances. Deposits are
	// measured against what the pool actually holds, in-flight escrows
	// included, so an open escrow cannot change what a deposit is worth.
	balances := k.TrueBalances(ctx, pool)
	units := math.ZeroInt()
	for i := range pool.Assets {
		if amounts[i].IsZero() {
			continue
		}
		area, err := ammmath.CalcPriceCurveArea(amounts[i], balances[i], pool.Weights[i], pool.OneMinusAmp)
		if err != nil {
			return math.Int{}, err
		}
		units = units.Add(area)
	}
	if units.IsNegative() {
		return math.Int{}, types.ErrInvariantViolation.Wrapf("deposit valued at %s units", units)
	}

	// 2. Charge the pool fee on the deposited value, then convert the net
	// units to shares against the reference balance
	units = math.LegacyOneDec().Sub(pool.PoolFee).MulInt(units).TruncateInt()
	nWalphaAmped, _, err := k.ComputeBalance0Amped(ctx, pool, balances)
	if err != nil {
		return math.Int{}, err
	}
	totalSupply := k.PoolShareSupply(ctx, pool).Add(pool.EscrowedShares)
	shares, err := ammmath.CalcPriceCurveLimitShare(units, totalSupply, nWalphaAmped, OneMinusAmpInverse(pool.OneMinusAmp))
	if err != nil {
		return math.Int{}, err
	}
	if shares.LT(minShares) {
		return math.Int{}, types.ErrInsufficientReturn.Wrapf("shares %s below minimum %s", shares, minShares)
	}

	// 3. Pull the deposit and mint
	deposit := sdk.NewCoins()
	for i, asset := range pool.Assets {
		if amounts[i].IsPositive() {
			deposit = deposit.Add(sdk.NewCoin(asset, amounts[i]))
		}
	}
	if !deposit.IsZero() {
		if err := k.bankKeeper.SendCoins(ctx, depositor, pool.GetAddress(), deposit); err != nil {
			return math.Int{}, err
		}
	}
	if shares.IsPositive() {
		minted := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, shares))
		if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, minted); err != nil {
			return math.Int{}, err
		}
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, depositor, minted); err != nil {
			return math.Int{}, err
		}
	}

	// 4. The weighted deposit raises the security limit ceiling but also
	// counts as used capacity, so depositing cannot mint fresh headroom for
	// inbound flow within the decay window.
	weighted := math.ZeroInt()
	for i := range pool.Assets {
		weighted = weighted.Add(pool.Weights[i].Mul(amounts[i]))
	}
	pool.MaxUnitCapacity = pool.MaxUnitCapacity.Add(weighted)
	if err := k.ConsumeUnitCapacity(ctx, &pool, weighted); err != nil {
		return math.Int{}, err
	}
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(poolID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, depositor.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyUnits, units.String()),
		),
	)
	depositsCounter.WithLabelValues(math.NewIntFromUint64(poolID).String()).Inc()

	return shares, nil
}

// withdrawBase burns shares and returns the curve terms every withdrawal
// variant needs: the effective balances, the reference balance and the
// WAD fraction of the reference consumed by the burned shares.
func (k Keeper) withdrawBase(ctx sdk.Context, sender sdk.AccAddress, pool *types.Pool, shares math.Int) (balances []math.Int, walphaAmped, consumed math.Int, err error) {
	totalSupply := k.PoolShareSupply(ctx, *pool).Add(pool.EscrowedShares)
	if shares.GT(totalSupply) {
		return nil, math.Int{}, math.Int{}, types.ErrInvalidAmount.Wrapf("shares %s exceed supply %s", shares, totalSupply)
	}

	burned := sdk.NewCoins(sdk.NewCoin(pool.ShareDenom, shares))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, burned); err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, burned); err != nil {
		return nil, math.Int{}, math.Int{}, err
	}

	balances = k.EffectiveBalances(ctx, *pool)
	_, walphaAmped, err = k.ComputeBalance0Amped(ctx, *pool, balances)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}

	// consumed = WAD - ((ts - pt) / ts)^(1-k), the share of the reference
	// balance the burned shares claim.
	remainder := totalSupply.Sub(shares)
	if remainder.IsZero() {
		return balances, walphaAmped, ammmath.WAD, nil
	}
	ratio, err := ammmath.DivWadUp(remainder, totalSupply)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	powered, err := ammmath.PowWadUp(ratio, pool.OneMinusAmp)
	if err != nil {
		return nil, math.Int{}, math.Int{}, err
	}
	if powered.GT(ammmath.WAD) {
		powered = ammmath.WAD
	}
	return balances, walphaAmped, ammmath.WAD.Sub(powered), nil
}

// WithdrawAll burns shares for a slice of every pool asset. Each asset pays
// out the curve limit for the same withdrawn reference value, capped at the
// full balance when the claim covers the asset's whole anchored area.
func (k Keeper) WithdrawAll(ctx sdk.Context, sender sdk.AccAddress, poolID uint64, shares math.Int, minOut []math.Int) ([]math.Int, error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if len(minOut) != 0 && len(minOut) != len(pool.Assets) {
		return nil, types.ErrInvalidAmount.Wrap("min out must align with pool assets")
	}
	k.UpdateAmplification(ctx, &pool)

	balances, walphaAmped, consumed, err := k.withdrawBase(ctx, sender, &pool, shares)
	if err != nil {
		return nil, err
	}
	innerdiff, err := ammmath.MulWadDown(walphaAmped, consumed)
	if err != nil {
		return nil, err
	}

	poolAddr := pool.GetAddress()
	outs := make([]math.Int, len(pool.Assets))
	for i, asset := range pool.Assets {
		ampBalance, err := ammmath.PowWadDown(pool.Weights[i].Mul(balances[i]).Mul(ammmath.WAD), pool.OneMinusAmp)
		if err != nil {
			return nil, err
		}

		var out math.Int
		if innerdiff.GTE(ampBalance) {
			// The claim covers the asset's whole anchored area: pay the
			// full balance rather than failing on an unreachable limit.
			out = balances[i]
		} else {
			out, err = ammmath.CalcPriceCurveLimit(innerdiff, balances[i], pool.Weights[i], pool.OneMinusAmp)
			if err != nil {
				return nil, err
			}
		}
		if len(minOut) == len(pool.Assets) && out.LT(minOut[i]) {
			return nil, types.ErrInsufficientReturn.Wrapf("%s output %s below minimum %s", asset, out, minOut[i])
		}

		if out.IsPositive() {
			if err := k.bankKeeper.SendCoins(ctx, poolAddr, sender, sdk.NewCoins(sdk.NewCoin(asset, out))); err != nil {
				return nil, err
			}
		}
		pool.MaxUnitCapacity = saturatingSub(pool.MaxUnitCapacity, pool.Weights[i].Mul(out))
		outs[i] = out
	}
	k.SetPool(ctx, pool)

	k.emitWithdraw(ctx, pool, sender, shares, "all")
	return outs, nil
}

// WithdrawMixed burns shares for a custom asset mix. Each ratio assigns a
// WAD fraction of the remaining withdrawal value to the asset at the same
// index; the ratios must consume the value exactly.
func (k Keeper) WithdrawMixed(ctx sdk.Context, sender sdk.AccAddress, poolID uint64, shares math.Int, ratios, minOut []math.Int) ([]math.Int, error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if len(ratios) != len(pool.Assets) || len(minOut) != len(pool.Assets) {
		return nil, types.ErrInvalidAmount.Wrap("ratios and min out must align with pool assets")
	}
	k.UpdateAmplification(ctx, &pool)

	balances, walphaAmped, consumed, err := k.withdrawBase(ctx, sender, &pool, shares)
	if err != nil {
		return nil, err
	}
	inner, err := ammmath.MulWadDown(walphaAmped, consumed)
	if err != nil {
		return nil, err
	}
	units := inner.Mul(math.NewInt(int64(len(pool.Assets))))

	poolAddr := pool.GetAddress()
	outs := make([]math.Int, len(pool.Assets))
	zeroSeen := false
	for i, asset := range pool.Assets {
		outs[i] = math.ZeroInt()
		if ratios[i].IsZero() {
			// Once a ratio is zero every later ratio must be zero too; a
			// nonzero ratio after a zero one silently skips value.
			zeroSeen = true
			if minOut[i].IsPositive() {
				return nil, types.ErrInsufficientReturn.Wrapf("%s output 0 below minimum %s", asset, minOut[i])
			}
			continue
		}
		if zeroSeen {
			return nil, types.ErrWithdrawRatioNotZero.Wrapf("ratio %d set after a zero ratio", i)
		}
		if units.IsZero() {
			return nil, types.ErrWithdrawRatioNotZero.Wrapf("ratio %d set after value exhausted", i)
		}

		assetUnits, err := ammmath.MulWadDown(units, ratios[i])
		if err != nil {
			return nil, err
		}
		if assetUnits.IsZero() {
			if minOut[i].IsPositive() {
				return nil, types.ErrInsufficientReturn.Wrapf("%s output 0 below minimum %s", asset, minOut[i])
			}
			continue
		}
		units = units.Sub(assetUnits)

		out, err := ammmath.CalcPriceCurveLimit(assetUnits, balances[i], pool.Weights[i], pool.OneMinusAmp)
		if err != nil {
			return nil, err
		}
		if out.LT(minOut[i]) {
			return nil, types.ErrInsufficientReturn.Wrapf("%s output %s below minimum %s", asset, out, minOut[i])
		}

		if out.IsPositive() {
			if err := k.bankKeeper.SendCoins(ctx, poolAddr, sender, sdk.NewCoins(sdk.NewCoin(asset, out))); err != nil {
				return nil, err
			}
		}
		pool.MaxUnitCapacity = saturatingSub(pool.MaxUnitCapacity, pool.Weights[i].Mul(out))
		outs[i] = out
	}
	if !units.IsZero() {
		return nil, types.ErrUnusedUnitsAfterWithdrawal.Wrapf("%s units left unclaimed", units)
	}
	k.SetPool(ctx, pool)

	k.emitWithdraw(ctx, pool, sender, shares, "mixed")
	return outs, nil
}

func (k Keeper) emitWithdraw(ctx sdk.Context, pool types.Pool, sender sdk.AccAddress, shares math.Int, kind string) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeyPoolID, math.NewIntFromUint64(pool.ID).String()),
			sdk.NewAttribute(types.AttributeKeyAccount, sender.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	withdrawalsCounter.WithLabelValues(math.NewIntFromUint64(pool.ID).String(), kind).Inc()
}
