package ammmath

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/unitdex/unitdex/x/amm/types"
)

// Small-swap correction. The integral over-returns value on trades that are
// vanishingly small relative to the pool, because the WAD quantization of
// the powered terms dominates the true price difference. Trades below
// balance/SmallSwapRatio are therefore paid out at SmallSwapReturn of the
// computed value. Both constants are protocol constants and must not change
// between chain instances of the same pool.
var (
	SmallSwapRatio  = sdkmath.NewInt(1_000_000_000_000)       // 1e12
	SmallSwapReturn = sdkmath.NewInt(950_000_000_000_000_000) // 0.95 in WAD

	// MaxWorkingUnits is a safety fuse: units leaving a pool must stay in
	// the positive half of the signed 256-bit range so the unit tracker can
	// always hold their negation. Never reached in normal operation.
	MaxWorkingUnits = sdkmath.NewIntFromBigInt(
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1)),
	)
)

// CalcPriceCurveArea integrates the price curve from W*A to W*(A+input):
//
//	U = (W*(A+input))^(1-k) - (W*A)^(1-k)
//
// returning WAD-scaled units. A zero balance with a zero input is undefined
// (the curve has no anchor point) and fails.
func CalcPriceCurveArea(input, balance, weight, oneMinusAmp sdkmath.Int) (sdkmath.Int, error) {
	after := weight.Mul(balance.Add(input)).Mul(WAD)
	if after.IsZero() {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("price curve area on empty balance")
	}
	afterPow, err := PowWadDown(after, oneMinusAmp)
	if err != nil {
		return sdkmath.Int{}, err
	}

	before := weight.Mul(balance).Mul(WAD)
	if before.IsZero() {
		// 0^(1-k) with 1-k > 0 is exactly zero.
		return afterPow, nil
	}
	beforePow, err := PowWadUp(before, oneMinusAmp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if beforePow.GT(afterPow) {
		return sdkmath.ZeroInt(), nil
	}
	return afterPow.Sub(beforePow), nil
}

// CalcPriceCurveLimit inverts the integral: it solves for the output y that
// consumes exactly `units` of area against a balance B with weight W:
//
//	y = B * (1 - ((X - U) / X)^(1/(1-k))),  X = (W*B)^(1-k)
//
// Units claiming the entire anchored area (U >= X) have no finite solution
// and fail; callers that want the capped "pay what is available" behavior
// check for that case themselves.
func CalcPriceCurveLimit(units, balance, weight, oneMinusAmp sdkmath.Int) (sdkmath.Int, error) {
	if weight.IsZero() {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("zero weight")
	}
	intermediate, err := PowWadDown(weight.Mul(balance).Mul(WAD), oneMinusAmp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if units.GTE(intermediate) {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("units exceed anchored curve area")
	}

	// Round the ratio up and the power up: both push the payout down.
	ratio, err := DivWadUp(intermediate.Sub(units), intermediate)
	if err != nil {
		return sdkmath.Int{}, err
	}
	powered, err := PowWadUp(ratio, WADWAD.Quo(oneMinusAmp))
	if err != nil {
		return sdkmath.Int{}, err
	}
	if powered.GT(WAD) {
		return sdkmath.ZeroInt(), nil
	}
	return balance.Mul(WAD.Sub(powered)).Quo(WAD), nil
}

// CalcCombinedPriceCurves composes area and limit for a same-chain swap so
// that the intermediate units never leave WAD precision.
func CalcCombinedPriceCurves(input, balanceFrom, balanceTo, weightFrom, weightTo, oneMinusAmp sdkmath.Int) (sdkmath.Int, error) {
	units, err := CalcPriceCurveArea(input, balanceFrom, weightFrom, oneMinusAmp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return CalcPriceCurveLimit(units, balanceTo, weightTo, oneMinusAmp)
}

// CalcPriceCurveLimitShare converts units into a pool-share mint amount:
//
//	shares = ts * ((1 + U/(N*walpha0^(1-k)))^(1/(1-k)) - 1)
//
// nWalphaAmped is N*walpha0^(1-k) precomputed by the caller and
// oneMinusAmpInverse is WAD^2/(1-k), i.e. 1/(1-amplification) in WAD.
func CalcPriceCurveLimitShare(units, totalSupply, nWalphaAmped, oneMinusAmpInverse sdkmath.Int) (sdkmath.Int, error) {
	if !nWalphaAmped.IsPositive() {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("non-positive reference balance")
	}
	ratio, err := DivWadDown(nWalphaAmped.Add(units), nWalphaAmped)
	if err != nil {
		return sdkmath.Int{}, err
	}
	powered, err := PowWadDown(ratio, oneMinusAmpInverse)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if powered.LTE(WAD) {
		return sdkmath.ZeroInt(), nil
	}
	return totalSupply.Mul(powered.Sub(WAD)).Quo(WAD), nil
}

// ApplySmallSwapDiscount applies the small-swap correction when the input is
// below fromBalance/SmallSwapRatio.
func ApplySmallSwapDiscount(output, input, fromBalance sdkmath.Int) sdkmath.Int {
	if input.Mul(SmallSwapRatio).LT(fromBalance) {
		return output.Mul(SmallSwapReturn).Quo(WAD)
	}
	return output
}
