package ammmath

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

// halfAmp is 1-k = 0.5, the curve parameter used throughout.
var halfAmp = WAD.QuoRaw(2)

func TestCalcPriceCurveArea(t *testing.T) {
	one := sdkmath.OneInt()

	// selling into an anchored balance yields positive units
	units, err := CalcPriceCurveArea(sdkmath.NewInt(100), sdkmath.NewInt(1000), one, halfAmp)
	require.NoError(t, err)
	require.True(t, units.IsPositive())

	// sqrt(1100) - sqrt(1000) in WAD, to within rounding
	requireClose(t, sdkmath.NewInt(1_543_471_301_870_205_300), units, 1_000_000)

	// zero input over a live balance is zero area
	units, err = CalcPriceCurveArea(sdkmath.ZeroInt(), sdkmath.NewInt(1000), one, halfAmp)
	require.NoError(t, err)
	require.True(t, units.IsZero())

	// a zero balance anchors the integral at the origin: (W*input)^(1-k)
	units, err = CalcPriceCurveArea(sdkmath.NewInt(100), sdkmath.ZeroInt(), one, halfAmp)
	require.NoError(t, err)
	requireClose(t, wad(10), units, 1_000)

	// no anchor point at all
	_, err = CalcPriceCurveArea(sdkmath.ZeroInt(), sdkmath.ZeroInt(), one, halfAmp)
	require.Error(t, err)

	// area grows sublinearly in the input
	small, err := CalcPriceCurveArea(sdkmath.NewInt(100), sdkmath.NewInt(1000), one, halfAmp)
	require.NoError(t, err)
	big, err := CalcPriceCurveArea(sdkmath.NewInt(200), sdkmath.NewInt(1000), one, halfAmp)
	require.NoError(t, err)
	require.True(t, big.LT(small.MulRaw(2)))
}

func TestCalcPriceCurveLimit(t *testing.T) {
	one := sdkmath.OneInt()

	// limit inverts area: selling `in` then redeeming the units against the
	// grown balance returns the original amount, less rounding in the pool's
	// favor
	in := sdkmath.NewInt(100)
	balance := sdkmath.NewInt(1000)
	units, err := CalcPriceCurveArea(in, balance, one, halfAmp)
	require.NoError(t, err)

	out, err := CalcPriceCurveLimit(units, balance.Add(in), one, halfAmp)
	require.NoError(t, err)
	require.True(t, out.LTE(in))
	require.True(t, out.GTE(in.SubRaw(1)))

	// zero units pay nothing
	out, err = CalcPriceCurveLimit(sdkmath.ZeroInt(), balance, one, halfAmp)
	require.NoError(t, err)
	require.True(t, out.IsZero())

	// units covering the whole anchored area have no finite payout
	anchor, err := PowWadDown(balance.Mul(WAD), halfAmp)
	require.NoError(t, err)
	_, err = CalcPriceCurveLimit(anchor, balance, one, halfAmp)
	require.Error(t, err)

	_, err = CalcPriceCurveLimit(units, balance, sdkmath.ZeroInt(), halfAmp)
	require.Error(t, err)
}

func TestCalcCombinedPriceCurves(t *testing.T) {
	one := sdkmath.OneInt()
	balance := sdkmath.NewInt(1000)

	// a swap against equal balances always returns less than it takes
	out, err := CalcCombinedPriceCurves(sdkmath.NewInt(100), balance, balance, one, one, halfAmp)
	require.NoError(t, err)
	require.True(t, out.IsPositive())
	require.True(t, out.LT(sdkmath.NewInt(100)))

	// 1000/1000 pool, 100 in: ~95.3 out at 1-k = 0.5
	require.True(t, out.GTE(sdkmath.NewInt(94)))
	require.True(t, out.LTE(sdkmath.NewInt(96)))

	// weights scale the effective balances
	heavier, err := CalcCombinedPriceCurves(sdkmath.NewInt(100), balance, balance, one, sdkmath.NewInt(10), halfAmp)
	require.NoError(t, err)
	require.True(t, heavier.LT(balance))
	require.True(t, heavier.IsPositive())
}

func TestCalcPriceCurveLimitShare(t *testing.T) {
	supply := wad(1)
	inv := WADWAD.Quo(halfAmp)

	// zero units mint zero shares
	shares, err := CalcPriceCurveLimitShare(sdkmath.ZeroInt(), supply, wad(2), inv)
	require.NoError(t, err)
	require.True(t, shares.IsZero())

	// doubling the reference area quadruples balances at 1-k = 0.5, so the
	// minted shares triple the supply: (1+1)^2 - 1 = 3
	shares, err = CalcPriceCurveLimitShare(wad(2), supply, wad(2), inv)
	require.NoError(t, err)
	requireClose(t, wad(3), shares, 1_000_000)

	_, err = CalcPriceCurveLimitShare(wad(1), supply, sdkmath.ZeroInt(), inv)
	require.Error(t, err)
}

func TestApplySmallSwapDiscount(t *testing.T) {
	out := wad(1)

	// input * 1e12 below the balance gets the 0.95 haircut
	discounted := ApplySmallSwapDiscount(out, sdkmath.OneInt(), sdkmath.NewInt(2_000_000_000_000))
	require.Equal(t, sdkmath.NewInt(950_000_000_000_000_000), discounted)

	// at or above the threshold the output is untouched
	full := ApplySmallSwapDiscount(out, sdkmath.OneInt(), sdkmath.NewInt(1_000_000_000_000))
	require.Equal(t, out, full)
}
