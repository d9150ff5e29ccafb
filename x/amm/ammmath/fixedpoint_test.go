package ammmath

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func wad(n int64) sdkmath.Int {
	return sdkmath.NewInt(n).Mul(WAD)
}

// requireClose asserts got is within tol WAD quanta of want.
func requireClose(t *testing.T, want, got sdkmath.Int, tol int64) {
	t.Helper()
	diff := want.Sub(got).Abs()
	require.True(t, diff.LTE(sdkmath.NewInt(tol)),
		"want %s, got %s, diff %s exceeds tolerance %d", want, got, diff, tol)
}

func TestMulWad(t *testing.T) {
	r, err := MulWadDown(wad(2), wad(3))
	require.NoError(t, err)
	require.Equal(t, wad(6), r)

	// 1 * 1 quantum truncates to zero down, rounds to one up
	r, err = MulWadDown(sdkmath.OneInt(), sdkmath.OneInt())
	require.NoError(t, err)
	require.True(t, r.IsZero())

	r, err = MulWadUp(sdkmath.OneInt(), sdkmath.OneInt())
	require.NoError(t, err)
	require.Equal(t, sdkmath.OneInt(), r)

	// exact products do not get the up bias
	r, err = MulWadUp(wad(2), wad(3))
	require.NoError(t, err)
	require.Equal(t, wad(6), r)
}

func TestDivWad(t *testing.T) {
	r, err := DivWadDown(wad(1), wad(3))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(333_333_333_333_333_333), r)

	r, err = DivWadUp(wad(1), wad(3))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(333_333_333_333_333_334), r)

	// exact quotients agree in both directions
	down, err := DivWadDown(wad(6), wad(2))
	require.NoError(t, err)
	up, err := DivWadUp(wad(6), wad(2))
	require.NoError(t, err)
	require.Equal(t, down, up)
	require.Equal(t, wad(3), down)

	_, err = DivWadDown(wad(1), sdkmath.ZeroInt())
	require.Error(t, err)
	_, err = DivWadUp(wad(1), sdkmath.ZeroInt())
	require.Error(t, err)
}

func TestLnWad(t *testing.T) {
	// ln(1) = 0
	r, err := LnWad(WAD)
	require.NoError(t, err)
	require.True(t, r.IsZero())

	// ln(2) hits the stored constant exactly after range reduction
	r, err = LnWad(wad(2))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(693_147_180_559_945_309), r)

	// ln(e) = 1
	e := sdkmath.NewInt(2_718_281_828_459_045_235)
	r, err = LnWad(e)
	require.NoError(t, err)
	requireClose(t, WAD, r, 100)

	// ln(1/2) = -ln(2)
	r, err = LnWad(WAD.QuoRaw(2))
	require.NoError(t, err)
	requireClose(t, sdkmath.NewInt(-693_147_180_559_945_309), r, 10)

	// ln(1000) = 3*ln(10)
	r, err = LnWad(wad(1000))
	require.NoError(t, err)
	requireClose(t, sdkmath.NewInt(6_907_755_278_982_137_052), r, 200)

	_, err = LnWad(sdkmath.ZeroInt())
	require.Error(t, err)
	_, err = LnWad(wad(-1))
	require.Error(t, err)
}

func TestExpWad(t *testing.T) {
	// e^0 = 1
	r, err := ExpWad(sdkmath.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, WAD, r)

	// e^ln2 = 2 exactly, the remainder is zero
	r, err = ExpWad(sdkmath.NewInt(693_147_180_559_945_309))
	require.NoError(t, err)
	require.Equal(t, wad(2), r)

	// e^1
	r, err = ExpWad(WAD)
	require.NoError(t, err)
	requireClose(t, sdkmath.NewInt(2_718_281_828_459_045_235), r, 100)

	// e^-1
	r, err = ExpWad(wad(-1))
	require.NoError(t, err)
	requireClose(t, sdkmath.NewInt(367_879_441_171_442_322), r, 100)

	// below the lower bound the result underflows to zero
	r, err = ExpWad(wad(-50))
	require.NoError(t, err)
	require.True(t, r.IsZero())

	// above the upper bound the result cannot be represented
	_, err = ExpWad(wad(136))
	require.Error(t, err)
}

func TestPowWad(t *testing.T) {
	// 4^0.5 = 2
	r, err := PowWadDown(wad(4), WAD.QuoRaw(2))
	require.NoError(t, err)
	requireClose(t, wad(2), r, 100)

	// x^0 = 1
	r, err = PowWadDown(wad(7), sdkmath.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, WAD, r)

	// 1^x = 1
	r, err = PowWadDown(WAD, wad(3))
	require.NoError(t, err)
	require.Equal(t, WAD, r)

	// 2^10 = 1024
	r, err = PowWadDown(wad(2), wad(10))
	require.NoError(t, err)
	requireClose(t, wad(1024), r, 100_000)

	// 4^-0.5 = 0.5
	r, err = PowWadDown(wad(4), WAD.QuoRaw(2).Neg())
	require.NoError(t, err)
	requireClose(t, WAD.QuoRaw(2), r, 100)

	_, err = PowWadDown(sdkmath.ZeroInt(), WAD)
	require.Error(t, err)

	// the up variant sits one quantum above the down variant
	down, err := PowWadDown(wad(4), WAD.QuoRaw(2))
	require.NoError(t, err)
	up, err := PowWadUp(wad(4), WAD.QuoRaw(2))
	require.NoError(t, err)
	require.Equal(t, down.Add(sdkmath.OneInt()), up)
}
