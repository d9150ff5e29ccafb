// Package ammmath implements the fixed-point numerics and price-curve
// integrals used by the amplified AMM. All functions are pure: they take
// every input explicitly and never touch module state, so the same code
// serves both the keeper's storage-backed entry points and detached
// off-chain quoting.
//
// Values are WAD fixed point (18 decimals) carried in math.Int. Rounding
// direction is part of each function's contract: the -Down variants truncate
// toward zero and the -Up variants round away from zero. Call sites that
// compute "tokens out" must round the final result down and any divisor in
// the user's favor up, so that rounding error always accrues to the pool.
package ammmath

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/unitdex/unitdex/x/amm/types"
)

var (
	// WAD is the fixed-point scale: 1.0 == 1e18.
	WAD = sdkmath.NewInt(1_000_000_000_000_000_000)

	// WADWAD is WAD squared, used to invert WAD-scaled exponents.
	WADWAD = WAD.Mul(WAD)

	wadBig  = big.NewInt(1_000_000_000_000_000_000)
	oneBig  = big.NewInt(1)
	twoBig  = big.NewInt(2)
	zeroBig = big.NewInt(0)

	// ln(2) in WAD.
	ln2Wad = big.NewInt(693_147_180_559_945_309)

	// expWad input bounds. Above the upper bound the result no longer fits
	// in 256 bits; below the lower bound it rounds to zero in WAD.
	expUpperBound = new(big.Int).Mul(big.NewInt(135), wadBig)
	expLowerBound = new(big.Int).Mul(big.NewInt(-42), wadBig)

	// maxIntBits bounds every intermediate value; math.Int itself caps out
	// at 256 bits and conversion beyond that panics.
	maxIntBits = 256
)

func checkedInt(v *big.Int) (sdkmath.Int, error) {
	if v.BitLen() > maxIntBits {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("value exceeds 256 bits")
	}
	return sdkmath.NewIntFromBigInt(v), nil
}

// MulWadDown returns a*b/WAD truncated toward zero.
func MulWadDown(a, b sdkmath.Int) (sdkmath.Int, error) {
	r := new(big.Int).Mul(a.BigInt(), b.BigInt())
	r.Quo(r, wadBig)
	return checkedInt(r)
}

// MulWadUp returns a*b/WAD rounded away from zero.
func MulWadUp(a, b sdkmath.Int) (sdkmath.Int, error) {
	p := new(big.Int).Mul(a.BigInt(), b.BigInt())
	q, rem := new(big.Int).QuoRem(p, wadBig, new(big.Int))
	if rem.Sign() > 0 {
		q.Add(q, oneBig)
	} else if rem.Sign() < 0 {
		q.Sub(q, oneBig)
	}
	return checkedInt(q)
}

// DivWadDown returns a*WAD/b truncated toward zero. b must be nonzero.
func DivWadDown(a, b sdkmath.Int) (sdkmath.Int, error) {
	if b.IsZero() {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("division by zero")
	}
	r := new(big.Int).Mul(a.BigInt(), wadBig)
	r.Quo(r, b.BigInt())
	return checkedInt(r)
}

// DivWadUp returns a*WAD/b rounded away from zero. b must be nonzero.
func DivWadUp(a, b sdkmath.Int) (sdkmath.Int, error) {
	if b.IsZero() {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("division by zero")
	}
	p := new(big.Int).Mul(a.BigInt(), wadBig)
	q, rem := new(big.Int).QuoRem(p, b.BigInt(), new(big.Int))
	if rem.Sign() > 0 {
		q.Add(q, oneBig)
	} else if rem.Sign() < 0 {
		q.Sub(q, oneBig)
	}
	return checkedInt(q)
}

// LnWad returns ln(x) for a WAD-scaled x > 0, WAD-scaled.
//
// The argument is range-reduced to m in [1, 2) by powers of two, then
// ln(m) is evaluated with the artanh series
//
//	ln(m) = 2 * (t + t^3/3 + t^5/5 + ...),  t = (m-1)/(m+1)
//
// which converges geometrically (t <= 1/3) and terminates deterministically
// when the next term underflows WAD precision.
func LnWad(x sdkmath.Int) (sdkmath.Int, error) {
	xb := x.BigInt()
	if xb.Sign() <= 0 {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("ln of non-positive value")
	}

	m := new(big.Int).Set(xb)
	k := int64(0)
	two := new(big.Int).Mul(wadBig, twoBig)
	for m.Cmp(two) >= 0 {
		m.Rsh(m, 1)
		k++
	}
	for m.Cmp(wadBig) < 0 {
		m.Lsh(m, 1)
		k--
	}

	// t = (m - WAD) * WAD / (m + WAD)
	num := new(big.Int).Sub(m, wadBig)
	num.Mul(num, wadBig)
	den := new(big.Int).Add(m, wadBig)
	t := num.Quo(num, den)

	// tsq = t^2 / WAD
	tsq := new(big.Int).Mul(t, t)
	tsq.Quo(tsq, wadBig)

	sum := new(big.Int).Set(t)
	term := new(big.Int).Set(t)
	for n := int64(3); term.Sign() != 0; n += 2 {
		term.Mul(term, tsq)
		term.Quo(term, wadBig)
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, new(big.Int).Quo(term, big.NewInt(n)))
	}
	sum.Mul(sum, twoBig)

	// ln(x) = k*ln2 + ln(m)
	kln2 := new(big.Int).Mul(big.NewInt(k), ln2Wad)
	sum.Add(sum, kln2)
	return checkedInt(sum)
}

// ExpWad returns e^x for a WAD-scaled x, WAD-scaled.
//
// x is reduced modulo ln(2) so that x = k*ln2 + r with |r| <= ln2/2, then
// e^r is evaluated by Taylor series and shifted by k bits. Inputs above
// 135e18 fail with ErrCurveOverflow; inputs below -42e18 return zero, which
// is already below one WAD quantum.
func ExpWad(x sdkmath.Int) (sdkmath.Int, error) {
	xb := x.BigInt()
	if xb.Cmp(expUpperBound) >= 0 {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("exp argument too large")
	}
	if xb.Cmp(expLowerBound) <= 0 {
		return sdkmath.ZeroInt(), nil
	}

	// k = round(x / ln2)
	half := new(big.Int).Quo(ln2Wad, twoBig)
	biased := new(big.Int).Set(xb)
	if xb.Sign() >= 0 {
		biased.Add(biased, half)
	} else {
		biased.Sub(biased, half)
	}
	k := new(big.Int).Quo(biased, ln2Wad)

	// r = x - k*ln2, |r| <= ln2/2
	r := new(big.Int).Mul(k, ln2Wad)
	r.Sub(xb, r)

	// e^r by Taylor series; |r| < 0.35 so terms shrink fast.
	sum := new(big.Int).Set(wadBig)
	term := new(big.Int).Set(wadBig)
	for n := int64(1); term.Sign() != 0; n++ {
		term.Mul(term, r)
		term.Quo(term, wadBig)
		term.Quo(term, big.NewInt(n))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
	}

	ki := k.Int64()
	if ki >= 0 {
		sum.Lsh(sum, uint(ki))
	} else {
		sum.Rsh(sum, uint(-ki))
	}
	if sum.Sign() < 0 {
		sum.Set(zeroBig)
	}
	return checkedInt(sum)
}

// PowWadDown returns base^exponent for a WAD-scaled base > 0 and a signed
// WAD-scaled exponent, computed as exp(exponent * ln(base)). The result may
// be below the exact real value by a few WAD quanta; it is never above it by
// more than one quantum, which is the tolerance every caller assumes.
func PowWadDown(base, exponent sdkmath.Int) (sdkmath.Int, error) {
	if !base.IsPositive() {
		return sdkmath.Int{}, types.ErrCurveOverflow.Wrap("pow of non-positive base")
	}
	if exponent.IsZero() {
		return WAD, nil
	}
	if base.Equal(WAD) {
		return WAD, nil
	}

	ln, err := LnWad(base)
	if err != nil {
		return sdkmath.Int{}, err
	}
	arg := new(big.Int).Mul(ln.BigInt(), exponent.BigInt())
	arg.Quo(arg, wadBig)
	v, err := checkedInt(arg)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return ExpWad(v)
}

// PowWadUp is PowWadDown biased one quantum upward. It is used where the
// powered value sits in a divisor or is subtracted from the user's payout,
// so that the bias favors the pool.
func PowWadUp(base, exponent sdkmath.Int) (sdkmath.Int, error) {
	r, err := PowWadDown(base, exponent)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if exponent.IsZero() || base.Equal(WAD) {
		return r, nil
	}
	return r.Add(sdkmath.OneInt()), nil
}
