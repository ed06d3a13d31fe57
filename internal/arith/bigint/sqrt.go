package bigint

import (
	"errors"
	"math"
	"strconv"

	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
)

// Float64 returns the float64 value nearest to x.
//
// It fails with ErrOverflow when |x| exceeds the largest finite float64.
func (x Int) Float64() (float64, error) {
	f, err := strconv.ParseFloat(x.String(), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, apperrors.WithMetadata(apperrors.CodeOverflow, "number overflows float64", map[string]string{
				"Digits": strconv.Itoa(len(x.mag)),
			})
		}
		return 0, err
	}
	return f, nil
}

// Sqrt returns the floating point square root of x.
func (x Int) Sqrt() (float64, error) {
	if x.neg {
		return 0, ErrNegativeOperand
	}
	f, err := x.Float64()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(f), nil
}

// ISqrt returns the largest m such that m*m <= x.
//
// 0 and 1 are their own roots. Larger values are found by binary search
// over [1, x] using exact integer arithmetic, so the result is correct for
// inputs far beyond float64 range.
func (x Int) ISqrt() (Int, error) {
	if x.neg {
		return Int{}, ErrNegativeOperand
	}
	if x.Cmp(one) <= 0 {
		return x, nil
	}

	lo, hi := one, x
	root := one
	for lo.Cmp(hi) <= 0 {
		mid := makeInt(false, halfMag(addMag(lo.mag, hi.mag)))
		if mid.Mul(mid).Cmp(x) <= 0 {
			root = mid
			lo = mid.Add(one)
		} else {
			hi = mid.Sub(one)
		}
	}
	return root, nil
}
