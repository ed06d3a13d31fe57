// Package prime provides modular arithmetic and a probabilistic primality
// test over bigint values.
//
// Randomness is always injected through a random.Source so that callers
// choose between reproducible seeded streams and crypto/rand.
package prime

import (
	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
	"github.com/louisbranch/bignumbers/internal/random"
)

// ErrInvalidArgument indicates a precondition violation such as a zero
// modulus, an empty range or a missing random source.
var ErrInvalidArgument = apperrors.New(apperrors.CodeInvalidArgument, "invalid argument")

var (
	zero = bigint.New(0)
	one  = bigint.New(1)
	two  = bigint.New(2)
)

// ModPow returns base^exponent mod modulus by square-and-multiply.
//
// Reduction uses bigint's truncating remainder, so a negative base can
// yield a negative result. A modulus of ±1 always yields 0.
func ModPow(base, exponent, modulus bigint.Int) (bigint.Int, error) {
	if modulus.IsZero() {
		return bigint.Int{}, invalidArgument("modulus must not be zero")
	}
	if exponent.Sign() < 0 {
		return bigint.Int{}, invalidArgument("exponent must not be negative")
	}

	result, err := one.Rem(modulus)
	if err != nil {
		return bigint.Int{}, err
	}
	b, err := base.Rem(modulus)
	if err != nil {
		return bigint.Int{}, err
	}
	e := exponent
	for !e.IsZero() {
		if !e.IsEven() {
			if result, err = result.Mul(b).Rem(modulus); err != nil {
				return bigint.Int{}, err
			}
		}
		if e, err = e.Quo(two); err != nil {
			return bigint.Int{}, err
		}
		if b, err = b.Mul(b).Rem(modulus); err != nil {
			return bigint.Int{}, err
		}
	}
	return result, nil
}

// BitLength returns the number of halvings needed to bring |n| to zero.
// BitLength(0) is 0.
func BitLength(n bigint.Int) int {
	bits := 0
	for n = n.Abs(); !n.IsZero(); bits++ {
		n, _ = n.Quo(two)
	}
	return bits
}

// RandomRange returns a uniformly distributed value in [low, high].
//
// Samples of BitLength(high-low+1) fair bits are drawn and rejected until
// one falls inside the range. Each draw succeeds with probability above one
// half, but the loop has no upper bound; callers must guarantee low <= high,
// which is checked here.
func RandomRange(src random.Source, low, high bigint.Int) (bigint.Int, error) {
	if src == nil {
		return bigint.Int{}, invalidArgument("random source is required")
	}
	if low.Cmp(high) > 0 {
		return bigint.Int{}, invalidArgument("low must not exceed high")
	}

	span := high.Sub(low).Add(one)
	bits := BitLength(span)
	for {
		sample := zero
		for i := 0; i < bits; i++ {
			sample = sample.Mul(two)
			if src.Bit() == 1 {
				sample = sample.Add(one)
			}
		}
		if sample.Cmp(span) < 0 {
			return low.Add(sample), nil
		}
	}
}

// IsPrime runs the Miller-Rabin test on n with the given number of rounds.
//
// The result is probabilistic: a composite n passes all rounds with
// probability at most 4^-rounds, which is small but never zero. A false
// result is always correct.
func IsPrime(src random.Source, n bigint.Int, rounds int) (bool, error) {
	if src == nil {
		return false, invalidArgument("random source is required")
	}
	if rounds < 1 {
		return false, invalidArgument("rounds must be positive")
	}

	switch {
	case n.Cmp(one) <= 0:
		return false, nil
	case n.Cmp(bigint.New(3)) <= 0:
		return true, nil
	case n.IsEven():
		return false, nil
	}

	nMinusOne := n.Sub(one)
	d, s := nMinusOne, 0
	for d.IsEven() {
		d, _ = d.Quo(two)
		s++
	}

	for round := 0; round < rounds; round++ {
		a, err := RandomRange(src, two, n.Sub(two))
		if err != nil {
			return false, err
		}
		x, err := ModPow(a, d, n)
		if err != nil {
			return false, err
		}
		if x == one || x == nMinusOne {
			continue
		}
		witness := true
		for i := 1; i < s; i++ {
			if x, err = x.Mul(x).Rem(n); err != nil {
				return false, err
			}
			if x == nMinusOne {
				witness = false
				break
			}
		}
		if witness {
			return false, nil
		}
	}
	return true, nil
}

// Tester bundles a random source with a default round count.
type Tester struct {
	Source random.Source
	Rounds int
}

// Test reports whether n is probably prime.
func (t Tester) Test(n bigint.Int) (bool, error) {
	return IsPrime(t.Source, n, t.Rounds)
}

func invalidArgument(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidArgument, reason, map[string]string{
		"Reason": reason,
	})
}
