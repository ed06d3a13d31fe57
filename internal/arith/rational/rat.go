// Package rational implements exact fractions over bigint.Int.
//
// A Rat is always stored in lowest terms with a positive denominator, so
// two Rats are numerically equal exactly when they are ==.
package rational

import (
	"math"
	"strings"

	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
)

var (
	// ErrInvalidFormat indicates a malformed fraction literal.
	ErrInvalidFormat = apperrors.New(apperrors.CodeInvalidFormat, "invalid rational format")
	// ErrDivisionByZero indicates a zero denominator or divisor.
	ErrDivisionByZero = apperrors.New(apperrors.CodeDivisionByZero, "zero division")
	// ErrNegativeOperand indicates a square root of a negative fraction.
	ErrNegativeOperand = apperrors.New(apperrors.CodeNegativeOperand, "negative number")
)

var one = bigint.New(1)

// Rat is an exact rational number num/den.
//
// The zero value is 0/1.
type Rat struct {
	num bigint.Int
	den bigint.Int // stored as zero when the denominator is 1
}

// New returns num/den reduced to lowest terms.
func New(num, den bigint.Int) (Rat, error) {
	if den.IsZero() {
		return Rat{}, ErrDivisionByZero
	}
	return reduce(num, den), nil
}

// FromInt64 returns a/b reduced to lowest terms.
func FromInt64(a, b int64) (Rat, error) {
	return New(bigint.New(a), bigint.New(b))
}

// FromInt returns the integer n as n/1.
func FromInt(n bigint.Int) Rat {
	return Rat{num: n}
}

// MustNew is like FromInt64 but panics on a zero denominator.
func MustNew(a, b int64) Rat {
	r, err := FromInt64(a, b)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads a fraction written as "a" or "a/b", where a and b are
// integers accepted by bigint.Parse. Both parts may carry a sign.
func Parse(s string) (Rat, error) {
	numText, denText, hasDen := strings.Cut(s, "/")
	num, err := bigint.Parse(numText)
	if err != nil {
		return Rat{}, invalidFormat(s, err)
	}
	if !hasDen {
		return FromInt(num), nil
	}
	den, err := bigint.Parse(denText)
	if err != nil {
		return Rat{}, invalidFormat(s, err)
	}
	return New(num, den)
}

// Num returns the numerator, which carries the sign.
func (r Rat) Num() bigint.Int {
	return r.num
}

// Den returns the denominator, which is always positive.
func (r Rat) Den() bigint.Int {
	if r.den.IsZero() {
		return one
	}
	return r.den
}

// Sign returns -1, 0 or +1 depending on the sign of r.
func (r Rat) Sign() int {
	return r.num.Sign()
}

// IsZero reports whether r is 0.
func (r Rat) IsZero() bool {
	return r.num.IsZero()
}

// Neg returns -r.
func (r Rat) Neg() Rat {
	return Rat{num: r.num.Neg(), den: r.den}
}

// Abs returns |r|.
func (r Rat) Abs() Rat {
	return Rat{num: r.num.Abs(), den: r.den}
}

// Add returns r + s.
func (r Rat) Add(s Rat) Rat {
	num := r.num.Mul(s.Den()).Add(s.num.Mul(r.Den()))
	return reduce(num, r.Den().Mul(s.Den()))
}

// Sub returns r - s.
func (r Rat) Sub(s Rat) Rat {
	return r.Add(s.Neg())
}

// Mul returns r * s.
func (r Rat) Mul(s Rat) Rat {
	return reduce(r.num.Mul(s.num), r.Den().Mul(s.Den()))
}

// Quo returns r / s. It fails with ErrDivisionByZero when s is zero.
func (r Rat) Quo(s Rat) (Rat, error) {
	if s.IsZero() {
		return Rat{}, ErrDivisionByZero
	}
	return reduce(r.num.Mul(s.Den()), r.Den().Mul(s.num)), nil
}

// Cmp compares r and s by cross multiplication and returns -1, 0 or +1.
func (r Rat) Cmp(s Rat) int {
	return r.num.Mul(s.Den()).Cmp(s.num.Mul(r.Den()))
}

// String returns "num" for integers and "num/den" otherwise.
func (r Rat) String() string {
	if r.den.IsZero() {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}

// Sqrt returns the floating point square root of r.
func (r Rat) Sqrt() (float64, error) {
	if r.Sign() < 0 {
		return 0, ErrNegativeOperand
	}
	n, err := r.num.Float64()
	if err != nil {
		return 0, err
	}
	d, err := r.Den().Float64()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(n / d), nil
}

// ISqrt returns the largest integer m with m*m*den <= num, that is the
// floor of the square root of r.
func (r Rat) ISqrt() (bigint.Int, error) {
	if r.Sign() < 0 {
		return bigint.Int{}, ErrNegativeOperand
	}
	// floor(sqrt(n/d)) == isqrt(floor(n/d)) for non-negative n and positive d.
	q, err := r.num.Quo(r.Den())
	if err != nil {
		return bigint.Int{}, err
	}
	return q.ISqrt()
}

// MarshalText implements encoding.TextMarshaler.
func (r Rat) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver is left
// unchanged on failure.
func (r *Rat) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// reduce divides num and den by their greatest common divisor and moves the
// sign onto the numerator. den must be non-zero.
func reduce(num, den bigint.Int) Rat {
	if num.IsZero() {
		return Rat{}
	}
	g := gcd(num.Abs(), den.Abs())
	num, _ = num.Quo(g)
	den, _ = den.Quo(g)
	if den.Sign() < 0 {
		num, den = num.Neg(), den.Neg()
	}
	if den == one {
		return Rat{num: num}
	}
	return Rat{num: num, den: den}
}

// gcd runs the Euclidean algorithm on non-negative operands.
func gcd(a, b bigint.Int) bigint.Int {
	for !b.IsZero() {
		_, r, _ := a.QuoRem(b)
		a, b = b, r
	}
	return a
}

func invalidFormat(input string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeInvalidFormat, "invalid rational format", map[string]string{
		"Input": input,
	}, cause)
}
