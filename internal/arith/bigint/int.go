// Package bigint implements arbitrary-precision signed integers.
//
// An Int stores its magnitude as a string of decimal digits, most
// significant first, next to a sign flag. Every value is kept in canonical
// form: no leading zeros, and zero is never negative. Arithmetic follows the
// grade-school algorithms on digit strings, and division truncates toward
// zero so that a remainder always carries the sign of its dividend.
//
// # Mutability
//
// Int is an immutable value type. Operations return new values and never
// modify their operands; there are no in-place (compound assignment) forms.
// The only methods with pointer receivers are the decoding hooks Scan and
// UnmarshalText, which replace the receiver only on success.
package bigint

import (
	"strconv"

	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
)

// Int is an arbitrary-precision signed integer.
//
// The zero value is 0. Because the representation is canonical, == reports
// numeric equality and Int values can be used as map keys.
type Int struct {
	neg bool
	mag string // decimal digits without leading zeros; "" is zero
}

var (
	one = Int{mag: "1"}
	two = Int{mag: "2"}
)

// New returns the Int value of n.
func New(n int64) Int {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return makeInt(true, s[1:])
	}
	return makeInt(false, s)
}

// Parse converts a decimal string into an Int.
//
// The accepted form is an optional leading '+' or '-' followed by one or
// more ASCII digits. Leading zeros are allowed and dropped; "-0" is zero.
// Anything else, including the empty string or a lone sign, fails with
// ErrInvalidFormat.
func Parse(s string) (Int, error) {
	digits := s
	neg := false
	if len(s) > 0 {
		switch s[0] {
		case '-':
			neg = true
			digits = s[1:]
		case '+':
			digits = s[1:]
		}
	}
	if !isDigits(digits) {
		return Int{}, invalidFormat(s)
	}
	return makeInt(neg, digits), nil
}

// MustParse is like Parse but panics if s is not a valid integer.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// String returns the canonical decimal form: a '-' only for negative values
// and no leading zeros.
func (x Int) String() string {
	if x.mag == "" {
		return "0"
	}
	if x.neg {
		return "-" + x.mag
	}
	return x.mag
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case x.mag == "":
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x is 0.
func (x Int) IsZero() bool {
	return x.mag == ""
}

// IsEven reports whether x is divisible by two.
func (x Int) IsEven() bool {
	if x.mag == "" {
		return true
	}
	return (x.mag[len(x.mag)-1]-'0')%2 == 0
}

// Neg returns -x.
func (x Int) Neg() Int {
	if x.mag == "" {
		return x
	}
	return Int{neg: !x.neg, mag: x.mag}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{mag: x.mag}
}

// Len returns the number of decimal digits in |x|. Zero has one digit.
func (x Int) Len() int {
	if x.mag == "" {
		return 1
	}
	return len(x.mag)
}

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	c := cmpMag(x.mag, y.mag)
	if x.neg {
		return -c
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver is left
// unchanged when text is not a valid integer.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// makeInt builds a canonical Int from a sign and a raw digit string.
func makeInt(neg bool, digits string) Int {
	digits = trimZeros(digits)
	if digits == "" {
		return Int{}
	}
	return Int{neg: neg, mag: digits}
}

func trimZeros(digits string) string {
	i := 0
	for i < len(digits) && digits[i] == '0' {
		i++
	}
	return digits[i:]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalidFormat(input string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidFormat, "invalid number format", map[string]string{
		"Input": input,
	})
}
