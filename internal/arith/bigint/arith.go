package bigint

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return makeInt(x.neg, addMag(x.mag, y.mag))
	}
	// Differing signs: the operand with the larger magnitude decides the sign.
	switch cmpMag(x.mag, y.mag) {
	case 0:
		return Int{}
	case 1:
		return makeInt(x.neg, subMag(x.mag, y.mag))
	default:
		return makeInt(y.neg, subMag(y.mag, x.mag))
	}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	if x.mag == "" || y.mag == "" {
		return Int{}
	}
	return makeInt(x.neg != y.neg, mulMag(x.mag, y.mag))
}

// QuoRem returns the truncated quotient and the remainder of x / y.
//
// The quotient is rounded toward zero and the remainder has the sign of x
// (or is zero), so q*y + r == x and |r| < |y|. This matches the behavior of
// Go's / and % operators on machine integers, not floored division.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if y.mag == "" {
		return Int{}, Int{}, ErrDivisionByZero
	}
	if cmpMag(x.mag, y.mag) < 0 {
		return Int{}, x, nil
	}
	qm, rm := divMag(x.mag, y.mag)
	return makeInt(x.neg != y.neg, qm), makeInt(x.neg, rm), nil
}

// Quo returns the quotient x / y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the remainder x % y, which has the sign of x.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// cmpMag compares two canonical magnitudes.
func cmpMag(a, b string) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// addMag adds two magnitudes digit by digit with carry. The result may
// carry a leading zero.
func addMag(a, b string) string {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]byte, len(a)+1)
	var carry byte
	for i := 0; i < len(a); i++ {
		d := a[len(a)-1-i] - '0' + carry
		if i < len(b) {
			d += b[len(b)-1-i] - '0'
		}
		carry = d / 10
		out[len(out)-1-i] = d%10 + '0'
	}
	out[0] = carry + '0'
	return string(out)
}

// subMag returns a - b for magnitudes with a >= b, digit by digit with
// borrow. The result may carry leading zeros.
func subMag(a, b string) string {
	out := make([]byte, len(a))
	borrow := 0
	for i := 0; i < len(a); i++ {
		d := int(a[len(a)-1-i]-'0') - borrow
		if i < len(b) {
			d -= int(b[len(b)-1-i] - '0')
		}
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[len(out)-1-i] = byte(d) + '0'
	}
	return string(out)
}

// mulMag multiplies two non-zero magnitudes with schoolbook long
// multiplication into a len(a)+len(b) digit buffer.
func mulMag(a, b string) string {
	buf := make([]int, len(a)+len(b))
	for i := len(a) - 1; i >= 0; i-- {
		da := int(a[i] - '0')
		carry := 0
		for j := len(b) - 1; j >= 0; j-- {
			sum := buf[i+j+1] + da*int(b[j]-'0') + carry
			carry = sum / 10
			buf[i+j+1] = sum % 10
		}
		buf[i] += carry
	}
	out := make([]byte, len(buf))
	for i, d := range buf {
		out[i] = byte(d) + '0'
	}
	return string(out)
}

// divMag performs long division of a by a non-zero b. Dividend digits are
// consumed left to right into a running remainder, and each quotient digit
// is found by repeated subtraction of b, which takes at most nine steps
// because the running remainder stays below 10*b.
func divMag(a, b string) (quo, rem string) {
	q := make([]byte, len(a))
	cur := ""
	for i := 0; i < len(a); i++ {
		cur = trimZeros(cur + a[i:i+1])
		var digit byte
		for cmpMag(cur, b) >= 0 {
			cur = trimZeros(subMag(cur, b))
			digit++
		}
		q[i] = digit + '0'
	}
	return string(q), cur
}

// halfMag divides a magnitude by two, discarding the remainder.
func halfMag(a string) string {
	out := make([]byte, len(a))
	rem := 0
	for i := 0; i < len(a); i++ {
		cur := rem*10 + int(a[i]-'0')
		out[i] = byte(cur/2) + '0'
		rem = cur % 2
	}
	return string(out)
}
