package prime

import (
	"errors"
	"testing"

	"github.com/louisbranch/bignumbers/internal/arith/bigint"
	"github.com/louisbranch/bignumbers/internal/random"
)

func TestModPow(t *testing.T) {
	tests := []struct {
		base, exp, mod string
		want           string
	}{
		{"4", "13", "497", "445"},
		{"2", "10", "1000", "24"},
		{"3", "0", "7", "1"},
		{"5", "0", "1", "0"},
		{"7", "3", "1", "0"},
		{"-2", "3", "5", "-3"},
		{"10", "1", "7", "3"},
		{"123456789", "987654321", "1000000007", "652541198"},
	}
	for _, tt := range tests {
		got, err := ModPow(bigint.MustParse(tt.base), bigint.MustParse(tt.exp), bigint.MustParse(tt.mod))
		if err != nil {
			t.Fatalf("ModPow(%s, %s, %s): %v", tt.base, tt.exp, tt.mod, err)
		}
		if got.String() != tt.want {
			t.Errorf("ModPow(%s, %s, %s) = %s, want %s", tt.base, tt.exp, tt.mod, got, tt.want)
		}
	}
}

func TestModPowRejectsBadArguments(t *testing.T) {
	if _, err := ModPow(bigint.New(2), bigint.New(3), bigint.Int{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero modulus error = %v, want ErrInvalidArgument", err)
	}
	if _, err := ModPow(bigint.New(2), bigint.New(-1), bigint.New(5)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative exponent error = %v, want ErrInvalidArgument", err)
	}
}

func TestBitLength(t *testing.T) {
	tests := []struct {
		in   int64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{255, 8},
		{256, 9},
		{-8, 4},
	}
	for _, tt := range tests {
		if got := BitLength(bigint.New(tt.in)); got != tt.want {
			t.Errorf("BitLength(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRandomRangeStaysInBounds(t *testing.T) {
	src := random.NewSource(7)
	low, high := bigint.New(3), bigint.New(7)
	seen := map[bigint.Int]int{}
	for i := 0; i < 500; i++ {
		v, err := RandomRange(src, low, high)
		if err != nil {
			t.Fatalf("RandomRange: %v", err)
		}
		if v.Cmp(low) < 0 || v.Cmp(high) > 0 {
			t.Fatalf("RandomRange = %s, outside [3, 7]", v)
		}
		seen[v]++
	}
	if len(seen) != 5 {
		t.Fatalf("expected every value in [3, 7] to be drawn, got %v", seen)
	}
}

func TestRandomRangeSingleValueAndNegatives(t *testing.T) {
	src := random.NewSource(1)
	v, err := RandomRange(src, bigint.New(-4), bigint.New(-4))
	if err != nil || v.String() != "-4" {
		t.Fatalf("RandomRange(-4, -4) = %s, %v", v, err)
	}
	for i := 0; i < 50; i++ {
		v, err := RandomRange(src, bigint.New(-10), bigint.New(-5))
		if err != nil {
			t.Fatalf("RandomRange: %v", err)
		}
		if v.Cmp(bigint.New(-10)) < 0 || v.Cmp(bigint.New(-5)) > 0 {
			t.Fatalf("RandomRange = %s, outside [-10, -5]", v)
		}
	}
}

func TestRandomRangeIsDeterministicPerSeed(t *testing.T) {
	low, high := bigint.New(0), bigint.MustParse("1000000000000000000000")
	a, b := random.NewSource(99), random.NewSource(99)
	for i := 0; i < 20; i++ {
		x, err := RandomRange(a, low, high)
		if err != nil {
			t.Fatalf("RandomRange: %v", err)
		}
		y, err := RandomRange(b, low, high)
		if err != nil {
			t.Fatalf("RandomRange: %v", err)
		}
		if x != y {
			t.Fatalf("draw %d differs: %s vs %s", i, x, y)
		}
	}
}

func TestRandomRangeRejectsBadArguments(t *testing.T) {
	if _, err := RandomRange(random.NewSource(1), bigint.New(5), bigint.New(4)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("low > high error = %v, want ErrInvalidArgument", err)
	}
	if _, err := RandomRange(nil, bigint.New(1), bigint.New(4)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil source error = %v, want ErrInvalidArgument", err)
	}
}

func TestIsPrimeKnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2", true},
		{"3", true},
		{"5", true},
		{"7", true},
		{"104729", true},
		{"2305843009213693951", true},
		{"170141183460469231731687303715884105727", true},
		{"4", false},
		{"6", false},
		{"104730", false},
		{"-7", false},
		{"0", false},
		{"1", false},
		{"561", false},
		{"1105", false},
		{"2305843009213693953", false},
	}
	tester := Tester{Source: random.NewSource(42), Rounds: 20}
	for _, tt := range tests {
		got, err := tester.Test(bigint.MustParse(tt.in))
		if err != nil {
			t.Fatalf("IsPrime(%s): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("IsPrime(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsPrimeAgreesWithTrialDivision(t *testing.T) {
	src := random.NewSource(2024)
	for n := int64(-5); n < 10000; n++ {
		got, err := IsPrime(src, bigint.New(n), 20)
		if err != nil {
			t.Fatalf("IsPrime(%d): %v", n, err)
		}
		if want := trialDivision(n); got != want {
			t.Fatalf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsPrimeRejectsBadArguments(t *testing.T) {
	if _, err := IsPrime(nil, bigint.New(7), 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil source error = %v, want ErrInvalidArgument", err)
	}
	if _, err := IsPrime(random.NewSource(1), bigint.New(7), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero rounds error = %v, want ErrInvalidArgument", err)
	}
}

func trialDivision(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
