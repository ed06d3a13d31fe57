// Package random provides seed generation and random bit sources.
//
// Seeds come from crypto/rand so production calls are unpredictable, while
// NewSource turns a seed into a deterministic stream that tests and replay
// requests can reproduce exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source yields independent fair random bits.
type Source interface {
	// Bit returns 0 or 1.
	Bit() uint
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// SeededSource is a deterministic bit source backed by math/rand.
//
// Given the same seed it always produces the same bit sequence. It is not
// safe for concurrent use.
type SeededSource struct {
	rng  *rand.Rand
	word uint64
	left int
}

// NewSource returns a deterministic bit source for seed.
func NewSource(seed int64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewSource(seed))}
}

// Bit returns the next bit of the seeded stream.
func (s *SeededSource) Bit() uint {
	if s.left == 0 {
		s.word = s.rng.Uint64()
		s.left = 64
	}
	bit := uint(s.word & 1)
	s.word >>= 1
	s.left--
	return bit
}

// CryptoSource reads bits from crypto/rand.
type CryptoSource struct {
	buf  [8]byte
	word uint64
	left int
}

// NewCryptoSource returns a bit source backed by crypto/rand.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{}
}

// Bit returns the next bit read from crypto/rand.
//
// crypto/rand.Read does not fail on supported platforms; should it ever,
// Bit panics rather than return biased output.
func (s *CryptoSource) Bit() uint {
	if s.left == 0 {
		if _, err := crand.Read(s.buf[:]); err != nil {
			panic(fmt.Sprintf("read random bits: %v", err))
		}
		s.word = binary.LittleEndian.Uint64(s.buf[:])
		s.left = 64
	}
	bit := uint(s.word & 1)
	s.word >>= 1
	s.left--
	return bit
}

var (
	_ Source = (*SeededSource)(nil)
	_ Source = (*CryptoSource)(nil)
)
