// Package random wraps crypto/rand for the bounded draws used by the
// generators.
package random

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Intn returns a cryptographically random int in [0, n). It panics if n <= 0.
func Intn(n int) int {
	v, err := IntnFrom(rand.Reader, n)
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return v
}

// IntnFrom returns a uniform int in [0, n) drawn from r. It panics if n <= 0.
func IntnFrom(r io.Reader, n int) (int, error) {
	if n <= 0 {
		panic("random: Intn called with non-positive n")
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return int(v.Int64()), nil
}

// Between returns a cryptographically random int in [lo, hi).
func Between(lo, hi int) int {
	return lo + Intn(hi-lo)
}

// Pick returns a random element of s. It panics if s is empty.
func Pick[T any](s []T) T {
	return s[Intn(len(s))]
}
