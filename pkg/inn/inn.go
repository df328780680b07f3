// Package inn generates and validates 12-digit Russian individual taxpayer
// numbers (INN).
package inn

import "usertables-generator/pkg/random"

// Length is the number of digits in an individual INN.
const Length = 12

var (
	weights11 = []int{7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
	weights12 = []int{3, 7, 2, 4, 10, 3, 5, 9, 4, 6, 8}
)

// Generator produces random INNs using crypto/rand.
type Generator struct{}

// NewGenerator creates a generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a random INN with valid check digits. The first two
// digits form a non-zero region code.
func (g *Generator) Generate() string {
	digits := make([]int, Length)

	region := 1 + random.Intn(99)
	digits[0], digits[1] = region/10, region%10
	for i := 2; i < Length-2; i++ {
		digits[i] = random.Intn(10)
	}
	digits[10] = checkDigit(digits[:10], weights11)
	digits[11] = checkDigit(digits[:11], weights12)

	buf := make([]byte, Length)
	for i, d := range digits {
		buf[i] = byte('0' + d)
	}
	return string(buf)
}

// Validate reports whether s is a 12-digit INN with correct check digits.
func Validate(s string) bool {
	if len(s) != Length {
		return false
	}

	digits := make([]int, Length)
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	return digits[10] == checkDigit(digits[:10], weights11) &&
		digits[11] == checkDigit(digits[:11], weights12)
}

func checkDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	return sum % 11 % 10
}
