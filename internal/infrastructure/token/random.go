package token

import (
	"crypto/rand"
	"fmt"

	"github.com/finledger/cashmatch/internal/domain/matching"
)

// RandomGenerator produces group tokens from the lowercase alphanumeric
// alphabet using crypto/rand. Rejection sampling keeps the distribution
// uniform across the 36-character alphabet.
type RandomGenerator struct {
	alphabet string
}

// NewRandomGenerator returns a generator over the group token alphabet.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{alphabet: matching.GroupTokenAlphabet}
}

// Generate returns a random token of the requested length.
func (g *RandomGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	n := len(g.alphabet)
	// Largest multiple of n that fits in a byte; values at or above it
	// are resampled so no alphabet character is favored.
	ceiling := byte(256 - 256%n)

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= ceiling {
				continue
			}
			out = append(out, g.alphabet[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
