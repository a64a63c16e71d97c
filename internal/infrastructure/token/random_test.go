package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/cashmatch/internal/domain/matching"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	g := NewRandomGenerator()

	for i := 0; i < 50; i++ {
		tok, err := g.Generate(matching.GroupTokenLength)
		require.NoError(t, err)
		require.Len(t, tok, matching.GroupTokenLength)
		for _, c := range tok {
			assert.Contains(t, matching.GroupTokenAlphabet, string(c))
		}
	}
}

func TestGenerateRejectsNonPositiveLength(t *testing.T) {
	g := NewRandomGenerator()

	_, err := g.Generate(0)
	assert.Error(t, err)
	_, err = g.Generate(-3)
	assert.Error(t, err)
}

func TestGenerateTokensAreDistinct(t *testing.T) {
	g := NewRandomGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := g.Generate(matching.GroupTokenLength)
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token %q", tok)
		seen[tok] = true
	}
}
