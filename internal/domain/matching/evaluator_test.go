package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPolicy(t *testing.T, unit string, allowance int64) ShortPayPolicy {
	t.Helper()
	p, err := NewShortPayPolicy(unit, decimal.NewFromInt(allowance))
	require.NoError(t, err)
	return p
}

func TestEvaluateExactMatch(t *testing.T) {
	// balance 300.00 against invoices of 100, 150, 50
	balance := decimal.NewFromInt(300)
	candidates := []InvoiceCandidate{
		candidateAt(100, 30),
		candidateAt(150, 20),
		candidateAt(50, 10),
	}
	combos := GenerateCombinations(candidates, len(candidates))
	result := Evaluate(combos, balance, mustPolicy(t, "percent", 0))

	require.Len(t, result.Matches, 1)
	assert.Equal(t, 3, result.Matches[0].Size())
	assert.True(t, result.Matches[0].Total().Equal(balance))
	assert.False(t, result.Matches[0].IsShortPay())
}

func TestEvaluateShortPayDollars(t *testing.T) {
	balance := decimal.NewFromInt(95)
	combo := NewCombination([]InvoiceCandidate{candidateAt(100, 5)})

	t.Run("accepted within allowance", func(t *testing.T) {
		result := Evaluate([]Combination{combo}, balance, mustPolicy(t, "dollars", 10))
		require.Len(t, result.ShortPayMatches, 1)
		assert.Empty(t, result.Matches)
		assert.True(t, result.ShortPayMatches[0].IsShortPay())
		// (100-95)/100*100 = 5%
		assert.True(t, result.ShortPayMatches[0].PercentDifference().Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejected beyond allowance", func(t *testing.T) {
		result := Evaluate([]Combination{combo}, balance, mustPolicy(t, "dollars", 2))
		assert.True(t, result.IsEmpty())
	})
}

func TestEvaluateShortPayPercent(t *testing.T) {
	balance := decimal.NewFromInt(95)
	combo := NewCombination([]InvoiceCandidate{candidateAt(100, 5)})

	t.Run("accepted at exactly the allowance", func(t *testing.T) {
		result := Evaluate([]Combination{combo}, balance, mustPolicy(t, "percent", 5))
		require.Len(t, result.ShortPayMatches, 1)
	})

	t.Run("rejected just beyond the allowance", func(t *testing.T) {
		result := Evaluate([]Combination{combo}, balance,
			mustPolicy(t, "percent", 4))
		assert.True(t, result.IsEmpty())
	})
}

func TestEvaluateDiscardsUnderPayments(t *testing.T) {
	balance := decimal.NewFromInt(500)
	combos := []Combination{
		NewCombination([]InvoiceCandidate{candidateAt(100, 5)}),
		NewCombination([]InvoiceCandidate{candidateAt(100, 5), candidateAt(150, 3)}),
	}
	// generous allowance: under-payments must still never qualify
	result := Evaluate(combos, balance, mustPolicy(t, "dollars", 1000))
	assert.True(t, result.IsEmpty())
}

func TestEvaluateSkipsEmptyCombinations(t *testing.T) {
	result := Evaluate([]Combination{NewCombination(nil)}, decimal.Zero, mustPolicy(t, "percent", 5))
	assert.True(t, result.IsEmpty())
}

func TestMatchResultSetMerge(t *testing.T) {
	a := MatchResultSet{Matches: []Combination{NewCombination([]InvoiceCandidate{candidateAt(1, 1)})}}
	b := MatchResultSet{ShortPayMatches: []Combination{NewCombination([]InvoiceCandidate{candidateAt(2, 2)})}}
	merged := a.Merge(b)
	assert.Equal(t, 2, merged.Reported())
	assert.Len(t, merged.Matches, 1)
	assert.Len(t, merged.ShortPayMatches, 1)
}
