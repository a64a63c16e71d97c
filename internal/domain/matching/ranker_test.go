package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankExact(t *testing.T) {
	newest := NewCombination([]InvoiceCandidate{candidateAt(10, 1)})
	middle := NewCombination([]InvoiceCandidate{candidateAt(10, 30)})
	oldest := NewCombination([]InvoiceCandidate{candidateAt(10, 90)})

	input := []Combination{newest, oldest, middle}
	ranked := RankExact(input)

	require.Len(t, ranked, 3)
	assert.Equal(t, oldest.DateAverage(), ranked[0].DateAverage())
	assert.Equal(t, middle.DateAverage(), ranked[1].DateAverage())
	assert.Equal(t, newest.DateAverage(), ranked[2].DateAverage())

	// input order untouched
	assert.Equal(t, newest.DateAverage(), input[0].DateAverage())
}

func TestRankShortPay(t *testing.T) {
	closest := NewCombination([]InvoiceCandidate{candidateAt(100, 10)}).
		asShortPay(decimal.NewFromInt(1))
	furthest := NewCombination([]InvoiceCandidate{candidateAt(100, 10)}).
		asShortPay(decimal.NewFromInt(9))
	tieOld := NewCombination([]InvoiceCandidate{candidateAt(100, 60)}).
		asShortPay(decimal.NewFromInt(5))
	tieNew := NewCombination([]InvoiceCandidate{candidateAt(100, 2)}).
		asShortPay(decimal.NewFromInt(5))

	ranked := RankShortPay([]Combination{furthest, tieNew, closest, tieOld})

	require.Len(t, ranked, 4)
	assert.True(t, ranked[0].PercentDifference().Equal(decimal.NewFromInt(1)))
	// ties broken by older date average
	assert.Equal(t, tieOld.DateAverage(), ranked[1].DateAverage())
	assert.Equal(t, tieNew.DateAverage(), ranked[2].DateAverage())
	assert.True(t, ranked[3].PercentDifference().Equal(decimal.NewFromInt(9)))
}

func TestRankIsStableForFullTies(t *testing.T) {
	shared := []InvoiceCandidate{candidateAt(25, 14)}
	first := NewCombination(shared).asShortPay(decimal.NewFromInt(3))
	second := NewCombination(shared).asShortPay(decimal.NewFromInt(3))

	ranked := RankShortPay([]Combination{first, second})
	require.Len(t, ranked, 2)
	// identical keys keep input order
	assert.Equal(t, first.Candidates()[0].InvoiceID, ranked[0].Candidates()[0].InvoiceID)
}

func TestRankOrdersBothLists(t *testing.T) {
	exactOld := NewCombination([]InvoiceCandidate{candidateAt(10, 50)})
	exactNew := NewCombination([]InvoiceCandidate{candidateAt(10, 5)})
	spFar := NewCombination([]InvoiceCandidate{candidateAt(10, 5)}).asShortPay(decimal.NewFromInt(8))
	spNear := NewCombination([]InvoiceCandidate{candidateAt(10, 5)}).asShortPay(decimal.NewFromInt(2))

	ranked := Rank(MatchResultSet{
		Matches:         []Combination{exactNew, exactOld},
		ShortPayMatches: []Combination{spFar, spNear},
	})

	assert.Equal(t, exactOld.DateAverage(), ranked.Matches[0].DateAverage())
	assert.True(t, ranked.ShortPayMatches[0].PercentDifference().Equal(decimal.NewFromInt(2)))
}
