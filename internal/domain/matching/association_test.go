package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociationsForCombination(t *testing.T) {
	tenantID := uuid.New()
	paymentID := uuid.New()
	combo := NewCombination([]InvoiceCandidate{
		candidateAt(100, 10),
		candidateAt(200, 5),
	}).asShortPay(decimal.NewFromInt(3))

	rows := AssociationsForCombination(tenantID, paymentID, combo, "abc123defg", true, decimal.NewFromInt(50))

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, tenantID, row.TenantID)
		assert.Equal(t, paymentID, row.PaymentID)
		assert.Equal(t, "abc123defg", row.GroupID)
		assert.True(t, row.Primary)
		assert.True(t, row.ShortPay)
		assert.True(t, row.Certainty.Equal(decimal.NewFromInt(50)))
	}
	assert.NotEqual(t, rows[0].InvoiceID, rows[1].InvoiceID)
}

func TestAssociationsForEmptyCombination(t *testing.T) {
	rows := AssociationsForCombination(uuid.New(), uuid.New(), NewCombination(nil), "abc123defg", false, decimal.NewFromInt(100))
	assert.Empty(t, rows)
}

func TestRunCertainty(t *testing.T) {
	tests := []struct {
		reported int
		want     string
	}{
		{1, "100"},
		{2, "50"},
		{3, "33.3333"},
		{4, "25"},
	}
	for _, tt := range tests {
		got := RunCertainty(tt.reported)
		want, err := decimal.NewFromString(tt.want)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "reported=%d got=%s", tt.reported, got)
	}

	assert.True(t, RunCertainty(0).IsZero())
}

func TestRunCertaintySumsToHundred(t *testing.T) {
	for reported := 1; reported <= 20; reported++ {
		total := RunCertainty(reported).Mul(decimal.NewFromInt(int64(reported)))
		diff := total.Sub(decimal.NewFromInt(100)).Abs()
		assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)),
			"reported=%d total=%s", reported, total)
	}
}
