package matching

import (
	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Group identifiers are random tokens shared by every association row of one
// combination, used to reconstruct combinations later.
const (
	GroupTokenLength   = 10
	GroupTokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// InvoicePaymentAssociation is one persisted (invoice, payment) pair of a
// reported combination. Exactly one group per payment carries Primary=true.
// Certainty is a uniform reporting weight, 100 divided by the number of
// combinations reported in the run - a heuristic, not a calibrated
// probability.
type InvoicePaymentAssociation struct {
	shared.TenantEntity
	InvoiceID uuid.UUID
	PaymentID uuid.UUID
	GroupID   string
	Primary   bool
	ShortPay  bool
	Certainty decimal.Decimal
}

// AssociationsForCombination expands one reported combination into its
// association rows. Empty combinations produce no rows.
func AssociationsForCombination(
	tenantID, paymentID uuid.UUID,
	combo Combination,
	groupID string,
	primary bool,
	certainty decimal.Decimal,
) []InvoicePaymentAssociation {
	if combo.IsEmpty() {
		return nil
	}
	rows := make([]InvoicePaymentAssociation, 0, combo.Size())
	for _, candidate := range combo.Candidates() {
		rows = append(rows, InvoicePaymentAssociation{
			TenantEntity: shared.NewTenantEntity(tenantID),
			InvoiceID:    candidate.InvoiceID,
			PaymentID:    paymentID,
			GroupID:      groupID,
			Primary:      primary,
			ShortPay:     combo.IsShortPay(),
			Certainty:    certainty,
		})
	}
	return rows
}

// RunCertainty computes the shared certainty percentage for a run that
// reports the given number of combinations.
func RunCertainty(reported int) decimal.Decimal {
	if reported <= 0 {
		return decimal.Zero
	}
	return hundred.Div(decimal.NewFromInt(int64(reported))).Round(4)
}
