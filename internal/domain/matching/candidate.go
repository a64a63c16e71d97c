package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceCandidate is an immutable projection of an open invoice taken at
// query time. Amount is the invoice's outstanding balance; Date is the
// invoice date used for recency ordering. Candidates are not re-validated
// during a run.
type InvoiceCandidate struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
}

// CandidateGroup holds the eligible candidates of a single customer.
// Combinations never span customers, so cross-customer searches operate on
// one group at a time.
type CandidateGroup struct {
	CustomerID uuid.UUID
	Candidates []InvoiceCandidate
}
