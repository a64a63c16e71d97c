package matching

import (
	"time"

	"github.com/shopspring/decimal"
)

// Combination is a candidate grouping of invoices evaluated against a payment
// balance. It is a value object: total and dateAverage are computed once at
// construction and never change. percentDifference is only present on
// combinations classified as short-pay matches.
type Combination struct {
	candidates        []InvoiceCandidate
	total             decimal.Decimal
	dateAverage       time.Time
	percentDifference decimal.Decimal
	shortPay          bool
}

// NewCombination builds a combination and computes its derived fields.
// The date average is the mean of candidate dates truncated to whole seconds.
func NewCombination(candidates []InvoiceCandidate) Combination {
	owned := make([]InvoiceCandidate, len(candidates))
	copy(owned, candidates)

	total := decimal.Zero
	var unixSum int64
	for _, c := range owned {
		total = total.Add(c.Amount)
		unixSum += c.Date.Unix()
	}

	var avg time.Time
	if len(owned) > 0 {
		avg = time.Unix(unixSum/int64(len(owned)), 0).UTC()
	}

	return Combination{
		candidates:  owned,
		total:       total,
		dateAverage: avg,
	}
}

// Candidates returns a copy of the member candidates
func (c Combination) Candidates() []InvoiceCandidate {
	out := make([]InvoiceCandidate, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// Size returns the number of invoices in the combination
func (c Combination) Size() int {
	return len(c.candidates)
}

// IsEmpty returns true if the combination holds no invoices
func (c Combination) IsEmpty() bool {
	return len(c.candidates) == 0
}

// Total returns the sum of candidate amounts
func (c Combination) Total() decimal.Decimal {
	return c.total
}

// DateAverage returns the mean candidate date, the combination's recency proxy
func (c Combination) DateAverage() time.Time {
	return c.dateAverage
}

// PercentDifference returns how far the total overshoots the payment balance,
// as a percentage of the total. Zero unless the combination was classified as
// a short-pay match.
func (c Combination) PercentDifference() decimal.Decimal {
	return c.percentDifference
}

// IsShortPay returns true if the combination was classified as a short-pay match
func (c Combination) IsShortPay() bool {
	return c.shortPay
}

// asShortPay returns a copy classified as a short-pay match with the given
// percent difference. The receiver is unchanged.
func (c Combination) asShortPay(percentDifference decimal.Decimal) Combination {
	out := c
	out.percentDifference = percentDifference
	out.shortPay = true
	return out
}
