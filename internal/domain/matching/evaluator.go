package matching

import "github.com/shopspring/decimal"

// MatchResultSet holds the two disjoint outcome lists of one matching run.
// Matches total the payment balance exactly; ShortPayMatches overshoot it
// within the tenant's tolerance.
type MatchResultSet struct {
	Matches         []Combination
	ShortPayMatches []Combination
}

// Reported returns the number of combinations the run will report
func (r MatchResultSet) Reported() int {
	return len(r.Matches) + len(r.ShortPayMatches)
}

// IsEmpty returns true when no qualifying combination was found
func (r MatchResultSet) IsEmpty() bool {
	return r.Reported() == 0
}

// Merge appends another result set, preserving order within each list
func (r MatchResultSet) Merge(other MatchResultSet) MatchResultSet {
	return MatchResultSet{
		Matches:         append(r.Matches, other.Matches...),
		ShortPayMatches: append(r.ShortPayMatches, other.ShortPayMatches...),
	}
}

// Evaluate classifies each combination against the payment balance. A total
// equal to the balance is an exact match; a total above it is a short-pay
// match when the policy tolerates the difference. Totals below the balance
// are discarded: an under-payment combination would leave part of the payment
// unaccounted for.
func Evaluate(combos []Combination, balance decimal.Decimal, policy ShortPayPolicy) MatchResultSet {
	var result MatchResultSet
	for _, combo := range combos {
		if combo.IsEmpty() {
			continue
		}
		switch {
		case combo.Total().Equal(balance):
			result.Matches = append(result.Matches, combo)
		case combo.Total().GreaterThan(balance):
			if policy.Accepts(combo.Total(), balance) {
				result.ShortPayMatches = append(result.ShortPayMatches,
					combo.asShortPay(PercentDifference(combo.Total(), balance)))
			}
		}
	}
	return result
}
