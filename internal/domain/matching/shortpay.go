package matching

import (
	"fmt"

	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/finledger/cashmatch/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ShortPayUnit is how a tenant expresses its short-pay allowance
type ShortPayUnit string

const (
	ShortPayUnitPercent ShortPayUnit = "percent"
	ShortPayUnitDollars ShortPayUnit = "dollars"
)

// IsValid checks if the unit is a known ShortPayUnit
func (u ShortPayUnit) IsValid() bool {
	return u == ShortPayUnitPercent || u == ShortPayUnitDollars
}

var hundred = decimal.NewFromInt(100)

// ShortPayPolicy is a tenant's short-pay tolerance, resolved once when tenant
// configuration is loaded. An unknown unit never produces a policy: the
// constructor fails closed rather than defaulting.
type ShortPayPolicy struct {
	unit      ShortPayUnit
	allowance decimal.Decimal
}

// NewShortPayPolicy builds a policy from raw tenant configuration
func NewShortPayPolicy(unit string, allowance decimal.Decimal) (ShortPayPolicy, error) {
	u := ShortPayUnit(unit)
	if !u.IsValid() {
		return ShortPayPolicy{}, shared.NewDomainError("CONFIG_UNKNOWN_SHORT_PAY_UNIT",
			fmt.Sprintf("Unknown short-pay unit %q", unit))
	}
	if allowance.IsNegative() {
		return ShortPayPolicy{}, shared.NewDomainError("CONFIG_NEGATIVE_ALLOWANCE",
			"Short-pay allowance cannot be negative")
	}
	if u == ShortPayUnitPercent && allowance.GreaterThanOrEqual(hundred) {
		return ShortPayPolicy{}, shared.NewDomainError("CONFIG_ALLOWANCE_TOO_LARGE",
			"Percent short-pay allowance must be below 100")
	}
	return ShortPayPolicy{unit: u, allowance: allowance}, nil
}

// Unit returns the allowance unit
func (p ShortPayPolicy) Unit() ShortPayUnit {
	return p.unit
}

// Allowance returns the allowance amount in the policy's unit
func (p ShortPayPolicy) Allowance() decimal.Decimal {
	return p.allowance
}

// MaxInvoiceAmount returns the largest invoice amount worth considering for
// the given payment balance: the balance grossed up by the allowance.
func (p ShortPayPolicy) MaxInvoiceAmount(balance valueobject.Money) valueobject.Money {
	switch p.unit {
	case ShortPayUnitPercent:
		// balance / (1 - allowance/100)
		factor := decimal.NewFromInt(1).Sub(p.allowance.Div(hundred))
		max, _ := balance.Divide(factor)
		return max
	case ShortPayUnitDollars:
		extra, _ := valueobject.NewMoney(p.allowance, balance.Currency())
		max, _ := balance.Add(extra)
		return max
	}
	// Unreachable: the constructor rejects unknown units.
	return balance
}

// Accepts reports whether an over-payment combination total is within the
// tenant's short-pay tolerance of the payment balance. Callers must only pass
// totals strictly greater than balance.
func (p ShortPayPolicy) Accepts(total, balance decimal.Decimal) bool {
	switch p.unit {
	case ShortPayUnitPercent:
		return PercentDifference(total, balance).LessThanOrEqual(p.allowance)
	case ShortPayUnitDollars:
		return total.Sub(balance).LessThanOrEqual(p.allowance)
	}
	return false
}

// PercentDifference returns (total - balance) / total * 100
func PercentDifference(total, balance decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return total.Sub(balance).Div(total).Mul(hundred)
}
