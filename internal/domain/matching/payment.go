package matching

import (
	"time"

	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/finledger/cashmatch/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is the engine's view of an unapplied payment. The wider payment
// lifecycle (application, voiding, refunds) is owned elsewhere; this aggregate
// only carries what matching reads and the one flag it writes.
//
// Matched is tri-state: nil means matching has never been attempted, true and
// false record the outcome of the last attempt. Once set it stays non-nil
// until an explicit edit re-run resets it.
type Payment struct {
	shared.TenantEntity
	CustomerID *uuid.UUID
	Balance    decimal.Decimal
	Currency   valueobject.Currency
	Voided     bool
	Applied    bool
	Matched    *bool
	MatchedAt  *time.Time
}

// NewPayment creates a payment snapshot for matching
func NewPayment(tenantID uuid.UUID, customerID *uuid.UUID, balance valueobject.Money) (*Payment, error) {
	if !balance.IsPositive() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Payment balance must be positive")
	}
	return &Payment{
		TenantEntity: shared.NewTenantEntity(tenantID),
		CustomerID:   customerID,
		Balance:      balance.Amount(),
		Currency:     balance.Currency(),
	}, nil
}

// BalanceMoney returns the unapplied balance as Money
func (p *Payment) BalanceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Balance, p.Currency)
	return m
}

// MatchAttempted returns true if a matching run has completed for this payment
func (p *Payment) MatchAttempted() bool {
	return p.Matched != nil
}

// CanMatch reports whether the payment is eligible for a first matching run.
// Edit re-runs go through ResetMatch first.
func (p *Payment) CanMatch() error {
	if p.Voided {
		return shared.NewDomainError("PAYMENT_VOIDED", "Cannot match a voided payment")
	}
	if p.Applied {
		return shared.NewDomainError("PAYMENT_APPLIED", "Cannot match a fully applied payment")
	}
	if p.MatchAttempted() {
		return shared.NewDomainError("ALREADY_ATTEMPTED", "Matching has already been attempted for this payment")
	}
	if !p.Balance.IsPositive() {
		return shared.NewDomainError("INVALID_BALANCE", "Payment balance must be positive")
	}
	return nil
}

// ResetMatch clears a previous matching outcome for an edit re-run.
// Only valid after a completed attempt.
func (p *Payment) ResetMatch() error {
	if p.Voided {
		return shared.NewDomainError("PAYMENT_VOIDED", "Cannot re-match a voided payment")
	}
	if p.Applied {
		return shared.NewDomainError("PAYMENT_APPLIED", "Cannot re-match a fully applied payment")
	}
	if !p.MatchAttempted() {
		return shared.NewDomainError("NOT_ATTEMPTED", "No prior matching attempt to reset")
	}
	p.Matched = nil
	p.MatchedAt = nil
	p.UpdatedAt = time.Now()
	return nil
}

// MarkMatched records the outcome of a matching run
func (p *Payment) MarkMatched(found bool) {
	now := time.Now()
	p.Matched = &found
	p.MatchedAt = &now
	p.UpdatedAt = now
}
