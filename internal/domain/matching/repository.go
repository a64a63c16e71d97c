package matching

import (
	"context"

	"github.com/finledger/cashmatch/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository provides access to payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// AssociationRepository persists invoice-payment association rows
type AssociationRepository interface {
	InsertAll(ctx context.Context, associations []InvoicePaymentAssociation) error
	DeleteForPayment(ctx context.Context, paymentID uuid.UUID) error
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]InvoicePaymentAssociation, error)
}

// CandidateQuery describes one eligibility query. PaymentID identifies the
// payment being matched so its own prior associations never disqualify an
// invoice. CustomerID narrows the search to one customer; when nil the source
// returns one group per customer holding eligible invoices.
type CandidateQuery struct {
	TenantID   uuid.UUID
	PaymentID  uuid.UUID
	CustomerID *uuid.UUID
	Currency   valueobject.Currency
	MaxAmount  decimal.Decimal
}

// CandidateSource retrieves eligible open invoices. Eligible means: open (not
// closed, voided, draft or paid), no active payment plan, not on autopay,
// matching currency, outstanding amount within MaxAmount, and not already the
// primary match of a different unapplied payment.
type CandidateSource interface {
	FindEligible(ctx context.Context, query CandidateQuery) ([]CandidateGroup, error)
}

// TenantConfigSource exposes the tenant configuration the engine reads at the
// start of every run. CustomerCount is the live count of customer records in
// the system, read fresh each run for threshold sizing.
type TenantConfigSource interface {
	ShortPayPolicy(ctx context.Context, tenantID uuid.UUID) (ShortPayPolicy, error)
	CustomerCount(ctx context.Context) (int64, error)
}

// TxRepositories are the repositories available inside one persistence
// transaction.
type TxRepositories interface {
	Payments() PaymentRepository
	Associations() AssociationRepository
}

// UnitOfWork runs fn inside a single durable transaction. Any error rolls the
// whole transaction back; partial association sets for a payment must never
// exist.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}
