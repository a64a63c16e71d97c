package models

import (
	"time"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors the invoice lifecycle states relevant to eligibility.
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "DRAFT"
	InvoiceStatusOpen   InvoiceStatus = "OPEN"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
	InvoiceStatusVoided InvoiceStatus = "VOIDED"
	InvoiceStatusClosed InvoiceStatus = "CLOSED"
)

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	TenantModel
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency   string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Voided     bool            `gorm:"not null;default:false"`
	Applied    bool            `gorm:"not null;default:false;index"`
	Matched    *bool
	MatchedAt  *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *matching.Payment {
	return &matching.Payment{
		TenantEntity: m.ToDomainTenantEntity(),
		CustomerID:   m.CustomerID,
		Balance:      m.Balance,
		Currency:     valueobject.Currency(m.Currency),
		Voided:       m.Voided,
		Applied:      m.Applied,
		Matched:      m.Matched,
		MatchedAt:    m.MatchedAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *matching.Payment) {
	m.FromDomainTenantEntity(p.TenantEntity)
	m.CustomerID = p.CustomerID
	m.Balance = p.Balance
	m.Currency = string(p.Currency)
	m.Voided = p.Voided
	m.Applied = p.Applied
	m.Matched = p.Matched
	m.MatchedAt = p.MatchedAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *matching.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// InvoiceModel is the persistence model for invoices. The matching engine
// only reads invoices, so no domain aggregate exists for them; eligible rows
// are projected straight into InvoiceCandidate.
type InvoiceModel struct {
	TenantModel
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status            InvoiceStatus   `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;index"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'USD'"`
	InvoiceDate       time.Time       `gorm:"not null;index"`
	PaymentPlan       bool            `gorm:"not null;default:false"`
	Autopay           bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToCandidate projects the invoice into a matching candidate.
func (m *InvoiceModel) ToCandidate() matching.InvoiceCandidate {
	return matching.InvoiceCandidate{
		InvoiceID: m.ID,
		Amount:    m.OutstandingAmount,
		Date:      m.InvoiceDate,
	}
}

// CustomerModel is the persistence model for customers. Matching only counts
// customers and groups candidates by customer ID.
type CustomerModel struct {
	TenantModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// TenantSettingsModel holds per-tenant matching configuration.
type TenantSettingsModel struct {
	BaseModel
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ShortPayUnit      string          `gorm:"type:varchar(10);not null;default:'percent'"`
	ShortPayAllowance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TenantSettingsModel) TableName() string {
	return "tenant_settings"
}

// ShortPayPolicy builds the domain policy from the stored configuration.
func (m *TenantSettingsModel) ShortPayPolicy() (matching.ShortPayPolicy, error) {
	return matching.NewShortPayPolicy(m.ShortPayUnit, m.ShortPayAllowance)
}

// InvoicePaymentAssociationModel is the persistence model for association
// rows. The column is named is_primary because "primary" is a reserved word.
type InvoicePaymentAssociationModel struct {
	TenantModel
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	GroupID   string          `gorm:"type:varchar(10);not null;index"`
	IsPrimary bool            `gorm:"column:is_primary;not null;default:false"`
	ShortPay  bool            `gorm:"not null;default:false"`
	Certainty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoicePaymentAssociationModel) TableName() string {
	return "invoice_payment_associations"
}

// ToDomain converts the persistence model to a domain association.
func (m *InvoicePaymentAssociationModel) ToDomain() matching.InvoicePaymentAssociation {
	return matching.InvoicePaymentAssociation{
		TenantEntity: m.ToDomainTenantEntity(),
		InvoiceID:    m.InvoiceID,
		PaymentID:    m.PaymentID,
		GroupID:      m.GroupID,
		Primary:      m.IsPrimary,
		ShortPay:     m.ShortPay,
		Certainty:    m.Certainty,
	}
}

// FromDomain populates the persistence model from a domain association.
func (m *InvoicePaymentAssociationModel) FromDomain(a matching.InvoicePaymentAssociation) {
	m.FromDomainTenantEntity(a.TenantEntity)
	m.InvoiceID = a.InvoiceID
	m.PaymentID = a.PaymentID
	m.GroupID = a.GroupID
	m.IsPrimary = a.Primary
	m.ShortPay = a.ShortPay
	m.Certainty = a.Certainty
}
