package persistence

import (
	"context"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCandidateSource implements matching.CandidateSource using GORM.
// An invoice is eligible when it is open with a positive outstanding amount,
// carries no payment plan or autopay, matches the payment's currency, fits
// within the query's amount ceiling, and is not already the primary match of
// another unapplied payment.
type GormCandidateSource struct {
	db *gorm.DB
}

// NewGormCandidateSource creates a new GormCandidateSource
func NewGormCandidateSource(db *gorm.DB) *GormCandidateSource {
	return &GormCandidateSource{db: db}
}

// FindEligible returns eligible invoices grouped by customer, candidates in
// invoice date order within each group
func (s *GormCandidateSource) FindEligible(ctx context.Context, query matching.CandidateQuery) ([]matching.CandidateGroup, error) {
	claimed := s.db.Model(&models.InvoicePaymentAssociationModel{}).
		Select("invoice_payment_associations.invoice_id").
		Joins("JOIN payments ON payments.id = invoice_payment_associations.payment_id").
		Where("invoice_payment_associations.is_primary = ?", true).
		Where("invoice_payment_associations.payment_id <> ?", query.PaymentID).
		Where("payments.applied = ?", false).
		Where("payments.voided = ?", false)

	q := s.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", query.TenantID).
		Where("status = ?", models.InvoiceStatusOpen).
		Where("payment_plan = ? AND autopay = ?", false, false).
		Where("currency = ?", string(query.Currency)).
		Where("outstanding_amount > 0").
		Where("outstanding_amount <= ?", query.MaxAmount).
		Where("id NOT IN (?)", claimed)
	if query.CustomerID != nil {
		q = q.Where("customer_id = ?", *query.CustomerID)
	}

	var invoices []models.InvoiceModel
	if err := q.Order("customer_id").Order("invoice_date").Find(&invoices).Error; err != nil {
		return nil, err
	}

	// Rows arrive sorted by customer, so groups can be built in one pass.
	var groups []matching.CandidateGroup
	var current *matching.CandidateGroup
	for _, inv := range invoices {
		if current == nil || current.CustomerID != inv.CustomerID {
			groups = append(groups, matching.CandidateGroup{CustomerID: inv.CustomerID})
			current = &groups[len(groups)-1]
		}
		current.Candidates = append(current.Candidates, inv.ToCandidate())
	}
	return groups, nil
}

// HasEligible reports whether at least one eligible invoice exists for the
// query. Used by the trigger API to reject runs that cannot produce matches.
func (s *GormCandidateSource) HasEligible(ctx context.Context, query matching.CandidateQuery) (bool, error) {
	groups, err := s.FindEligible(ctx, query)
	if err != nil {
		return false, err
	}
	return len(groups) > 0, nil
}

var _ matching.CandidateSource = (*GormCandidateSource)(nil)
