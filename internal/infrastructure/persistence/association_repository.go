package persistence

import (
	"context"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssociationRepository implements matching.AssociationRepository using GORM
type GormAssociationRepository struct {
	db *gorm.DB
}

// NewGormAssociationRepository creates a new GormAssociationRepository
func NewGormAssociationRepository(db *gorm.DB) *GormAssociationRepository {
	return &GormAssociationRepository{db: db}
}

// InsertAll inserts all association rows in one batch
func (r *GormAssociationRepository) InsertAll(ctx context.Context, associations []matching.InvoicePaymentAssociation) error {
	if len(associations) == 0 {
		return nil
	}
	rows := make([]models.InvoicePaymentAssociationModel, len(associations))
	for i, a := range associations {
		rows[i].FromDomain(a)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteForPayment removes every association row for the payment
func (r *GormAssociationRepository) DeleteForPayment(ctx context.Context, paymentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Delete(&models.InvoicePaymentAssociationModel{}).Error
}

// FindByPayment returns the payment's association rows, primary group first
func (r *GormAssociationRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]matching.InvoicePaymentAssociation, error) {
	var rows []models.InvoicePaymentAssociationModel
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("is_primary DESC").
		Order("group_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	associations := make([]matching.InvoicePaymentAssociation, len(rows))
	for i, row := range rows {
		associations[i] = row.ToDomain()
	}
	return associations, nil
}
