package persistence

import (
	"context"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"gorm.io/gorm"
)

// GormUnitOfWork implements matching.UnitOfWork on a GORM transaction. Every
// repository handed to the callback shares the same transaction, so a failure
// anywhere rolls back the payment flag and all association rows together.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do runs fn inside a single database transaction
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(repos matching.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepositories{tx: tx})
	})
}

type txRepositories struct {
	tx *gorm.DB
}

func (r txRepositories) Payments() matching.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r txRepositories) Associations() matching.AssociationRepository {
	return NewGormAssociationRepository(r.tx)
}

var _ matching.UnitOfWork = (*GormUnitOfWork)(nil)
