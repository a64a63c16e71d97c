package persistence

import (
	"context"
	"errors"

	"github.com/finledger/cashmatch/internal/domain/matching"
	"github.com/finledger/cashmatch/internal/domain/shared"
	"github.com/finledger/cashmatch/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantConfigSource implements matching.TenantConfigSource using GORM
type GormTenantConfigSource struct {
	db *gorm.DB
}

// NewGormTenantConfigSource creates a new GormTenantConfigSource
func NewGormTenantConfigSource(db *gorm.DB) *GormTenantConfigSource {
	return &GormTenantConfigSource{db: db}
}

// ShortPayPolicy loads and validates the tenant's short-pay configuration
func (s *GormTenantConfigSource) ShortPayPolicy(ctx context.Context, tenantID uuid.UUID) (matching.ShortPayPolicy, error) {
	var settings models.TenantSettingsModel
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return matching.ShortPayPolicy{}, shared.NewDomainError("CONFIG_MISSING",
				"No matching configuration found for tenant")
		}
		return matching.ShortPayPolicy{}, err
	}
	return settings.ShortPayPolicy()
}

// CustomerCount returns the current number of customer records. Read fresh at
// the start of every run so threshold sizing tracks the live system.
func (s *GormTenantConfigSource) CustomerCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ matching.TenantConfigSource = (*GormTenantConfigSource)(nil)
