package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, sub *TenantSubscription) error
	// FindCurrent returns the newest non-CANCELED subscription for a
	// tenant, or nil when the tenant has none.
	FindCurrent(ctx context.Context, db *gorm.DB, tenantID int64) (*TenantSubscription, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64) ([]TenantSubscription, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status Status) error
}
