package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Tenant, error)
	FindBySubdomain(ctx context.Context, db *gorm.DB, subdomain string) (*Tenant, error)
	Update(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	FindExpiredTrials(ctx context.Context, db *gorm.DB, before time.Time) ([]Tenant, error)
}
