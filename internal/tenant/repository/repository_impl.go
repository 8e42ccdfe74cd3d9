package repository

import (
	"context"
	"time"

	"github.com/vetcita/vetcita/internal/tenant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, tenant *domain.Tenant) error {
	return db.WithContext(ctx).Create(tenant).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repo) FindBySubdomain(ctx context.Context, db *gorm.DB, subdomain string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tenant *domain.Tenant) error {
	return db.WithContext(ctx).Save(tenant).Error
}

func (r *repo) FindExpiredTrials(ctx context.Context, db *gorm.DB, before time.Time) ([]domain.Tenant, error) {
	var items []domain.Tenant
	err := db.WithContext(ctx).
		Where("is_trial_period = ? AND trial_ends_at IS NOT NULL AND trial_ends_at < ?", true, before).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
