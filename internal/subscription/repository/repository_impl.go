package repository

import (
	"context"

	"github.com/vetcita/vetcita/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, sub *domain.TenantSubscription) error {
	return db.WithContext(ctx).Create(sub).Error
}

func (r *repo) FindCurrent(ctx context.Context, db *gorm.DB, tenantID int64) (*domain.TenantSubscription, error) {
	var sub domain.TenantSubscription
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND status <> ?", tenantID, domain.StatusCanceled).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repo) FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64) ([]domain.TenantSubscription, error) {
	var items []domain.TenantSubscription
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status domain.Status) error {
	return db.WithContext(ctx).
		Model(&domain.TenantSubscription{}).
		Where("id = ?", id).
		Update("status", status).Error
}
