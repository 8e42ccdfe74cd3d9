package repository

import (
	"context"
	"errors"

	"github.com/vetcita/vetcita/internal/member/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, member *domain.TenantMember) error {
	return db.WithContext(ctx).Create(member).Error
}

func (r *repo) FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64) ([]domain.TenantMember, error) {
	var items []domain.TenantMember
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByTenantAndUser(ctx context.Context, db *gorm.DB, tenantID, userID int64) (*domain.TenantMember, error) {
	var member domain.TenantMember
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}
