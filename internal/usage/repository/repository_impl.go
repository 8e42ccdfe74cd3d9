package repository

import (
	"context"
	"time"

	"github.com/vetcita/vetcita/internal/usage/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountPets(ctx context.Context, db *gorm.DB, tenantID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("pets").
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *repo) CountMembers(ctx context.Context, db *gorm.DB, tenantID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("tenant_members").
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *repo) CountMessagesSince(ctx context.Context, db *gorm.DB, tenantID int64, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("whatsapp_messages").
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Count(&count).Error
	return count, err
}
