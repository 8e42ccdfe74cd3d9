package repository

import (
	"context"

	"github.com/vetcita/vetcita/internal/whatsapp/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, msg *domain.WhatsAppMessage) error {
	return db.WithContext(ctx).Create(msg).Error
}

func (r *repo) FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64, afterID int64, limit int) ([]*domain.WhatsAppMessage, error) {
	var items []*domain.WhatsAppMessage
	stmt := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id DESC")
	if afterID > 0 {
		stmt = stmt.Where("id < ?", afterID)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
