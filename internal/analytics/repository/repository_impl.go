package repository

import (
	"context"

	"github.com/vetcita/vetcita/internal/analytics/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, event *domain.AnalyticsEvent) error {
	return db.WithContext(ctx).Create(event).Error
}
