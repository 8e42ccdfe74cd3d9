package repository

import (
	"context"
	"errors"

	"github.com/vetcita/vetcita/internal/superadmin/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, grant *domain.SuperAdmin) error {
	return db.WithContext(ctx).Create(grant).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*domain.SuperAdmin, error) {
	var grant domain.SuperAdmin
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.SuperAdmin, error) {
	var items []domain.SuperAdmin
	err := db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteByUserID(ctx context.Context, db *gorm.DB, userID int64) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.SuperAdmin{}).Error
}
