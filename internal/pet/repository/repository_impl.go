package repository

import (
	"context"
	"errors"

	"github.com/vetcita/vetcita/internal/pet/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, pet *domain.Pet) error {
	return db.WithContext(ctx).Create(pet).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*domain.Pet, error) {
	var p domain.Pet
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64) ([]domain.Pet, error) {
	var items []domain.Pet
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CreateOwner(ctx context.Context, db *gorm.DB, owner *domain.Owner) error {
	return db.WithContext(ctx).Create(owner).Error
}

func (r *repo) FindOwnerByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*domain.Owner, error) {
	var o domain.Owner
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}
