package repository

import (
	"context"
	"errors"

	"github.com/vetcita/vetcita/internal/businesshours/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindSetting(ctx context.Context, db *gorm.DB, tenantID int64, location string) (*domain.BusinessHoursSetting, error) {
	var setting domain.BusinessHoursSetting
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND location = ?", tenantID, location).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *repo) FindSettingByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*domain.BusinessHoursSetting, error) {
	var setting domain.BusinessHoursSetting
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *repo) SaveSetting(ctx context.Context, db *gorm.DB, setting *domain.BusinessHoursSetting) error {
	return db.WithContext(ctx).Save(setting).Error
}

func (r *repo) FindOverrides(ctx context.Context, db *gorm.DB, tenantID int64, location string) ([]domain.BusinessHoursOverride, error) {
	var items []domain.BusinessHoursOverride
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND location = ?", tenantID, location).
		Order("day_of_week ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindOverrideByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*domain.BusinessHoursOverride, error) {
	var o domain.BusinessHoursOverride
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

func (r *repo) FindOverrideByDay(ctx context.Context, db *gorm.DB, tenantID int64, location string, day int) (*domain.BusinessHoursOverride, error) {
	var o domain.BusinessHoursOverride
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND location = ? AND day_of_week = ?", tenantID, location, day).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *repo) SaveOverride(ctx context.Context, db *gorm.DB, override *domain.BusinessHoursOverride) error {
	return db.WithContext(ctx).Save(override).Error
}
