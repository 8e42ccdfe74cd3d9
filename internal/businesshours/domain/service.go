package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindSetting(ctx context.Context, db *gorm.DB, tenantID int64, location string) (*BusinessHoursSetting, error)
	FindSettingByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*BusinessHoursSetting, error)
	SaveSetting(ctx context.Context, db *gorm.DB, setting *BusinessHoursSetting) error
	FindOverrides(ctx context.Context, db *gorm.DB, tenantID int64, location string) ([]BusinessHoursOverride, error)
	FindOverrideByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*BusinessHoursOverride, error)
	FindOverrideByDay(ctx context.Context, db *gorm.DB, tenantID int64, location string, day int) (*BusinessHoursOverride, error)
	SaveOverride(ctx context.Context, db *gorm.DB, override *BusinessHoursOverride) error
}

type Service interface {
	Get(ctx context.Context, location string) (*Schedule, error)
	// Update accepts round-tripped persisted records: id, tenantId and
	// timestamps in the payload are tolerated, and explicit nulls on
	// lunch fields clear them.
	Update(ctx context.Context, req UpdateRequest) (*Schedule, error)
}

// UpdateRequest mirrors the persisted shapes so a previously fetched
// schedule can be sent back unchanged.
type UpdateRequest struct {
	ID                int64             `json:"id"`
	Location          string            `json:"location"`
	DefaultOpenTime   string            `json:"defaultOpenTime"`
	DefaultCloseTime  string            `json:"defaultCloseTime"`
	DefaultLunchStart *string           `json:"defaultLunchStart"`
	DefaultLunchEnd   *string           `json:"defaultLunchEnd"`
	Overrides         []OverrideRequest `json:"overrides"`
}

type OverrideRequest struct {
	ID        int64   `json:"id"`
	DayOfWeek int     `json:"dayOfWeek"`
	OpenTime  *string `json:"openTime"`
	CloseTime *string `json:"closeTime"`
	Closed    bool    `json:"closed"`
}

type Schedule struct {
	Setting   BusinessHoursSetting    `json:"setting"`
	Overrides []BusinessHoursOverride `json:"overrides"`
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidTime   = errors.New("invalid_time")
	ErrInvalidDay    = errors.New("invalid_day")
	ErrNotFound      = errors.New("business_hours_not_found")
)
