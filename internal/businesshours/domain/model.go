package domain

import "time"

// BusinessHoursSetting holds a clinic location's default schedule. Lunch
// fields are nullable; an explicit null clears them.
type BusinessHoursSetting struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	TenantID          int64     `json:"tenantId" gorm:"not null;uniqueIndex:ux_business_hours_tenant_location,priority:1"`
	Location          string    `json:"location" gorm:"type:text;not null;uniqueIndex:ux_business_hours_tenant_location,priority:2"`
	DefaultOpenTime   string    `json:"defaultOpenTime" gorm:"type:text;not null"`
	DefaultCloseTime  string    `json:"defaultCloseTime" gorm:"type:text;not null"`
	DefaultLunchStart *string   `json:"defaultLunchStart" gorm:"type:text"`
	DefaultLunchEnd   *string   `json:"defaultLunchEnd" gorm:"type:text"`
	CreatedAt         time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (BusinessHoursSetting) TableName() string { return "business_hours_settings" }

// BusinessHoursOverride adjusts one weekday for a location.
type BusinessHoursOverride struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenantId" gorm:"not null;uniqueIndex:ux_business_hours_override_day,priority:1"`
	Location  string    `json:"location" gorm:"type:text;not null;uniqueIndex:ux_business_hours_override_day,priority:2"`
	DayOfWeek int       `json:"dayOfWeek" gorm:"not null;uniqueIndex:ux_business_hours_override_day,priority:3"`
	OpenTime  *string   `json:"openTime" gorm:"type:text"`
	CloseTime *string   `json:"closeTime" gorm:"type:text"`
	Closed    bool      `json:"closed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (BusinessHoursOverride) TableName() string { return "business_hours_overrides" }
