package domain

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

// Tenant is one clinic. TrialEndsAt is only meaningful while IsTrialPeriod
// is set.
type Tenant struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"type:text;not null"`
	Subdomain     string     `json:"subdomain" gorm:"type:text;not null;uniqueIndex:ux_tenants_subdomain"`
	Status        Status     `json:"status" gorm:"type:text;not null;default:'active'"`
	IsTrialPeriod bool       `json:"is_trial_period" gorm:"not null;default:false"`
	TrialEndsAt   *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Tenant) TableName() string { return "tenants" }
