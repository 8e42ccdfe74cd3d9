package domain

import "time"

// SuperAdmin is an explicit platform-admin grant. Admins may also derive
// from a configured email domain without a row here; listings mark the
// difference with AssignedByRole.
type SuperAdmin struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user_id" gorm:"not null;uniqueIndex:ux_super_admins_user"`
	AssignedByID *int64    `json:"assigned_by_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SuperAdmin) TableName() string { return "super_admins" }
