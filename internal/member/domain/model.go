package domain

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func ValidRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleOwner:
		return RoleOwner, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleMember:
		return RoleMember, true
	default:
		return "", false
	}
}

// TenantMember links a platform user to one clinic with a role.
type TenantMember struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenant_id" gorm:"not null;uniqueIndex:ux_tenant_members_tenant_user,priority:1"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:ux_tenant_members_tenant_user,priority:2"`
	Role      Role      `json:"role" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TenantMember) TableName() string { return "tenant_members" }
