package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, member *TenantMember) error
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64) ([]TenantMember, error)
	FindByTenantAndUser(ctx context.Context, db *gorm.DB, tenantID, userID int64) (*TenantMember, error)
}

type Service interface {
	// CreateStaff provisions a user account and its membership in one
	// step. Callers gate on the users limit before invoking it.
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	RoleOf(ctx context.Context, userID int64) (Role, error)
}

type CreateStaffRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type Response struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidRole   = errors.New("invalid_role")
	ErrDuplicateUser = errors.New("duplicate_user")
	ErrNotMember     = errors.New("not_member")
)
