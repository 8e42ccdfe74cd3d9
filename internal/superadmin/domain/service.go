package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, grant *SuperAdmin) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*SuperAdmin, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]SuperAdmin, error)
	DeleteByUserID(ctx context.Context, db *gorm.DB, userID int64) error
}

type Service interface {
	List(ctx context.Context) ([]Entry, error)
	Assign(ctx context.Context, req AssignRequest) (*Entry, error)
	// Remove rejects removing the caller's own grant.
	Remove(ctx context.Context, req RemoveRequest) error
	IsSuperAdmin(ctx context.Context, userID int64) (bool, error)
}

// AssignRequest identifies the target by id or email; one is required.
type AssignRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type RemoveRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type Entry struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	AssignedByRole bool      `json:"assigned_by_role"`
	AssignedAt     time.Time `json:"assigned_at,omitempty"`
}

var (
	ErrMissingIdentifier = errors.New("missing_identifier")
	ErrUserNotFound      = errors.New("admin_user_not_found")
	ErrAlreadyAdmin      = errors.New("already_admin")
	ErrNotAdmin          = errors.New("not_admin")
	ErrSelfRemoval       = errors.New("self_removal")
)
