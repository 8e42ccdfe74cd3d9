package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Service interface {
	// WithTx returns a copy of the service whose writes run inside tx.
	WithTx(tx *gorm.DB) Service
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context) (*Response, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Response, error)
	EndTrial(ctx context.Context, tenantID int64) error
}

type CreateRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	TrialDays int    `json:"trial_days"`
}

type Response struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Subdomain     string     `json:"subdomain"`
	Status        Status     `json:"status"`
	IsTrialPeriod bool       `json:"is_trial_period"`
	TrialEndsAt   *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

var (
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrInvalidName      = errors.New("invalid_name")
	ErrNotFound         = errors.New("tenant_not_found")
	ErrSubdomainInUse   = errors.New("subdomain_in_use")
	ErrInvalidSubdomain = errors.New("invalid_subdomain")
)
