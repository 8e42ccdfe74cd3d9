package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ChangeType distinguishes the two upgrade code paths.
type ChangeType string

const (
	ChangeTrialConversion ChangeType = "trial_conversion"
	ChangeUpgrade         ChangeType = "upgrade"
)

type Service interface {
	// WithTx returns a copy of the service whose writes run inside tx.
	WithTx(tx *gorm.DB) Service
	Current(ctx context.Context) (*Response, error)
	Upgrade(ctx context.Context, req UpgradeRequest) (*UpgradeResponse, error)
	// StartTrial creates the TRIALING subscription a new tenant evaluates
	// against until it converts.
	StartTrial(ctx context.Context, tenantID int64, planCode string) (*Response, error)
}

type UpgradeRequest struct {
	PlanCode        string `json:"plan_code"`
	BillingInterval string `json:"billing_interval"`
}

type Response struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	PlanCode         string     `json:"plan_code"`
	Status           Status     `json:"status"`
	BillingInterval  Interval   `json:"billing_interval"`
	MonthlyPrice     int64      `json:"monthly_price"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UpgradeResponse struct {
	Subscription Response   `json:"subscription"`
	ChangeType   ChangeType `json:"change_type"`
}

var (
	ErrInvalidTenant   = errors.New("invalid_tenant")
	ErrUnknownPlan     = errors.New("unknown_plan")
	ErrInvalidInterval = errors.New("invalid_interval")
	ErrInvalidUpgrade  = errors.New("invalid_upgrade")
	ErrNotFound        = errors.New("subscription_not_found")
)
