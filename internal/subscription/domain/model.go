package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusTrialing Status = "TRIALING"
	StatusPastDue  Status = "PAST_DUE"
	StatusCanceled Status = "CANCELED"
	StatusUnpaid   Status = "UNPAID"
)

type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalAnnual  Interval = "annual"
)

// TenantSubscription rows are superseded on plan change, never rewritten:
// the old row flips to CANCELED and a new row carries the new plan.
type TenantSubscription struct {
	ID               int64             `json:"id" gorm:"primaryKey"`
	TenantID         int64             `json:"tenant_id" gorm:"not null;index:ix_tenant_subscriptions_tenant"`
	PlanCode         string            `json:"plan_code" gorm:"type:text;not null"`
	Status           Status            `json:"status" gorm:"type:text;not null"`
	BillingInterval  Interval          `json:"billing_interval" gorm:"type:text;not null"`
	MonthlyPrice     int64             `json:"monthly_price" gorm:"not null"`
	CurrentPeriodEnd *time.Time        `json:"current_period_end,omitempty"`
	Metadata         datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TenantSubscription) TableName() string { return "tenant_subscriptions" }

// ValidInterval reports whether the raw billing interval is recognized.
func ValidInterval(raw string) (Interval, bool) {
	switch Interval(raw) {
	case IntervalMonthly:
		return IntervalMonthly, true
	case IntervalAnnual:
		return IntervalAnnual, true
	default:
		return "", false
	}
}
