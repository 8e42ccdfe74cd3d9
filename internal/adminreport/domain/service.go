package domain

import (
	"context"

	"gorm.io/gorm"

	subdomain "github.com/vetcita/vetcita/internal/subscription/domain"
)

type Repository interface {
	FindAllSubscriptions(ctx context.Context, db *gorm.DB) ([]subdomain.TenantSubscription, error)
	CountTenants(ctx context.Context, db *gorm.DB) (int64, error)
	CountTrialTenants(ctx context.Context, db *gorm.DB) (int64, error)
}

type Service interface {
	BillingSummary(ctx context.Context) (*BillingSummary, error)
}

// MonthRevenue is one entry of the twelve-month series.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

type BillingSummary struct {
	TotalRevenue    int64          `json:"total_revenue"`
	ActiveCount     int            `json:"active_count"`
	PendingPayments int            `json:"pending_payments"`
	TrialingCount   int            `json:"trialing_count"`
	TotalTenants    int64          `json:"total_tenants"`
	TrialTenants    int64          `json:"trial_tenants"`
	RevenueByMonth  []MonthRevenue `json:"revenue_by_month"`
}
