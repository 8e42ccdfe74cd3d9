package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vetcita/vetcita/internal/adminreport/domain"
	"github.com/vetcita/vetcita/internal/clock"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	subdomain "github.com/vetcita/vetcita/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var monthLabels = []string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("adminreport.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// BillingSummary aggregates revenue from ACTIVE subscriptions only.
// PAST_DUE rows are counted as pending payments and excluded from revenue;
// TRIALING, CANCELED and UNPAID rows contribute to neither. An ACTIVE row
// whose plan code no longer resolves still counts as active, with zero
// revenue.
func (s *Service) BillingSummary(ctx context.Context) (*domain.BillingSummary, error) {
	subs, err := s.repo.FindAllSubscriptions(ctx, s.db)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	summary := &domain.BillingSummary{
		RevenueByMonth: emptySeries(now),
	}

	for _, sub := range subs {
		switch sub.Status {
		case subdomain.StatusActive:
			summary.ActiveCount++
			plan, known := plandomain.Lookup(sub.PlanCode)
			if !known {
				continue
			}
			summary.TotalRevenue += plan.MonthlyPrice
			addToSeries(summary.RevenueByMonth, now, sub.CreatedAt, plan.MonthlyPrice)
		case subdomain.StatusPastDue:
			summary.PendingPayments++
		case subdomain.StatusTrialing:
			summary.TrialingCount++
		}
	}

	summary.TotalTenants, err = s.repo.CountTenants(ctx, s.db)
	if err != nil {
		return nil, err
	}
	summary.TrialTenants, err = s.repo.CountTrialTenants(ctx, s.db)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// emptySeries builds the twelve-month window ending at the current month.
// The series length is fixed regardless of the data.
func emptySeries(now time.Time) []domain.MonthRevenue {
	series := make([]domain.MonthRevenue, 12)
	for i := 0; i < 12; i++ {
		at := now.AddDate(0, i-11, 0)
		series[i] = domain.MonthRevenue{
			Month: fmt.Sprintf("%s %d", monthLabels[int(at.Month())-1], at.Year()),
		}
	}
	return series
}

func addToSeries(series []domain.MonthRevenue, now, createdAt time.Time, revenue int64) {
	created := createdAt.UTC()
	monthsAgo := (now.Year()-created.Year())*12 + int(now.Month()) - int(created.Month())
	if monthsAgo < 0 || monthsAgo > 11 {
		return
	}
	series[11-monthsAgo].Revenue += revenue
}
