package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/config"
	"github.com/vetcita/vetcita/internal/observability/metrics"
	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
)

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	TenantRepo tenantdomain.Repository
	SubRepo    subscriptiondomain.Repository
	Gating     *config.GatingConfigHolder
	Clock      clock.Clock
	Metrics    *metrics.HTTPMetrics `optional:"true"`
	Config     Config               `optional:"true"`
}

// Scheduler periodically moves trial subscriptions of tenants whose trial
// window has closed (beyond any grace period) to UNPAID so the request
// guard denies them on the next hit.
type Scheduler struct {
	db         *gorm.DB
	log        *zap.Logger
	cfg        Config
	clock      clock.Clock
	tenantRepo tenantdomain.Repository
	subRepo    subscriptiondomain.Repository
	gating     *config.GatingConfigHolder
	metrics    *metrics.HTTPMetrics
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.TenantRepo == nil || p.SubRepo == nil || p.Gating == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:         p.DB,
		log:        p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:        p.Config.withDefaults(),
		clock:      p.Clock,
		tenantRepo: p.TenantRepo,
		subRepo:    p.SubRepo,
		gating:     p.Gating,
		metrics:    p.Metrics,
	}, nil
}

// SweepExpiredTrials expires trials in calendar-day terms: a trial ending
// any time yesterday is expired today, one ending today is still on its
// last day. Grace days push the cutoff back.
func (s *Scheduler) SweepExpiredTrials(ctx context.Context) (int, error) {
	now := s.clock.Now().UTC()
	grace := s.gating.Get().GraceDays
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -grace)

	tenants, err := s.tenantRepo.FindExpiredTrials(ctx, s.db, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, tenant := range tenants {
		if expired >= s.cfg.BatchSize {
			break
		}
		sub, err := s.subRepo.FindCurrent(ctx, s.db, tenant.ID)
		if err != nil {
			s.log.Error("load current subscription",
				zap.Int64("tenant_id", tenant.ID),
				zap.Error(err),
			)
			continue
		}
		if sub == nil || sub.Status != subscriptiondomain.StatusTrialing {
			continue
		}
		if err := s.subRepo.UpdateStatus(ctx, s.db, sub.ID, subscriptiondomain.StatusUnpaid); err != nil {
			s.log.Error("expire trial subscription",
				zap.Int64("tenant_id", tenant.ID),
				zap.Int64("subscription_id", sub.ID),
				zap.Error(err),
			)
			continue
		}
		expired++
		s.log.Info("trial subscription expired",
			zap.Int64("tenant_id", tenant.ID),
			zap.Int64("subscription_id", sub.ID),
			zap.Timep("trial_ends_at", tenant.TrialEndsAt),
		)
	}

	s.metrics.RecordTrialSweep(expired)
	return expired, nil
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.SweepTimeout)
	defer cancel()

	if _, err := s.SweepExpiredTrials(ctx); err != nil {
		s.log.Error("trial sweep failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("initial sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Warn("sweep failed", zap.Error(err))
			}
		}
	}
}
