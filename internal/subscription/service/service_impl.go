package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vetcita/vetcita/internal/clock"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/subscription/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	TenantRepo tenantdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	tenantRepo tenantdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("subscription.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		tenantRepo: p.TenantRepo,
	}
}

func (s *Service) WithTx(tx *gorm.DB) domain.Service {
	scoped := *s
	scoped.db = tx
	return &scoped
}

func (s *Service) Current(ctx context.Context) (*domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	sub, err := s.repo.FindCurrent(ctx, s.db, int64(tenantID))
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(sub)
	return &resp, nil
}

// Upgrade handles both paths of a plan change. A trial tenant with no paid
// subscription converts onto its first paid plan with no rank check; a
// tenant with a paid subscription may only move to a strictly higher tier.
// The previous row is superseded, not rewritten.
func (s *Service) Upgrade(ctx context.Context, req domain.UpgradeRequest) (*domain.UpgradeResponse, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}
	tenantIDValue := int64(tenantID)

	target, ok := plandomain.Lookup(req.PlanCode)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}
	interval, ok := domain.ValidInterval(req.BillingInterval)
	if !ok {
		return nil, domain.ErrInvalidInterval
	}

	tenant, err := s.tenantRepo.FindByID(ctx, s.db, tenantIDValue)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrInvalidTenant
	}

	current, err := s.repo.FindCurrent(ctx, s.db, tenantIDValue)
	if err != nil {
		return nil, err
	}

	hasPaid := current != nil && current.Status != domain.StatusTrialing
	changeType := domain.ChangeUpgrade
	if tenant.IsTrialPeriod && !hasPaid {
		changeType = domain.ChangeTrialConversion
	} else {
		if current == nil {
			return nil, domain.ErrNotFound
		}
		if !plandomain.IsValidUpgrade(current.PlanCode, target.Code) {
			return nil, domain.ErrInvalidUpgrade
		}
	}

	now := s.clock.Now()
	periodEnd := now.AddDate(0, 1, 0)
	if interval == domain.IntervalAnnual {
		periodEnd = now.AddDate(1, 0, 0)
	}

	next := &domain.TenantSubscription{
		ID:               s.genID.Generate().Int64(),
		TenantID:         tenantIDValue,
		PlanCode:         target.Code,
		Status:           domain.StatusActive,
		BillingInterval:  interval,
		MonthlyPrice:     target.MonthlyPrice,
		CurrentPeriodEnd: &periodEnd,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if current != nil {
			if err := s.repo.UpdateStatus(ctx, tx, current.ID, domain.StatusCanceled); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, tx, next); err != nil {
			return err
		}
		if changeType == domain.ChangeTrialConversion {
			tenant.IsTrialPeriod = false
			tenant.UpdatedAt = now
			return s.tenantRepo.Update(ctx, tx, tenant)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("subscription changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("plan_code", target.Code),
		zap.String("change_type", string(changeType)),
	)

	return &domain.UpgradeResponse{Subscription: toResponse(next), ChangeType: changeType}, nil
}

func (s *Service) StartTrial(ctx context.Context, tenantID int64, planCode string) (*domain.Response, error) {
	target, ok := plandomain.Lookup(planCode)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}

	tenant, err := s.tenantRepo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrInvalidTenant
	}

	now := s.clock.Now()
	sub := &domain.TenantSubscription{
		ID:               s.genID.Generate().Int64(),
		TenantID:         tenantID,
		PlanCode:         target.Code,
		Status:           domain.StatusTrialing,
		BillingInterval:  domain.IntervalMonthly,
		MonthlyPrice:     target.MonthlyPrice,
		CurrentPeriodEnd: tenant.TrialEndsAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, s.db, sub); err != nil {
		return nil, err
	}

	resp := toResponse(sub)
	return &resp, nil
}

func toResponse(sub *domain.TenantSubscription) domain.Response {
	return domain.Response{
		ID:               snowflake.ID(sub.ID).String(),
		TenantID:         snowflake.ID(sub.TenantID).String(),
		PlanCode:         sub.PlanCode,
		Status:           sub.Status,
		BillingInterval:  sub.BillingInterval,
		MonthlyPrice:     sub.MonthlyPrice,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
		CreatedAt:        sub.CreatedAt,
		UpdatedAt:        sub.UpdatedAt,
	}
}
