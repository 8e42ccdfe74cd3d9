package service

import (
	"context"

	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/config"
	"github.com/vetcita/vetcita/internal/entitlement/domain"
	"github.com/vetcita/vetcita/internal/observability/metrics"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	subdomain "github.com/vetcita/vetcita/internal/subscription/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/internal/trial"
	usagedomain "github.com/vetcita/vetcita/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Gating     *config.GatingConfigHolder
	Metrics    *metrics.HTTPMetrics
	TenantRepo tenantdomain.Repository
	SubRepo    subdomain.Repository
	Usage      usagedomain.Service
}

// Service is the single gate both page-level and API-level checks consult.
// Each call loads a fresh tenant/subscription snapshot; nothing is cached
// across requests.
type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	gating     *config.GatingConfigHolder
	metrics    *metrics.HTTPMetrics
	tenantRepo tenantdomain.Repository
	subRepo    subdomain.Repository
	usage      usagedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("entitlement.service"),
		clock:      p.Clock,
		gating:     p.Gating,
		metrics:    p.Metrics,
		tenantRepo: p.TenantRepo,
		subRepo:    p.SubRepo,
		usage:      p.Usage,
	}
}

// snapshot is the per-request view the guard evaluates against.
type snapshot struct {
	tenant *tenantdomain.Tenant
	sub    *subdomain.TenantSubscription
	plan   *plandomain.Plan
	trial  trial.Status
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}
	id := int64(tenantID)

	tenant, err := s.tenantRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return &snapshot{}, nil
	}

	sub, err := s.subRepo.FindCurrent(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{tenant: tenant, sub: sub}
	if sub != nil {
		if p, found := plandomain.Lookup(sub.PlanCode); found {
			snap.plan = &p
		}
	}

	cfg := s.gating.Get()
	snap.trial = trial.Calculate(trial.TenantTrial{
		IsTrialPeriod: tenant.IsTrialPeriod,
		TrialEndsAt:   tenant.TrialEndsAt,
	}, s.clock.Now(), trial.Config{
		WarningThresholdDays: cfg.WarningThresholdDays,
		GraceDays:            cfg.GraceDays,
		BlockedFeatures:      cfg.BlockedFeatures,
	})

	return snap, nil
}

// gate applies the route-level checks shared by every requirement: tenant
// existence, tenant status, and trial expiry.
func (s *Service) gate(snap *snapshot) (domain.Decision, bool) {
	if snap.tenant == nil {
		return deny(domain.ReasonNoSubscription, domain.FallbackRedirect), false
	}
	switch snap.tenant.Status {
	case tenantdomain.StatusSuspended, tenantdomain.StatusCancelled:
		return deny(domain.ReasonTenantSuspended, domain.FallbackRedirect), false
	}
	if snap.trial.Status == trial.StatusExpired {
		return deny(domain.ReasonTrialExpired, domain.FallbackRedirect), false
	}
	return allow(), true
}

func (s *Service) Guard(ctx context.Context) (domain.Decision, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return domain.Decision{}, err
	}
	decision, _ := s.gate(snap)
	s.metrics.RecordGateDecision("route", decision.Allowed)
	return decision, nil
}

func (s *Service) Evaluate(ctx context.Context, req domain.Requirement) (domain.Decision, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return domain.Decision{}, err
	}

	decision, ok := s.gate(snap)
	if !ok {
		s.metrics.RecordGateDecision(requirementLabel(req), false)
		return decision, nil
	}

	if snap.plan == nil {
		s.metrics.RecordGateDecision(requirementLabel(req), false)
		return deny(domain.ReasonNoSubscription, domain.FallbackPromptUpgrade), nil
	}

	switch {
	case req.Feature != "":
		if !snap.plan.HasFeature(req.Feature) {
			s.metrics.RecordGateDecision(requirementLabel(req), false)
			return deny(domain.ReasonFeatureNotAvailable, domain.FallbackPromptUpgrade), nil
		}
	case req.Limit != "":
		limit, known := snap.plan.LimitFor(req.Limit)
		if !known {
			s.metrics.RecordGateDecision(requirementLabel(req), false)
			return deny(domain.ReasonFeatureNotAvailable, domain.FallbackHide), nil
		}
		current, err := s.usage.CountFor(ctx, req.Limit)
		if err != nil {
			return domain.Decision{}, err
		}
		check := plandomain.CheckLimit(current, limit)
		if !check.CanAdd {
			s.metrics.RecordGateDecision(requirementLabel(req), false)
			d := deny(domain.ReasonLimitReached, domain.FallbackPromptUpgrade)
			d.Limit = &check
			return d, nil
		}
		decision.Limit = &check
	}

	s.metrics.RecordGateDecision(requirementLabel(req), true)
	return decision, nil
}

func (s *Service) HasFeatureAccess(ctx context.Context, key plandomain.FeatureKey) bool {
	decision, err := s.Evaluate(ctx, domain.FeatureRequirement(key))
	if err != nil {
		s.log.Warn("feature access check failed", zap.Error(err))
		return false
	}
	return decision.Allowed
}

func (s *Service) CheckLimit(ctx context.Context, key plandomain.LimitKey) (plandomain.LimitCheck, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return plandomain.LimitCheck{}, err
	}
	if snap.plan == nil {
		return plandomain.LimitCheck{}, nil
	}
	limit, known := snap.plan.LimitFor(key)
	if !known {
		return plandomain.LimitCheck{}, nil
	}
	current, err := s.usage.CountFor(ctx, key)
	if err != nil {
		return plandomain.LimitCheck{}, err
	}
	return plandomain.CheckLimit(current, limit), nil
}

func (s *Service) TrialStatus(ctx context.Context) (*trial.Status, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if snap.tenant == nil {
		return nil, domain.ErrInvalidTenant
	}
	status := snap.trial
	return &status, nil
}

func allow() domain.Decision {
	return domain.Decision{Allowed: true}
}

func deny(reason domain.Reason, fallback domain.Fallback) domain.Decision {
	return domain.Decision{Allowed: false, Reason: reason, Fallback: fallback}
}

func requirementLabel(req domain.Requirement) string {
	if req.Feature != "" {
		return "feature:" + string(req.Feature)
	}
	if req.Limit != "" {
		return "limit:" + string(req.Limit)
	}
	return "route"
}
