package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/tenant/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultTrialDays = 14

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) WithTx(tx *gorm.DB) domain.Service {
	scoped := *s
	scoped.db = tx
	return &scoped
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	subdomain := strings.TrimSpace(req.Subdomain)
	if subdomain == "" {
		subdomain = name
	}
	subdomain = slug.Make(subdomain)
	if subdomain == "" {
		return nil, domain.ErrInvalidSubdomain
	}

	trialDays := req.TrialDays
	if trialDays <= 0 {
		trialDays = defaultTrialDays
	}

	now := s.clock.Now()
	trialEndsAt := now.AddDate(0, 0, trialDays)
	t := &domain.Tenant{
		ID:            s.genID.Generate().Int64(),
		Name:          name,
		Subdomain:     subdomain,
		Status:        domain.StatusActive,
		IsTrialPeriod: true,
		TrialEndsAt:   &trialEndsAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, s.db, t); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSubdomainInUse
		}
		return nil, err
	}

	resp := toResponse(t)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context) (*domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	t, err := s.repo.FindByID(ctx, s.db, int64(tenantID))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(t)
	return &resp, nil
}

func (s *Service) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Response, error) {
	t, err := s.repo.FindBySubdomain(ctx, s.db, slug.Make(strings.TrimSpace(subdomain)))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(t)
	return &resp, nil
}

// EndTrial clears the trial flag after a conversion. The trial end date is
// kept for reporting.
func (s *Service) EndTrial(ctx context.Context, tenantID int64) error {
	t, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	t.IsTrialPeriod = false
	t.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, t)
}

func toResponse(t *domain.Tenant) domain.Response {
	return domain.Response{
		ID:            snowflake.ID(t.ID).String(),
		Name:          t.Name,
		Subdomain:     t.Subdomain,
		Status:        t.Status,
		IsTrialPeriod: t.IsTrialPeriod,
		TrialEndsAt:   t.TrialEndsAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
