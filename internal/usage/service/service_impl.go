package service

import (
	"context"
	"time"

	"github.com/vetcita/vetcita/internal/clock"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("usage.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Counters(ctx context.Context) (domain.Counters, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return domain.Counters{}, domain.ErrInvalidTenant
	}
	id := int64(tenantID)

	pets, err := s.repo.CountPets(ctx, s.db, id)
	if err != nil {
		return domain.Counters{}, err
	}
	users, err := s.repo.CountMembers(ctx, s.db, id)
	if err != nil {
		return domain.Counters{}, err
	}
	messages, err := s.repo.CountMessagesSince(ctx, s.db, id, s.monthStart())
	if err != nil {
		return domain.Counters{}, err
	}

	return domain.Counters{
		Pets:              int(pets),
		Users:             int(users),
		WhatsAppThisMonth: int(messages),
	}, nil
}

func (s *Service) CountFor(ctx context.Context, key plandomain.LimitKey) (int, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return 0, domain.ErrInvalidTenant
	}
	id := int64(tenantID)

	var (
		count int64
		err   error
	)
	switch key {
	case plandomain.LimitPets:
		count, err = s.repo.CountPets(ctx, s.db, id)
	case plandomain.LimitUsers:
		count, err = s.repo.CountMembers(ctx, s.db, id)
	case plandomain.LimitWhatsApp:
		count, err = s.repo.CountMessagesSince(ctx, s.db, id, s.monthStart())
	default:
		return 0, domain.ErrUnknownLimit
	}
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// monthStart is the first instant of the current calendar month in UTC,
// the window for the outbound-message counter.
func (s *Service) monthStart() time.Time {
	now := s.clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
