package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/member/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Auth     authdomain.Service
	UserRepo authdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	auth     authdomain.Service
	userRepo authdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("member.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		auth:     p.Auth,
		userRepo: p.UserRepo,
	}
}

func (s *Service) CreateStaff(ctx context.Context, req domain.CreateStaffRequest) (*domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	role, ok := domain.ValidRole(req.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.auth.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrUserExists) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}

	now := s.clock.Now()
	member := &domain.TenantMember{
		ID:        s.genID.Generate().Int64(),
		TenantID:  int64(tenantID),
		UserID:    user.ID.Int64(),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, member); err != nil {
		return nil, err
	}

	return &domain.Response{
		ID:          snowflake.ID(member.ID).String(),
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        member.Role,
		CreatedAt:   member.CreatedAt,
	}, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	members, err := s.repo.FindByTenant(ctx, s.db, int64(tenantID))
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(members))
	for _, m := range members {
		entry := domain.Response{
			ID:        snowflake.ID(m.ID).String(),
			UserID:    snowflake.ID(m.UserID).String(),
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		}
		user, err := s.userRepo.FindByID(ctx, snowflake.ID(m.UserID))
		if err == nil {
			entry.Email = user.Email
			entry.DisplayName = user.DisplayName
		}
		resp = append(resp, entry)
	}
	return resp, nil
}

func (s *Service) RoleOf(ctx context.Context, userID int64) (domain.Role, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return "", domain.ErrInvalidTenant
	}

	member, err := s.repo.FindByTenantAndUser(ctx, s.db, int64(tenantID), userID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", domain.ErrNotMember
	}
	return member.Role, nil
}
