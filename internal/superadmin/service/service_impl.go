package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/config"
	"github.com/vetcita/vetcita/internal/superadmin/domain"
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
	Config   config.Config
	Repo     domain.Repository
	UserRepo authdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	emailDomain string
	repo        domain.Repository
	userRepo    authdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("superadmin.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		emailDomain: strings.ToLower(strings.TrimSpace(p.Config.SuperAdminEmailDomain)),
		repo:        p.Repo,
		userRepo:    p.UserRepo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Entry, error) {
	grants, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(grants))
	seen := make(map[int64]bool, len(grants))
	for _, grant := range grants {
		entry := domain.Entry{
			UserID:         snowflake.ID(grant.UserID).String(),
			AssignedByRole: true,
			AssignedAt:     grant.CreatedAt,
		}
		if user, err := s.userRepo.FindByID(ctx, snowflake.ID(grant.UserID)); err == nil {
			entry.Email = user.Email
			entry.DisplayName = user.DisplayName
		}
		entries = append(entries, entry)
		seen[grant.UserID] = true
	}

	if s.emailDomain != "" {
		var users []authdomain.User
		err := s.db.WithContext(ctx).
			Where("email LIKE ?", "%@"+s.emailDomain).
			Find(&users).Error
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			if seen[user.ID.Int64()] {
				continue
			}
			entries = append(entries, domain.Entry{
				UserID:         user.ID.String(),
				Email:          user.Email,
				DisplayName:    user.DisplayName,
				AssignedByRole: false,
			})
		}
	}

	return entries, nil
}

func (s *Service) Assign(ctx context.Context, req domain.AssignRequest) (*domain.Entry, error) {
	user, err := s.resolveUser(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserID(ctx, s.db, user.ID.Int64())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyAdmin
	}

	grant := &domain.SuperAdmin{
		ID:        s.genID.Generate().Int64(),
		UserID:    user.ID.Int64(),
		CreatedAt: s.clock.Now(),
	}
	if actor, ok := tenantctx.UserIDFromContext(ctx); ok {
		actorID := actor.Int64()
		grant.AssignedByID = &actorID
	}
	if err := s.repo.Create(ctx, s.db, grant); err != nil {
		return nil, err
	}

	return &domain.Entry{
		UserID:         user.ID.String(),
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		AssignedByRole: true,
		AssignedAt:     grant.CreatedAt,
	}, nil
}

func (s *Service) Remove(ctx context.Context, req domain.RemoveRequest) error {
	user, err := s.resolveUser(ctx, req.UserID, req.Email)
	if err != nil {
		return err
	}

	if actor, ok := tenantctx.UserIDFromContext(ctx); ok && actor == user.ID {
		return domain.ErrSelfRemoval
	}

	existing, err := s.repo.FindByUserID(ctx, s.db, user.ID.Int64())
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotAdmin
	}

	return s.repo.DeleteByUserID(ctx, s.db, user.ID.Int64())
}

func (s *Service) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	grant, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return false, err
	}
	if grant != nil {
		return true, nil
	}
	if s.emailDomain == "" {
		return false, nil
	}
	user, err := s.userRepo.FindByID(ctx, snowflake.ID(userID))
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.HasSuffix(strings.ToLower(user.Email), "@"+s.emailDomain), nil
}

func (s *Service) resolveUser(ctx context.Context, rawID, rawEmail string) (*authdomain.User, error) {
	id := strings.TrimSpace(rawID)
	email := strings.ToLower(strings.TrimSpace(rawEmail))
	if id == "" && email == "" {
		return nil, domain.ErrMissingIdentifier
	}

	if id != "" {
		parsed, err := snowflake.ParseString(id)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		user, err := s.userRepo.FindByID(ctx, parsed)
		if err != nil {
			if errors.Is(err, authdomain.ErrUserNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
		return user, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
