package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/pet/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("pet.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	species := strings.TrimSpace(req.Species)
	if species == "" {
		return nil, domain.ErrInvalidSpecies
	}

	var ownerID *int64
	if strings.TrimSpace(req.OwnerID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.OwnerID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		owner, err := s.repo.FindOwnerByID(ctx, s.db, int64(tenantID), parsed.Int64())
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, domain.ErrOwnerNotFound
		}
		id := parsed.Int64()
		ownerID = &id
	}

	now := s.clock.Now()
	p := &domain.Pet{
		ID:        s.genID.Generate().Int64(),
		TenantID:  int64(tenantID),
		OwnerID:   ownerID,
		Name:      name,
		Species:   species,
		Breed:     strings.TrimSpace(req.Breed),
		BirthDate: req.BirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	items, err := s.repo.FindByTenant(ctx, s.db, int64(tenantID))
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	petID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	p, err := s.repo.FindByID(ctx, s.db, int64(tenantID), petID.Int64())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) CreateOwner(ctx context.Context, req domain.CreateOwnerRequest) (*domain.OwnerResponse, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now()
	o := &domain.Owner{
		ID:        s.genID.Generate().Int64(),
		TenantID:  int64(tenantID),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateOwner(ctx, s.db, o); err != nil {
		return nil, err
	}

	return &domain.OwnerResponse{
		ID:        snowflake.ID(o.ID).String(),
		Name:      o.Name,
		Phone:     o.Phone,
		Email:     o.Email,
		CreatedAt: o.CreatedAt,
	}, nil
}

func toResponse(p *domain.Pet) domain.Response {
	resp := domain.Response{
		ID:        snowflake.ID(p.ID).String(),
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		BirthDate: p.BirthDate,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.OwnerID != nil {
		owner := snowflake.ID(*p.OwnerID).String()
		resp.OwnerID = &owner
	}
	return resp
}
