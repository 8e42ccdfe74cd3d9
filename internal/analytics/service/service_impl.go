package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vetcita/vetcita/internal/analytics/domain"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxEventNameLen = 128

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
		log:   p.Log.Named("analytics.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) {
	name := strings.TrimSpace(req.EventName)
	if name == "" || len(name) > maxEventNameLen {
		s.log.Debug("dropping malformed analytics event")
		return
	}

	event := &domain.AnalyticsEvent{
		ID:        s.genID.Generate().Int64(),
		EventName: name,
		CreatedAt: s.clock.Now(),
	}
	if tenantID, ok := tenantctx.TenantIDFromContext(ctx); ok && tenantID != 0 {
		id := int64(tenantID)
		event.TenantID = &id
	}
	if len(req.Properties) > 0 {
		event.Properties = datatypes.JSONMap(req.Properties)
	}

	if err := s.repo.Create(ctx, s.db, event); err != nil {
		s.log.Warn("analytics event write failed", zap.Error(err))
	}
}
