package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vetcita/vetcita/internal/clock"
	"github.com/vetcita/vetcita/internal/tenantctx"
	"github.com/vetcita/vetcita/internal/whatsapp/domain"
	"github.com/vetcita/vetcita/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const listLimit = 100

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
		log:   p.Log.Named("whatsapp.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Send(ctx context.Context, req domain.SendRequest) (*domain.Response, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, domain.ErrInvalidTenant
	}

	phone := strings.TrimSpace(req.ToPhone)
	if phone == "" {
		return nil, domain.ErrInvalidPhone
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, domain.ErrEmptyBody
	}

	now := s.clock.Now()
	msg := &domain.WhatsAppMessage{
		ID:        s.genID.Generate().Int64(),
		TenantID:  int64(tenantID),
		ToPhone:   phone,
		Body:      body,
		Status:    domain.StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, msg); err != nil {
		return nil, err
	}

	resp := toResponse(msg)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) ([]domain.Response, *pagination.PageInfo, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok || tenantID == 0 {
		return nil, nil, domain.ErrInvalidTenant
	}

	limit := page.PageSize
	if limit <= 0 || limit > listLimit {
		limit = listLimit
	}

	var afterID int64
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, nil, domain.ErrInvalidPageToken
		}
		id, err := strconv.ParseInt(cursor.ID, 10, 64)
		if err != nil {
			return nil, nil, domain.ErrInvalidPageToken
		}
		afterID = id
	}

	items, err := s.repo.FindByTenant(ctx, s.db, int64(tenantID), afterID, limit+1)
	if err != nil {
		return nil, nil, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, limit, func(msg *domain.WhatsAppMessage) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: strconv.FormatInt(msg.ID, 10)})
		return token
	})
	if !pageInfo.HasMore {
		pageInfo.NextPageToken = ""
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, pageInfo, nil
}

func toResponse(msg *domain.WhatsAppMessage) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(msg.ID).String(),
		ToPhone:   msg.ToPhone,
		Body:      msg.Body,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
	}
}
