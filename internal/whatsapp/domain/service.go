package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vetcita/vetcita/pkg/db/pagination"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, msg *WhatsAppMessage) error
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64, afterID int64, limit int) ([]*WhatsAppMessage, error)
}

type Service interface {
	// Send records an outbound message. Delivery is handled by an
	// external provider; callers gate on the whatsapp limit and the
	// automations feature first.
	Send(ctx context.Context, req SendRequest) (*Response, error)
	List(ctx context.Context, page pagination.Pagination) ([]Response, *pagination.PageInfo, error)
}

type SendRequest struct {
	ToPhone string `json:"to_phone"`
	Body    string `json:"body"`
}

type Response struct {
	ID        string        `json:"id"`
	ToPhone   string        `json:"to_phone"`
	Body      string        `json:"body"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

var (
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrInvalidPhone     = errors.New("invalid_phone")
	ErrEmptyBody        = errors.New("empty_body")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)
