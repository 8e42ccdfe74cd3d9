package domain

import (
	"context"
	"errors"
	"time"

	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"gorm.io/gorm"
)

// Counters are derived on demand from a tenant's owned records, never
// stored.
type Counters struct {
	Pets              int `json:"pets"`
	Users             int `json:"users"`
	WhatsAppThisMonth int `json:"whatsapp_this_month"`
}

type Repository interface {
	CountPets(ctx context.Context, db *gorm.DB, tenantID int64) (int64, error)
	CountMembers(ctx context.Context, db *gorm.DB, tenantID int64) (int64, error)
	CountMessagesSince(ctx context.Context, db *gorm.DB, tenantID int64, since time.Time) (int64, error)
}

type Service interface {
	Counters(ctx context.Context) (Counters, error)
	// CountFor resolves the usage figure backing one limit key.
	CountFor(ctx context.Context, key plandomain.LimitKey) (int, error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrUnknownLimit  = errors.New("unknown_limit")
)
