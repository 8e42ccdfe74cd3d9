package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, pet *Pet) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*Pet, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID int64) ([]Pet, error)
	CreateOwner(ctx context.Context, db *gorm.DB, owner *Owner) error
	FindOwnerByID(ctx context.Context, db *gorm.DB, tenantID, id int64) (*Owner, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	CreateOwner(ctx context.Context, req CreateOwnerRequest) (*OwnerResponse, error)
}

type CreateRequest struct {
	OwnerID   string     `json:"owner_id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
}

type CreateOwnerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Response struct {
	ID        string     `json:"id"`
	OwnerID   *string    `json:"owner_id,omitempty"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type OwnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidTenant  = errors.New("invalid_tenant")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidSpecies = errors.New("invalid_species")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("pet_not_found")
	ErrOwnerNotFound  = errors.New("owner_not_found")
)
