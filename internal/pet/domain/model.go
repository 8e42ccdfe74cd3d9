package domain

import "time"

// Owner is the pet's human contact.
type Owner struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenant_id" gorm:"not null;index:ix_owners_tenant"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Phone     string    `json:"phone" gorm:"type:text"`
	Email     string    `json:"email" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Owner) TableName() string { return "owners" }

type Pet struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	TenantID  int64      `json:"tenant_id" gorm:"not null;index:ix_pets_tenant"`
	OwnerID   *int64     `json:"owner_id,omitempty" gorm:"index"`
	Name      string     `json:"name" gorm:"type:text;not null"`
	Species   string     `json:"species" gorm:"type:text;not null"`
	Breed     string     `json:"breed" gorm:"type:text"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Pet) TableName() string { return "pets" }
