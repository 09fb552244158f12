// internal/model/product.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product é o invólucro comercial de uma Experience: preço, slug e página.
type Product struct {
	ProductID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"product_id"`
	ExperienceID uuid.UUID      `gorm:"type:uuid;not null;index" json:"experience_id"`
	Slug         string         `gorm:"unique;not null" json:"slug"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	PriceCents   int64          `gorm:"not null" json:"price_cents"` // centavos, nunca float
	Active       bool           `gorm:"default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relação (para Preload)
	Experience *Experience `gorm:"foreignKey:ExperienceID;references:ExperienceID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// DTO de criação de produto (admin)
type PostProductRequest struct {
	ExperienceID uuid.UUID `json:"experience_id" validate:"required"`
	Slug         string    `json:"slug" validate:"required,min=1,max=100"`
	Name         string    `json:"name" validate:"required,min=1,max=200"`
	Description  string    `json:"description"`
	PriceCents   int64     `json:"price_cents" validate:"required,gt=0"`
}

// DTO de atualização parcial de produto (admin)
type PatchProductRequest struct {
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=1,max=100"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	Active      *bool   `json:"active,omitempty"`
}
