// internal/model/funnel.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Funnel descreve a sequência de páginas de venda de um produto: landing,
// checkout e upsells, em ordem. Os passos são gravados como JSON porque a
// superfície de admin edita o funil inteiro de uma vez.
type Funnel struct {
	FunnelID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"funnel_id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"not null" json:"name"`
	Steps     datatypes.JSON `json:"steps"` // [{"kind":"landing","product_slug":"..."}, ...]
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Funnel) TableName() string {
	return "funnels"
}

// FunnelStep é a forma tipada de um passo do funil.
type FunnelStep struct {
	Kind        string `json:"kind" validate:"required,oneof=landing checkout upsell thankyou"`
	ProductSlug string `json:"product_slug" validate:"required"`
}

// DTO de criação/substituição de funil (admin)
type PutFunnelRequest struct {
	Slug  string       `json:"slug" validate:"required,min=1,max=100"`
	Name  string       `json:"name" validate:"required,min=1,max=200"`
	Steps []FunnelStep `json:"steps" validate:"required,min=1,dive"`
}
