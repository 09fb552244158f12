// internal/model/experience.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Experience é um programa devocional autorado pelo criador, com conteúdo
// indexado por dia. O conteúdo é gravado como JSON exatamente como veio da
// superfície de autoria; a normalização de apelidos de campo acontece só na
// leitura (ver content.go).
type Experience struct {
	ExperienceID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"experience_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Content      datatypes.JSON `json:"content"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Experience) TableName() string {
	return "experiences"
}

// DTO de criação de experiência (admin)
type PostExperienceRequest struct {
	Title       string         `json:"title" validate:"required,min=1,max=200"`
	Description string         `json:"description"`
	Content     datatypes.JSON `json:"content"`
}

// DTO de atualização parcial de experiência (admin)
type PatchExperienceRequest struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description,omitempty"`
	Content     *datatypes.JSON `json:"content,omitempty"`
}
