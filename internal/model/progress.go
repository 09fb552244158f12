// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProgressRecord marca a conclusão de um dia de um produto por um usuário.
// Único por (user_id, product_id, day_number) — a escrita é sempre upsert
// nessa tripla, nunca gera duplicata.
type ProgressRecord struct {
	ProgressID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_product_day,unique" json:"user_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_product_day,unique" json:"product_id"`
	DayNumber   int            `gorm:"not null;index:idx_user_product_day,unique" json:"day_number"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Data        datatypes.JSON `json:"data,omitempty"` // {"reflections": "...", ...}
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "user_progress"
}

// ReflectionData é a forma tipada do campo Data.
type ReflectionData struct {
	Reflections       string `json:"reflections,omitempty"`
	MeditationMinutes int    `json:"meditation_minutes,omitempty"`
}

// DerivedStats nunca é persistido: é recalculado a cada leitura a partir das
// linhas de progresso. currentDay = min(último dia completo + 1, totalDays).
type DerivedStats struct {
	CurrentDay     int     `json:"current_day"`
	TotalDays      int     `json:"total_days"`
	Streak         int     `json:"streak"`
	CompletionRate float64 `json:"completion_rate"`
	CompletedDays  int     `json:"completed_days"`
}

// WeekBreakdown é uma fatia de 7 dias do programa com seu percentual.
type WeekBreakdown struct {
	WeekIndex  int     `json:"week_index"`
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Achievement é sempre rederivado dos contadores brutos; não existe estado
// "desbloqueado" persistido.
type Achievement struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Completed       bool    `json:"completed"`
	ProgressPercent float64 `json:"progress_percent"`
}

// CompleteDayRequest é o corpo da escrita "concluir dia".
type CompleteDayRequest struct {
	DayNumber   int            `json:"day_number" validate:"required,gt=0"`
	Reflections ReflectionData `json:"reflections"`
}

// TodayResponse alimenta a tela "Hoje" do app do membro.
type TodayResponse struct {
	ProductID      uuid.UUID    `json:"product_id"`
	Experience     string       `json:"experience"`
	Day            DayContent   `json:"day"`
	CompletedToday bool         `json:"completed_today"`
	Stats          DerivedStats `json:"stats"`
}

// GrowthResponse alimenta a tela "Crescimento" (estatísticas).
type GrowthResponse struct {
	Stats        DerivedStats    `json:"stats"`
	Weeks        []WeekBreakdown `json:"weeks"`
	Achievements []Achievement   `json:"achievements"`
}

// ProfileResponse alimenta a tela "Perfil".
type ProfileResponse struct {
	User        UserResponse `json:"user"`
	Experience  string       `json:"experience"`
	Stats       DerivedStats `json:"stats"`
	Reflections int          `json:"reflections"`
	MemberSince time.Time    `json:"member_since"`
}
