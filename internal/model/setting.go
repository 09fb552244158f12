// internal/model/setting.go
package model

import "time"

// Setting é uma linha achatada (categoria, chave, valor) da configuração
// global do admin. O objeto aninhado é reconstruído na leitura.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Category  string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_setting_category_key" json:"category"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_setting_category_key" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// PutSettingsRequest grava todas as chaves de uma categoria de uma vez.
type PutSettingsRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}
