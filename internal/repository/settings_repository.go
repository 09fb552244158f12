//go:generate mockery --name SettingsRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	FindByCategory(ctx context.Context, db *gorm.DB, category string) ([]*model.Setting, error)
	// Upsert grava o par (categoria, chave) substituindo o valor existente.
	Upsert(ctx context.Context, tx *gorm.DB, setting *model.Setting) error
}

type gormSettingsRepository struct{}

func NewGormSettingsRepository() SettingsRepository {
	return &gormSettingsRepository{}
}

func (r *gormSettingsRepository) FindByCategory(ctx context.Context, db *gorm.DB, category string) ([]*model.Setting, error) {
	logger := middleware.GetLogger(ctx)
	var settings []*model.Setting

	result := db.WithContext(ctx).Where("category = ?", category).Order("key ASC").Find(&settings)
	if result.Error != nil {
		logger.Error("Error listing settings in DB", "error", result.Error, "category", category)
		return nil, fmt.Errorf("gormSettingsRepository.FindByCategory: %w", result.Error)
	}
	return settings, nil
}

func (r *gormSettingsRepository) Upsert(ctx context.Context, tx *gorm.DB, setting *model.Setting) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting)
	if result.Error != nil {
		logger.Error("Error upserting setting in DB",
			"error", result.Error,
			"category", setting.Category,
			"key", setting.Key,
		)
		return fmt.Errorf("gormSettingsRepository.Upsert: %w", result.Error)
	}
	return nil
}
