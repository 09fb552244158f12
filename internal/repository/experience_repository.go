//go:generate mockery --name ExperienceRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExperienceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, experience *model.Experience) error
	FindByID(ctx context.Context, db *gorm.DB, experienceID uuid.UUID) (*model.Experience, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Experience, error)
	Update(ctx context.Context, tx *gorm.DB, experienceID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, experienceID uuid.UUID) error
}

type gormExperienceRepository struct{}

func NewGormExperienceRepository() ExperienceRepository {
	return &gormExperienceRepository{}
}

func (r *gormExperienceRepository) Create(ctx context.Context, tx *gorm.DB, experience *model.Experience) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(experience)
	if result.Error != nil {
		logger.Error("Error creating experience in DB",
			"error", result.Error,
			"title", experience.Title,
		)
		return fmt.Errorf("gormExperienceRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormExperienceRepository) FindByID(ctx context.Context, db *gorm.DB, experienceID uuid.UUID) (*model.Experience, error) {
	logger := middleware.GetLogger(ctx)
	var experience model.Experience

	result := db.WithContext(ctx).Where("experience_id = ?", experienceID).First(&experience)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding experience by ID in DB",
			"error", result.Error,
			"experience_id", experienceID.String(),
		)
		return nil, fmt.Errorf("gormExperienceRepository.FindByID: %w", result.Error)
	}
	return &experience, nil
}

func (r *gormExperienceRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Experience, error) {
	logger := middleware.GetLogger(ctx)
	var experiences []*model.Experience

	result := db.WithContext(ctx).Order("created_at DESC").Find(&experiences)
	if result.Error != nil {
		logger.Error("Error listing experiences in DB", "error", result.Error)
		return nil, fmt.Errorf("gormExperienceRepository.FindAll: %w", result.Error)
	}
	return experiences, nil
}

func (r *gormExperienceRepository) Update(ctx context.Context, tx *gorm.DB, experienceID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&model.Experience{}).Where("experience_id = ?", experienceID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating experience in DB",
			"error", result.Error,
			"experience_id", experienceID.String(),
		)
		return fmt.Errorf("gormExperienceRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormExperienceRepository) Delete(ctx context.Context, tx *gorm.DB, experienceID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Where("experience_id = ?", experienceID).Delete(&model.Experience{})
	if result.Error != nil {
		logger.Error("Error deleting experience in DB",
			"error", result.Error,
			"experience_id", experienceID.String(),
		)
		return fmt.Errorf("gormExperienceRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
