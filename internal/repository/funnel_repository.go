//go:generate mockery --name FunnelRepository --output ./mocks --outpkg mocks --case=underscore
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

type FunnelRepository interface {
	Create(ctx context.Context, tx *gorm.DB, funnel *model.Funnel) error
	FindByID(ctx context.Context, db *gorm.DB, funnelID uuid.UUID) (*model.Funnel, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Funnel, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Funnel, error)
	Save(ctx context.Context, tx *gorm.DB, funnel *model.Funnel) error
	Delete(ctx context.Context, tx *gorm.DB, funnelID uuid.UUID) error
}

type gormFunnelRepository struct{}

func NewGormFunnelRepository() FunnelRepository {
	return &gormFunnelRepository{}
}

func (r *gormFunnelRepository) Create(ctx context.Context, tx *gorm.DB, funnel *model.Funnel) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(funnel)
	if result.Error != nil {
		logger.Error("Error creating funnel in DB", "error", result.Error, "slug", funnel.Slug)
		return fmt.Errorf("gormFunnelRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormFunnelRepository) FindByID(ctx context.Context, db *gorm.DB, funnelID uuid.UUID) (*model.Funnel, error) {
	logger := middleware.GetLogger(ctx)
	var funnel model.Funnel

	result := db.WithContext(ctx).Where("funnel_id = ?", funnelID).First(&funnel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding funnel by ID in DB", "error", result.Error, "funnel_id", funnelID.String())
		return nil, fmt.Errorf("gormFunnelRepository.FindByID: %w", result.Error)
	}
	return &funnel, nil
}

func (r *gormFunnelRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Funnel, error) {
	logger := middleware.GetLogger(ctx)
	var funnel model.Funnel

	result := db.WithContext(ctx).Where("slug = ?", slug).First(&funnel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding funnel by slug in DB", "error", result.Error, "slug", slug)
		return nil, fmt.Errorf("gormFunnelRepository.FindBySlug: %w", result.Error)
	}
	return &funnel, nil
}

func (r *gormFunnelRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Funnel, error) {
	logger := middleware.GetLogger(ctx)
	var funnels []*model.Funnel

	result := db.WithContext(ctx).Order("created_at DESC").Find(&funnels)
	if result.Error != nil {
		logger.Error("Error listing funnels in DB", "error", result.Error)
		return nil, fmt.Errorf("gormFunnelRepository.FindAll: %w", result.Error)
	}
	return funnels, nil
}

func (r *gormFunnelRepository) Save(ctx context.Context, tx *gorm.DB, funnel *model.Funnel) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Save(funnel)
	if result.Error != nil {
		logger.Error("Error saving funnel in DB", "error", result.Error, "funnel_id", funnel.FunnelID.String())
		return fmt.Errorf("gormFunnelRepository.Save: %w", result.Error)
	}
	return nil
}

func (r *gormFunnelRepository) Delete(ctx context.Context, tx *gorm.DB, funnelID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Where("funnel_id = ?", funnelID).Delete(&model.Funnel{})
	if result.Error != nil {
		logger.Error("Error deleting funnel in DB", "error", result.Error, "funnel_id", funnelID.String())
		return fmt.Errorf("gormFunnelRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
