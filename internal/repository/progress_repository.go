//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
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

type ProgressRepository interface {
	// FindByUserAndProduct devolve todos os registros de progresso do par
	// (usuário, produto), ordenados por número do dia.
	FindByUserAndProduct(ctx context.Context, db *gorm.DB, userID, productID uuid.UUID) ([]*model.ProgressRecord, error)
	FindByKey(ctx context.Context, db *gorm.DB, userID, productID uuid.UUID, dayNumber int) (*model.ProgressRecord, error)
	Create(ctx context.Context, tx *gorm.DB, record *model.ProgressRecord) error
	Update(ctx context.Context, tx *gorm.DB, record *model.ProgressRecord) error
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) FindByUserAndProduct(ctx context.Context, db *gorm.DB, userID, productID uuid.UUID) ([]*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.ProgressRecord

	result := db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Order("day_number ASC").
		Find(&records)
	if result.Error != nil {
		logger.Error("Error listing progress records in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"product_id", productID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndProduct: %w", result.Error)
	}
	return records, nil
}

func (r *gormProgressRepository) FindByKey(ctx context.Context, db *gorm.DB, userID, productID uuid.UUID, dayNumber int) (*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	var record model.ProgressRecord

	result := db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND day_number = ?", userID, productID, dayNumber).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress record in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"product_id", productID.String(),
			"day_number", dayNumber,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByKey: %w", result.Error)
	}
	return &record, nil
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, record *model.ProgressRecord) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(record)
	if result.Error != nil {
		logger.Error("Error creating progress record in DB",
			"error", result.Error,
			"user_id", record.UserID.String(),
			"day_number", record.DayNumber,
		)
		return fmt.Errorf("gormProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, record *model.ProgressRecord) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Save(record)
	if result.Error != nil {
		logger.Error("Error updating progress record in DB",
			"error", result.Error,
			"progress_id", record.ProgressID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	return nil
}
