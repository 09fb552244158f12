//go:generate mockery --name PurchaseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error
	FindByID(ctx context.Context, db *gorm.DB, purchaseID uuid.UUID) (*model.Purchase, error)
	FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*model.Purchase, error)
	// FindLatestCompletedByUser devolve a compra completada mais recente do
	// usuário, com Product e Experience pré-carregados. É ela que define o
	// produto ativo do membro.
	FindLatestCompletedByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Purchase, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, status string) error
	FindCompletedBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*model.Purchase, error)
}

type gormPurchaseRepository struct{}

func NewGormPurchaseRepository() PurchaseRepository {
	return &gormPurchaseRepository{}
}

func (r *gormPurchaseRepository) Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(purchase)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate session id on create purchase", "session_id", purchase.SessionID)
			return model.ErrConflict
		}
		logger.Error("Error creating purchase in DB",
			"error", result.Error,
			"user_id", purchase.UserID.String(),
			"product_id", purchase.ProductID.String(),
		)
		return fmt.Errorf("gormPurchaseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormPurchaseRepository) FindByID(ctx context.Context, db *gorm.DB, purchaseID uuid.UUID) (*model.Purchase, error) {
	logger := middleware.GetLogger(ctx)
	var purchase model.Purchase

	result := db.WithContext(ctx).Where("purchase_id = ?", purchaseID).First(&purchase)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding purchase by ID in DB",
			"error", result.Error,
			"purchase_id", purchaseID.String(),
		)
		return nil, fmt.Errorf("gormPurchaseRepository.FindByID: %w", result.Error)
	}
	return &purchase, nil
}

func (r *gormPurchaseRepository) FindBySessionID(ctx context.Context, db *gorm.DB, sessionID string) (*model.Purchase, error) {
	logger := middleware.GetLogger(ctx)
	var purchase model.Purchase

	result := db.WithContext(ctx).Preload("Product").Where("session_id = ?", sessionID).First(&purchase)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding purchase by session ID in DB", "error", result.Error)
		return nil, fmt.Errorf("gormPurchaseRepository.FindBySessionID: %w", result.Error)
	}
	return &purchase, nil
}

func (r *gormPurchaseRepository) FindLatestCompletedByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Purchase, error) {
	logger := middleware.GetLogger(ctx)
	var purchase model.Purchase

	// desempate por created_at decrescente: a compra mais nova vence
	result := db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Experience").
		Where("user_id = ? AND status = ?", userID, model.PurchaseStatusCompleted).
		Order("created_at DESC").
		First(&purchase)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding latest completed purchase in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormPurchaseRepository.FindLatestCompletedByUser: %w", result.Error)
	}
	return &purchase, nil
}

func (r *gormPurchaseRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, status string) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.Purchase{}).
		Where("purchase_id = ?", purchaseID).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Error updating purchase status in DB",
			"error", result.Error,
			"purchase_id", purchaseID.String(),
			"status", status,
		)
		return fmt.Errorf("gormPurchaseRepository.UpdateStatus: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPurchaseRepository) FindCompletedBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*model.Purchase, error) {
	logger := middleware.GetLogger(ctx)
	var purchases []*model.Purchase

	result := db.WithContext(ctx).
		Preload("Product").
		Where("status = ? AND created_at >= ? AND created_at < ?", model.PurchaseStatusCompleted, from, to).
		Order("created_at ASC").
		Find(&purchases)
	if result.Error != nil {
		logger.Error("Error listing completed purchases in DB", "error", result.Error)
		return nil, fmt.Errorf("gormPurchaseRepository.FindCompletedBetween: %w", result.Error)
	}
	return purchases, nil
}
