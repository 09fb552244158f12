//go:generate mockery --name ProductRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	FindByID(ctx context.Context, db *gorm.DB, productID uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Product, error)
	Update(ctx context.Context, tx *gorm.DB, productID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type gormProductRepository struct{}

func NewGormProductRepository() ProductRepository {
	return &gormProductRepository{}
}

func (r *gormProductRepository) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(product)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate slug on create product", "slug", product.Slug)
			return model.ErrConflict
		}
		logger.Error("Error creating product in DB",
			"error", result.Error,
			"slug", product.Slug,
		)
		return fmt.Errorf("gormProductRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProductRepository) FindByID(ctx context.Context, db *gorm.DB, productID uuid.UUID) (*model.Product, error) {
	logger := middleware.GetLogger(ctx)
	var product model.Product

	result := db.WithContext(ctx).Preload("Experience").Where("product_id = ?", productID).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding product by ID in DB",
			"error", result.Error,
			"product_id", productID.String(),
		)
		return nil, fmt.Errorf("gormProductRepository.FindByID: %w", result.Error)
	}
	return &product, nil
}

func (r *gormProductRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Product, error) {
	logger := middleware.GetLogger(ctx)
	var product model.Product

	result := db.WithContext(ctx).Preload("Experience").Where("slug = ?", slug).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding product by slug in DB",
			"error", result.Error,
			"slug", slug,
		)
		return nil, fmt.Errorf("gormProductRepository.FindBySlug: %w", result.Error)
	}
	return &product, nil
}

func (r *gormProductRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Product, error) {
	logger := middleware.GetLogger(ctx)
	var products []*model.Product

	result := db.WithContext(ctx).Order("created_at DESC").Find(&products)
	if result.Error != nil {
		logger.Error("Error listing products in DB", "error", result.Error)
		return nil, fmt.Errorf("gormProductRepository.FindAll: %w", result.Error)
	}
	return products, nil
}

func (r *gormProductRepository) Update(ctx context.Context, tx *gorm.DB, productID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&model.Product{}).Where("product_id = ?", productID).Updates(updates)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		logger.Error("Error updating product in DB",
			"error", result.Error,
			"product_id", productID.String(),
		)
		return fmt.Errorf("gormProductRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProductRepository) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.Product{})
	if result.Error != nil {
		logger.Error("Error deleting product in DB",
			"error", result.Error,
			"product_id", productID.String(),
		)
		return fmt.Errorf("gormProductRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
