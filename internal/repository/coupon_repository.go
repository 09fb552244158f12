//go:generate mockery --name CouponRepository --output ./mocks --outpkg mocks --case=underscore
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

type CouponRepository interface {
	Create(ctx context.Context, tx *gorm.DB, coupon *model.Coupon) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*model.Coupon, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Coupon, error)
	IncrementRedemptions(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error
}

type gormCouponRepository struct{}

func NewGormCouponRepository() CouponRepository {
	return &gormCouponRepository{}
}

func (r *gormCouponRepository) Create(ctx context.Context, tx *gorm.DB, coupon *model.Coupon) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(coupon)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate coupon code", "code", coupon.Code)
			return model.ErrConflict
		}
		logger.Error("Error creating coupon in DB", "error", result.Error, "code", coupon.Code)
		return fmt.Errorf("gormCouponRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCouponRepository) FindByCode(ctx context.Context, db *gorm.DB, code string) (*model.Coupon, error) {
	logger := middleware.GetLogger(ctx)
	var coupon model.Coupon

	result := db.WithContext(ctx).Where("code = ?", code).First(&coupon)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding coupon by code in DB", "error", result.Error, "code", code)
		return nil, fmt.Errorf("gormCouponRepository.FindByCode: %w", result.Error)
	}
	return &coupon, nil
}

func (r *gormCouponRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Coupon, error) {
	logger := middleware.GetLogger(ctx)
	var coupons []*model.Coupon

	result := db.WithContext(ctx).Order("created_at DESC").Find(&coupons)
	if result.Error != nil {
		logger.Error("Error listing coupons in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCouponRepository.FindAll: %w", result.Error)
	}
	return coupons, nil
}

func (r *gormCouponRepository) IncrementRedemptions(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.Coupon{}).
		Where("coupon_id = ?", couponID).
		UpdateColumn("redemptions", gorm.Expr("redemptions + 1"))
	if result.Error != nil {
		logger.Error("Error incrementing coupon redemptions in DB",
			"error", result.Error,
			"coupon_id", couponID.String(),
		)
		return fmt.Errorf("gormCouponRepository.IncrementRedemptions: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCouponRepository) Delete(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Where("coupon_id = ?", couponID).Delete(&model.Coupon{})
	if result.Error != nil {
		logger.Error("Error deleting coupon in DB", "error", result.Error, "coupon_id", couponID.String())
		return fmt.Errorf("gormCouponRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
