// internal/service/coupon_service.go
package service

import (
	"context"
	"errors"
	"time"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, req *model.PostCouponRequest) (*model.Coupon, error)
	ListCoupons(ctx context.Context) ([]*model.Coupon, error)
	DeleteCoupon(ctx context.Context, couponID uuid.UUID) error
	// ApplyCoupon valida o cupom e devolve o preço com desconto (nunca
	// negativo) junto com o cupom aplicado.
	ApplyCoupon(ctx context.Context, priceCents int64, code string) (int64, *model.Coupon, error)
}

type couponService struct {
	db         *gorm.DB
	couponRepo repository.CouponRepository
}

func NewCouponService(db *gorm.DB, couponRepo repository.CouponRepository) CouponService {
	return &couponService{db: db, couponRepo: couponRepo}
}

func (s *couponService) CreateCoupon(ctx context.Context, req *model.PostCouponRequest) (*model.Coupon, error) {
	logger := middleware.GetLogger(ctx)

	if req.DiscountType == model.DiscountPercent && req.DiscountValue > 100 {
		return nil, model.NewAppError("VALIDATION_ERROR", "Desconto percentual não pode passar de 100.", "discount_value", model.ErrInvalidInput)
	}

	coupon := &model.Coupon{
		CouponID:       uuid.New(),
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
		Active:         true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.couponRepo.Create(ctx, tx, coupon)
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("DUPLICATE_CODE", "Já existe um cupom com esse código.", "code", model.ErrConflict)
		}
		logger.Error("Failed to create coupon", "error", err)
		return nil, model.ErrInternalServer
	}
	return coupon, nil
}

func (s *couponService) ListCoupons(ctx context.Context) ([]*model.Coupon, error) {
	coupons, err := s.couponRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	return coupons, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, couponID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.couponRepo.Delete(ctx, tx, couponID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}
	return nil
}

func (s *couponService) ApplyCoupon(ctx context.Context, priceCents int64, code string) (int64, *model.Coupon, error) {
	logger := middleware.GetLogger(ctx)

	coupon, err := s.couponRepo.FindByCode(ctx, s.db, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, nil, model.NewAppError("INVALID_COUPON", "Cupom inválido.", "coupon_code", model.ErrInvalidInput)
		}
		logger.Error("Failed to look up coupon", "error", err, "code", code)
		return 0, nil, model.ErrInternalServer
	}

	if !coupon.Active {
		return 0, nil, model.NewAppError("INVALID_COUPON", "Cupom inválido.", "coupon_code", model.ErrInvalidInput)
	}
	if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
		return 0, nil, model.NewAppError("EXPIRED_COUPON", "Este cupom expirou.", "coupon_code", model.ErrInvalidInput)
	}
	if coupon.MaxRedemptions > 0 && coupon.Redemptions >= coupon.MaxRedemptions {
		return 0, nil, model.NewAppError("EXHAUSTED_COUPON", "Este cupom atingiu o limite de usos.", "coupon_code", model.ErrInvalidInput)
	}

	final := priceCents
	switch coupon.DiscountType {
	case model.DiscountPercent:
		final = priceCents - priceCents*coupon.DiscountValue/100
	case model.DiscountFixed:
		final = priceCents - coupon.DiscountValue
	}
	// desconto maior que o preço não gera valor negativo
	if final < 0 {
		final = 0
	}
	return final, coupon, nil
}
