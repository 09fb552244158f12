// internal/service/coupon_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"proposito24h/internal/model"
	"proposito24h/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cupomAtivo(code, discountType string, value int64) *model.Coupon {
	return &model.Coupon{
		CouponID:      uuid.New(),
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		Active:        true,
	}
}

func Test_couponService_ApplyCoupon(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()

	expirado := time.Now().Add(-24 * time.Hour)
	futuro := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name       string
		priceCents int64
		code       string
		setupMock  func(couponRepo *mocks.CouponRepository)
		wantFinal  int64
		wantErr    error
		wantCode   string
	}{
		{
			name:       "sucesso: desconto percentual",
			priceCents: 4700,
			code:       "PROMO10",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "PROMO10").
					Return(cupomAtivo("PROMO10", model.DiscountPercent, 10), nil).Once()
			},
			wantFinal: 4230,
		},
		{
			name:       "sucesso: desconto fixo em centavos",
			priceCents: 4700,
			code:       "MENOS5",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "MENOS5").
					Return(cupomAtivo("MENOS5", model.DiscountFixed, 500), nil).Once()
			},
			wantFinal: 4200,
		},
		{
			name:       "sucesso: desconto maior que o preço trava em zero",
			priceCents: 300,
			code:       "MENOS5",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "MENOS5").
					Return(cupomAtivo("MENOS5", model.DiscountFixed, 500), nil).Once()
			},
			wantFinal: 0,
		},
		{
			name:       "sucesso: cupom com expiração futura ainda vale",
			priceCents: 1000,
			code:       "VALIDO",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				c := cupomAtivo("VALIDO", model.DiscountPercent, 50)
				c.ExpiresAt = &futuro
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "VALIDO").
					Return(c, nil).Once()
			},
			wantFinal: 500,
		},
		{
			name:       "erro: cupom inexistente",
			priceCents: 4700,
			code:       "NAOEXISTE",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "NAOEXISTE").
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr:  model.ErrInvalidInput,
			wantCode: "INVALID_COUPON",
		},
		{
			name:       "erro: cupom desativado",
			priceCents: 4700,
			code:       "DESATIVADO",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				c := cupomAtivo("DESATIVADO", model.DiscountPercent, 10)
				c.Active = false
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "DESATIVADO").
					Return(c, nil).Once()
			},
			wantErr:  model.ErrInvalidInput,
			wantCode: "INVALID_COUPON",
		},
		{
			name:       "erro: cupom expirado",
			priceCents: 4700,
			code:       "VENCIDO",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				c := cupomAtivo("VENCIDO", model.DiscountPercent, 10)
				c.ExpiresAt = &expirado
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "VENCIDO").
					Return(c, nil).Once()
			},
			wantErr:  model.ErrInvalidInput,
			wantCode: "EXPIRED_COUPON",
		},
		{
			name:       "erro: limite de usos atingido",
			priceCents: 4700,
			code:       "ESGOTADO",
			setupMock: func(couponRepo *mocks.CouponRepository) {
				c := cupomAtivo("ESGOTADO", model.DiscountPercent, 10)
				c.MaxRedemptions = 5
				c.Redemptions = 5
				couponRepo.On("FindByCode", ctx, mock.AnythingOfType("*gorm.DB"), "ESGOTADO").
					Return(c, nil).Once()
			},
			wantErr:  model.ErrInvalidInput,
			wantCode: "EXHAUSTED_COUPON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			couponRepo := new(mocks.CouponRepository)
			tt.setupMock(couponRepo)
			svc := NewCouponService(db, couponRepo)

			final, coupon, err := svc.ApplyCoupon(ctx, tt.priceCents, tt.code)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var appErr *model.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				assert.Nil(t, coupon)
			} else {
				require.NoError(t, err)
				require.NotNil(t, coupon)
				assert.Equal(t, tt.wantFinal, final)
			}
			couponRepo.AssertExpectations(t)
		})
	}
}

func Test_couponService_CreateCoupon(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBProgress()

	t.Run("sucesso: cupom criado ativo", func(t *testing.T) {
		couponRepo := new(mocks.CouponRepository)
		couponRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Coupon")).
			Return(nil).Once()
		svc := NewCouponService(db, couponRepo)

		coupon, err := svc.CreateCoupon(ctx, &model.PostCouponRequest{
			Code:          "LANCAMENTO",
			DiscountType:  model.DiscountPercent,
			DiscountValue: 20,
		})

		require.NoError(t, err)
		assert.Equal(t, "LANCAMENTO", coupon.Code)
		assert.True(t, coupon.Active)
		assert.NotEqual(t, uuid.Nil, coupon.CouponID)
		couponRepo.AssertExpectations(t)
	})

	t.Run("erro: percentual acima de 100", func(t *testing.T) {
		couponRepo := new(mocks.CouponRepository)
		svc := NewCouponService(db, couponRepo)

		_, err := svc.CreateCoupon(ctx, &model.PostCouponRequest{
			Code:          "ABSURDO",
			DiscountType:  model.DiscountPercent,
			DiscountValue: 150,
		})

		assert.ErrorIs(t, err, model.ErrInvalidInput)
		couponRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("erro: código duplicado", func(t *testing.T) {
		couponRepo := new(mocks.CouponRepository)
		couponRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Coupon")).
			Return(model.ErrConflict).Once()
		svc := NewCouponService(db, couponRepo)

		_, err := svc.CreateCoupon(ctx, &model.PostCouponRequest{
			Code:          "REPETIDO",
			DiscountType:  model.DiscountFixed,
			DiscountValue: 500,
		})

		var appErr *model.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DUPLICATE_CODE", appErr.Detail.Code)
		couponRepo.AssertExpectations(t)
	})
}
