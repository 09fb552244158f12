// internal/model/coupon.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Coupon é um desconto aplicável no checkout. O valor é percentual (0-100)
// ou fixo em centavos, conforme DiscountType.
type Coupon struct {
	CouponID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"coupon_id"`
	Code           string         `gorm:"unique;not null" json:"code"`
	DiscountType   string         `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue  int64          `gorm:"not null" json:"discount_value"`
	MaxRedemptions int            `gorm:"default:0" json:"max_redemptions"` // 0 = ilimitado
	Redemptions    int            `gorm:"default:0" json:"redemptions"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// DTO de criação de cupom (admin)
type PostCouponRequest struct {
	Code           string     `json:"code" validate:"required,min=3,max=50"`
	DiscountType   string     `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue  int64      `json:"discount_value" validate:"required,gt=0"`
	MaxRedemptions int        `json:"max_redemptions" validate:"gte=0"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}
