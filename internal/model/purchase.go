// internal/model/purchase.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Status de uma compra. Só "completed" concede acesso ao produto.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

// Purchase registra uma tentativa (ou conclusão) de pagamento de um produto.
// A linha nasce "pending" no checkout e vira "completed" na confirmação do
// gateway; o motor de progresso só enxerga as completadas.
type Purchase struct {
	PurchaseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"purchase_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	SessionID   string    `gorm:"uniqueIndex;not null" json:"-"` // id da sessão de checkout no gateway
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	CouponCode  string    `json:"coupon_code,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relação (para Preload)
	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}
