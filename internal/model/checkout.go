// internal/model/checkout.go
package model

// CheckoutRequest é o corpo do início de checkout vindo da landing page.
type CheckoutRequest struct {
	ProductSlug string `json:"product_slug" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	CouponCode  string `json:"coupon_code,omitempty"`
}

// CheckoutResponse devolve a URL hospedada do gateway de pagamento.
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	AmountCents int64  `json:"amount_cents"`
}

// ConfirmPurchaseRequest é o callback de sucesso do gateway.
type ConfirmPurchaseRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}
