// internal/handlers/coupon_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"
)

type CouponHandler struct {
	service service.CouponService
	logger  *slog.Logger
}

func NewCouponHandler(s service.CouponService, logger *slog.Logger) *CouponHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CouponHandler{service: s, logger: logger}
}

// PostCoupon cria um cupom (admin).
func (h *CouponHandler) PostCoupon(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCoupon"))

	var req model.PostCouponRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Corpo da requisição em formato inválido.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := validateRequest(logger, req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	coupon, err := h.service.CreateCoupon(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Coupon created", slog.String("code", coupon.Code))
	webutil.RespondWithJSON(w, http.StatusCreated, coupon, logger)
}

// GetCoupons lista os cupons (admin).
func (h *CouponHandler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCoupons"))

	coupons, err := h.service.ListCoupons(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, coupons, logger)
}

// DeleteCoupon remove um cupom (admin).
func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCoupon"))

	couponID, err := parseUUIDParam(r, "coupon_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteCoupon(r.Context(), couponID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Coupon deleted", slog.String("coupon_id", couponID.String()))
	w.WriteHeader(http.StatusNoContent)
}
