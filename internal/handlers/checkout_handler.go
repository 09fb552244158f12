// internal/handlers/checkout_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"
)

// CheckoutHandler expõe o fluxo público de compra: abrir a sessão de
// pagamento e confirmar a volta do gateway. Não exige login.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  *slog.Logger
}

func NewCheckoutHandler(s service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{service: s, logger: logger}
}

// PostCheckout abre uma sessão de pagamento para o produto pedido.
func (h *CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCheckout"))

	var req model.CheckoutRequest
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

	resp, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Checkout session created", slog.String("session_id", resp.SessionID))
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// PostConfirm confirma o pagamento de uma sessão. Idempotente: o retorno do
// gateway pode bater aqui mais de uma vez.
func (h *CheckoutHandler) PostConfirm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostConfirm"))

	var req model.ConfirmPurchaseRequest
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

	purchase, err := h.service.ConfirmPurchase(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Purchase confirmed", slog.String("purchase_id", purchase.PurchaseID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, purchase, logger)
}
