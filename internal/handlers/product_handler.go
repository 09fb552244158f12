// internal/handlers/product_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
	logger  *slog.Logger
}

func NewProductHandler(s service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{service: s, logger: logger}
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_ID", "Identificador inválido na URL.", name, model.ErrInvalidInput)
	}
	return id, nil
}

// PostProduct cria um produto (admin).
func (h *ProductHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostProduct"))

	var req model.PostProductRequest
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

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, product, logger)
}

// GetProducts lista os produtos (admin).
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProducts"))

	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, products, logger)
}

// GetProduct devolve um produto pelo ID (admin).
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProduct"))

	productID, err := parseUUIDParam(r, "product_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, product, logger)
}

// GetProductBySlug devolve um produto pelo slug. Rota pública: as landing
// pages usam para montar a oferta.
func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProductBySlug"))

	slug := chi.URLParam(r, "slug")
	product, err := h.service.GetProductBySlug(r.Context(), slug)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if !product.Active {
		webutil.HandleError(w, logger, model.ErrNotFound)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, product, logger)
}

// PatchProduct atualiza parcialmente um produto (admin).
func (h *ProductHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchProduct"))

	productID, err := parseUUIDParam(r, "product_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.PatchProductRequest
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

	product, err := h.service.UpdateProduct(r.Context(), productID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Product updated", slog.String("product_id", productID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, product, logger)
}

// DeleteProduct remove um produto (admin, exclusão lógica).
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteProduct"))

	productID, err := parseUUIDParam(r, "product_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Product deleted", slog.String("product_id", productID.String()))
	w.WriteHeader(http.StatusNoContent)
}
