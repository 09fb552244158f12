// internal/handlers/funnel_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type FunnelHandler struct {
	service service.FunnelService
	logger  *slog.Logger
}

func NewFunnelHandler(s service.FunnelService, logger *slog.Logger) *FunnelHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FunnelHandler{service: s, logger: logger}
}

// PostFunnel cria um funil (admin).
func (h *FunnelHandler) PostFunnel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostFunnel"))

	var req model.PutFunnelRequest
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

	funnel, err := h.service.CreateFunnel(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Funnel created", slog.String("funnel_id", funnel.FunnelID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, funnel, logger)
}

// GetFunnels lista os funis (admin).
func (h *FunnelHandler) GetFunnels(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFunnels"))

	funnels, err := h.service.ListFunnels(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, funnels, logger)
}

// GetFunnelBySlug devolve um funil pelo slug. Rota pública: a página de venda
// usa para saber a ordem dos passos.
func (h *FunnelHandler) GetFunnelBySlug(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFunnelBySlug"))

	slug := chi.URLParam(r, "slug")
	funnel, err := h.service.GetFunnelBySlug(r.Context(), slug)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if !funnel.Active {
		webutil.HandleError(w, logger, model.ErrNotFound)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, funnel, logger)
}

// PutFunnel substitui um funil inteiro (admin).
func (h *FunnelHandler) PutFunnel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutFunnel"))

	funnelID, err := parseUUIDParam(r, "funnel_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.PutFunnelRequest
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

	funnel, err := h.service.ReplaceFunnel(r.Context(), funnelID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Funnel replaced", slog.String("funnel_id", funnelID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, funnel, logger)
}

// DeleteFunnel remove um funil (admin).
func (h *FunnelHandler) DeleteFunnel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteFunnel"))

	funnelID, err := parseUUIDParam(r, "funnel_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteFunnel(r.Context(), funnelID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Funnel deleted", slog.String("funnel_id", funnelID.String()))
	w.WriteHeader(http.StatusNoContent)
}
