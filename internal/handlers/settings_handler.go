// internal/handlers/settings_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type SettingsHandler struct {
	service service.SettingsService
	logger  *slog.Logger
}

func NewSettingsHandler(s service.SettingsService, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{service: s, logger: logger}
}

// GetSettings devolve todas as chaves de uma categoria (admin).
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSettings"))

	category := chi.URLParam(r, "category")
	values, err := h.service.GetSettings(r.Context(), category)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"values":   values,
	}, logger)
}

// PutSettings grava as chaves de uma categoria de uma vez (admin).
func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutSettings"))

	category := chi.URLParam(r, "category")

	var req model.PutSettingsRequest
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

	values, err := h.service.PutSettings(r.Context(), category, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Settings updated", slog.String("category", category))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"values":   values,
	}, logger)
}
