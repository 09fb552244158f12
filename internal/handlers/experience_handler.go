// internal/handlers/experience_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"
)

type ExperienceHandler struct {
	service service.ExperienceService
	logger  *slog.Logger
}

func NewExperienceHandler(s service.ExperienceService, logger *slog.Logger) *ExperienceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExperienceHandler{service: s, logger: logger}
}

// PostExperience cria uma experiência (admin).
func (h *ExperienceHandler) PostExperience(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostExperience"))

	var req model.PostExperienceRequest
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

	experience, err := h.service.CreateExperience(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Experience created", slog.String("experience_id", experience.ExperienceID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, experience, logger)
}

// GetExperiences lista as experiências (admin).
func (h *ExperienceHandler) GetExperiences(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetExperiences"))

	experiences, err := h.service.ListExperiences(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, experiences, logger)
}

// GetExperience devolve uma experiência pelo ID (admin).
func (h *ExperienceHandler) GetExperience(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetExperience"))

	experienceID, err := parseUUIDParam(r, "experience_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	experience, err := h.service.GetExperience(r.Context(), experienceID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, experience, logger)
}

// PatchExperience atualiza parcialmente uma experiência (admin).
func (h *ExperienceHandler) PatchExperience(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchExperience"))

	experienceID, err := parseUUIDParam(r, "experience_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.PatchExperienceRequest
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

	experience, err := h.service.UpdateExperience(r.Context(), experienceID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Experience updated", slog.String("experience_id", experienceID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, experience, logger)
}

// DeleteExperience remove uma experiência (admin, exclusão lógica).
func (h *ExperienceHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteExperience"))

	experienceID, err := parseUUIDParam(r, "experience_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteExperience(r.Context(), experienceID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Experience deleted", slog.String("experience_id", experienceID.String()))
	w.WriteHeader(http.StatusNoContent)
}
