// internal/handlers/app_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"

	"github.com/google/uuid"
)

// AppHandler serve as três telas do app do membro (Hoje, Crescimento, Perfil)
// e a escrita de conclusão de dia. Todas as rotas exigem autenticação.
type AppHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewAppHandler(s service.ProgressService, logger *slog.Logger) *AppHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AppHandler{service: s, logger: logger}
}

func (h *AppHandler) userID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Credenciais não encontradas.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return userID, true
}

// GetToday devolve o conteúdo do dia corrente com as estatísticas derivadas.
func (h *AppHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetToday"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.service.GetToday(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetGrowth devolve as estatísticas, semanas e conquistas.
func (h *AppHandler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetGrowth"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.service.GetGrowth(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetProfile devolve o perfil do membro com o resumo da jornada.
func (h *AppHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfile"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// PostCompleteDay marca o dia como concluído e devolve as estatísticas
// recalculadas.
func (h *AppHandler) PostCompleteDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCompleteDay"))

	userID, ok := h.userID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CompleteDayRequest
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

	stats, err := h.service.MarkDayComplete(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Day completed", slog.Int("day_number", req.DayNumber))
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
