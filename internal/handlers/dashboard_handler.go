// internal/handlers/dashboard_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"proposito24h/internal/model"
	"proposito24h/internal/service"
	"proposito24h/internal/webutil"
)

type DashboardHandler struct {
	service service.DashboardService
	logger  *slog.Logger
}

func NewDashboardHandler(s service.DashboardService, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{service: s, logger: logger}
}

// GetFinancialSummary devolve o relatório financeiro do período pedido via
// query string (?from=2026-08-01&to=2026-09-01). Sem parâmetros, o padrão é
// os últimos 30 dias.
func (h *DashboardHandler) GetFinancialSummary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFinancialSummary"))

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			appErr := model.NewAppError("INVALID_DATE", "Data inválida, use o formato AAAA-MM-DD.", "from", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			appErr := model.NewAppError("INVALID_DATE", "Data inválida, use o formato AAAA-MM-DD.", "to", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		// intervalo meio-aberto: o dia "to" entra inteiro
		to = parsed.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		appErr := model.NewAppError("INVALID_RANGE", "O início do período deve vir antes do fim.", "from", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	summary, err := h.service.GetFinancialSummary(r.Context(), from, to)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}
