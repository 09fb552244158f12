// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"log"
	"net/http"

	"proposito24h/internal/model"
	"proposito24h/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware é o atalho de autenticação usado nos testes de
// handler e em desenvolvimento local: extrai o UUID do cabeçalho X-User-ID e
// o coloca no contexto, sem validar token nem consultar o banco.
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			log.Println("[DEV AUTH] Failed: X-User-ID header missing")
			webutil.RespondWithJSON(w, http.StatusUnauthorized, model.APIErrorResponse{
				Error: model.ErrorDetail{Code: "UNAUTHORIZED", Message: "[DEV] Cabeçalho X-User-ID ausente."},
			}, nil)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			log.Printf("[DEV AUTH] Failed: Invalid X-User-ID format: %s", userIDStr)
			webutil.RespondWithJSON(w, http.StatusUnauthorized, model.APIErrorResponse{
				Error: model.ErrorDetail{Code: "UNAUTHORIZED", Message: "[DEV] Cabeçalho X-User-ID inválido."},
			}, nil)
			return
		}

		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		// em dev todo mundo é admin, o papel real vem do JWT em produção
		ctx = context.WithValue(ctx, model.UserRoleKey, model.RoleAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
