// internal/handlers/validate.go
package handlers

import (
	"errors"
	"log/slog"

	"proposito24h/internal/model"
	"proposito24h/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// validateRequest roda a validação do DTO e devolve um AppError pronto para o
// cliente, com a primeira mensagem traduzida para português.
func validateRequest(logger *slog.Logger, req interface{}) error {
	err := webutil.Validator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))

		// a primeira falha representa o erro para o cliente
		firstErr := validationErrors[0]
		return model.NewAppError(
			"VALIDATION_ERROR",
			firstErr.Translate(webutil.Trans),
			firstErr.Field(),
			model.ErrInvalidInput,
		)
	}

	logger.Error("Unexpected error during validation", slog.Any("error", err))
	return err
}
