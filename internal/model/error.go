// internal/model/error.go
package model

import "errors"

// Erros sentinela da aplicação
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternalServer     = errors.New("internal server error")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource conflict") // para duplicidade
	ErrNoActiveExperience = errors.New("no active experience for user")
	ErrContentMissing     = errors.New("experience content missing or empty")
)

// ErrorDetail é o corpo de erro devolvido ao cliente.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse é o envelope de erro da API.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError carrega o código/mensagem voltados ao cliente e embrulha o erro
// sentinela usado para decidir o status HTTP.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
