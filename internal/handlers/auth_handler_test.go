// internal/handlers/auth_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"proposito24h/internal/handlers"
	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(mockSvc *mocks.MockAuthService) *chi.Mux {
	handler := handlers.NewAuthHandler(mockSvc, nil)
	router := chi.NewRouter()
	router.Post("/api/v1/auth/register", handler.PostRegister)
	router.Post("/api/v1/auth/login", handler.PostLogin)
	router.Group(func(r chi.Router) {
		r.Use(middleware.DevUserContextMiddleware)
		r.Get("/api/v1/auth/me", handler.GetMe)
	})
	return router
}

func TestAuthHandler_PostRegister(t *testing.T) {
	validReq := model.RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "senha-segura",
	}
	registered := &model.User{
		UserID:    uuid.New(),
		Name:      validReq.Name,
		Email:     validReq.Email,
		Role:      model.RoleMember,
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mockSvc *mocks.MockAuthService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "sucesso: 201 com o usuário criado",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockAuthService) {
				mockSvc.On("Register", mock.Anything, &validReq).Return(registered, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "erro: corpo não é JSON",
			body:           `{não é json`,
			setupMock:      func(mockSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:           "erro: email inválido barra na validação",
			body:           model.RegisterRequest{Name: "Maria", Email: "nao-e-email", Password: "senha-segura"},
			setupMock:      func(mockSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "erro: senha curta barra na validação",
			body:           model.RegisterRequest{Name: "Maria", Email: "maria@example.com", Password: "curta"},
			setupMock:      func(mockSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "erro: email duplicado vira 409",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockAuthService) {
				mockSvc.On("Register", mock.Anything, &validReq).
					Return(nil, model.NewAppError("DUPLICATE_EMAIL", "Este email já está em uso.", "email", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "DUPLICATE_EMAIL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := mocks.NewMockAuthService(t)
			tc.setupMock(mockSvc)
			router := newAuthRouter(mockSvc)

			req := createRequest(t, "POST", "/api/v1/auth/register", tc.body, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusCreated {
				var resp model.UserResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, registered.UserID, resp.UserID)
				assert.Equal(t, model.RoleMember, resp.Role)
			} else if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
			}
		})
	}
}

func TestAuthHandler_PostLogin(t *testing.T) {
	validReq := model.LoginRequest{Email: "maria@example.com", Password: "senha-segura"}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mockSvc *mocks.MockAuthService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "sucesso: devolve o token de acesso",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockAuthService) {
				mockSvc.On("Login", mock.Anything, &validReq).
					Return(&model.LoginResponse{AccessToken: "token-assinado"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "erro: credenciais inválidas viram 400",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockAuthService) {
				mockSvc.On("Login", mock.Anything, &validReq).
					Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "Email ou senha incorretos.", "", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "AUTHENTICATION_FAILED",
		},
		{
			name:           "erro: sem senha barra na validação",
			body:           model.LoginRequest{Email: "maria@example.com"},
			setupMock:      func(mockSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := mocks.NewMockAuthService(t)
			tc.setupMock(mockSvc)
			router := newAuthRouter(mockSvc)

			req := createRequest(t, "POST", "/api/v1/auth/login", tc.body, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp model.LoginResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "token-assinado", resp.AccessToken)
			} else if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
			}
		})
	}
}

func TestAuthHandler_GetMe(t *testing.T) {
	userID := uuid.New()

	t.Run("sucesso: devolve o usuário autenticado", func(t *testing.T) {
		mockSvc := mocks.NewMockAuthService(t)
		mockSvc.On("GetUser", mock.Anything, userID).Return(&model.User{
			UserID: userID,
			Name:   "Maria",
			Email:  "maria@example.com",
			Role:   model.RoleMember,
		}, nil).Once()
		router := newAuthRouter(mockSvc)

		req := createRequest(t, "GET", "/api/v1/auth/me", nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp model.UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "maria@example.com", resp.Email)
	})

	t.Run("erro: sem autenticação", func(t *testing.T) {
		mockSvc := mocks.NewMockAuthService(t)
		router := newAuthRouter(mockSvc)

		req := createRequest(t, "GET", "/api/v1/auth/me", nil, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		verifyErrorResponse(t, rr.Body.Bytes(), "UNAUTHORIZED")
	})
}
