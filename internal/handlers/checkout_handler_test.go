// internal/handlers/checkout_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"proposito24h/internal/handlers"
	"proposito24h/internal/model"
	"proposito24h/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCheckoutRouter(mockSvc *mocks.MockCheckoutService) *chi.Mux {
	handler := handlers.NewCheckoutHandler(mockSvc, nil)
	router := chi.NewRouter()
	router.Post("/api/v1/checkout", handler.PostCheckout)
	router.Post("/api/v1/checkout/confirm", handler.PostConfirm)
	return router
}

func TestCheckoutHandler_PostCheckout(t *testing.T) {
	validReq := model.CheckoutRequest{
		ProductSlug: "desafio-21-dias",
		Name:        "Maria",
		Email:       "maria@example.com",
	}
	created := &model.CheckoutResponse{
		SessionID:   "sess_abc123",
		CheckoutURL: "http://localhost:5173/obrigado?session_id=sess_abc123",
		AmountCents: 4700,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mockSvc *mocks.MockCheckoutService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "sucesso: 201 com a URL de pagamento",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockCheckoutService) {
				mockSvc.On("CreateSession", mock.Anything, &validReq).Return(created, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "erro: sem email barra na validação",
			body:           model.CheckoutRequest{ProductSlug: "desafio-21-dias", Name: "Maria"},
			setupMock:      func(mockSvc *mocks.MockCheckoutService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "erro: produto desconhecido vira 404",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockCheckoutService) {
				mockSvc.On("CreateSession", mock.Anything, &validReq).
					Return(nil, model.NewAppError("PRODUCT_NOT_FOUND", "Produto não encontrado.", "product_slug", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "PRODUCT_NOT_FOUND",
		},
		{
			name: "erro: cupom inválido vira 400",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockCheckoutService) {
				mockSvc.On("CreateSession", mock.Anything, &validReq).
					Return(nil, model.NewAppError("INVALID_COUPON", "Cupom inválido.", "coupon_code", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_COUPON",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := mocks.NewMockCheckoutService(t)
			tc.setupMock(mockSvc)
			router := newCheckoutRouter(mockSvc)

			req := createRequest(t, "POST", "/api/v1/checkout", tc.body, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusCreated {
				var resp model.CheckoutResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, created.SessionID, resp.SessionID)
				assert.Equal(t, created.CheckoutURL, resp.CheckoutURL)
			} else if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
			}
		})
	}
}

func TestCheckoutHandler_PostConfirm(t *testing.T) {
	validReq := model.ConfirmPurchaseRequest{SessionID: "sess_abc123"}
	confirmed := &model.Purchase{
		PurchaseID:  uuid.New(),
		UserID:      uuid.New(),
		ProductID:   uuid.New(),
		AmountCents: 4700,
		Status:      model.PurchaseStatusCompleted,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mockSvc *mocks.MockCheckoutService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "sucesso: compra confirmada",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockCheckoutService) {
				mockSvc.On("ConfirmPurchase", mock.Anything, &validReq).Return(confirmed, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "erro: sem session_id barra na validação",
			body:           model.ConfirmPurchaseRequest{},
			setupMock:      func(mockSvc *mocks.MockCheckoutService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "erro: sessão desconhecida vira 404",
			body: validReq,
			setupMock: func(mockSvc *mocks.MockCheckoutService) {
				mockSvc.On("ConfirmPurchase", mock.Anything, &validReq).
					Return(nil, model.NewAppError("SESSION_NOT_FOUND", "Sessão de pagamento não encontrada.", "session_id", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "SESSION_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := mocks.NewMockCheckoutService(t)
			tc.setupMock(mockSvc)
			router := newCheckoutRouter(mockSvc)

			req := createRequest(t, "POST", "/api/v1/checkout/confirm", tc.body, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp model.Purchase
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, confirmed.PurchaseID, resp.PurchaseID)
				assert.Equal(t, model.PurchaseStatusCompleted, resp.Status)
			} else if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
			}
		})
	}
}
