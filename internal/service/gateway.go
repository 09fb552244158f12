// internal/service/gateway.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"proposito24h/internal/config"
	"proposito24h/internal/middleware"

	"github.com/google/uuid"
)

// CheckoutSessionParams é o que o gateway precisa para abrir uma sessão de
// pagamento hospedada.
type CheckoutSessionParams struct {
	ProductSlug   string
	ProductName   string
	AmountCents   int64
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession é o retorno do gateway: o id da sessão e a URL para onde o
// comprador deve ser redirecionado.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// PaymentGateway abstrai o provedor de pagamento. A implementação real fala
// com o endpoint que cria a sessão hospedada no Stripe; a de log simula tudo
// localmente para desenvolvimento.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
}

// --- LogGateway ---
// Gateway de desenvolvimento: gera uma sessão fictícia e loga os parâmetros.
// A URL devolvida aponta para a página de sucesso direto, sem pagamento real.
type LogGateway struct{}

func (g *LogGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	logger := middleware.GetLogger(ctx)
	sessionID := "sess_" + uuid.NewString()
	logger.Info("--- Creating Checkout Session (LogGateway) ---",
		"session_id", sessionID,
		"product_slug", params.ProductSlug,
		"amount_cents", params.AmountCents,
		"customer_email", params.CustomerEmail,
	)
	return &CheckoutSession{
		SessionID: sessionID,
		URL:       params.SuccessURL + "?session_id=" + sessionID,
	}, nil
}

// --- StripeGateway ---
// Fala com a função serverless que cria a sessão hospedada no Stripe. A chave
// secreta do Stripe vive lá, não aqui.
type StripeGateway struct {
	endpoint string
	client   *http.Client
}

type stripeSessionRequest struct {
	ProductSlug   string `json:"product_slug"`
	ProductName   string `json:"product_name"`
	AmountCents   int64  `json:"amount_cents"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	SuccessURL    string `json:"success_url"`
	CancelURL     string `json:"cancel_url"`
}

type stripeSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	logger := middleware.GetLogger(ctx)

	payload, err := json.Marshal(stripeSessionRequest{
		ProductSlug:   params.ProductSlug,
		ProductName:   params.ProductName,
		AmountCents:   params.AmountCents,
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		SuccessURL:    params.SuccessURL,
		CancelURL:     params.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("StripeGateway.CreateCheckoutSession: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("StripeGateway.CreateCheckoutSession: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("Failed to call checkout endpoint", "error", err, "endpoint", g.endpoint)
		return nil, fmt.Errorf("StripeGateway.CreateCheckoutSession: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Checkout endpoint returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("StripeGateway.CreateCheckoutSession: unexpected status %d", resp.StatusCode)
	}

	var out stripeSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("StripeGateway.CreateCheckoutSession: decode: %w", err)
	}
	if out.SessionID == "" || out.URL == "" {
		return nil, fmt.Errorf("StripeGateway.CreateCheckoutSession: incomplete response")
	}

	logger.Info("Checkout session created", "session_id", out.SessionID)
	return &CheckoutSession{SessionID: out.SessionID, URL: out.URL}, nil
}

// --- fábrica ---
func NewPaymentGateway(cfg *config.Config) PaymentGateway {
	logger := slog.Default()
	switch cfg.Gateway.Type {
	case "stripe":
		logger.Info("Initializing Stripe gateway...", "endpoint", cfg.Gateway.CheckoutEndpoint)
		if cfg.Gateway.CheckoutEndpoint == "" {
			logger.Error("Gateway type is 'stripe' but checkout_endpoint is missing in config.")
			panic("missing checkout endpoint for stripe gateway")
		}
		return &StripeGateway{
			endpoint: cfg.Gateway.CheckoutEndpoint,
			client:   &http.Client{Timeout: 15 * time.Second},
		}
	case "log":
		logger.Info("Initializing Log gateway...")
		return &LogGateway{}
	default:
		logger.Warn("Unknown gateway type, defaulting to LogGateway", "type", cfg.Gateway.Type)
		return &LogGateway{}
	}
}
