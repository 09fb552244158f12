// internal/service/checkout_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"proposito24h/internal/config"
	"proposito24h/internal/middleware"
	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CheckoutService conduz o fluxo de venda: abre a sessão no gateway com uma
// compra pendente e, na volta do pagamento, marca a compra como completada e
// envia o recibo. Só compras completadas dão acesso ao produto.
type CheckoutService interface {
	CreateSession(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
	ConfirmPurchase(ctx context.Context, req *model.ConfirmPurchaseRequest) (*model.Purchase, error)
}

type checkoutService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	userRepo     repository.UserRepository
	couponRepo   repository.CouponRepository
	couponSvc    CouponService
	gateway      PaymentGateway
	mailer       Mailer
	cfg          *config.Config
}

func NewCheckoutService(db *gorm.DB, productRepo repository.ProductRepository, purchaseRepo repository.PurchaseRepository, userRepo repository.UserRepository, couponRepo repository.CouponRepository, couponSvc CouponService, gateway PaymentGateway, mailer Mailer, cfg *config.Config) CheckoutService {
	return &checkoutService{
		db:           db,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		couponRepo:   couponRepo,
		couponSvc:    couponSvc,
		gateway:      gateway,
		mailer:       mailer,
		cfg:          cfg,
	}
}

// CreateSession abre uma sessão de checkout para o comprador. O checkout é
// público (acontece na landing page, sem login): a conta do membro é
// localizada pelo email ou criada na hora, com senha aleatória até o primeiro
// acesso.
func (s *checkoutService) CreateSession(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	logger := middleware.GetLogger(ctx)

	product, err := s.productRepo.FindBySlug(ctx, s.db, req.ProductSlug)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PRODUCT_NOT_FOUND", "Produto não encontrado.", "product_slug", model.ErrNotFound)
		}
		logger.Error("Failed to find product for checkout", "error", err, "slug", req.ProductSlug)
		return nil, model.ErrInternalServer
	}
	if !product.Active {
		return nil, model.NewAppError("PRODUCT_NOT_FOUND", "Produto não encontrado.", "product_slug", model.ErrNotFound)
	}

	amount := product.PriceCents
	if req.CouponCode != "" {
		amount, _, err = s.couponSvc.ApplyCoupon(ctx, product.PriceCents, req.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		ProductSlug:   product.Slug,
		ProductName:   product.Name,
		AmountCents:   amount,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		SuccessURL:    s.cfg.App.BaseURL + "/obrigado",
		CancelURL:     s.cfg.App.BaseURL + "/" + product.Slug,
	})
	if err != nil {
		logger.Error("Failed to create gateway session", "error", err)
		return nil, model.NewAppError("GATEWAY_ERROR", "Não foi possível iniciar o pagamento. Tente novamente.", "", model.ErrInternalServer)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.findOrCreateBuyer(ctx, tx, req.Name, req.Email)
		if err != nil {
			return err
		}

		purchase := &model.Purchase{
			PurchaseID:  uuid.New(),
			UserID:      user.UserID,
			ProductID:   product.ProductID,
			SessionID:   session.SessionID,
			AmountCents: amount,
			CouponCode:  req.CouponCode,
			Status:      model.PurchaseStatusPending,
		}
		return s.purchaseRepo.Create(ctx, tx, purchase)
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for CreateSession", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Checkout session created",
		"session_id", session.SessionID,
		"product_slug", product.Slug,
		"amount_cents", amount,
	)
	return &model.CheckoutResponse{
		SessionID:   session.SessionID,
		CheckoutURL: session.URL,
		AmountCents: amount,
	}, nil
}

// ConfirmPurchase marca a compra da sessão como completada. Chamar de novo com
// a mesma sessão devolve a compra já completada sem efeito colateral, então o
// retorno do gateway pode ser re-entregue à vontade.
func (s *checkoutService) ConfirmPurchase(ctx context.Context, req *model.ConfirmPurchaseRequest) (*model.Purchase, error) {
	logger := middleware.GetLogger(ctx)

	purchase, err := s.purchaseRepo.FindBySessionID(ctx, s.db, req.SessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "Sessão de pagamento não encontrada.", "session_id", model.ErrNotFound)
		}
		logger.Error("Failed to find purchase by session", "error", err)
		return nil, model.ErrInternalServer
	}

	if purchase.Status == model.PurchaseStatusCompleted {
		// confirmação repetida: nada a fazer
		return purchase, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.UpdateStatus(ctx, tx, purchase.PurchaseID, model.PurchaseStatusCompleted); err != nil {
			return err
		}
		if purchase.CouponCode != "" {
			coupon, err := s.couponRepo.FindByCode(ctx, tx, purchase.CouponCode)
			if err == nil {
				if err := s.couponRepo.IncrementRedemptions(ctx, tx, coupon.CouponID); err != nil {
					return err
				}
			} else if !errors.Is(err, model.ErrNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Transaction failed for ConfirmPurchase", "error", err)
		return nil, model.ErrInternalServer
	}
	purchase.Status = model.PurchaseStatusCompleted

	// recibo fora da transação: falha de email não desfaz a venda
	if err := s.sendReceipt(ctx, purchase); err != nil {
		logger.Warn("Failed to send purchase receipt", "error", err, "purchase_id", purchase.PurchaseID)
	}

	logger.Info("Purchase confirmed", "purchase_id", purchase.PurchaseID, "session_id", req.SessionID)
	return purchase, nil
}

func (s *checkoutService) findOrCreateBuyer(ctx context.Context, tx *gorm.DB, name, email string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByEmail(ctx, tx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to look up buyer by email", "error", err)
		return nil, model.ErrInternalServer
	}

	// primeiro contato do comprador: a conta nasce aqui, com senha aleatória
	// que será trocada no primeiro acesso
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		logger.Error("Failed to generate random password", "error", err)
		return nil, model.ErrInternalServer
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(randomBytes)), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash generated password", "error", err)
		return nil, model.ErrInternalServer
	}

	user = &model.User{
		UserID:       uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleMember,
	}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		logger.Error("Failed to create buyer account", "error", err)
		return nil, model.ErrInternalServer
	}
	logger.Info("Buyer account created at checkout", "user_id", user.UserID, "email", email)
	return user, nil
}

func (s *checkoutService) sendReceipt(ctx context.Context, purchase *model.Purchase) error {
	user, err := s.userRepo.FindByID(ctx, s.db, purchase.UserID)
	if err != nil {
		return err
	}

	productName := "sua experiência"
	if purchase.Product != nil {
		productName = purchase.Product.Name
	}
	subject := "Recebemos seu pagamento - Propósito24h"
	body := fmt.Sprintf(
		"Olá, %s!\n\nSeu pagamento de R$ %.2f por \"%s\" foi confirmado.\nAcesse o app e comece sua jornada hoje mesmo: %s\n\nCom carinho,\nEquipe Propósito24h",
		user.Name,
		float64(purchase.AmountCents)/100,
		productName,
		s.cfg.App.BaseURL,
	)
	return s.mailer.Send(ctx, user.Email, subject, body)
}
