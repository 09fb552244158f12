// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"proposito24h/internal/config"
	"proposito24h/internal/handlers"
	"proposito24h/internal/middleware"
	"proposito24h/internal/repository"
	"proposito24h/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// logger temporário enquanto a configuração não foi lida
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("../configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === logger definitivo, conforme a configuração ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// saída colorida e legível em desenvolvimento
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// conexão com o banco (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// injeção de dependências
	userRepo := repository.NewGormUserRepository()
	productRepo := repository.NewGormProductRepository()
	experienceRepo := repository.NewGormExperienceRepository()
	purchaseRepo := repository.NewGormPurchaseRepository()
	progressRepo := repository.NewGormProgressRepository()
	couponRepo := repository.NewGormCouponRepository()
	funnelRepo := repository.NewGormFunnelRepository()
	settingsRepo := repository.NewGormSettingsRepository()

	mailer := service.NewMailer(&config.Cfg)
	gateway := service.NewPaymentGateway(&config.Cfg)

	authService := service.NewAuthService(db, userRepo, mailer, &config.Cfg)
	couponService := service.NewCouponService(db, couponRepo)
	checkoutService := service.NewCheckoutService(db, productRepo, purchaseRepo, userRepo, couponRepo, couponService, gateway, mailer, &config.Cfg)
	progressService := service.NewProgressService(db, purchaseRepo, progressRepo, userRepo)
	productService := service.NewProductService(db, productRepo, experienceRepo)
	experienceService := service.NewExperienceService(db, experienceRepo)
	funnelService := service.NewFunnelService(db, funnelRepo, productRepo)
	dashboardService := service.NewDashboardService(db, purchaseRepo)
	settingsService := service.NewSettingsService(db, settingsRepo)

	authHandler := handlers.NewAuthHandler(authService, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	appHandler := handlers.NewAppHandler(progressService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	experienceHandler := handlers.NewExperienceHandler(experienceService, logger)
	couponHandler := handlers.NewCouponHandler(couponService, logger)
	funnelHandler := handlers.NewFunnelHandler(funnelService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)

	// router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- rotas públicas (landing pages e checkout) ---
		r.Post("/auth/register", authHandler.PostRegister)
		r.Post("/auth/login", authHandler.PostLogin)
		r.Get("/products/{slug}", productHandler.GetProductBySlug)
		r.Get("/funnels/{slug}", funnelHandler.GetFunnelBySlug)
		r.Post("/checkout", checkoutHandler.PostCheckout)
		r.Post("/checkout/confirm", checkoutHandler.PostConfirm)

		// --- rotas do membro (exigem token) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Get("/auth/me", authHandler.GetMe)
			r.Route("/app", func(r chi.Router) {
				r.Get("/today", appHandler.GetToday)
				r.Get("/growth", appHandler.GetGrowth)
				r.Get("/profile", appHandler.GetProfile)
				r.Post("/complete-day", appHandler.PostCompleteDay)
			})
		})

		// --- rotas do admin (token + papel admin) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))
			r.Use(middleware.AdminOnlyMiddleware)

			r.Route("/admin", func(r chi.Router) {
				r.Route("/experiences", func(r chi.Router) {
					r.Post("/", experienceHandler.PostExperience)
					r.Get("/", experienceHandler.GetExperiences)
					r.Get("/{experience_id}", experienceHandler.GetExperience)
					r.Patch("/{experience_id}", experienceHandler.PatchExperience)
					r.Delete("/{experience_id}", experienceHandler.DeleteExperience)
				})
				r.Route("/products", func(r chi.Router) {
					r.Post("/", productHandler.PostProduct)
					r.Get("/", productHandler.GetProducts)
					r.Get("/{product_id}", productHandler.GetProduct)
					r.Patch("/{product_id}", productHandler.PatchProduct)
					r.Delete("/{product_id}", productHandler.DeleteProduct)
				})
				r.Route("/coupons", func(r chi.Router) {
					r.Post("/", couponHandler.PostCoupon)
					r.Get("/", couponHandler.GetCoupons)
					r.Delete("/{coupon_id}", couponHandler.DeleteCoupon)
				})
				r.Route("/funnels", func(r chi.Router) {
					r.Post("/", funnelHandler.PostFunnel)
					r.Get("/", funnelHandler.GetFunnels)
					r.Put("/{funnel_id}", funnelHandler.PutFunnel)
					r.Delete("/{funnel_id}", funnelHandler.DeleteFunnel)
				})
				r.Get("/dashboard/financial", dashboardHandler.GetFinancialSummary)
				r.Route("/settings", func(r chi.Router) {
					r.Get("/{category}", settingsHandler.GetSettings)
					r.Put("/{category}", settingsHandler.PutSettings)
				})
			})
		})
	})

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// desligamento gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
