package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/autoparts-storefront/config"
	"github.com/yourusername/autoparts-storefront/internal/currency"
	httpdelivery "github.com/yourusername/autoparts-storefront/internal/delivery/http"
	"github.com/yourusername/autoparts-storefront/internal/delivery/telegram"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/infrastructure/gemini"
	"github.com/yourusername/autoparts-storefront/internal/infrastructure/parser"
	"github.com/yourusername/autoparts-storefront/internal/infrastructure/storage"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"github.com/yourusername/autoparts-storefront/internal/metrics"
	"github.com/yourusername/autoparts-storefront/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config yuklashda xatolik: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Logger yaratishda xatolik: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seed katalog
	seed := storage.DefaultCatalog()
	if cfg.SeedFile != "" {
		seed, err = storage.LoadCatalogFile(cfg.SeedFile)
		if err != nil {
			zl.Fatal("failed to load seed catalog", zap.String("file", cfg.SeedFile), zap.Error(err))
		}
	}

	prices, err := currency.New(cfg.Currencies)
	if err != nil {
		zl.Fatal("invalid currency table", zap.Error(err))
	}

	// Repositories
	catalogRepo := storage.NewMemoryCatalogRepository(seed)
	sessionRepo := storage.NewMemorySessionRepository(
		entity.CurrencyCode(cfg.DefaultCurrency),
		storage.WithMaxSessions(cfg.MaxSessions),
	)
	chatRepo := storage.NewMemoryChatRepository(cfg.MaxContextSize)
	auditRepo := storage.NewMemoryAuditRepository()

	m := metrics.New()

	// Advisor ixtiyoriy: kalit bo'lmasa o'chiq
	var aiRepo repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.Options{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}, zl)
		if err != nil {
			zl.Fatal("failed to create gemini client", zap.Error(err))
		}
		defer client.Close()
		aiRepo = client
	} else {
		zl.Info("GEMINI_API_KEY is not set, parts advisor disabled")
	}

	// Use cases
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)
	cartUC := usecase.NewCartUseCase(catalogRepo, sessionRepo, cfg.TaxRate, m, zl)
	authUC := usecase.NewAuthUseCase(sessionRepo, cfg.AdminEmail, zl)
	navUC := usecase.NewNavigationUseCase(sessionRepo, catalogUC, prices, cfg.TaxRate)
	adminUC := usecase.NewAdminUseCase(usecase.AdminDeps{
		Catalog:          catalogRepo,
		Audit:            auditRepo,
		Chat:             chatRepo,
		Spreadsheet:      parser.NewExcelParser(zl),
		Prices:           prices,
		Seed:             seed,
		PlaceholderImage: cfg.PlaceholderImageURL,
		Metrics:          m,
		Logger:           zl,
	})
	advisorUC := usecase.NewAdvisorUseCase(aiRepo, chatRepo, catalogRepo, sessionRepo, prices, zl)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpdelivery.NewHandler(httpdelivery.Deps{
		Catalog:        catalogUC,
		Cart:           cartUC,
		Auth:           authUC,
		Navigation:     navUC,
		Admin:          adminUC,
		Advisor:        advisorUC,
		Prices:         prices,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         zl,
	})
	router := httpdelivery.NewRouter(handler, httpdelivery.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, m, zl)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("storefront HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// Telegram bot ixtiyoriy
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBotHandler(cfg.TelegramToken, telegram.Deps{
			Catalog:        catalogUC,
			Cart:           cartUC,
			Auth:           authUC,
			Navigation:     navUC,
			Admin:          adminUC,
			Advisor:        advisorUC,
			Prices:         prices,
			MaxUploadBytes: cfg.MaxUploadBytes,
			Logger:         zl,
		})
		if err != nil {
			zl.Fatal("failed to create telegram bot", zap.Error(err))
		}
		go func() {
			if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("telegram bot stopped", zap.Error(err))
			}
		}()
	} else {
		zl.Info("TELEGRAM_BOT_TOKEN is not set, bot disabled")
	}

	<-ctx.Done()
	zl.Info("shutting down storefront")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("storefront stopped")
}
