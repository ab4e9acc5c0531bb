package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ocenagor/admin-backend/internal/config"
	"github.com/ocenagor/admin-backend/internal/db"
	httpHandlers "github.com/ocenagor/admin-backend/internal/http/handlers"
	httpRouter "github.com/ocenagor/admin-backend/internal/http/router"
	"github.com/ocenagor/admin-backend/internal/logger"
	"github.com/ocenagor/admin-backend/internal/repository"
	"github.com/ocenagor/admin-backend/internal/service"
	"github.com/ocenagor/admin-backend/internal/storage"
	"github.com/ocenagor/admin-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	logoStorage, err := storage.NewLogoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	companyRepo := repository.NewCompanyRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	subscriptionRepo := repository.NewSubscriptionRepository(dbConn)
	couponRepo := repository.NewCouponRepository(dbConn)
	communicationRepo := repository.NewCommunicationRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	reviewService := service.NewReviewService(reviewRepo, companyRepo, cfg.StatsMaxRecords)
	companyService := service.NewCompanyService(companyRepo, logoStorage, reviewRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, couponRepo)
	communicationService := service.NewCommunicationService(communicationRepo)
	exportService := service.NewExportService(reviewService)
	cacheService := service.NewCacheService()
	dashboardService := service.NewDashboardService(reviewService, subscriptionRepo, cacheService, cfg.DashboardCacheTTL)
	seedService := service.NewSeedService(userRepo, companyRepo, reviewRepo)

	// Вебсокеты: события о новых отзывах летят в админ-панель.
	hub := ws.NewHub()
	go hub.Run()
	reviewService.SetEventSink(hub)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService)
	publicReviewHandler := httpHandlers.NewPublicReviewHandler(reviewService, dashboardService)
	statsHandler := httpHandlers.NewStatsHandler(dashboardService)
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService)
	companyHandler := httpHandlers.NewCompanyHandler(companyService)
	subscriptionHandler := httpHandlers.NewSubscriptionHandler(subscriptionService)
	couponHandler := httpHandlers.NewCouponHandler(subscriptionService)
	communicationHandler := httpHandlers.NewCommunicationHandler(communicationService)
	exportHandler := httpHandlers.NewExportHandler(exportService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager, userRepo)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		reviewHandler,
		publicReviewHandler,
		statsHandler,
		dashboardHandler,
		companyHandler,
		subscriptionHandler,
		couponHandler,
		communicationHandler,
		exportHandler,
		wsHandler,
		healthHandler,
		seedHandler,
		tokenManager,
		userRepo,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
