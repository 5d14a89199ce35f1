package main

import (
	"context"
	"log"
	"time"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/catalog"
	"github.com/Renal37/smm-storefront/internal/database"
	router "github.com/Renal37/smm-storefront/internal/http"
	"github.com/Renal37/smm-storefront/internal/idempotency"
	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/services"
	"github.com/Renal37/smm-storefront/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config, err := NewConfig()
	if err != nil {
		log.Fatalf("Config wasn't loaded due to %s", err)
	}

	if err := logger.Initialize(config.LogLevel, config.Env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}
	defer logger.Log.Sync()

	storage, closeStorage := newDashboardStorage(ctx, config)
	idempotencyStore, closeIdempotency := newIdempotencyStore(ctx, config)

	jobQueueService := services.NewJobQueueService(ctx, 100, 2)

	utils.HandleTerminationProcess(func() {
		logger.Log.Info("shutting down")
		cancel()
		jobQueueService.Shutdown()
		closeIdempotency()
		closeStorage()
		_ = logger.Log.Sync()
	})

	apiClient := api.NewClient(config.APIBaseURL, config.APITimeout)
	catalogService := catalog.New(apiClient, config.CatalogTTL)
	dashboardService := services.NewDashboardService(storage)
	orderService := services.NewOrderService(apiClient, dashboardService)

	checkoutRegistry := services.NewCheckoutRegistry(catalogService, services.CheckoutOptions{
		Uploader: apiClient,
		Creator:  orderService,
		Jobs:     jobQueueService,
		OnRefresh: func(context.Context, models.Session) {
			catalogService.Invalidate()
		},
	}).WithIdleTTL(config.CheckoutIdleTTL)
	checkoutRegistry.StartSweeper(ctx, jobQueueService, time.Minute)

	logger.Log.Info("running server",
		zap.String("address", config.Endpoint),
		zap.String("backend", config.APIBaseURL),
	)

	err = router.New(
		router.Config{Endpoint: config.Endpoint},
		middlewares.Services{
			Catalog:     catalogService,
			Checkout:    checkoutRegistry,
			Billing:     services.NewBalanceService(apiClient, apiClient, dashboardService),
			Dashboard:   dashboardService,
			Session:     services.NewJWTService(config.AuthSecretKey).WithDefaultCurrency(config.DefaultCurrency),
			Idempotency: idempotencyStore,
		},
	).Run()

	logger.Log.Fatal("server stopped", zap.Error(err))
}

// newDashboardStorage подключает PostgreSQL, если задан DATABASE_URI, иначе журнал хранится в памяти.
func newDashboardStorage(ctx context.Context, config Config) (services.DashboardStorage, func()) {
	if config.DSN == "" {
		logger.Log.Warn("DATABASE_URI is not set, dashboard is kept in memory")
		return database.NewMemoryStore(), func() {}
	}

	db, err := database.New(ctx, config.DSN)
	if err != nil {
		logger.Log.Fatal("database wasn't initialized", zap.Error(err))
	}

	if err := db.RunMigrations(); err != nil {
		logger.Log.Fatal("migrations weren't run", zap.Error(err))
	}

	return db, db.Close
}

func newIdempotencyStore(ctx context.Context, config Config) (models.IdempotencyStore, func()) {
	if config.RedisAddr == "" {
		return idempotency.NewMemoryStore(config.IdempotencyTTL), func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Warn("redis is unavailable, idempotency keys are kept in memory", zap.Error(err))
		_ = rdb.Close()
		return idempotency.NewMemoryStore(config.IdempotencyTTL), func() {}
	}

	return idempotency.NewStore(rdb, config.IdempotencyTTL), func() { _ = rdb.Close() }
}
