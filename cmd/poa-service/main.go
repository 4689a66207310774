package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eaglebank/poa-service/internal/command"
	"github.com/eaglebank/poa-service/internal/config"
	"github.com/eaglebank/poa-service/internal/handler"
	"github.com/eaglebank/poa-service/internal/metrics"
	"github.com/eaglebank/poa-service/internal/query"
	"github.com/eaglebank/poa-service/internal/repository"
	"github.com/eaglebank/poa-service/shared/events"
	"github.com/eaglebank/poa-service/shared/logger"
	"github.com/eaglebank/poa-service/shared/middleware"
	redisClient "github.com/eaglebank/poa-service/shared/redis"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Service stopped", zap.Error(err))
	}
}

type stores struct {
	accounts repository.AccountStore
	grants   repository.GrantStore
	cache    *repository.CachedAccountRepository
	db       *sql.DB
}

func openStores(ctx context.Context, cfg config.Config, redis *redisClient.Client, logger *zap.Logger) (*stores, error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		logger.Warn("Using in-memory stores; data is lost on restart")
		return &stores{
			accounts: repository.NewInMemoryAccountStore(),
			grants:   repository.NewInMemoryGrantStore(),
		}, nil
	}

	db, err := repository.OpenPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	cache := repository.NewCachedAccountRepository(
		repository.NewAccountDocumentRepository(db), redis.Client, cfg.AccountCacheTTL, logger,
	)
	return &stores{
		accounts: cache,
		grants:   repository.NewGrantDocumentRepository(db),
		cache:    cache,
		db:       db,
	}, nil
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	// Redis connection (account read cache + event streaming)
	var redis *redisClient.Client
	if cfg.UsesRedis() {
		var err error
		redis, err = redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redis.Close()
	}

	st, err := openStores(ctx, cfg, redis, logger)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	var publisher command.EventPublisher = events.Discard{}
	if cfg.EventsEnabled {
		publisher = events.NewPublisher(redis.Client, cfg.EventStreamMaxLen)
	}

	// --- CQRS wiring ---
	m := metrics.New(prometheus.DefaultRegisterer)

	accountCmds := command.NewAccountCommandService(st.accounts, publisher, m, logger)
	grantCmds := command.NewGrantCommandService(st.accounts, st.grants, publisher, m, logger,
		command.WithHolderCheck(cfg.GrantEnforceHolder))

	accountHandler := handler.NewAccountHandler(accountCmds, query.NewAccountQueryService(st.accounts))
	grantHandler := handler.NewGrantHandler(grantCmds, query.NewGrantQueryService(st.grants))

	if cfg.EventsEnabled && st.cache != nil {
		projector := command.NewAccountViewProjector(st.cache, logger)
		hostname, _ := os.Hostname()
		go func() {
			subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
				Group:    "poa-service-account-views",
				Consumer: "account-projector-" + hostname,
				Stream:   events.AccountEventsStream,
				Handler:  projector.HandleAccountEvent,
				Logger:   logger,
			})
			if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Subscriber stopped", zap.Error(err))
			}
		}()
	}

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware(logger), gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.RegisterRoutes(router, accountHandler, grantHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Power of attorney service starting",
			zap.String("port", cfg.Port),
			zap.String("store_backend", cfg.StoreBackend),
			zap.Bool("events_enabled", cfg.EventsEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
