package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shoe-store/internal/api"
	"github.com/example/shoe-store/internal/auth"
	"github.com/example/shoe-store/internal/config"
	"github.com/example/shoe-store/internal/domain/catalog"
	"github.com/example/shoe-store/internal/domain/user"
	"github.com/example/shoe-store/internal/infrastructure/kafka"
	"github.com/example/shoe-store/internal/infrastructure/store"
	"github.com/example/shoe-store/internal/logger"
	"github.com/example/shoe-store/internal/session"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFile := pflag.String("env-file", "", "optional .env file to load before reading the environment")
	pflag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load env file: %v", err)
		}
	}

	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Error("api stopped", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	// Storage
	var (
		catalogRepo catalog.Repository
		userStore   user.Store
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := store.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		zl.Info("connected to PostgreSQL")
		catalogRepo = store.NewPostgresCatalogStore(db)
		userStore = store.NewPostgresUserStore(db)
	case config.StorageDriverMemory:
		mem := store.NewMemoryCatalogStore()
		if cfg.Storage.SeedDemo {
			if err := store.SeedDemoCatalog(mem); err != nil {
				return fmt.Errorf("seed demo catalog: %w", err)
			}
			zl.Info("seeded demo catalog")
		}
		catalogRepo = mem
		userStore = store.NewMemoryUserStore()
		zl.Warn("using in-memory storage; data is lost on restart")
	}

	// Sessions
	var sessionStore session.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		zl.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
		sessionStore = session.NewRedisStore(rdb)
	} else {
		zl.Warn("REDIS_ADDR not set; keeping sessions in memory")
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore, cfg.Session, zl.Named("session"))

	// Activity events
	var events api.EventPublisher = kafka.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		events = producer
		zl.Info("publishing activity events",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	// Identity
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	identity := auth.NewCookieIdentity(jwtService, cfg.Session.CookieSecure)
	userSvc := user.NewService(userStore)

	renderer, err := api.NewHTMLRenderer()
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Handlers:     api.NewHandlers(catalogRepo, sessions, renderer, events, zl.Named("storefront")),
		AuthHandlers: api.NewAuthHandlers(userSvc, identity, sessions, renderer, events, zl.Named("auth")),
		Identity:     identity,
		Sessions:     sessions,
		Logger:       zl.Named("http"),
	})

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server started", zap.String("addr", cfg.Server.HTTPAddr), zap.String("env", cfg.Server.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
