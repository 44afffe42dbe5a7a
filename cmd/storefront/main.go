package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/datodvp/next-commerce/internal/logging"
	"github.com/datodvp/next-commerce/internal/persistence"
	"github.com/datodvp/next-commerce/internal/server"
	"github.com/datodvp/next-commerce/internal/storage"
	"github.com/datodvp/next-commerce/internal/store"
)

type Config struct {
	HTTPPort        string
	StorageBackend  string
	StateDir        string
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	PostgresHost    string
	PostgresPort    int
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	MigrationsDir   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
		StateDir:        getEnv("STATE_DIR", "./data"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefrontdb"),
		PostgresHost:    getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:    getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:    getEnv("POSTGRES_USER", "postgres"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:      getEnv("POSTGRES_DB", "storefrontdb"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "./migrations"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger = logger.Named("storefront")

	ctx := context.Background()

	backend, cleanup, err := newStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise storage", zap.Error(err))
	}
	defer cleanup()
	logger.Info("storage ready", zap.String("backend", cfg.StorageBackend))

	st := store.New()
	bridge := persistence.NewBridge(storage.NewBreakerStorage(backend), logger.Named("persistence"))

	// Rehydrate before the hook is registered and before any request can
	// reach the store: the replayed set transitions must never race with, or
	// be overwritten by, a user-triggered one.
	bridge.Rehydrate(ctx, st)
	st.Subscribe(bridge.Hook())

	router := server.NewRouter(st, logger.Named("http"), cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newStorage(ctx context.Context, cfg *Config, logger *zap.Logger) (storage.Storage, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case "file":
		fs, err := storage.NewFileStorage(cfg.StateDir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, fmt.Errorf("redis connection failed: %w", err)
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close error", zap.Error(err))
			}
		}
		return storage.NewRedisStorage(client), cleanup, nil

	case "mongo":
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := db.Client().Disconnect(ctx); err != nil {
				logger.Warn("mongo disconnect error", zap.Error(err))
			}
		}
		return storage.NewMongoStorage(db), cleanup, nil

	case "postgres":
		pg, err := storage.NewPostgresStorage(&storage.PostgresCredentials{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			DBName:   cfg.PostgresDB,
		})
		if err != nil {
			return nil, noop, err
		}
		if err := pg.RunMigrations(cfg.MigrationsDir); err != nil {
			return nil, noop, err
		}
		cleanup := func() {
			if err := pg.Close(); err != nil {
				logger.Warn("postgres close error", zap.Error(err))
			}
		}
		return pg, cleanup, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
