package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/internal/config"
	"github.com/BuzzLyutic/task-tracker-api/internal/handler"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
	"github.com/BuzzLyutic/task-tracker-api/internal/server"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err)) // без секрета сервер не стартует
	}

	// Подключаем БД
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Invalid DATABASE_URL", zap.Error(err))
	}
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = cfg.DBMaxConns
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to Database", zap.Error(err))
	}
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping the Database", zap.Error(err))
	}
	logger.Info("Successfully connected to the Database")

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	taskSvc := service.NewTaskService(repo.NewTaskRepo(pool, repo.WithExpirationPolicy(cfg.ExpirationOnAbsent)))
	authSvc := service.NewAuthService(repo.NewUserRepo(pool), auth.NewPasswordHasher(cfg.BcryptCost), tokens)

	router := server.NewRouter(
		server.Config{
			CookieName:     cfg.SessionCookie,
			RequestTimeout: cfg.RequestTimeout,
			AccessLog:      true,
		},
		handler.NewTaskHandler(taskSvc, logger),
		handler.NewAuthHandler(authSvc, handler.CookieConfig{Name: cfg.SessionCookie, Secure: cfg.CookieSecure}, logger),
		tokens,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Сначала дожидаемся активных запросов, потом закрываем пул
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"task-tracker": func(ctx context.Context) error {
				logger.Info("Shutting down server...")
				err := srv.Shutdown(ctx)
				pool.Close()
				return err
			},
		},
	)

	exitCode := <-wait
	logger.Info("Server stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
