package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/taskboard/config"
	"github.com/ErlanBelekov/taskboard/internal/auth"
	"github.com/ErlanBelekov/taskboard/internal/email"
	"github.com/ErlanBelekov/taskboard/internal/health"
	"github.com/ErlanBelekov/taskboard/internal/infrastructure/memory"
	"github.com/ErlanBelekov/taskboard/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/taskboard/internal/log"
	"github.com/ErlanBelekov/taskboard/internal/metrics"
	"github.com/ErlanBelekov/taskboard/internal/repository"
	"github.com/ErlanBelekov/taskboard/internal/stats"
	httptransport "github.com/ErlanBelekov/taskboard/internal/transport/http"
	"github.com/ErlanBelekov/taskboard/internal/transport/http/handler"
	"github.com/ErlanBelekov/taskboard/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer store.close()

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		stop()
		log.Fatalf("password hasher: %v", err)
	}
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Auth
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(store.users, hasher, tokens, sender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Tasks
	taskUsecase := usecase.NewTaskUsecase(store.tasks, cfg.HideForeignTasks)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, store.deps...)

	refresher, err := stats.NewRefresher(store.tasks, logger, cfg.StatsCron)
	if err != nil {
		stop()
		log.Fatalf("stats: %v", err)
	}

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, authHandler, taskHandler, authUsecase, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	go refresher.Start(ctx)

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

type stores struct {
	users repository.UserRepository
	tasks repository.TaskRepository
	deps  []health.Dependency
	close func()
}

// openStore connects the repositories selected by STORE. With postgres the
// embedded migrations run first when AUTO_MIGRATE is set.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Store == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		return &stores{
			users: memory.NewUserRepository(),
			tasks: memory.NewTaskRepository(),
			close: func() {},
		}, nil
	}

	if cfg.AutoMigrate {
		if err := migrate(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &stores{
		users: postgres.NewUserRepository(pool),
		tasks: postgres.NewTaskRepository(pool),
		deps:  []health.Dependency{{Name: "postgres", Pinger: pool}},
		close: pool.Close,
	}, nil
}

func migrate(databaseURL string, logger *slog.Logger) (err error) {
	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, m.Close())
	}()

	if err := m.Up(); err != nil {
		return err
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logger.Info("database migrated", "version", version, "dirty", dirty)
	return nil
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
