// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/mahdiwhb/DEALEXPRESS/internal/auth"
	"github.com/mahdiwhb/DEALEXPRESS/internal/comment"
	"github.com/mahdiwhb/DEALEXPRESS/internal/config"
	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/deal"
	"github.com/mahdiwhb/DEALEXPRESS/internal/health"
	"github.com/mahdiwhb/DEALEXPRESS/internal/middleware"
	"github.com/mahdiwhb/DEALEXPRESS/internal/server"
	"github.com/mahdiwhb/DEALEXPRESS/internal/user"
	"github.com/mahdiwhb/DEALEXPRESS/internal/vote"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	generateKeys := flag.Bool(
		"generate-keys",
		false,
		"generate an ES256 keypair at the configured paths and exit",
	)
	flag.Parse()

	if err := run(*configPath, *generateKeys); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, generateKeys bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	if generateKeys {
		if err := auth.GenerateKeyPair(
			cfg.JWT.PrivateKeyPath,
			cfg.JWT.PublicKeyPath,
		); err != nil {
			return fmt.Errorf("generate keys: %w", err)
		}
		logger.Info("keypair written",
			"private", cfg.JWT.PrivateKeyPath,
			"public", cfg.JWT.PublicKeyPath,
		)
		return nil
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	database, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close()

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer redis.Close()

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return fmt.Errorf("init jwt manager: %w", err)
	}

	userRepo := user.NewRepository(database.DB)
	dealRepo := deal.NewRepository(database.DB)
	voteRepo := vote.NewRepository()
	commentRepo := comment.NewRepository(database.DB)

	userService := user.NewService(userRepo)
	revocationStore := auth.NewRedisRevocationStore(redis)
	authService := auth.NewService(userService, jwtManager, revocationStore, logger)
	dealService := deal.NewService(dealRepo, logger)
	voteService := vote.NewService(database.DB, voteRepo, dealRepo, logger)
	commentService := comment.NewService(commentRepo, dealRepo, logger)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	dealHandler := deal.NewHandler(dealService)
	voteHandler := vote.NewHandler(voteService)
	commentHandler := comment.NewHandler(commentService)
	healthHandler := health.NewHandler(database, redis)

	authenticator := middleware.Authenticator(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authHandler.RegisterRoutes(router, authenticator)
	dealHandler.RegisterRoutes(router, authenticator, optionalAuth)
	voteHandler.RegisterRoutes(router, authenticator)
	commentHandler.RegisterRoutes(router, authenticator, optionalAuth)

	dealHandler.RegisterAdminRoutes(
		router,
		authenticator,
		middleware.RequireModerator,
	)
	userHandler.RegisterAdminRoutes(
		router,
		authenticator,
		middleware.RequireAdmin,
	)

	srv := server.New(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("dealexpress started",
		"addr", cfg.Server.Address(),
		"environment", cfg.App.Environment,
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("dealexpress stopped")

	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
