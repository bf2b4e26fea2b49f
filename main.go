package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/brandcraft-ai/brandcraft/internal/config"
	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/generator"
	"github.com/brandcraft-ai/brandcraft/internal/handler"
	"github.com/brandcraft-ai/brandcraft/internal/repository/redis"
	"github.com/brandcraft-ai/brandcraft/internal/repository/sqlite"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "brandcraft",
	Short:         "BrandCraft branding studio server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("brandcraft", "error", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the default logger.
func setup() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlite.DB, error) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	pruned, err := db.PruneSessions(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prune sessions: %w", err)
	}
	if pruned > 0 {
		slog.Info("expired sessions pruned", "count", pruned)
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	db, err := openDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := db.Sessions()
	if cfg.UseRedisSessions() {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		sessions = redis.NewSessionRepository(client)
		slog.Info("using redis session store", "addr", cfg.RedisAddr)
	}

	var gen domain.BrandGenerator
	if cfg.GeneratorEnabled() {
		g, err := generator.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("create generator: %w", err)
		}
		gen = g
	} else {
		slog.Warn("GEMINI_API_KEY is not set; generation endpoints will return 503")
	}

	limiter := service.NewPerMinuteLimiter(cfg.GenerationRatePerMinute, cfg.GenerationBurst)
	defer limiter.Close()

	authService := service.NewAuthService(db.Users(), sessions, cfg.JWTSecret, cfg.BcryptCost, cfg.SessionTTL)
	reconciler := service.NewSessionReconciler(db.Projects())
	logoService := service.NewLogoService(db.Logos())
	projectService := service.NewProjectService(db.Projects(), logoService)
	studioService := service.NewStudioService(gen, projectService, logoService, limiter)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, reconciler, projectService, studioService, logoService, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
