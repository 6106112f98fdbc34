package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/recordtable/internal/config"
	"github.com/JonMunkholm/recordtable/internal/core"
	"github.com/JonMunkholm/recordtable/internal/logging"
	"github.com/JonMunkholm/recordtable/internal/viewdef"
	"github.com/JonMunkholm/recordtable/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists; variables already set take precedence
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"views_dir", cfg.Views.Dir,
		"database", cfg.Database.Enabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()
	loader := &viewdef.Loader{}

	if cfg.Database.Enabled() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		loader.DB = pool
	}

	defs, err := loader.LoadDir(cfg.Views.Dir)
	if err != nil {
		slog.Error("failed to load view definitions",
			"dir", cfg.Views.Dir,
			"error", err,
			"code", core.MapError(err).Code,
		)
		os.Exit(1)
	}
	for _, def := range defs {
		if err := core.Register(def); err != nil {
			slog.Error("failed to register view", "view", def.Info.Key, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("views registered",
		"count", core.ViewCount(),
		"groups", len(core.Groups()),
	)
	for _, group := range core.Groups() {
		slog.Debug("view group", "group", group, "views", len(core.ByGroup(group)))
	}

	service := core.NewService(core.ServiceConfig{
		Locale:      cfg.Views.Locale,
		SessionTTL:  cfg.Views.SessionTTL,
		MaxSessions: cfg.Views.MaxSessions,
		LoadTimeout: cfg.Views.LoadTimeout,

		MaxConcurrentLoads: cfg.Views.MaxConcurrentLoads,
		LoadWait:           cfg.Views.LoadWait,
	})

	server := web.NewServer(service, cfg)

	// Background jobs stop on shutdown
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartSessionSweeper(jobCtx, cfg.Views.SweepInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...", "open_sessions", service.SessionCount())
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if n := service.ActiveLoads(); n > 0 {
			slog.Info("waiting for record loads to finish", "active", n)
			if err := service.WaitForLoads(shutdownCtx); err != nil {
				slog.Warn("record loads did not finish in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// connect opens and verifies the connection pool for SQL-backed views.
func connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
