package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formativa-portal/internal/api"
	"formativa-portal/internal/config"
	"formativa-portal/internal/session"
	"formativa-portal/internal/store"
	"formativa-portal/internal/web"
)

type App struct {
	server  *http.Server
	manager *session.Manager
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.New(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	manager := session.NewManager(st, client, cfg.LoginRateLimitRPM)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      web.NewRouter(cfg, manager, client),
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, manager: manager}, nil
}

func (a *App) Run() error {
	// Startup recovery runs before the listener opens, so the gate only
	// answers Pending during this window.
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a.manager.Initialize(startupCtx)
	cancel()

	if a.manager.Snapshot().Authenticated() {
		slog.Info("session restored from previous run")
	}

	go func() {
		slog.Info("portal starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("portal server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("portal stopped")
	return nil
}
