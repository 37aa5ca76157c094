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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/leasedesk/rental-portal/internal/app"
	"github.com/leasedesk/rental-portal/internal/business/performance"
	"github.com/leasedesk/rental-portal/internal/platform/config"
	apirouter "github.com/leasedesk/rental-portal/internal/platform/http"
	"github.com/leasedesk/rental-portal/internal/platform/logger"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "rental-portal-api")
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.GinMode)

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled. Connections opened by the
// backend are closed before it returns, on failure as well.
func run(ctx context.Context, cfg config.Config, zlog *zap.Logger) error {
	a, err := app.New(ctx, cfg, zlog)
	defer a.Close()
	if err != nil {
		return fmt.Errorf("backend init: %w", err)
	}

	var scheduler *performance.Scheduler
	if cfg.SnapshotEnabled {
		scheduler, err = performance.NewScheduler(cfg.SnapshotCron, a.Performance, zlog.Named("snapshot"))
		if err != nil {
			return fmt.Errorf("snapshot schedule: %w", err)
		}
		scheduler.Start()
		zlog.Info("snapshot schedule started", zap.String("cron", cfg.SnapshotCron))
	}

	router := apirouter.NewRouter(a.Units, a.Performance, a.Leases, zlog.Named("http"), cfg.AllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	zlog.Info("server listening", zap.String("port", cfg.Port))

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
	}
	zlog.Info("server exited")
	return runErr
}
