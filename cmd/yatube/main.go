package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yatube-dev/yatube/internal/router"
	"github.com/yatube-dev/yatube/internal/setup"
	"github.com/yatube-dev/yatube/internal/storage/sql"
	"github.com/yatube-dev/yatube/shared/config"
	"github.com/yatube-dev/yatube/shared/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	if cfg.Private.Database.Driver == sql.DriverSQLite {
		if err := os.MkdirAll("data", 0o755); err != nil {
			logger.Log.Error("failed to create data directory", "error", err)
			os.Exit(1)
		}
	}

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Close()

	server := &http.Server{
		Addr:         cfg.Public.Server.Addr(),
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Public.Server.ReadTimeout,
		WriteTimeout: cfg.Public.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.Info("server started", "addr", server.Addr, "driver", cfg.Private.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("server forced to shutdown", "error", err)
		return
	}
	logger.Log.Info("server stopped")
}
