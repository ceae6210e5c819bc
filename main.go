package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pantryfit-backend/cmd/config"
	migration "pantryfit-backend/cmd/database/migrate"
	appconfig "pantryfit-backend/internal/config"
	"pantryfit-backend/internal/worker"
	"pantryfit-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := worker.NewPool(cfg.Worker.Workers, cfg.Worker.QueueSize, log)

	app, err := config.NewApp(cfg, db, pool, log)
	if err != nil {
		log.Fatal("failed to build application", zap.Error(err))
	}

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		if err := app.Listen(addr); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	// In-flight detection tasks get a grace period to reach a terminal state.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool.Shutdown(ctx)
}
