package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/app"
	"github.com/FardadA/samp-crush/internal/config"
	"github.com/FardadA/samp-crush/internal/infra/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("APP_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Env)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("create app", zap.Error(err))
	}

	zapLogger.Info("bot starting")
	if err := application.Run(ctx); err != nil {
		zapLogger.Fatal("bot stopped with error", zap.Error(err))
	}
	zapLogger.Info("bot stopped")
}
