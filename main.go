package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"survey-dashboard/app/client"
	"survey-dashboard/config"
	FiberApp "survey-dashboard/fiber"
	"survey-dashboard/route"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}

func main() {
	// 1. Load .env file
	config.LoadEnv()
	cfg := config.FromEnv()

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	// 2. Konfigurasi tampilan admin
	views, err := config.LoadViews(cfg.ViewsConfig)
	if err != nil {
		log.Fatal("load views config", zap.Error(err))
	}

	// 3. Client ke backend survei
	api := client.New(client.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.APITimeout,
		ServiceSecret: cfg.ServiceSecret,
		Logger:        log,
	})

	// 4. Setup Fiber App + Route
	app := FiberApp.SetupFiber(log)
	route.SetupRoutes(app, api, views, log)

	// 5 Start server
	go func() {
		log.Info("server running", zap.String("port", cfg.Port), zap.String("api", cfg.APIBaseURL))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Info("server stopped", zap.Error(err))
		}
	}()

	// 6 Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Warn("server forced to shutdown", zap.Error(err))
	}
}
