package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-now/internal/app"
	"github.com/Nazarious-ucu/weather-now/internal/config"
	"github.com/Nazarious-ucu/weather-now/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-now/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)

	l := logger.NewLogger(cfg.LogsPath, cfg.ServiceName, cfg.Level())

	metr := metrics.NewMetrics(cfg.ServiceName)

	application := app.New(*cfg, l, metr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application failed")
		stop()
		log.Panic(err)
	}
}
