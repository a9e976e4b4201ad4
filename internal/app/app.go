package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-now/internal/config"
	"github.com/Nazarious-ucu/weather-now/internal/handlers/weather"
	"github.com/Nazarious-ucu/weather-now/internal/services/forecast"
	"github.com/Nazarious-ucu/weather-now/internal/services/geocoding"
	loggerT "github.com/Nazarious-ucu/weather-now/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-now/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-now/internal/services/timezone"
	serviceWeather "github.com/Nazarious-ucu/weather-now/internal/services/weather"
	"github.com/Nazarious-ucu/weather-now/internal/services/weather/decorators"
	"github.com/Nazarious-ucu/weather-now/internal/view"
	fLogger "github.com/Nazarious-ucu/weather-now/pkg/logger"
)

// ServiceContainer holds initialized dependencies for the HTTP server.
type ServiceContainer struct {
	WeatherService *decorators.MeasuredService
	View           *view.Controller

	Router     *gin.Engine
	Srv        *http.Server
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", a.cfg.ServerAddress()).Msg("starting weather-now service")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather-now service")
	case err := <-serveErr:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server failed")
			_ = a.Shutdown(srvContainer)
			return err
		}
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the HTTP server and syncs the request log.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather-now service…")

	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		} else {
			a.l.Info().Msg("file logger synced successfully")
		}
	}(srvContainer.fileLogger)

	srvContainer.View.Clear()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		return err
	}
	a.l.Info().Msg("shutdown complete")
	return nil
}

// Init builds every dependency and the router without starting to serve.
func (a *App) Init() (ServiceContainer, error) {
	a.l.Info().Msgf("initializing weather-now service with config: %+v", a.cfg)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Str("path", a.cfg.HTTPLogsPath).Msg("failed to create file logger")
		return ServiceContainer{}, fmt.Errorf("create http file logger: %w", err)
	}

	httpLogClient := &http.Client{
		Transport: loggerT.NewRoundTripper(fileLogger, http.DefaultTransport),
		Timeout:   a.cfg.UpstreamTimeout(),
	}

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	resolver := serviceWeather.NewBreakerResolver("Geocoding", breakerCfg,
		geocoding.NewClient(a.cfg.GeocodingURL, httpLogClient, a.l),
	)
	fetcher := serviceWeather.NewBreakerFetcher("Forecast", breakerCfg,
		forecast.NewClient(a.cfg.ForecastURL, httpLogClient, a.l),
	)

	weatherService := decorators.NewMeasuredService(
		serviceWeather.NewService(a.l, resolver, fetcher),
		a.m,
	)

	cards := view.NewCardRenderer(a.l, nil)
	if a.cfg.LocalTime {
		zones, tzErr := timezone.NewService()
		if tzErr != nil {
			a.l.Error().Err(tzErr).Msg("timezone lookup unavailable, showing UTC times")
		} else {
			cards = view.NewCardRenderer(a.l, zones)
		}
	}
	controller := view.NewController(a.l, weatherService, cards)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(a.m.HTTPMiddleware())

	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	weather.NewHandler(weatherService, cards, controller, a.cfg.LookupTimeout()).Register(router)

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		WeatherService: weatherService,
		View:           controller,
		Router:         router,
		Srv:            httpServer,
		fileLogger:     fileLogger,
	}, nil
}
