package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

type Server struct {
	Host            string `envconfig:"WEATHER_NOW_SERVER_HOST" default:""`
	Port            string `envconfig:"WEATHER_NOW_SERVER_PORT" default:"8080"`
	ReadTimeout     int    `envconfig:"WEATHER_NOW_SERVER_TIMEOUT" default:"10"`
	ShutdownTimeout int    `envconfig:"WEATHER_NOW_SHUTDOWN_TIMEOUT" default:"5"`
	HandlerTimeout  int    `envconfig:"WEATHER_NOW_HANDLER_TIMEOUT" default:"20"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"WEATHER_NOW_BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"WEATHER_NOW_BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"WEATHER_NOW_BREAKER_REPEAT_NUM" default:"5"`
}

type Config struct {
	GeocodingURL   string `envconfig:"WEATHER_NOW_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	ForecastURL    string `envconfig:"WEATHER_NOW_FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast"`
	RequestTimeout int    `envconfig:"WEATHER_NOW_REQUEST_TIMEOUT" default:"10"`

	// LocalTime shows observation times in the place's own zone instead of UTC.
	LocalTime bool `envconfig:"WEATHER_NOW_LOCAL_TIME" default:"true"`

	Server  Server
	Breaker Breaker

	ServiceName  string `envconfig:"WEATHER_NOW_SERVICE_NAME" default:"weather_now"`
	LogLevel     string `envconfig:"WEATHER_NOW_LOG_LEVEL" default:"debug"`
	LogsPath     string `envconfig:"WEATHER_NOW_LOGS_PATH" default:"./log/weather-now.log"`
	HTTPLogsPath string `envconfig:"WEATHER_NOW_HTTP_LOGS_PATH" default:"./log/weather-now-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Level falls back to debug on unknown names.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// LookupTimeout bounds one whole lookup (geocoding plus forecast) served over HTTP.
func (c Config) LookupTimeout() time.Duration {
	return time.Duration(c.Server.HandlerTimeout) * time.Second
}
