package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Providers ProvidersConfig
	Hazard    HazardConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds route-analysis configuration
type AppConfig struct {
	SampleCount int // Checkpoints probed per route
}

// ProvidersConfig holds upstream provider endpoints and limits
type ProvidersConfig struct {
	OsrmBaseURL      string
	OpenMeteoBaseURL string
	NominatimBaseURL string
	RoutingTimeout   time.Duration
	ForecastTimeout  time.Duration
	GeocodeTimeout   time.Duration
	GeocodeMinGap    time.Duration
}

// HazardConfig holds the hazard store location and the trust-model tuning.
// The scoring constants are deliberately configuration, not structure.
type HazardConfig struct {
	DBPath            string
	TTL               time.Duration
	ConfirmIncrement  float64
	RejectDecrement   float64
	ConfirmThreshold  int
	LowTrustThreshold float64
	MinTrust          float64
	SweepSchedule     string // robfig/cron spec, e.g. "@every 10m"
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.roadcast")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("app.sampleCount", 8)
	viper.SetDefault("providers.osrmBaseURL", "https://router.project-osrm.org")
	viper.SetDefault("providers.openMeteoBaseURL", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("providers.nominatimBaseURL", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("providers.routingTimeout", "15s")
	viper.SetDefault("providers.forecastTimeout", "10s")
	viper.SetDefault("providers.geocodeTimeout", "10s")
	viper.SetDefault("providers.geocodeMinGap", "1200ms")
	viper.SetDefault("hazard.dbPath", "roadcast.db")
	viper.SetDefault("hazard.ttl", "6h")
	viper.SetDefault("hazard.confirmIncrement", 0.15)
	viper.SetDefault("hazard.rejectDecrement", 0.3)
	viper.SetDefault("hazard.confirmThreshold", 3)
	viper.SetDefault("hazard.lowTrustThreshold", 0.3)
	viper.SetDefault("hazard.minTrust", 0.4)
	viper.SetDefault("hazard.sweepSchedule", "@every 10m")

	// Read from environment variables
	viper.SetEnvPrefix("ROADCAST")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
