package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	RateLimit   RateLimitConfig
	Aggregator  AggregatorConfig
	Pipeline    PipelineConfig
	Sources     SourcesConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// RateLimitConfig holds per-category rate limiter configuration
type RateLimitConfig struct {
	Window         time.Duration
	APICalls       int
	Transcriptions int
	WebRequests    int
}

// AggregatorConfig holds trend aggregation configuration
type AggregatorConfig struct {
	MaxResults    int
	SourceTimeout time.Duration
	EventsTopic   string
}

// PipelineConfig holds content pipeline configuration
type PipelineConfig struct {
	Platform      string
	VideoDuration int
	MaxDuration   int
	EventsTopic   string
}

// SourcesConfig holds trend source and provider credentials
type SourcesConfig struct {
	PlatformAPIKey      string
	PlatformAPIURL      string
	DiscoverURL         string
	TwitterBearerToken  string
	TwitterWatchlist    []string
	TranscriptionAPIKey string
	TranscriptionURL    string
	VideoGenAPIKey      string
	VideoGenURL         string
	VideoLimit          int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "trendforge"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		RateLimit: RateLimitConfig{
			Window:         getEnvAsDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			APICalls:       getEnvAsInt("RATE_LIMIT_API_CALLS", 100),
			Transcriptions: getEnvAsInt("RATE_LIMIT_TRANSCRIPTIONS", 50),
			WebRequests:    getEnvAsInt("RATE_LIMIT_WEB_REQUESTS", 30),
		},
		Aggregator: AggregatorConfig{
			MaxResults:    getEnvAsInt("AGGREGATOR_MAX_RESULTS", 20),
			SourceTimeout: getEnvAsDuration("AGGREGATOR_SOURCE_TIMEOUT", 15*time.Second),
			EventsTopic:   getEnv("AGGREGATOR_EVENTS_TOPIC", "trend"),
		},
		Pipeline: PipelineConfig{
			Platform:      getEnv("PIPELINE_PLATFORM", "tiktok"),
			VideoDuration: getEnvAsInt("PIPELINE_VIDEO_DURATION", 60),
			MaxDuration:   getEnvAsInt("PIPELINE_MAX_DURATION", 60),
			EventsTopic:   getEnv("PIPELINE_EVENTS_TOPIC", "pipeline"),
		},
		Sources: SourcesConfig{
			PlatformAPIKey:      getEnv("PLATFORM_API_KEY", ""),
			PlatformAPIURL:      getEnv("PLATFORM_API_URL", "https://api.tikapi.io"),
			DiscoverURL:         getEnv("DISCOVER_URL", "https://www.tiktok.com"),
			TwitterBearerToken:  getEnv("TWITTER_BEARER_TOKEN", ""),
			TwitterWatchlist:    getEnvAsSlice("TWITTER_WATCHLIST", nil),
			TranscriptionAPIKey: getEnv("TRANSCRIPTION_API_KEY", ""),
			TranscriptionURL:    getEnv("TRANSCRIPTION_URL", "https://api.transcription.example.com"),
			VideoGenAPIKey:      getEnv("VIDEOGEN_API_KEY", ""),
			VideoGenURL:         getEnv("VIDEOGEN_URL", "https://viralapi.vadoo.tv"),
			VideoLimit:          getEnvAsInt("SOURCE_VIDEO_LIMIT", 20),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Environment == "development" {
		return nil
	}

	if config.Sources.PlatformAPIKey == "" {
		return fmt.Errorf("platform API key must be set in non-development environments")
	}
	if config.Sources.VideoGenAPIKey == "" {
		return fmt.Errorf("video generation API key must be set in non-development environments")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
