package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"trendforge/internal/adapter/source"
	"trendforge/internal/adapter/storage"
	"trendforge/internal/adapter/transcription"
	"trendforge/internal/adapter/videogen"
	"trendforge/internal/config"
	"trendforge/internal/domain/trend"
	"trendforge/internal/server"
	"trendforge/internal/service/aggregate"
	"trendforge/internal/service/pipeline"
	"trendforge/internal/service/ratelimit"
	"trendforge/internal/service/scriptgen"
)

func main() {
	// Load .env if present, real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// One limiter shared by every outbound adapter
	limiter := ratelimit.New(ratelimit.Config{
		Window: cfg.RateLimit.Window,
		MaxCalls: map[string]int{
			ratelimit.CategoryAPI:           cfg.RateLimit.APICalls,
			ratelimit.CategoryTranscription: cfg.RateLimit.Transcriptions,
			ratelimit.CategoryWeb:           cfg.RateLimit.WebRequests,
		},
	})

	// Initialize trend sources
	apiClient := source.NewAPIClient(cfg.Sources.PlatformAPIKey, cfg.Sources.PlatformAPIURL, limiter)
	soundAnalyzer := source.NewSoundAnalyzer(apiClient, cfg.Sources.VideoLimit)

	hashtagSources := []trend.HashtagSource{
		source.NewAPIHashtagSource(apiClient, cfg.Sources.VideoLimit),
		source.NewDiscoverScraper(cfg.Sources.DiscoverURL, limiter),
		source.NewSoundHashtagSource(soundAnalyzer, apiClient, cfg.Sources.VideoLimit),
	}
	if cfg.Sources.TwitterBearerToken != "" && len(cfg.Sources.TwitterWatchlist) > 0 {
		hashtagSources = append(hashtagSources, source.NewTwitterSource(
			cfg.Sources.TwitterBearerToken,
			cfg.Sources.TwitterWatchlist,
			limiter,
		))
	}

	// Initialize trend aggregator
	aggregator := aggregate.New(
		hashtagSources,
		[]trend.SoundSource{soundAnalyzer},
		[]trend.VideoSource{apiClient},
		natsConn,
		aggregate.Config{
			MaxResults:    cfg.Aggregator.MaxResults,
			SourceTimeout: cfg.Aggregator.SourceTimeout,
			EventsTopic:   cfg.Aggregator.EventsTopic,
		},
	)

	// Initialize content pipeline
	runStore := storage.NewRunStore(db)
	contentPipeline := pipeline.New(
		aggregator,
		transcription.NewClient(cfg.Sources.TranscriptionAPIKey, cfg.Sources.TranscriptionURL, limiter),
		scriptgen.New(),
		videogen.NewClient(cfg.Sources.VideoGenAPIKey, cfg.Sources.VideoGenURL, limiter),
		runStore,
		natsConn,
		pipeline.Config{
			Platform:      cfg.Pipeline.Platform,
			VideoDuration: cfg.Pipeline.VideoDuration,
			MaxDuration:   cfg.Pipeline.MaxDuration,
			EventsTopic:   cfg.Pipeline.EventsTopic,
		},
	)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg,
		natsConn,
		aggregator,
		contentPipeline,
		runStore,
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
