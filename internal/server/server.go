package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"trendforge/internal/config"
	"trendforge/internal/server/handlers"
	"trendforge/internal/service/aggregate"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.Config,
	natsConn *nats.Conn,
	aggregator *aggregate.Aggregator,
	contentPipeline handlers.ContentPipeline,
	runs handlers.RunReader,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	trendHandler := handlers.NewTrendHandler(aggregator)
	runHandler := handlers.NewRunHandler(contentPipeline, runs)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/hashtags", trendHandler.GetHashtags)
				r.Get("/sounds", trendHandler.GetSounds)
				r.Get("/videos", trendHandler.GetVideos)
				r.Get("/analysis", trendHandler.GetAnalysis)
			})

			// Runs API
			r.Route("/runs", func(r chi.Router) {
				r.Get("/", runHandler.ListRuns)
				r.Post("/", runHandler.CreateRun)
				r.Get("/{id}", runHandler.GetRun)
			})
		})
	})

	// WebSocket endpoint for real-time trend and pipeline events
	router.Get("/ws/trends", handlers.TrendWebSocketHandler(
		natsConn,
		cfg.Aggregator.EventsTopic,
		cfg.Pipeline.EventsTopic,
	))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
