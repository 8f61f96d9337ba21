// Package api provides the HTTP API server and handlers for the GrooveCharts application.
package api

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/groovecharts/groovecharts-server/internal/config"
	"github.com/groovecharts/groovecharts-server/internal/http/response"
	"github.com/groovecharts/groovecharts-server/internal/ratelimit"
	"github.com/groovecharts/groovecharts-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService   *service.AuthService
	imageService  *service.ImageService
	chartService  *service.ChartService
	groupService  *service.GroupService
	searchService *service.SearchService

	voteLimiter   *ratelimit.KeyedRateLimiter
	uploadLimiter *ratelimit.KeyedRateLimiter

	router *chi.Mux
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	imageService *service.ImageService,
	chartService *service.ChartService,
	groupService *service.GroupService,
	searchService *service.SearchService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		authService:   authService,
		imageService:  imageService,
		chartService:  chartService,
		groupService:  groupService,
		searchService: searchService,
		voteLimiter:   ratelimit.New(cfg.RateLimit.VoteRPS, cfg.RateLimit.VoteBurst),
		uploadLimiter: ratelimit.New(cfg.RateLimit.UploadRPS, cfg.RateLimit.UploadBurst),
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the server's rate limiter goroutines.
func (s *Server) Close() {
	s.voteLimiter.Stop()
	s.uploadLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// Current user.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
		})

		// Artist image pools. Reads are public so galleries render without
		// an account; writes require auth.
		r.Route("/artists", func(r chi.Router) {
			r.Use(s.optionalAuth)
			r.Get("/{artist}/images", s.handleGetGallery)
			r.Get("/{artist}/images/selected", s.handleGetSelectedImage)
		})

		r.Route("/images", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.With(s.rateLimitByUser(s.uploadLimiter)).Post("/", s.handleUploadImage)
				r.With(s.rateLimitByUser(s.voteLimiter)).Put("/{id}/vote", s.handleVote)
				r.Post("/{id}/reports", s.handleReportImage)
				r.Delete("/{id}", s.handleDeleteImage)
			})
			r.Get("/{id}/file", s.handleGetImageFile)
		})

		// Moderation (admin only).
		r.Route("/reports", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.requireAdmin)
			r.Get("/", s.handleListReports)
			r.Post("/{id}/resolve", s.handleResolveReport)
		})

		// Groups and their chart history.
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.handleListGroups)
			r.Get("/{id}", s.handleGetGroup)
			r.Get("/{id}/catalog", s.handleGetCatalog)
			r.Get("/{id}/catalog/search", s.handleSearchCatalog)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateGroup)
				r.Post("/{id}/charts", s.handleRecordChart)
			})
		})

		// Full-text search.
		r.Get("/search", s.handleSearch)

		// Admin maintenance.
		r.With(s.requireAuth, s.requireAdmin).Post("/admin/reindex", s.handleReindex)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
