package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Beviryon/BeCandidature-sub000/internal/ai"
	"github.com/Beviryon/BeCandidature-sub000/internal/config"
	"github.com/Beviryon/BeCandidature-sub000/internal/db"
	"github.com/Beviryon/BeCandidature-sub000/internal/extract"
	"github.com/Beviryon/BeCandidature-sub000/internal/fetch"
	"github.com/Beviryon/BeCandidature-sub000/internal/mailer"
	"github.com/Beviryon/BeCandidature-sub000/internal/server/middleware"
	"github.com/Beviryon/BeCandidature-sub000/internal/server/ratelimit"
)

// Store is the candidature persistence surface the handlers depend on.
type Store interface {
	CreateCandidature(ctx context.Context, c *db.Candidature) (uuid.UUID, error)
	GetCandidature(ctx context.Context, userID, id uuid.UUID) (*db.Candidature, error)
	ListCandidatures(ctx context.Context, userID uuid.UUID, filters db.CandidatureFilters) ([]db.Candidature, error)
	UpdateCandidature(ctx context.Context, c *db.Candidature, statusChanged bool, statusNote string) error
	DeleteCandidature(ctx context.Context, userID, id uuid.UUID) error
	AddRelance(ctx context.Context, r *db.Relance) (uuid.UUID, error)
	ListRelances(ctx context.Context, candidatureID uuid.UUID) ([]db.Relance, error)
	ListStatusHistory(ctx context.Context, candidatureID uuid.UUID) ([]db.StatusChange, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	extractor   *extract.URLExtractor
	drafter     *ai.Drafter   // nil when no API key configured
	mailer      mailer.Mailer // nil when email is not configured
}

// New creates a new server instance from the application configuration.
func New(cfg *config.AppConfig) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := &Server{
		db:    database,
		store: database,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	cache, err := fetch.NewCache(fetch.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch cache: %w", err)
	}
	proxy := fetch.NewProxy(cfg.ProxyMirrors, nil, cache)
	s.extractor = extract.NewURLExtractor(proxy, cfg.UseBrowser)

	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		s.drafter = ai.NewDrafter(client)
	}

	if cfg.ResendAPIKey != "" {
		m, err := mailer.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
		if err != nil {
			return nil, fmt.Errorf("failed to create mailer: %w", err)
		}
		s.mailer = m
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except registration, login and the
// health check sits behind JWT auth.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", protected(s.handleUpdatePassword))

	mux.Handle("GET /admin/users/pending", protected(s.handleListPendingUsers))
	mux.Handle("POST /admin/users/{id}/approve", protected(s.handleApproveUser))

	mux.Handle("GET /candidatures", protected(s.handleListCandidatures))
	mux.Handle("POST /candidatures", protected(s.handleCreateCandidature))
	mux.Handle("GET /candidatures/{id}", protected(s.handleGetCandidature))
	mux.Handle("PUT /candidatures/{id}", protected(s.handleUpdateCandidature))
	mux.Handle("DELETE /candidatures/{id}", protected(s.handleDeleteCandidature))
	mux.Handle("GET /candidatures/{id}/history", protected(s.handleListStatusHistory))

	mux.Handle("GET /candidatures/{id}/relances", protected(s.handleListRelances))
	mux.Handle("POST /candidatures/{id}/relances", protected(s.handleCreateRelance))
	mux.Handle("POST /candidatures/{id}/relances/draft", protected(s.handleDraftRelance))

	mux.Handle("POST /extract/text", protected(s.handleExtractText))
	mux.Handle("POST /extract/url", protected(s.handleExtractURL))

	mux.Handle("POST /import/xlsx", protected(s.handleImportXLSX))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// logMailFailure records a failed notification email without failing the request.
func (s *Server) logMailFailure(to string, err error) {
	log.Printf("[mail] failed to notify %s: %v", to, err)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
