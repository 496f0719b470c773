// Package server provides the HTTP REST API for the gigmatch platform.
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
	"strings"
	"syscall"
	"time"

	"github.com/gigforge/gigmatch/internal/config"
	"github.com/gigforge/gigmatch/internal/db"
	"github.com/gigforge/gigmatch/internal/match"
	"github.com/gigforge/gigmatch/internal/server/middleware"
	"github.com/gigforge/gigmatch/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	engine      *match.Engine
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	SynonymsFile string
}

// New creates a new server instance. Configuration is resolved before the
// connection pool opens so an early error return never leaks the pool.
func New(cfg Config) (*Server, error) {
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	// Build the matching engine. An invalid synonym table is a startup
	// error, not something to discover at match time.
	synonyms := match.DefaultSynonyms()
	if cfg.SynonymsFile != "" {
		synonyms, err = match.LoadSynonymsFile(cfg.SynonymsFile)
		if err != nil {
			return nil, err
		}
	} else if err := synonyms.Validate(); err != nil {
		return nil, fmt.Errorf("built-in synonym table invalid: %w", err)
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		store:  database,
		engine: match.NewEngine(match.NewMatcher(synonyms)),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	s.userService = NewUserService(s.store, passwordConfig)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router. Handlers that act on behalf of the
// caller sit behind JWT auth; public reads do not.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", auth(http.HandlerFunc(s.handleUpdatePassword)))

	// Gigs
	mux.HandleFunc("GET /gigs", s.handleListGigs)
	mux.Handle("POST /gigs", auth(http.HandlerFunc(s.handleCreateGig)))
	mux.Handle("GET /gigs/mine", auth(http.HandlerFunc(s.handleListMyGigs)))
	mux.HandleFunc("GET /gigs/{id}", s.handleGetGig)
	mux.Handle("PUT /gigs/{id}", auth(http.HandlerFunc(s.handleUpdateGig)))
	mux.Handle("DELETE /gigs/{id}", auth(http.HandlerFunc(s.handleDeleteGig)))
	mux.Handle("POST /gigs/{id}/apply", auth(http.HandlerFunc(s.handleApply)))
	mux.Handle("POST /gigs/{id}/accept", auth(http.HandlerFunc(s.handleAccept)))
	mux.Handle("POST /gigs/{id}/reject", auth(http.HandlerFunc(s.handleReject)))

	// Matching
	mux.HandleFunc("GET /gigs/{id}/evaluate-skills", s.handleEvaluateSkills)

	// Dashboard
	mux.Handle("GET /dashboard/skill-match", auth(http.HandlerFunc(s.handleSkillMatch)))
	mux.Handle("GET /dashboard/recommended-gigs", auth(http.HandlerFunc(s.handleRecommendedGigs)))
	mux.Handle("GET /dashboard/my-applicants", auth(http.HandlerFunc(s.handleMyApplicants)))
	mux.Handle("GET /dashboard/stats", auth(http.HandlerFunc(s.handleDashboardStats)))

	// Users
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.Handle("PUT /users/me", auth(http.HandlerFunc(s.handleUpdateMe)))
	mux.Handle("DELETE /users/me", auth(http.HandlerFunc(s.handleDeleteMe)))
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)

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

	s.store.Close()
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
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

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

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password update requests for the caller.
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

// extractClientID identifies the caller for rate limiting. Requests with
// a valid bearer token are keyed by user ID, so users behind a shared NAT
// get separate budgets. Everything else is keyed by connection IP;
// X-Forwarded-For is only trustworthy behind a known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	if parts := strings.Fields(r.Header.Get("Authorization")); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if claims, err := s.jwtService.ValidateToken(parts[1]); err == nil {
			return "user:" + claims.UserID.String()
		}
	}

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
