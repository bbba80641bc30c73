// Package server provides the HTTP API and the server-rendered pages of the landing generator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/landing-generator/internal/server/ratelimit"
	"github.com/jonathan/landing-generator/internal/session"
	"golang.org/x/sync/errgroup"
)

// DefaultStepInterval is the pause between loading-step events of a streamed generation.
const DefaultStepInterval = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	sessions     *session.Service
	rateLimiter  *ratelimit.Limiter
	stepInterval time.Duration
	now          func() time.Time
	onShutdown   func()
}

// Config holds server configuration
type Config struct {
	Port         int
	Sessions     *session.Service
	RateLimiter  *ratelimit.Limiter // nil loads the limits from the environment
	StepInterval time.Duration      // 0 uses DefaultStepInterval
	OnShutdown   func()             // called once the listener has stopped, e.g. to close the store
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		sessions:     cfg.Sessions,
		rateLimiter:  cfg.RateLimiter,
		stepInterval: cfg.StepInterval,
		now:          time.Now,
		onShutdown:   cfg.OnShutdown,
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}
	if s.stepInterval <= 0 {
		s.stepInterval = DefaultStepInterval
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // webhook calls have no client-side timeout by default
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// JSON API
	mux.HandleFunc("GET /api/catalog/{tipo}", s.handleCatalog)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("POST /api/sessions/stream", s.handleCreateSessionStream)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/sections/{key}/toggle", s.handleToggleSection)
	mux.HandleFunc("POST /api/sessions/{id}/sections/{key}/regenerate", s.handleRegenerateSection)
	mux.HandleFunc("GET /api/sessions/{id}/sections/{key}/raw", s.handleSectionRaw)
	mux.HandleFunc("GET /api/sessions/{id}/export/{format}", s.handleExport)

	// Pages
	mux.HandleFunc("GET /{$}", s.handleFormPage)
	mux.HandleFunc("POST /form", s.handleFormSubmit)
	mux.HandleFunc("GET /preview", s.handlePreviewFromCookie)
	mux.HandleFunc("GET /preview/{id}", s.handlePreviewPage)
	mux.HandleFunc("POST /preview/{id}/sections/{key}/toggle", s.handlePreviewToggle)
	mux.HandleFunc("GET /preview/{id}/sections/{key}/regenerate", s.handleDialogPage)
	mux.HandleFunc("POST /preview/{id}/sections/{key}/regenerate", s.handleDialogSubmit)
	mux.HandleFunc("GET /preview/{id}/download", s.handleDownload)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	s.rateLimiter.Stop()
	if s.onShutdown != nil {
		s.onShutdown()
	}
	log.Println("Server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
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

// textResponse writes a plain-text body, optionally as a download.
func (s *Server) textResponse(w http.ResponseWriter, contentType, body, filename string) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// extractClientID returns the client IP from RemoteAddr.
// Forwarded headers are ignored because they can be forged without a trusted proxy.
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
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
