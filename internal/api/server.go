// Package api serves a story collection over the same REST shape as the
// upstream science-fiction API. It backs `scifi serve`, offline development
// and the end-to-end tests.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/logging"
)

//go:embed fixtures/stories.json
var defaultFixture []byte

// DefaultAllowedOrigins limits CORS to local development hosts
var DefaultAllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// Options configures a Server
type Options struct {
	// AllowedOrigins lists CORS origins; entries may end in "*" or start with "*."
	AllowedOrigins []string
	// Delay is added before every story response to make loading states visible
	Delay  time.Duration
	Logger *slog.Logger
}

// Server is the fixture REST API server
type Server struct {
	opts   Options
	logger *slog.Logger

	mu      sync.RWMutex
	stories []domain.Story
	server  *http.Server
	running bool
	stopped bool
}

// NewServer creates a server for the given stories
func NewServer(stories []domain.Story, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = DefaultAllowedOrigins
	}
	return &Server{
		opts:    opts,
		logger:  logger,
		stories: stories,
	}
}

// DefaultStories returns the embedded fixture collection
func DefaultStories() ([]domain.Story, error) {
	return ParseFixture(defaultFixture)
}

// LoadFixture reads a JSON array of stories from path
func LoadFixture(path string) ([]domain.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a JSON array of stories
func ParseFixture(data []byte) ([]domain.Story, error) {
	var stories []domain.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return stories, nil
}

// SetStories replaces the served collection
func (s *Server) SetStories(stories []domain.Story) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = stories
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Start serves on addr until Stop is called. Once Stop has run, Start
// returns nil without listening.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + s.opts.Delay,
		IdleTimeout:  60 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.Info("fixture server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server and keeps any later Start from listening
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if !s.running {
		return nil
	}
	s.running = false

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30*time.Second + s.opts.Delay))
	r.Use(corsMiddleware(s.opts.AllowedOrigins))

	r.Get("/health", s.healthHandler)

	r.Route("/api/sciencefiction", func(r chi.Router) {
		r.Use(delayMiddleware(s.opts.Delay))
		r.Get("/", s.listStoriesHandler)
		r.Get("/{id}", s.getStoryHandler)
	})

	return r
}

// requestLogger logs one structured record per request
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= 500 {
				level = slog.LevelError
			} else if ww.Status() >= 400 {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"latency_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func delayMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(d):
				next.ServeHTTP(w, r)
			case <-r.Context().Done():
			}
		})
	}
}

// corsMiddleware allows browser clients from the configured origins
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	exactOrigins := make(map[string]bool)
	var patterns []string

	for _, origin := range allowedOrigins {
		if strings.Contains(origin, "*") {
			patterns = append(patterns, origin)
		} else {
			exactOrigins[origin] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			if origin != "" {
				if exactOrigins[origin] {
					allowed = true
				} else {
					for _, pattern := range patterns {
						if matchOriginPattern(origin, pattern) {
							allowed = true
							break
						}
					}
				}
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchOriginPattern checks if an origin matches a pattern with wildcards
// e.g., "http://localhost:3000" matches "http://localhost:*"
func matchOriginPattern(origin, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(origin, prefix)
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := strings.TrimPrefix(pattern, "*")
		parts := strings.SplitN(origin, "://", 2)
		if len(parts) == 2 {
			host := strings.Split(parts[1], "/")[0]
			host = strings.Split(host, ":")[0]
			return strings.HasSuffix(host, suffix) || host == strings.TrimPrefix(suffix, ".")
		}
	}
	return false
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	count := len(s.stories)
	s.mu.RUnlock()

	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"stories": count,
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (s *Server) listStoriesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stories := s.stories
	s.mu.RUnlock()

	if stories == nil {
		stories = []domain.Story{}
	}
	respondJSON(w, http.StatusOK, stories)
}

// getStoryHandler answers 200 with a null body for unknown ids, which is how
// the upstream API signals absence.
func (s *Server) getStoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	var found *domain.Story
	for i := range s.stories {
		if s.stories[i].ID == id {
			story := s.stories[i]
			found = &story
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, found)
}
