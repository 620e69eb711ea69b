// Package httpapi serves the leaderboard as a read-only JSON API.
//
// Routes:
//   - GET /health
//   - GET /api/modes
//   - GET /api/scores/{mode}?limit=N
//   - GET /api/scores/{mode}/best
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/scores"
)

// MaxLimit caps the number of entries a single request may ask for.
const MaxLimit = 100

// Server bundles the router and the leaderboard it reads from.
type Server struct {
	r      *chi.Mux
	board  *scores.Store
	logger *log.Logger
	http   *http.Server
}

// New constructs a Server, installs middleware and registers routes.
func New(board *scores.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "api",
		})
	}
	s := &Server{r: chi.NewRouter(), board: board, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.requestLog)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Route("/scores/{mode}", func(r chi.Router) {
			r.Get("/", s.handleScores)
			r.Get("/best", s.handleBest)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router.
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting API server", "addr", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// modeInfo describes one mode in /api/modes.
type modeInfo struct {
	Mode       string     `json:"mode"`
	Title      string     `json:"title,omitempty"`
	Registered bool       `json:"registered"`
	Entries    int        `json:"entries"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

func (s *Server) describe(mode, title string, registered bool) modeInfo {
	info := modeInfo{
		Mode:       mode,
		Title:      title,
		Registered: registered,
		Entries:    len(s.board.All(mode)),
	}
	if at, ok := s.board.LastPlayed(mode); ok {
		at = at.UTC()
		info.LastPlayed = &at
	}
	return info
}

// handleModes lists every mode that has a registered game or stored scores.
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	seen := make(map[string]bool)
	var out []modeInfo
	for _, g := range registry.List() {
		seen[g.ID] = true
		out = append(out, s.describe(g.ID, g.Title, true))
	}
	for _, mode := range s.board.Modes() {
		if seen[mode] {
			continue
		}
		out = append(out, s.describe(mode, "", false))
	}
	if out == nil {
		out = []modeInfo{}
	}
	writeJSON(w, http.StatusOK, out)
}

// scoresRes is returned by /api/scores/{mode}.
type scoresRes struct {
	Mode    string         `json:"mode"`
	Entries []scores.Entry `json:"entries"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")

	limit := scores.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, MaxLimit)
	}

	entries := s.board.TopN(mode, limit)
	if entries == nil {
		entries = []scores.Entry{}
	}
	writeJSON(w, http.StatusOK, scoresRes{Mode: mode, Entries: entries})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	best, ok := s.board.BestFor(mode)
	if !ok {
		writeError(w, http.StatusNotFound, "no_scores")
		return
	}
	writeJSON(w, http.StatusOK, best)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"id", chimw.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
