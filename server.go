package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"boolsearch/internal/index"
)

const shutdownTimeout = 5 * time.Second

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withTelemetry(next http.Handler, telemetry *telemetry, logRequests bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)
		duration := time.Since(start)

		if telemetry != nil {
			telemetry.recordRequest(r.Context(), r.Method, r.URL.Path, recorder.status, duration)
		}
		if logRequests && telemetry != nil && telemetry.logger != nil {
			telemetry.logger.Info("request completed", "method", r.Method, "path", r.URL.Path, "status", recorder.status, "duration_ms", duration.Milliseconds())
		}
	})
}

// apiServer answers queries against a snapshot built once at startup.
type apiServer struct {
	searcher  *index.Searcher
	stats     index.IndexStats
	telemetry *telemetry
	logger    *slog.Logger
}

func newAPIServer(snapshot *index.Snapshot, telemetry *telemetry, logger *slog.Logger) *apiServer {
	return &apiServer{
		searcher:  index.NewSearcher(snapshot),
		stats:     snapshot.Stats(),
		telemetry: telemetry,
		logger:    logger,
	}
}

func (s *apiServer) routes(logRequests bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", s.handleSearch)
	mux.HandleFunc("/v1/stats", s.handleStats)
	mux.HandleFunc("/v1/health", s.handleHealth)
	if s.telemetry != nil && s.telemetry.enabled {
		mux.HandleFunc("/v1/metrics", s.telemetry.handleMetrics)
	}

	handler := withJSONHeaders(mux)
	return withTelemetry(handler, s.telemetry, logRequests)
}

func (s *apiServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q parameter is required", start)
		return
	}

	limit, err := parseIntDefault(r.URL.Query().Get("limit"), 0)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %q", r.URL.Query().Get("limit")), start)
		return
	}

	resp := s.searcher.Search(index.SearchRequest{Query: query, Limit: limit})
	if s.telemetry != nil {
		s.telemetry.recordSearch(r.Context(), "http", resp.TotalHits, time.Since(start))
	}

	respond(w, http.StatusOK, map[string]any{
		"query":     resp.Query,
		"totalHits": resp.TotalHits,
		"hits":      resp.Hits,
		"timingMs":  time.Since(start).Milliseconds(),
	})

	if s.logger != nil {
		s.logger.Debug("search completed", "query", query, "hits", resp.TotalHits, "duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload := map[string]any{"index": s.stats, "timingMs": time.Since(start).Milliseconds()}
	if s.telemetry != nil {
		total, failed := s.telemetry.requestCounts()
		payload["requests"] = map[string]int64{"total": total, "errors": failed}
	}
	respond(w, http.StatusOK, payload)
}

func (s *apiServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	respond(w, http.StatusOK, map[string]any{"status": "ok", "timingMs": time.Since(start).Milliseconds()})
}

// runServer serves until ctx is cancelled or SIGINT/SIGTERM arrives.
func runServer(ctx context.Context, listen string, handler http.Handler, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: listen, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("boolsearch API listening", "listen", listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down API")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func respond(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, start time.Time) {
	respond(w, status, map[string]any{"error": message, "timingMs": time.Since(start).Milliseconds()})
}

func parseIntDefault(raw string, defaultVal int) (int, error) {
	if raw == "" {
		return defaultVal, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return val, nil
}
