// Package httpapi exposes scenario conversions over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wippyai/arraybridge/config"
	"github.com/wippyai/arraybridge/convert"
	"github.com/wippyai/arraybridge/internal/scenario"
)

const (
	maxBodyBytes = 1 << 20
	// maxValues bounds the scalars one request may build.
	maxValues = 1 << 22
)

// Options wires the server's collaborators.
type Options struct {
	Builder   *scenario.Builder
	Converter *convert.Converter
	// Gatherer serves /metrics. Defaults to the global registry.
	Gatherer    prometheus.Gatherer
	Logger      *zap.Logger
	CORSOrigins []string
}

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	Arrays []config.ArraySpec `json:"arrays"`
}

// ConvertResponse is the reply to POST /v1/convert.
type ConvertResponse struct {
	Results []scenario.Result `json:"results"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type server struct {
	builder *scenario.Builder
	conv    *convert.Converter
	log     *zap.Logger
	// mu serializes conversions on the shared device.
	mu sync.Mutex
}

// NewMux builds the HTTP handler.
func NewMux(opts Options) http.Handler {
	s := &server{builder: opts.Builder, conv: opts.Converter, log: opts.Logger}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.conv == nil {
		s.conv = convert.New(convert.DefaultOptions())
	}
	if s.builder == nil {
		s.builder = scenario.NewBuilder(nil)
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Post("/v1/convert", s.handleConvert)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	return r
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Arrays) == 0 {
		writeJSONError(w, http.StatusBadRequest, "arrays is required")
		return
	}

	cfg := config.Config{Arrays: req.Arrays}
	cfg.ApplyDefaults()
	total := 0
	for _, a := range cfg.Arrays {
		if err := a.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		cells, ok := a.Cells(maxValues)
		if !ok || total > maxValues-cells {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request builds too many values")
			return
		}
		total += cells
	}

	s.mu.Lock()
	results := s.builder.Run(s.conv, cfg.Arrays)
	s.mu.Unlock()
	defer func() {
		for i := range results {
			results[i].Release()
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ConvertResponse{Results: results}); err != nil {
		s.log.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Code: status})
}
