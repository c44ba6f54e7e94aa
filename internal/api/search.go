package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/adscout-br/adscout/internal/acquire"
	"github.com/adscout-br/adscout/internal/middleware"
	"github.com/adscout-br/adscout/internal/models"
	"github.com/adscout-br/adscout/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("adscout")

// blockedResponse is the out-of-band outcome for an anti-automation
// challenge. It is not an error and not an empty result.
type blockedResponse struct {
	NeedsManualSolve bool   `json:"needs_manual_solve"`
	Message          string `json:"message"`
}

// SearchHandler handles POST /search: validate, acquire, build, rank.
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "SearchHandler",
		trace.WithAttributes(
			attribute.String("http.method", "POST"),
			attribute.String("http.route", "/search"),
		))
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "search"
	const method = "POST"

	var opts models.SearchOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		logger.Error("decode request", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		logger.Warn("invalid search options", zap.Error(err))
		s.Metrics.IncrementRequests(endpoint, method, "400")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	searchID := uuid.NewString()
	logger = logger.With(zap.String("search_id", searchID))
	span.SetAttributes(
		attribute.String("search_id", searchID),
		attribute.String("search.depth", string(opts.Depth)),
		attribute.String("search.backend", s.Acquirer.Name()),
	)

	logger.Info("search started",
		zap.String("query", opts.Query),
		zap.String("depth", string(opts.Depth)),
		zap.String("backend", s.Acquirer.Name()))

	frags, err := s.Acquirer.Fetch(ctx, opts.Query, opts.Depth)
	if errors.Is(err, acquire.ErrBlocked) {
		logger.Warn("anti-automation challenge detected")
		span.SetAttributes(attribute.String("search.result", "blocked"))
		s.Metrics.IncrementBlocked()
		s.Metrics.IncrementSearches(string(opts.Depth), "blocked")
		s.Metrics.IncrementRequests(endpoint, method, "200")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		writeJSON(w, http.StatusOK, blockedResponse{
			NeedsManualSolve: true,
			Message:          "challenge detected; run with HEADLESS=false and solve it manually",
		})
		return
	}
	if err != nil {
		logger.Error("acquisition failed", zap.Error(err))
		span.SetAttributes(attribute.String("search.result", "failed"))
		s.Metrics.IncrementSearches(string(opts.Depth), "failed")
		s.Metrics.IncrementRequests(endpoint, method, "502")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "acquisition failed", http.StatusBadGateway)
		return
	}
	s.Metrics.AddFragments(s.Acquirer.Name(), len(frags))

	records := make([]models.AdRecord, 0, len(frags))
	for i, frag := range frags {
		rec, ok := s.builder.Build(frag)
		if !ok {
			logger.Debug("fragment discarded", zap.Int("index", i))
			s.Metrics.IncrementFragmentDiscards()
			continue
		}
		records = append(records, rec)
	}

	results := s.pipeline.Run(records, opts)

	outcome := "ok"
	if len(results) == 0 {
		outcome = "empty"
	}
	span.SetAttributes(
		attribute.String("search.result", outcome),
		attribute.Int("search.fragments", len(frags)),
		attribute.Int("search.results", len(results)),
	)
	if observability.ShouldSample(observability.GetSamplingRate()) {
		logger.Info("search finished",
			zap.Int("fragments", len(frags)),
			zap.Int("results", len(results)))
	}
	s.Metrics.IncrementSearches(string(opts.Depth), outcome)
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
