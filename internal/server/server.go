// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the query service over HTTP so other front ends can
// search without linking the Go packages.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/trait-explorer/internal/httputil"
	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

// maxBodyBytes bounds the size of a search request body.
const maxBodyBytes = 64 << 10

// New returns a handler serving:
//
//	POST /api/search  SearchParams in, ResearchResult out
//	GET  /healthz     liveness
//	GET  /metrics     prometheus exposition from gatherer (omitted if nil)
//
// Every request is logged with its X-Request-ID, which is generated when the
// client does not send one.
func New(svc query.Service, logger *zap.Logger, gatherer prometheus.Gatherer) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{svc: svc, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", h.search)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return h.logRequests(mux)
}

type handler struct {
	svc    query.Service
	logger *zap.Logger
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	var params types.SearchParams
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid search parameters: "+err.Error())
		return
	}

	result, err := h.svc.Search(r.Context(), params)
	if err != nil {
		var se *query.ServiceError
		msg := "search failed"
		if errors.As(err, &se) {
			msg = se.Message
		}
		h.logger.Warn("search failed",
			zap.String("request_id", r.Header.Get(query.RequestIDHeader)),
			zap.Error(err))
		httputil.WriteError(w, http.StatusBadGateway, msg)
		return
	}
	if result.Genes == nil {
		result.Genes = []types.Gene{}
	}
	if result.QTLs == nil {
		result.QTLs = []types.QTL{}
	}
	if result.Markers == nil {
		result.Markers = []types.Marker{}
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(query.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(query.RequestIDHeader, id)
		}
		w.Header().Set(query.RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
