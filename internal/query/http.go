// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/trait-explorer/internal/httputil"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

// RequestIDHeader carries the correlation ID of a search request.
const RequestIDHeader = "X-Request-ID"

// HTTPService posts SearchParams as JSON to a remote endpoint and decodes the
// ResearchResult it answers with. The remote side may be another
// trait-explorer running `serve`.
type HTTPService struct {
	Client *http.Client

	// Endpoint is the full search URL (e.g. "http://localhost:8080/api/search").
	Endpoint string

	UserAgent string

	// Now overrides the clock used when the response carries no timestamp.
	Now func() time.Time

	Logger *zap.Logger
}

// Search performs one POST to Endpoint. The echoed query is always params,
// whatever the remote side returned.
func (s *HTTPService) Search(ctx context.Context, params types.SearchParams) (types.ResearchResult, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reqID := uuid.NewString()

	header := http.Header{}
	header.Set(RequestIDHeader, reqID)
	if s.UserAgent != "" {
		header.Set("User-Agent", s.UserAgent)
	}

	var body remoteResult
	err := httputil.DoJSON(ctx, s.Client, http.MethodPost, s.Endpoint, params, &body, header)
	if err == nil {
		err = body.validate()
	}
	if err != nil {
		logger.Warn("remote search failed",
			zap.String("request_id", reqID),
			zap.String("endpoint", s.Endpoint),
			zap.Error(err))
		return types.ResearchResult{}, classifyHTTPError(err)
	}

	result := types.ResearchResult{
		Query:     params,
		Genes:     *body.Genes,
		QTLs:      *body.QTLs,
		Markers:   *body.Markers,
		Timestamp: body.Timestamp,
	}
	if result.Timestamp == "" {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		result.Timestamp = types.FormatTimestamp(now())
	}

	logger.Debug("remote search completed",
		zap.String("request_id", reqID),
		zap.Int("total", result.Total()))
	return result, nil
}

// remoteResult is the wire form of a search response. The record lists are
// pointers so that a missing or null list can be told apart from an empty one.
type remoteResult struct {
	Genes     *[]types.Gene   `json:"genes"`
	QTLs      *[]types.QTL    `json:"qtls"`
	Markers   *[]types.Marker `json:"markers"`
	Timestamp string          `json:"timestamp"`
}

// validate rejects bodies that decoded cleanly but are not search results,
// such as null, {} or {"error": "..."}.
func (r *remoteResult) validate() error {
	var missing []string
	if r.Genes == nil {
		missing = append(missing, "genes")
	}
	if r.QTLs == nil {
		missing = append(missing, "qtls")
	}
	if r.Markers == nil {
		missing = append(missing, "markers")
	}
	if len(missing) > 0 {
		return &httputil.DecodeError{Err: fmt.Errorf("response has no %s list", strings.Join(missing, ", "))}
	}
	return nil
}

func classifyHTTPError(err error) *ServiceError {
	var (
		statusErr *httputil.StatusError
		decodeErr *httputil.DecodeError
	)
	switch {
	case errors.As(err, &statusErr):
		return NewServiceError("http", fmt.Sprintf("search backend returned HTTP %d", statusErr.StatusCode), err)
	case errors.As(err, &decodeErr):
		return NewServiceError("http", "search backend returned malformed data", err)
	default:
		return NewServiceError("http", "search backend unreachable", err)
	}
}
