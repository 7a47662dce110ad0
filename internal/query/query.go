// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query maps search parameters to a ResearchResult. A Service is the
// single boundary between the presentation layer and whatever data source is
// configured: the built-in reference data, a remote HTTP endpoint, or the
// sqlite catalog store.
package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

// Service answers a search. Implementations do not validate params: an
// all-empty SearchParams is accepted. Failures are reported as *ServiceError
// and are never retried. Implementations hold no shared mutable state, so
// concurrent calls are independent.
type Service interface {
	Search(ctx context.Context, params types.SearchParams) (types.ResearchResult, error)
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func(ctx context.Context, params types.SearchParams) (types.ResearchResult, error)

// Search calls f(ctx, params).
func (f ServiceFunc) Search(ctx context.Context, params types.SearchParams) (types.ResearchResult, error) {
	return f(ctx, params)
}

// ServiceError reports that results could not be retrieved or parsed. It is
// distinct from a successful search that matched nothing.
type ServiceError struct {
	// Backend names the data source that failed (e.g. "http", "store").
	Backend string
	// Message is a human-readable description of the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// NewServiceError returns a ServiceError for backend with the given message
// and cause.
func NewServiceError(backend, message string, err error) *ServiceError {
	return &ServiceError{Backend: backend, Message: message, Err: err}
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsServiceError reports whether err is or wraps a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// Deps carries the collaborators New cannot build from configuration alone.
type Deps struct {
	// Client is the HTTP client for the http backend. Nil builds one from
	// cfg.HTTP.Timeout.
	Client *http.Client

	// Store is the opened catalog store, required for the store backend.
	Store Service

	Logger *zap.Logger
}

const (
	defaultMockDelay = 1500 * time.Millisecond
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "trait-explorer/0.1"
)

// New builds the Service selected by cfg.Query.Backend.
func New(cfg types.Config, deps Deps) (Service, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Query.Backend {
	case types.BackendMock, "":
		delay := cfg.Query.MockDelay
		if delay < 0 {
			delay = defaultMockDelay
		}
		return &MockService{Delay: delay}, nil

	case types.BackendHTTP:
		if cfg.Query.Endpoint == "" {
			return nil, fmt.Errorf("http backend requires query.endpoint")
		}
		client := deps.Client
		if client == nil {
			timeout := cfg.HTTP.Timeout
			if timeout <= 0 {
				timeout = defaultTimeout
			}
			client = &http.Client{Timeout: timeout}
		}
		userAgent := cfg.HTTP.UserAgent
		if userAgent == "" {
			userAgent = defaultUserAgent
		}
		return &HTTPService{
			Client:    client,
			Endpoint:  cfg.Query.Endpoint,
			UserAgent: userAgent,
			Logger:    logger,
		}, nil

	case types.BackendStore:
		if deps.Store == nil {
			return nil, fmt.Errorf("store backend requires an opened catalog store")
		}
		return deps.Store, nil

	default:
		return nil, fmt.Errorf("unknown query backend %q (want mock, http, or store)", cfg.Query.Backend)
	}
}
