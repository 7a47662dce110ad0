// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make or
// serve network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "trait-explorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// QueryBackend identifies the data source behind the query service.
type QueryBackend string

const (
	BackendMock  QueryBackend = "mock"
	BackendHTTP  QueryBackend = "http"
	BackendStore QueryBackend = "store"
)

// QueryConfig holds settings for the query service.
type QueryConfig struct {
	// Backend selects the data source: mock, http, or store.
	Backend QueryBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// MockDelay is the simulated latency of the mock backend (default 1.5s).
	MockDelay time.Duration `json:"mock_delay" yaml:"mock_delay" mapstructure:"mock_delay"`

	// Endpoint is the search URL used by the http backend
	// (e.g. "http://localhost:8080/api/search").
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
}

// StoreConfig holds settings for the sqlite catalog store.
type StoreConfig struct {
	// Path is the sqlite database file (default "data/catalog.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LoggingConfig holds settings for the zap logger.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// File receives logs from the interactive UI, which owns the terminal.
	// Empty discards them.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// OutputFormat selects how search results are printed.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// DisplayConfig holds settings for rendering results.
type DisplayConfig struct {
	// Format selects the output format: text, markdown, or json.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all component configurations.
type Config struct {
	Query   QueryConfig   `json:"query" yaml:"query" mapstructure:"query"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Serve   ServeConfig   `json:"serve" yaml:"serve" mapstructure:"serve"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	Display DisplayConfig `json:"display" yaml:"display" mapstructure:"display"`
}
