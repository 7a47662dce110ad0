// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/internal/store"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

// openService builds the configured query service. The returned close
// function releases the catalog store when the store backend is selected.
// When reg is non-nil the service is instrumented with search metrics.
func openService(cfg types.Config, reg prometheus.Registerer) (query.Service, func(), error) {
	closeFn := func() {}
	deps := query.Deps{Logger: logger}

	if cfg.Query.Backend == types.BackendStore {
		s, err := store.NewStore(cfg.Store, logger)
		if err != nil {
			return nil, nil, err
		}
		deps.Store = s
		closeFn = func() { s.Close() }
	}

	svc, err := query.New(cfg, deps)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	if reg != nil {
		backend := string(cfg.Query.Backend)
		if backend == "" {
			backend = string(types.BackendMock)
		}
		svc = query.NewMetrics(reg).Wrap(svc, backend)
	}
	return svc, closeFn, nil
}
