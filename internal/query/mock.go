// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"time"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

// MockService returns the built-in reference records after a simulated
// network delay, regardless of params. It stands in for a real backend
// during demos and tests.
type MockService struct {
	// Delay is the simulated latency. Zero answers immediately.
	Delay time.Duration

	// Now overrides the clock used for the result timestamp.
	Now func() time.Time
}

// Search waits Delay and returns the reference records. Cancelling ctx while
// waiting yields a *ServiceError.
func (m *MockService) Search(ctx context.Context, params types.SearchParams) (types.ResearchResult, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return types.ResearchResult{}, NewServiceError("mock", "Failed to search genetic data", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return types.ResearchResult{}, NewServiceError("mock", "Failed to search genetic data", err)
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	genes, qtls, markers := ReferenceData()
	return types.ResearchResult{
		Query:     params,
		Genes:     genes,
		QTLs:      qtls,
		Markers:   markers,
		Timestamp: types.FormatTimestamp(now()),
	}, nil
}

// ReferenceData returns freshly allocated copies of the reference records:
// two salt and drought tolerance genes, one salt tolerance QTL, and two
// linked markers.
func ReferenceData() ([]types.Gene, []types.QTL, []types.Marker) {
	genes := []types.Gene{
		{
			ID:          "g1",
			Name:        "DREB1A",
			Description: "Dehydration-responsive element-binding protein 1A",
			Function:    "Transcription factor involved in abiotic stress response",
			Source:      "NCBI Gene Database",
		},
		{
			ID:          "g2",
			Name:        "OsNHX1",
			Description: "Na+/H+ exchanger 1",
			Function:    "Ion transporter for salt tolerance",
			Source:      "Plant Physiology Journal",
		},
	}
	qtls := []types.QTL{
		{
			ID:               "q1",
			Name:             "qSaltTol-1",
			Description:      "Salt tolerance QTL on chromosome 1",
			Location:         "Chromosome 1: 15.2-18.7 cM",
			AssociatedTraits: []string{"Sodium exclusion", "Root growth under salt stress"},
		},
	}
	markers := []types.Marker{
		{
			ID:             "m1",
			Name:           "RM3412",
			Type:           "SSR",
			Position:       "Chromosome 1, 16.3 cM",
			AssociatedWith: []string{"qSaltTol-1"},
		},
		{
			ID:             "m2",
			Name:           "SNP-ST-142",
			Type:           "SNP",
			Position:       "Chromosome 3, 24.8 cM",
			AssociatedWith: []string{"Salt tolerance", "Ion homeostasis"},
		},
	}
	return genes, qtls, markers
}
