// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "db", "catalog.db")}, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { s.Close() })
	return s
}

func ingestTestCatalog(t *testing.T, s *Store) {
	t.Helper()
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)
	_, err = s.Ingest(context.Background(), c)
	require.NoError(t, err)
}

func ids(r types.ResearchResult) []string {
	var out []string
	for _, g := range r.Genes {
		out = append(out, g.ID)
	}
	for _, q := range r.QTLs {
		out = append(out, q.ID)
	}
	for _, m := range r.Markers {
		out = append(out, m.ID)
	}
	return out
}

// --- terms ---

func TestTerms(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Drought tolerance", []string{"drought", "toler"}},
		{"drought-tolerant", []string{"drought", "toler"}},
		{"  Rice ", []string{"rice"}},
		{"Root growth in the salt", []string{"root", "growth", "salt"}},
		{"IR64", []string{"ir64"}},
		{"", []string{}},
		{"   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, terms(tt.in)); diff != "" {
				t.Errorf("terms(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestFacetColumn(t *testing.T) {
	assert.Equal(t, " south asia southeast asia ", facetColumn([]string{"South Asia", "Southeast Asia"}))
	assert.Equal(t, "", facetColumn(nil))
}

// --- catalog ---

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)
	assert.Len(t, c.Genes, 3)
	assert.Len(t, c.QTLs, 2)
	assert.Len(t, c.Markers, 3)
	assert.Equal(t, 8, c.Len())

	assert.Equal(t, "DREB1A", c.Genes[0].Name)
	assert.Equal(t, []string{"Rice", "Wheat"}, c.Genes[0].Crops)
	assert.Equal(t, []string{"Sodium exclusion", "Root growth under salt stress"}, c.QTLs[0].AssociatedTraits)
	assert.Equal(t, []string{"qSaltTol-1"}, c.Markers[0].AssociatedWith)
}

func TestLoadCatalogErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), "reading catalog"},
		{"bad yaml", write("bad.yaml", "genes: [unclosed"), "parsing catalog"},
		{"missing id", write("noid.yaml", "genes:\n  - name: X\n"), "has no id"},
		{"missing name", write("noname.yaml", "qtls:\n  - id: q1\n"), "has no name"},
		{"duplicate id", write("dup.yaml", "markers:\n  - {id: m1, name: A, type: SSR}\n  - {id: m1, name: B, type: SNP}\n"), "duplicate marker id m1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSameIDAcrossKindsIsAllowed(t *testing.T) {
	c := Catalog{
		Genes:   []CatalogGene{{Gene: types.Gene{ID: "x1", Name: "A"}}},
		Markers: []CatalogMarker{{Marker: types.Marker{ID: "x1", Name: "B", Type: "SNP"}}},
	}
	assert.NoError(t, c.Validate())
}

// --- ingest ---

func TestIngestAndStats(t *testing.T) {
	s := testStore(t)
	ingestTestCatalog(t, s)

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.Genes)
	assert.Equal(t, 2, st.QTLs)
	assert.Equal(t, 3, st.Markers)
	assert.Equal(t, 8, st.Total())
	assert.Equal(t, "2026-10-18T09:00:00.000Z", st.IngestedAt)
}

func TestIngestReplacesCatalog(t *testing.T) {
	s := testStore(t)
	ingestTestCatalog(t, s)

	small := &Catalog{
		Genes: []CatalogGene{{
			Gene:   types.Gene{ID: "g9", Name: "TaDREB2", Description: "Wheat DREB"},
			Facets: Facets{Crops: []string{"Wheat"}},
		}},
	}
	summary, err := s.Ingest(context.Background(), small)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total())

	got, err := s.Search(context.Background(), types.SearchParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"g9"}, ids(got))
}

func TestStatsEmptyStore(t *testing.T) {
	st, err := testStore(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Total())
	assert.Empty(t, st.IngestedAt)
}

// --- search ---

func TestSearch(t *testing.T) {
	s := testStore(t)
	ingestTestCatalog(t, s)

	tests := []struct {
		name   string
		params types.SearchParams
		want   []string
	}{
		{"crop", types.SearchParams{Crop: "Rice"}, []string{"g1", "g2", "g3", "q1", "q2", "m1", "m2"}},
		{"crop case and space", types.SearchParams{Crop: "  rice "}, []string{"g1", "g2", "g3", "q1", "q2", "m1", "m2"}},
		{"trait stem", types.SearchParams{Trait: "drought"}, []string{"g1", "q2"}},
		{"trait inflection", types.SearchParams{Trait: "drought-tolerant"}, []string{"g1", "q2"}},
		{"variety", types.SearchParams{Variety: "IR64"}, []string{"g1", "q1"}},
		{"combined fields", types.SearchParams{Crop: "Wheat", Trait: "height"}, []string{"m3"}},
		{"geography", types.SearchParams{Geography: "Southeast Asia"}, []string{"g2", "g3"}},
		{"all blank returns everything", types.SearchParams{Crop: " "}, []string{"g1", "g2", "g3", "q1", "q2", "m1", "m2", "m3"}},
		{"no match", types.SearchParams{Geography: "Antarctica"}, nil},
		{"only stop words", types.SearchParams{Trait: "the"}, nil},
		{"only punctuation", types.SearchParams{Crop: "Rice", Trait: "???"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.params, got.Query)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	s := testStore(t)
	ingestTestCatalog(t, s)

	got, err := s.Search(context.Background(), types.SearchParams{Trait: "frost"})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total())
	assert.NotNil(t, got.Genes)
	assert.NotNil(t, got.QTLs)
	assert.NotNil(t, got.Markers)
	assert.Equal(t, "2026-10-18T09:00:00.000Z", got.Timestamp)
}

func TestSearchDecodesRecords(t *testing.T) {
	s := testStore(t)
	ingestTestCatalog(t, s)

	got, err := s.Search(context.Background(), types.SearchParams{Trait: "salt"})
	require.NoError(t, err)
	require.Len(t, got.QTLs, 1)

	want := types.QTL{
		ID:               "q1",
		Name:             "qSaltTol-1",
		Description:      "Salt tolerance QTL on chromosome 1",
		Location:         "Chromosome 1: 15.2-18.7 cM",
		AssociatedTraits: []string{"Sodium exclusion", "Root growth under salt stress"},
	}
	if diff := cmp.Diff(want, got.QTLs[0]); diff != "" {
		t.Errorf("QTL mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchMalformedRecord(t *testing.T) {
	s := testStore(t)
	ingestTestCatalog(t, s)

	_, err := s.db.Exec(`UPDATE records SET payload = '{not json' WHERE kind = 'gene' AND id = 'g1'`)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), types.SearchParams{Crop: "Rice"})
	var se *query.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "store", se.Backend)
	assert.Contains(t, se.Message, "gene g1 is malformed")
}

func TestSearchClosedDatabase(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Close())

	_, err := s.Search(context.Background(), types.SearchParams{Crop: "Rice"})
	var se *query.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "catalog unavailable", se.Message)
}

func TestStoreIsAQueryService(t *testing.T) {
	var _ query.Service = (*Store)(nil)
}

func TestNewStoreEmptyPath(t *testing.T) {
	_, err := NewStore(types.StoreConfig{}, nil)
	assert.Error(t, err)
}
