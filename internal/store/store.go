// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists a catalog of genes, QTLs, and markers in sqlite and
// answers searches against it. A Store is a query.Service.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

const (
	kindGene   = "gene"
	kindQTL    = "qtl"
	kindMarker = "marker"

	backendName = "store"
)

// Store manages the catalog SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger

	// now overrides the clock used for result timestamps.
	now func() time.Time
}

// NewStore opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func NewStore(cfg types.StoreConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{db: db, logger: logger, now: time.Now}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			payload TEXT NOT NULL,
			crops TEXT NOT NULL DEFAULT '',
			varieties TEXT NOT NULL DEFAULT '',
			traits TEXT NOT NULL DEFAULT '',
			geographies TEXT NOT NULL DEFAULT '',
			UNIQUE(kind, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind)`,
		`CREATE TABLE IF NOT EXISTS catalog_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary reports what an Ingest call stored.
type IngestSummary struct {
	Genes   int
	QTLs    int
	Markers int
}

// Total returns the number of records stored.
func (s IngestSummary) Total() int { return s.Genes + s.QTLs + s.Markers }

// Ingest replaces the stored catalog with c in a single transaction.
func (s *Store) Ingest(ctx context.Context, c *Catalog) (IngestSummary, error) {
	if err := c.Validate(); err != nil {
		return IngestSummary{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (kind, id, payload, crops, varieties, traits, geographies)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	insert := func(kind, id string, record any, f Facets) error {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", kind, id, err)
		}
		_, err = stmt.ExecContext(ctx, kind, id, string(payload),
			facetColumn(f.Crops), facetColumn(f.Varieties),
			facetColumn(f.Traits), facetColumn(f.Geographies))
		if err != nil {
			return fmt.Errorf("inserting %s %s: %w", kind, id, err)
		}
		return nil
	}

	var summary IngestSummary
	for _, g := range c.Genes {
		if err := insert(kindGene, g.ID, g.Gene, g.Facets); err != nil {
			return IngestSummary{}, err
		}
		summary.Genes++
	}
	for _, q := range c.QTLs {
		if err := insert(kindQTL, q.ID, q.QTL, q.Facets); err != nil {
			return IngestSummary{}, err
		}
		summary.QTLs++
	}
	for _, m := range c.Markers {
		if err := insert(kindMarker, m.ID, m.Marker, m.Facets); err != nil {
			return IngestSummary{}, err
		}
		summary.Markers++
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES ('ingested_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		types.FormatTimestamp(s.now())); err != nil {
		return IngestSummary{}, fmt.Errorf("recording ingest time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing catalog: %w", err)
	}

	s.logger.Info("catalog ingested",
		zap.Int("genes", summary.Genes),
		zap.Int("qtls", summary.QTLs),
		zap.Int("markers", summary.Markers))
	return summary, nil
}

// Stats describes the stored catalog.
type Stats struct {
	IngestSummary
	// IngestedAt is the timestamp of the last Ingest, empty if none.
	IngestedAt string
}

// Stats returns per-kind record counts and the last ingest time.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, count(*) FROM records GROUP BY kind`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting records: %w", err)
	}
	defer rows.Close()

	var st Stats
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return Stats{}, fmt.Errorf("scanning count: %w", err)
		}
		switch kind {
		case kindGene:
			st.Genes = n
		case kindQTL:
			st.QTLs = n
		case kindMarker:
			st.Markers = n
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterating counts: %w", err)
	}

	var at sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = 'ingested_at'`).Scan(&at)
	if err != nil && err != sql.ErrNoRows {
		return Stats{}, fmt.Errorf("reading ingest time: %w", err)
	}
	st.IngestedAt = at.String
	return st, nil
}

// Search returns the records whose facets match every non-blank field of
// params. A field matches when each of its terms appears in the
// corresponding facet. Blank fields do not filter; a non-blank field with no
// searchable terms matches nothing. Records come back in
// catalog order. Failures are reported as *query.ServiceError.
func (s *Store) Search(ctx context.Context, params types.SearchParams) (types.ResearchResult, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT kind, id, payload FROM records WHERE 1=1`)

	filters := []struct {
		column string
		value  string
	}{
		{"crops", params.Crop},
		{"varieties", params.Variety},
		{"traits", params.Trait},
		{"geographies", params.Geography},
	}
	for _, f := range filters {
		ts := terms(f.value)
		if len(ts) == 0 && strings.TrimSpace(f.value) != "" {
			// Only stop words or punctuation: nothing can match.
			qb.WriteString(` AND 1=0`)
		}
		for _, t := range ts {
			qb.WriteString(` AND ` + f.column + ` LIKE ?`)
			args = append(args, "% "+t+" %")
		}
	}
	qb.WriteString(` ORDER BY rowid`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return types.ResearchResult{}, query.NewServiceError(backendName, "catalog unavailable", err)
	}
	defer rows.Close()

	result := types.ResearchResult{
		Query:   params,
		Genes:   []types.Gene{},
		QTLs:    []types.QTL{},
		Markers: []types.Marker{},
	}
	for rows.Next() {
		var kind, id, payload string
		if err := rows.Scan(&kind, &id, &payload); err != nil {
			return types.ResearchResult{}, query.NewServiceError(backendName, "catalog unavailable", err)
		}
		if err := appendRecord(&result, kind, payload); err != nil {
			return types.ResearchResult{}, query.NewServiceError(backendName,
				fmt.Sprintf("catalog record %s %s is malformed", kind, id), err)
		}
	}
	if err := rows.Err(); err != nil {
		return types.ResearchResult{}, query.NewServiceError(backendName, "catalog unavailable", err)
	}

	result.Timestamp = types.FormatTimestamp(s.now())
	s.logger.Debug("catalog search",
		zap.String("crop", params.Crop),
		zap.String("variety", params.Variety),
		zap.String("trait", params.Trait),
		zap.String("geography", params.Geography),
		zap.Int("total", result.Total()))
	return result, nil
}

func appendRecord(r *types.ResearchResult, kind, payload string) error {
	switch kind {
	case kindGene:
		var g types.Gene
		if err := json.Unmarshal([]byte(payload), &g); err != nil {
			return err
		}
		r.Genes = append(r.Genes, g)
	case kindQTL:
		var q types.QTL
		if err := json.Unmarshal([]byte(payload), &q); err != nil {
			return err
		}
		r.QTLs = append(r.QTLs, q)
	case kindMarker:
		var m types.Marker
		if err := json.Unmarshal([]byte(payload), &m); err != nil {
			return err
		}
		r.Markers = append(r.Markers, m)
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	return nil
}
