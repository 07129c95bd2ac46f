// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analytics answers aggregate patent questions from a local SQLite
// mirror of the Google Patents public dataset (publications keyed by
// publication number, with claims and description text). The driver is
// synchronous, so all queries pass through a small bounded pool.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/patent-gateway/internal/envelope"
	"github.com/pdiddy/patent-gateway/internal/validate"
	"github.com/pdiddy/patent-gateway/pkg/types"
)

// Store runs parameterized queries against the publications dataset.
type Store struct {
	db         *sql.DB
	pool       *semaphore.Weighted
	timeout    time.Duration
	maxResults int
}

// NewStore opens or creates the analytics database and its schema.
func NewStore(cfg types.AnalyticsConfig) (*Store, error) {
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("analytics database path is required")
	}
	db, err := sql.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening analytics database: %w", err)
	}

	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = 4
	}
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 25
	}

	s := &Store{
		db:         db,
		pool:       semaphore.NewWeighted(int64(workers)),
		timeout:    timeout,
		maxResults: maxResults,
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating analytics schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			publication_number TEXT PRIMARY KEY,
			country_code TEXT,
			title TEXT,
			abstract TEXT,
			publication_date TEXT,
			assignee TEXT,
			inventor TEXT,
			cpc_codes TEXT,
			claims TEXT,
			description TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_assignee ON publications(assignee)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_inventor ON publications(inventor)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_date ON publications(publication_date)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='publications_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE publications_fts USING fts5(
				title, abstract, content=publications, content_rowid=rowid)`,
			`CREATE TRIGGER publications_ai AFTER INSERT ON publications BEGIN
				INSERT INTO publications_fts(rowid, title, abstract)
				VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER publications_ad AFTER DELETE ON publications BEGIN
				INSERT INTO publications_fts(publications_fts, rowid, title, abstract)
				VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER publications_au AFTER UPDATE ON publications BEGIN
				INSERT INTO publications_fts(publications_fts, rowid, title, abstract)
				VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO publications_fts(rowid, title, abstract)
				VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Publication is one row of the local dataset.
type Publication struct {
	PublicationNumber string
	CountryCode       string
	Title             string
	Abstract          string
	PublicationDate   string // YYYY-MM-DD
	Assignee          string
	Inventor          string
	CPCCodes          string // comma-separated
	Claims            string
	Description       string
}

// Insert adds or replaces one publication row.
func (s *Store) Insert(ctx context.Context, p Publication) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO publications
			(publication_number, country_code, title, abstract, publication_date,
			 assignee, inventor, cpc_codes, claims, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PublicationNumber, p.CountryCode, p.Title, p.Abstract, p.PublicationDate,
		p.Assignee, p.Inventor, p.CPCCodes, p.Claims, p.Description)
	if err != nil {
		return fmt.Errorf("inserting publication %s: %w", p.PublicationNumber, err)
	}
	return nil
}

// query acquires a pool slot, runs one parameterized query under the
// configured timeout, and returns the rows as maps.
func (s *Store) query(ctx context.Context, stmt string, args ...any) ([]map[string]any, error) {
	if err := s.pool.Acquire(ctx, 1); err != nil {
		return nil, envelope.FromErr(err, "waiting for analytics worker")
	}
	defer s.pool.Release(1)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, envelope.FromErr(err, "running analytics query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, envelope.FromErr(err, "reading analytics columns")
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, envelope.FromErr(err, "scanning analytics row")
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, envelope.FromErr(err, "iterating analytics rows")
	}
	return out, nil
}

func (s *Store) limit(n int) int {
	if n <= 0 || n > s.maxResults {
		return s.maxResults
	}
	return n
}

const summaryColumns = `publication_number, country_code, title, abstract,
	publication_date, assignee, inventor, cpc_codes`

// SearchPatents runs a full-text keyword search over titles and abstracts.
func (s *Store) SearchPatents(ctx context.Context, keyword string, limit int) ([]map[string]any, error) {
	kw, err := validate.Query(keyword)
	if err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT `+summaryColumns+`
		 FROM publications
		 WHERE rowid IN (SELECT rowid FROM publications_fts WHERE publications_fts MATCH ?)
		 ORDER BY publication_date DESC
		 LIMIT ?`,
		ftsQuote(kw), s.limit(limit))
}

// GetPatentByNumber fetches one publication's summary row.
func (s *Store) GetPatentByNumber(ctx context.Context, publicationNumber string) (map[string]any, error) {
	num, err := validate.Query(publicationNumber)
	if err != nil {
		return nil, err
	}
	rows, err := s.query(ctx,
		`SELECT `+summaryColumns+` FROM publications WHERE publication_number = ?`, num)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, envelope.NotFound("Publication", num)
	}
	return rows[0], nil
}

// GetPatentClaims returns the claims text for one publication.
func (s *Store) GetPatentClaims(ctx context.Context, publicationNumber string) (map[string]any, error) {
	return s.textColumn(ctx, publicationNumber, "claims")
}

// GetPatentDescription returns the description text for one publication.
func (s *Store) GetPatentDescription(ctx context.Context, publicationNumber string) (map[string]any, error) {
	return s.textColumn(ctx, publicationNumber, "description")
}

func (s *Store) textColumn(ctx context.Context, publicationNumber, column string) (map[string]any, error) {
	num, err := validate.Query(publicationNumber)
	if err != nil {
		return nil, err
	}
	rows, err := s.query(ctx,
		`SELECT publication_number, `+column+` FROM publications WHERE publication_number = ?`, num)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, envelope.NotFound("Publication", num)
	}
	return rows[0], nil
}

// SearchByInventor lists publications naming an inventor.
func (s *Store) SearchByInventor(ctx context.Context, name string, limit int) ([]map[string]any, error) {
	n, err := validate.Query(name)
	if err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT `+summaryColumns+`
		 FROM publications WHERE inventor LIKE ?
		 ORDER BY publication_date DESC LIMIT ?`,
		"%"+n+"%", s.limit(limit))
}

// SearchByAssignee lists publications assigned to an organization.
func (s *Store) SearchByAssignee(ctx context.Context, name string, limit int) ([]map[string]any, error) {
	n, err := validate.Query(name)
	if err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT `+summaryColumns+`
		 FROM publications WHERE assignee LIKE ?
		 ORDER BY publication_date DESC LIMIT ?`,
		"%"+n+"%", s.limit(limit))
}

// SearchByCPC lists publications carrying a CPC classification prefix.
func (s *Store) SearchByCPC(ctx context.Context, cpcCode string, limit int) ([]map[string]any, error) {
	code, err := validate.Query(cpcCode)
	if err != nil {
		return nil, err
	}
	return s.query(ctx,
		`SELECT `+summaryColumns+`
		 FROM publications WHERE cpc_codes LIKE ?
		 ORDER BY publication_date DESC LIMIT ?`,
		"%"+code+"%", s.limit(limit))
}

// ftsQuote wraps each term so FTS5 treats user input as plain words rather
// than query syntax.
func ftsQuote(s string) string {
	terms := strings.Fields(s)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}
