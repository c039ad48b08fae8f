// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps an SQL index of generated templates so entries can
// be searched across files. SQLite is the default backend; PostgreSQL is
// supported for shared catalogs.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/prefy/pkg/types"
)

const (
	defaultMaxResults = 20
	defaultDBFile     = "catalog.db"
)

// Record is one cataloged template.
type Record struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Source     string `db:"source" json:"source"`
	Title      string `db:"title" json:"title,omitempty"`
	Categories int    `db:"categories" json:"categories"`
	Entries    int    `db:"entries" json:"entries"`
	AddedAt    string `db:"added_at" json:"added_at"`
}

// Store is a template catalog backed by database/sql.
type Store struct {
	db         *sqlx.DB
	sb         squirrel.StatementBuilderType
	maxResults int
}

// DefaultDSN returns the default SQLite catalog path,
// ~/.config/prefy/catalog.db, falling back to the working directory.
func DefaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDBFile
	}
	return filepath.Join(home, ".config", "prefy", defaultDBFile)
}

// Open connects to the catalog described by cfg and creates the schema if
// it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = types.DriverSQLite
	}
	dsn := cfg.DSN

	switch driver {
	case types.DriverSQLite:
		if dsn == "" {
			dsn = DefaultDSN()
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
		dsn += "?_foreign_keys=on"
	case types.DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("catalog dsn is required for driver %s", driver)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog driver %q: use sqlite3 or postgres", driver)
	}

	db, err := sqlx.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := New(db, cfg.MaxResults)
	if err := s.createSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	log.Debug("opened catalog", "driver", driver)
	return s, nil
}

// New wraps an open database. The placeholder style follows the driver:
// $n for postgres, ? otherwise.
func New(db *sqlx.DB, maxResults int) *Store {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	if db.DriverName() == string(types.DriverPostgres) {
		sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return &Store{db: db, sb: sb, maxResults: maxResults}
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			categories INTEGER NOT NULL,
			entries INTEGER NOT NULL,
			added_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			category_id TEXT NOT NULL,
			category TEXT NOT NULL,
			entry_id TEXT NOT NULL,
			entry TEXT NOT NULL,
			properties TEXT NOT NULL,
			PRIMARY KEY (template_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_template ON entries(template_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add records t under name, keyed by its source path. Adding the same
// source again replaces the earlier record and its entries.
func (s *Store) Add(ctx context.Context, name, source string, t types.Template) (Record, error) {
	rec := Record{
		ID:         uuid.NewString(),
		Name:       name,
		Source:     source,
		Title:      t.ExportTitle,
		Categories: len(t.Categories),
		Entries:    t.TotalEntries(),
		AddedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.removeSource(ctx, tx, source); err != nil {
		return Record{}, err
	}

	insTemplate := s.sb.Insert("templates").
		Columns("id", "name", "source", "title", "categories", "entries", "added_at").
		Values(rec.ID, rec.Name, rec.Source, rec.Title, rec.Categories, rec.Entries, rec.AddedAt)
	if err := execBuilder(ctx, tx, insTemplate); err != nil {
		return Record{}, fmt.Errorf("inserting template %s: %w", name, err)
	}

	if rec.Entries > 0 {
		insEntries := s.sb.Insert("entries").
			Columns("template_id", "position", "category_id", "category", "entry_id", "entry", "properties")
		pos := 0
		for _, c := range t.Categories {
			props, err := json.Marshal(c.Properties)
			if err != nil {
				return Record{}, fmt.Errorf("encoding properties for %s: %w", c.ID, err)
			}
			for _, e := range c.Entries {
				insEntries = insEntries.Values(rec.ID, pos, c.ID, c.Name, e.ID, e.Name, string(props))
				pos++
			}
		}
		if err := execBuilder(ctx, tx, insEntries); err != nil {
			return Record{}, fmt.Errorf("inserting entries for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("committing template %s: %w", name, err)
	}
	log.Debug("cataloged template", "name", name, "entries", rec.Entries)
	return rec, nil
}

func (s *Store) removeSource(ctx context.Context, tx *sqlx.Tx, source string) error {
	delEntries := s.sb.Delete("entries").
		Where("template_id IN (SELECT id FROM templates WHERE source = ?)", source)
	if err := execBuilder(ctx, tx, delEntries); err != nil {
		return fmt.Errorf("removing previous entries for %s: %w", source, err)
	}
	delTemplate := s.sb.Delete("templates").Where(squirrel.Eq{"source": source})
	if err := execBuilder(ctx, tx, delTemplate); err != nil {
		return fmt.Errorf("removing previous template for %s: %w", source, err)
	}
	return nil
}

// Remove deletes the template recorded for source. It reports whether a
// record existed.
func (s *Store) Remove(ctx context.Context, source string) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := s.sb.Select("COUNT(*)").From("templates").
		Where(squirrel.Eq{"source": source}).ToSql()
	if err != nil {
		return false, fmt.Errorf("building query: %w", err)
	}
	var n int
	if err := tx.GetContext(ctx, &n, query, args...); err != nil {
		return false, fmt.Errorf("looking up %s: %w", source, err)
	}
	if n == 0 {
		return false, nil
	}

	if err := s.removeSource(ctx, tx, source); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing removal of %s: %w", source, err)
	}
	return true, nil
}

// List returns every cataloged template ordered by name.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	query, args, err := s.sb.
		Select("id", "name", "source", "title", "categories", "entries", "added_at").
		From("templates").
		OrderBy("name", "source").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var records []Record
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return records, nil
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func execBuilder(ctx context.Context, e execer, b sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("building statement: %w", err)
	}
	_, err = e.ExecContext(ctx, query, args...)
	return err
}
