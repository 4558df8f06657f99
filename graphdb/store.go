// Package graphdb persists the circular catalog as a relational graph in
// SQLite: circulars, authors and collaborations are node tables, and the
// authored, member_of and reported_by tables carry the edges between
// them. Every write records its provenance (creator tag, timestamp and
// ingestion batch) so a bad batch can be purged wholesale.
package graphdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database holding the circular graph.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the graph database at the given path and
// initialises the schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for callers that need raw access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Schema returns the CREATE statements of every user table and index, as
// recorded in sqlite_master. The text is what query generation prompts
// are grounded on, so it reflects the live database rather than the DDL
// constants compiled into this package.
func (s *Store) Schema(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sql FROM sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid`)
	if err != nil {
		return "", fmt.Errorf("reading sqlite_master: %w", err)
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var ddl string
		if err := rows.Scan(&ddl); err != nil {
			return "", fmt.Errorf("scanning schema row: %w", err)
		}
		parts = append(parts, strings.TrimSpace(ddl)+";")
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating schema rows: %w", err)
	}
	return strings.Join(parts, "\n\n"), nil
}

// Run executes a single query inside a read transaction and returns its
// rows as column-name keyed maps. Parameters bind by name.
func (s *Store) Run(ctx context.Context, queryText string, params map[string]any) ([]map[string]any, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, fmt.Errorf("graphdb: empty query")
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	args := make([]any, 0, len(params))
	for name, value := range params {
		args = append(args, sql.Named(name, value))
	}
	rows, err := tx.QueryContext(ctx, queryText, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		record := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, tx.Commit()
}
