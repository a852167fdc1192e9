// Package sqlite serves the concordance from a read-only SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
)

// Ensure WordStore implements driven.WordStore
var _ driven.WordStore = (*WordStore)(nil)

// TableName is the concordance table holding every track's columns
const TableName = "entries"

// WordStore runs range queries against concordance.db
type WordStore struct {
	db *sql.DB
}

// Open opens path read-only. The file must already exist.
func Open(ctx context.Context, path string) (*WordStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: concordance %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	return &WordStore{db: db}, nil
}

// FirstTable returns the name of the first table in the schema, a cheap
// check that the file really is a SQLite database
func (s *WordStore) FirstTable(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' LIMIT 1").Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return name, nil
}

// CheckTracks verifies every track's columns exist in the entries table
func (s *WordStore) CheckTracks(ctx context.Context, tracks []domain.Track) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", TableName)
	if err != nil {
		return fmt.Errorf("%w: list columns: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("%w: list columns: %v", domain.ErrStoreUnavailable, err)
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: list columns: %v", domain.ErrStoreUnavailable, err)
	}

	var missing []string
	for _, t := range tracks {
		for _, c := range []string{t.KeyColumn, t.WordColumn} {
			if !have[c] {
				missing = append(missing, t.Name+"."+c)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s has no column for %s", domain.ErrStoreUnavailable, TableName, strings.Join(missing, ", "))
	}
	return nil
}

// QueryRange returns the track's rows between the bounds, ordered by key.
// Keys are stored with a fractional word position, so the integer cast
// yields the VerseKey.
func (s *WordStore) QueryRange(ctx context.Context, track domain.Track, bounds domain.RangeBounds) ([]domain.WordRow, error) {
	rows, err := s.db.QueryContext(ctx, rangeQuery(track), bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("%w: range query on %s: %v", domain.ErrStoreUnavailable, track.Name, err)
	}
	defer rows.Close()

	var result []domain.WordRow
	for rows.Next() {
		var (
			key  int64
			word sql.NullString
		)
		if err := rows.Scan(&key, &word); err != nil {
			return nil, fmt.Errorf("%w: scan %s row: %v", domain.ErrStoreUnavailable, track.Name, err)
		}
		row := domain.WordRow{Key: domain.VerseKey(key)}
		if word.Valid {
			w := word.String
			row.Word = &w
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s rows: %v", domain.ErrStoreUnavailable, track.Name, err)
	}

	return result, nil
}

// Export streams the named columns of every row to fn, ordered by rowid
func (s *WordStore) Export(ctx context.Context, columns []string, fn func(values []any) error) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: no columns to export", domain.ErrInvalidInput)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdentifier(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(quoted, ", "), quoteIdentifier(TableName))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: export: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("%w: export scan: %v", domain.ErrStoreUnavailable, err)
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Ping checks if the database file is still readable
func (s *WordStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the database
func (s *WordStore) Close() error {
	return s.db.Close()
}

func rangeQuery(track domain.Track) string {
	key := quoteIdentifier(track.KeyColumn)
	word := quoteIdentifier(track.WordColumn)
	return fmt.Sprintf(
		"SELECT CAST(%s AS INTEGER), %s FROM %s WHERE %s BETWEEN ? AND ? ORDER BY %s",
		key, word, quoteIdentifier(TableName), key, key,
	)
}

// quoteIdentifier wraps name in backticks. SQLite falls back to a string
// literal for a double-quoted name that matches no column; a backticked
// one always fails with "no such column".
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
