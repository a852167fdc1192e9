package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

// RowSource feeds rows to emit, one call per row, in column order
type RowSource func(emit func(values []any) error) error

// ImportOptions controls a bulk load
type ImportOptions struct {
	// Columns are the entries columns to fill, e.g. uid, raw, guid, greek
	Columns []string

	// Replace truncates the table before loading
	Replace bool

	// InitSchema creates the table first when it does not exist
	InitSchema bool
}

// Importer bulk-loads the concordance with COPY
type Importer struct {
	db *DB
}

// NewImporter creates a new Importer
func NewImporter(db *DB) *Importer {
	return &Importer{db: db}
}

// Import copies every row from source inside one transaction and returns
// the number of rows written. Concurrent imports wait on a transaction-scoped
// advisory lock, so two loads never interleave.
func (i *Importer) Import(ctx context.Context, opts ImportOptions, source RowSource) (int64, error) {
	if err := validateColumns(opts.Columns); err != nil {
		return 0, err
	}

	if opts.InitSchema {
		if err := i.db.InitSchema(ctx); err != nil {
			return 0, err
		}
	}

	if err := i.db.RequireColumns(ctx, opts.Columns); err != nil {
		return 0, err
	}

	var written int64
	err := i.db.LockedTransaction(ctx, "import", func(tx *sql.Tx) error {
		if opts.Replace {
			if _, err := tx.ExecContext(ctx, "TRUNCATE "+pq.QuoteIdentifier(TableName)); err != nil {
				return fmt.Errorf("failed to truncate %s: %w", TableName, err)
			}
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn(TableName, opts.Columns...))
		if err != nil {
			return fmt.Errorf("failed to start copy: %w", err)
		}
		defer stmt.Close()

		err = source(func(values []any) error {
			if len(values) != len(opts.Columns) {
				return fmt.Errorf("%w: row has %d values, want %d", domain.ErrInvalidInput, len(values), len(opts.Columns))
			}
			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				return fmt.Errorf("failed to copy row %d: %w", written+1, err)
			}
			written++
			return nil
		})
		if err != nil {
			return err
		}

		// Flush buffered rows
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to flush copy: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

// ColumnsFor returns the distinct key and word columns of the tracks, in order
func ColumnsFor(tracks []domain.Track) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, t := range tracks {
		for _, c := range []string{t.KeyColumn, t.WordColumn} {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	return columns
}

func validateColumns(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: no columns to import", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c == "" {
			return fmt.Errorf("%w: empty column name", domain.ErrInvalidInput)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate column %q", domain.ErrInvalidInput, c)
		}
		seen[c] = true
	}
	return nil
}
