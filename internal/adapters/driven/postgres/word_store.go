package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.WordStore = (*WordStore)(nil)

// TableName is the concordance table holding every track's columns
const TableName = "entries"

// WordStore implements driven.WordStore using PostgreSQL
type WordStore struct {
	db *DB
}

// NewWordStore creates a new WordStore
func NewWordStore(db *DB) *WordStore {
	return &WordStore{db: db}
}

// QueryRange returns the track's rows between the bounds, ordered by key
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

// CheckTracks verifies every track's columns exist in the entries table
func (s *WordStore) CheckTracks(ctx context.Context, tracks []domain.Track) error {
	return s.db.RequireColumns(ctx, ColumnsFor(tracks))
}

// Ping checks the server and the entries table
func (s *WordStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// rangeQuery builds the range SELECT for a track.
// PostgreSQL rounds on a plain cast, so the key is floored first to keep
// the word position fraction out of the VerseKey.
func rangeQuery(track domain.Track) string {
	key := pq.QuoteIdentifier(track.KeyColumn)
	word := pq.QuoteIdentifier(track.WordColumn)
	return fmt.Sprintf(
		"SELECT CAST(FLOOR(%s) AS BIGINT), %s FROM %s WHERE %s BETWEEN $1 AND $2 ORDER BY %s",
		key, word, pq.QuoteIdentifier(TableName), key, key,
	)
}
