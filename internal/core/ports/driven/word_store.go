package driven

import (
	"context"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

// WordStore is the read-only concordance (SQLite or PostgreSQL).
// Implementations wrap their failures with domain.ErrStoreUnavailable.
type WordStore interface {
	// QueryRange returns every row whose track key lies in [bounds.Start, bounds.End],
	// ascending by key, with the key cast to an integer and the track's word column
	QueryRange(ctx context.Context, track domain.Track, bounds domain.RangeBounds) ([]domain.WordRow, error)

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error
}
