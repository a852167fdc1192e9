package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven/mocks"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func matthewOne() domain.RangeBounds {
	return domain.EncodeRange(domain.Reference{Book: 40, ChapterStart: 1, VerseStart: 1, ChapterEnd: 1, VerseEnd: 3})
}

func TestRangeKey(t *testing.T) {
	got := rangeKey(domain.TrackRaw, matthewOne())
	want := "ght:range:uid:raw:40001001:40001003.99"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if rangeKey(domain.TrackRaw, matthewOne()) == rangeKey(domain.TrackGreek, matthewOne()) {
		t.Error("expected tracks to use distinct keys")
	}
}

func TestCachingWordStore_ReadThrough(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	inner.AddWords(domain.TrackRaw, domain.NewVerseKey(40, 1, 1), "Book", "of-genesis")
	store := NewCachingWordStore(client, inner, time.Minute, nil)
	ctx := context.Background()

	first, err := store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(first))
	}
	if !mr.Exists(rangeKey(domain.TrackRaw, matthewOne())) {
		t.Error("expected range to be cached")
	}

	second, err := store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.Queries()) != 1 {
		t.Errorf("expected inner store to be queried once, got %d", len(inner.Queries()))
	}
	if second[0].Key != first[0].Key || second[1].Text() != "of-genesis" {
		t.Errorf("cached rows differ: %+v", second)
	}
}

func TestCachingWordStore_CachesEmptyResult(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	store := NewCachingWordStore(client, inner, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		rows, err := store.QueryRange(ctx, domain.TrackRaw, matthewOne())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	}
	if len(inner.Queries()) != 1 {
		t.Errorf("expected empty result to be cached, inner queried %d times", len(inner.Queries()))
	}
}

func TestCachingWordStore_ReversedRangeBypassesCache(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	store := NewCachingWordStore(client, inner, time.Minute, nil)
	ctx := context.Background()

	reversed := domain.RangeBounds{Start: 40001005, End: 40001002.99}
	for i := 0; i < 2; i++ {
		if _, err := store.QueryRange(ctx, domain.TrackRaw, reversed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(inner.Queries()) != 2 {
		t.Errorf("expected every reversed query to reach the store, got %d", len(inner.Queries()))
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("expected no keys written, got %v", mr.Keys())
	}
}

func TestCachingWordStore_KeepsNullWords(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	inner.Add(domain.TrackRaw, domain.WordRow{Key: domain.NewVerseKey(40, 1, 2)})
	store := NewCachingWordStore(client, inner, time.Minute, nil)
	ctx := context.Background()

	_, _ = store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	rows, err := store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Word != nil {
		t.Errorf("expected one row with nil word, got %+v", rows)
	}
}

func TestCachingWordStore_TTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	store := NewCachingWordStore(client, inner, 30*time.Second, nil)
	ctx := context.Background()

	_, _ = store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	if ttl := mr.TTL(rangeKey(domain.TrackRaw, matthewOne())); ttl != 30*time.Second {
		t.Errorf("expected TTL 30s, got %v", ttl)
	}

	mr.FastForward(31 * time.Second)
	_, _ = store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	if len(inner.Queries()) != 2 {
		t.Errorf("expected expired range to be reloaded, inner queried %d times", len(inner.Queries()))
	}
}

func TestCachingWordStore_DefaultTTL(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewCachingWordStore(client, mocks.NewMockWordStore(), 0, nil)
	if store.ttl != DefaultCacheTTL {
		t.Errorf("expected default TTL, got %v", store.ttl)
	}
}

func TestCachingWordStore_InnerErrorNotCached(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	inner.SetError(errors.New("database is locked"))
	store := NewCachingWordStore(client, inner, time.Minute, nil)

	_, err := store.QueryRange(context.Background(), domain.TrackRaw, matthewOne())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if mr.Exists(rangeKey(domain.TrackRaw, matthewOne())) {
		t.Error("failed queries must not be cached")
	}
}

func TestCachingWordStore_RedisDownFallsBack(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	inner.AddWords(domain.TrackRaw, domain.NewVerseKey(40, 1, 1), "Book")
	store := NewCachingWordStore(client, inner, time.Minute, nil)

	mr.Close()

	rows, err := store.QueryRange(context.Background(), domain.TrackRaw, matthewOne())
	if err != nil {
		t.Fatalf("expected fallback to inner store, got %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("expected readiness to follow the inner store, got %v", err)
	}
}

func TestCachingWordStore_CorruptEntryFallsBack(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	inner.AddWords(domain.TrackRaw, domain.NewVerseKey(40, 1, 1), "Book")
	store := NewCachingWordStore(client, inner, time.Minute, nil)

	if err := mr.Set(rangeKey(domain.TrackRaw, matthewOne()), "{not json"); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	rows, err := store.QueryRange(context.Background(), domain.TrackRaw, matthewOne())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row from inner store, got %d", len(rows))
	}
}

func TestCachingWordStore_Invalidate(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	store := NewCachingWordStore(client, inner, time.Minute, nil)
	ctx := context.Background()

	_, _ = store.QueryRange(ctx, domain.TrackRaw, matthewOne())
	_, _ = store.QueryRange(ctx, domain.TrackGreek, matthewOne())

	n, err := store.Invalidate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 ranges removed, got %d", n)
	}
	if mr.Exists(rangeKey(domain.TrackRaw, matthewOne())) || mr.Exists(rangeIndexKey) {
		t.Error("expected cache to be empty")
	}

	// Empty cache is fine too
	if n, err := store.Invalidate(ctx); err != nil || n != 0 {
		t.Errorf("expected (0, nil), got (%d, %v)", n, err)
	}
}

func TestCachingWordStore_Ping(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	inner := mocks.NewMockWordStore()
	store := NewCachingWordStore(client, inner, time.Minute, nil)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	inner.SetError(domain.ErrStoreUnavailable)
	if err := store.Ping(context.Background()); err == nil {
		t.Error("expected inner store failure to surface")
	}
}
