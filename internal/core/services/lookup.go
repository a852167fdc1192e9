package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
	"github.com/custodia-labs/ght-core/internal/core/ports/driving"
)

// Ensure lookupService implements LookupService
var _ driving.LookupService = (*lookupService)(nil)

// lookupService implements the LookupService interface
type lookupService struct {
	tracks *domain.TrackSet
	store  driven.WordStore
	logger *slog.Logger
}

// NewLookupService creates a new LookupService.
// A nil logger falls back to slog.Default().
func NewLookupService(tracks *domain.TrackSet, store driven.WordStore, logger *slog.Logger) driving.LookupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &lookupService{
		tracks: tracks,
		store:  store,
		logger: logger,
	}
}

// Lookup parses input, queries the track and renders the reply
func (s *lookupService) Lookup(ctx context.Context, trackName string, input string) (*domain.LookupResult, error) {
	track, ok := s.tracks.Get(trackName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTrack, trackName)
	}
	return s.lookup(ctx, track, input), nil
}

// HandleMessage runs "!<track> <reference>" commands
func (s *lookupService) HandleMessage(ctx context.Context, content string) (*domain.LookupResult, bool, error) {
	track, input, ok := s.tracks.MatchCommand(content)
	if !ok {
		return nil, false, nil
	}
	return s.lookup(ctx, track, input), true, nil
}

// Tracks lists the configured tracks
func (s *lookupService) Tracks() []domain.Track {
	return s.tracks.List()
}

// Commands lists one slash command definition per track
func (s *lookupService) Commands() []domain.CommandDefinition {
	return s.tracks.Commands()
}

// Ready checks the concordance store
func (s *lookupService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *lookupService) lookup(ctx context.Context, track domain.Track, input string) *domain.LookupResult {
	result := &domain.LookupResult{
		Track: track.Name,
		Input: input,
	}

	ref, err := domain.ParseReference(input)
	if err != nil {
		s.logger.Debug("reference rejected", "track", track.Name, "input", input, "error", err)
		result.Status = domain.LookupStatusInvalidReference
		result.Text = domain.InvalidReferenceText
		return result
	}
	result.Reference = ref

	bounds := domain.EncodeRange(*ref)
	result.Bounds = &bounds

	rows, err := s.store.QueryRange(ctx, track, bounds)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, context.Canceled) {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "range query failed",
			"track", track.Name,
			"reference", ref.String(),
			"start", bounds.Start,
			"end", bounds.End,
			"error", err,
		)
		result.Status = domain.LookupStatusStoreError
		result.Text = domain.StoreErrorText
		return result
	}
	result.RowCount = len(rows)

	text := domain.Assemble(rows)
	if text == domain.NoDataText {
		result.Status = domain.LookupStatusNoData
		result.Text = domain.NoDataText
		return result
	}

	result.Text, result.Truncated = domain.Truncate(text, domain.MaxMessageLength)
	result.Status = domain.LookupStatusOK

	s.logger.Debug("lookup rendered",
		"track", track.Name,
		"reference", ref.String(),
		"rows", len(rows),
		"truncated", result.Truncated,
	)
	return result
}
