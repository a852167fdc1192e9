package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

// tracksFile is the layout of TRACKS_FILE:
//
//	tracks:
//	  - name: ght
//	    key_column: uid
//	    word_column: raw
//	    description: Get Bible verses
type tracksFile struct {
	Tracks []domain.Track `yaml:"tracks"`
}

// LoadTracks builds the track set. An empty path yields the built-in tracks;
// otherwise the file replaces them entirely.
func LoadTracks(path string) (*domain.TrackSet, error) {
	if path == "" {
		return domain.NewTrackSet(domain.DefaultTracks())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}

	tracks, err := ParseTracks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return domain.NewTrackSet(tracks)
}

// ParseTracks decodes a tracks document. Unknown keys are rejected.
func ParseTracks(data []byte) ([]domain.Track, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc tracksFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: tracks file is empty", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if len(doc.Tracks) == 0 {
		return nil, fmt.Errorf("%w: tracks file defines no tracks", domain.ErrInvalidInput)
	}
	return doc.Tracks, nil
}
