package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// CommandPrefix starts a text command in a chat message ("!ght Matt 1:1")
const CommandPrefix = "!"

// Track is one parallel text column pair of the concordance store.
// KeyColumn holds the word position (a VerseKey), WordColumn the word text.
type Track struct {
	Name        string `json:"name" yaml:"name"`
	KeyColumn   string `json:"key_column" yaml:"key_column"`
	WordColumn  string `json:"word_column" yaml:"word_column"`
	Description string `json:"description" yaml:"description"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the track name and that both columns are plain SQL identifiers
func (t Track) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: track name is required", ErrInvalidInput)
	}
	if strings.ContainsAny(t.Name, " \t\n") {
		return fmt.Errorf("%w: track name %q contains whitespace", ErrInvalidInput, t.Name)
	}
	if !identifierPattern.MatchString(t.KeyColumn) {
		return fmt.Errorf("%w: track %s: invalid key column %q", ErrInvalidInput, t.Name, t.KeyColumn)
	}
	if !identifierPattern.MatchString(t.WordColumn) {
		return fmt.Errorf("%w: track %s: invalid word column %q", ErrInvalidInput, t.Name, t.WordColumn)
	}
	return nil
}

// Built-in tracks behind the !ght and !ghtg commands
var (
	TrackRaw = Track{
		Name:        "ght",
		KeyColumn:   "uid",
		WordColumn:  "raw",
		Description: "Get Bible verses",
	}
	TrackGreek = Track{
		Name:        "ghtg",
		KeyColumn:   "guid",
		WordColumn:  "greek",
		Description: "Get Bible verses in Greek",
	}
)

// DefaultTracks returns the built-in track set
func DefaultTracks() []Track {
	return []Track{TrackRaw, TrackGreek}
}

// TrackSet is an immutable name -> track lookup
type TrackSet struct {
	tracks map[string]Track
	order  []string
}

// NewTrackSet validates tracks and indexes them by name
func NewTrackSet(tracks []Track) (*TrackSet, error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: at least one track is required", ErrInvalidInput)
	}
	set := &TrackSet{tracks: make(map[string]Track, len(tracks))}
	for _, t := range tracks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := set.tracks[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate track %q", ErrInvalidInput, t.Name)
		}
		set.tracks[t.Name] = t
		set.order = append(set.order, t.Name)
	}
	return set, nil
}

// Get returns the named track
func (s *TrackSet) Get(name string) (Track, bool) {
	t, ok := s.tracks[name]
	return t, ok
}

// List returns tracks in configuration order
func (s *TrackSet) List() []Track {
	out := make([]Track, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.tracks[name])
	}
	return out
}

// MatchCommand splits a chat message like "!ghtg Matt 1:1" into the track and
// the reference text. The command must be followed by a space; the longest
// matching command wins so "!ghtg" is never read as "!ght" + "g".
func (s *TrackSet) MatchCommand(content string) (Track, string, bool) {
	names := make([]string, 0, len(s.order))
	names = append(names, s.order...)
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, name := range names {
		prefix := CommandPrefix + name + " "
		if strings.HasPrefix(content, prefix) {
			return s.tracks[name], strings.TrimSpace(content[len(prefix):]), true
		}
	}
	return Track{}, "", false
}

// CommandOption is one argument of a chat slash command
type CommandOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// CommandDefinition describes a slash command for registration with a chat platform
type CommandDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options"`
}

// ReferenceOptionName is the slash command argument carrying the reference
const ReferenceOptionName = "reference"

// Commands returns one slash command per track, in configuration order
func (s *TrackSet) Commands() []CommandDefinition {
	tracks := s.List()
	defs := make([]CommandDefinition, 0, len(tracks))
	for _, t := range tracks {
		defs = append(defs, CommandDefinition{
			Name:        t.Name,
			Description: t.Description,
			Options: []CommandOption{{
				Name:        ReferenceOptionName,
				Description: "Book, chapter, verse (e.g., " + ReferenceUsage + ")",
				Required:    true,
			}},
		})
	}
	return defs
}
