package driving

import (
	"context"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

// LookupService resolves references into verse text
type LookupService interface {
	// Lookup parses input and renders the referenced verses from the named track.
	// Invalid references, empty results and store failures come back as a result
	// with the matching status; the error is reserved for an unknown track.
	Lookup(ctx context.Context, trackName string, input string) (*domain.LookupResult, error)

	// HandleMessage runs a text command such as "!ght Matt 1:1".
	// The bool is false when the message is not a command.
	HandleMessage(ctx context.Context, content string) (*domain.LookupResult, bool, error)

	// Tracks lists the configured tracks
	Tracks() []domain.Track

	// Commands lists one slash command definition per track
	Commands() []domain.CommandDefinition

	// Ready checks the concordance store
	Ready(ctx context.Context) error
}
