package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrInvalidReference is the parent of every reference parsing failure.
	// Callers that only need to know "the user typed something unusable" match on this.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrMalformedReference indicates the input does not match the reference grammar
	ErrMalformedReference = fmt.Errorf("%w: malformed", ErrInvalidReference)

	// ErrUnrecognizedBook indicates the book phrase did not resolve to a book ordinal
	ErrUnrecognizedBook = fmt.Errorf("%w: unrecognized book", ErrInvalidReference)

	// ErrStoreUnavailable indicates the concordance store could not answer a range query
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnknownTrack indicates the requested word track is not configured
	ErrUnknownTrack = errors.New("unknown track")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates an unknown API client or a wrong secret
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
