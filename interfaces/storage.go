package interfaces

import (
	"context"
	"errors"
)

// ByteSource is a single location holding key material.
type ByteSource interface {
	// Fetch reads the content of the location.
	// Returns ErrSourceNotFound if there is nothing at the location.
	Fetch(ctx context.Context) ([]byte, error)

	// LocationURI returns the location with credentials redacted.
	LocationURI() string
}

// ByteSourceFactory creates byte sources from location strings.
type ByteSourceFactory interface {
	ByteSourceFor(location string) (ByteSource, error)
}

var (
	// ErrSourceNotFound is returned when a location holds no content.
	ErrSourceNotFound = errors.New("source content not found")

	// ErrBackendUnavailable is returned when the backend behind a location is not accessible.
	ErrBackendUnavailable = errors.New("source backend unavailable")

	// ErrInvalidLocationURI is returned when a location string is malformed.
	ErrInvalidLocationURI = errors.New("invalid source location URI")
)
