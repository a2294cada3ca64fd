package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// MultiSource reads the same key material from several locations and returns
// the first successful read. Sources are tried in order.
type MultiSource struct {
	sources []interfaces.ByteSource
	log     *slog.Logger
}

// NewMultiSource creates a fallback source over sources.
func NewMultiSource(sources []interfaces.ByteSource, log *slog.Logger) *MultiSource {
	return &MultiSource{
		sources: sources,
		log:     log,
	}
}

// Fetch returns the content of the first source that can be read. If every
// source fails, the returned error joins all individual errors, so
// errors.Is(err, interfaces.ErrSourceNotFound) holds when any of them was missing.
func (m *MultiSource) Fetch(ctx context.Context) ([]byte, error) {
	if len(m.sources) == 0 {
		return nil, interfaces.ErrSourceNotFound
	}

	var errs []error
	for _, src := range m.sources {
		data, err := src.Fetch(ctx)
		if err == nil {
			return data, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		m.log.Warn("Failed to fetch from source, trying next",
			slog.String("location", src.LocationURI()),
			"err", err)
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("all %d sources failed: %w", len(m.sources), errors.Join(errs...))
}

// LocationURI returns the comma-separated locations of all sources.
func (m *MultiSource) LocationURI() string {
	uris := make([]string, 0, len(m.sources))
	for _, src := range m.sources {
		uris = append(uris, src.LocationURI())
	}
	return strings.Join(uris, ",")
}
