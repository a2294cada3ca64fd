package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// FileSource reads key material from the local file system.
type FileSource struct {
	path        string
	log         *slog.Logger
	locationURI string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string, log *slog.Logger) *FileSource {
	return &FileSource{
		path:        path,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", path),
	}
}

// Fetch reads the whole file.
// Returns ErrSourceNotFound if the file doesn't exist.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrSourceNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.log.Debug("Fetched content from file",
		slog.String("path", s.path),
		slog.Int("size", len(data)))

	return data, nil
}

// LocationURI returns the URI that identifies this source.
func (s *FileSource) LocationURI() string {
	return s.locationURI
}
