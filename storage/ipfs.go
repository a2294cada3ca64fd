package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// DefaultIPFSTimeout bounds a single IPFS read.
const DefaultIPFSTimeout = 30 * time.Second

// IPFSSource reads a file from IPFS through the HTTP API of an IPFS node.
type IPFSSource struct {
	shell       *shell.Shell
	apiAddr     string
	path        string
	log         *slog.Logger
	locationURI string
}

// NewIPFSSource creates a source for /ipfs/<contentPath> read through the node
// at apiAddr (host:port).
func NewIPFSSource(apiAddr, contentPath string, timeout time.Duration, log *slog.Logger) *IPFSSource {
	if timeout <= 0 {
		timeout = DefaultIPFSTimeout
	}

	sh := shell.NewShell(apiAddr)
	sh.SetTimeout(timeout)

	contentPath = strings.TrimPrefix(contentPath, "/")
	return &IPFSSource{
		shell:       sh,
		apiAddr:     apiAddr,
		path:        "/ipfs/" + contentPath,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s/%s?timeout=%s", apiAddr, contentPath, timeout),
	}
}

// Fetch reads the file.
// Returns ErrBackendUnavailable if the node is not reachable and
// ErrSourceNotFound if the path doesn't resolve.
func (s *IPFSSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable", slog.String("api", s.apiAddr))
		return nil, fmt.Errorf("%w: %s", interfaces.ErrBackendUnavailable, s.apiAddr)
	}

	reader, err := s.shell.Cat(s.path)
	if err != nil {
		if strings.Contains(err.Error(), "no link named") || strings.Contains(err.Error(), "not found") {
			s.log.Debug("Content not found in IPFS",
				slog.String("path", s.path),
				slog.Duration("duration", time.Since(start)))
			return nil, fmt.Errorf("%w: %s", interfaces.ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read IPFS content: %w", err)
	}

	s.log.Debug("Fetched content from IPFS",
		slog.String("path", s.path),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// LocationURI returns the URI that identifies this source.
func (s *IPFSSource) LocationURI() string {
	return s.locationURI
}
