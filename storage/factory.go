package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// ErrUnsupportedScheme is returned for location URIs with an unknown scheme.
var ErrUnsupportedScheme = errors.New("unsupported location scheme")

// ByteSourceFactory creates byte sources from location strings.
type ByteSourceFactory struct {
	log *slog.Logger
}

// NewByteSourceFactory creates a new factory.
func NewByteSourceFactory(log *slog.Logger) *ByteSourceFactory {
	return &ByteSourceFactory{log: log}
}

// ByteSourceFor creates a byte source from a location.
// A location is either a bare file path or a URI of the form
// [scheme]://[auth@]host[:port][/path][?params]. Several locations separated
// by commas produce a MultiSource.
//
// Supported schemes:
//   - file:// - local file
//   - s3:// - Amazon S3 or compatible object storage
//   - vault:// - HashiCorp Vault KV v2 secret field
//   - ipfs:// - file on IPFS read through a node's HTTP API
//
// Sources whose last path element ends in ".hex" decode hex content.
func (f *ByteSourceFactory) ByteSourceFor(location string) (interfaces.ByteSource, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", interfaces.ErrInvalidLocationURI)
	}

	if strings.Contains(location, ",") {
		return f.createMultiSource(strings.Split(location, ","))
	}

	if !strings.Contains(location, "://") {
		return withEncoding(NewFileSource(location, f.log), filepath.Base(location)), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	var src interfaces.ByteSource
	switch strings.ToLower(u.Scheme) {
	case "file":
		src, err = f.createFileSource(u)
	case "s3":
		src, err = f.createS3Source(u)
	case "vault":
		src, err = f.createVaultSource(u)
	case "ipfs":
		src, err = f.createIPFSSource(u)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	return withEncoding(src, path.Base(u.Path)), nil
}

func (f *ByteSourceFactory) createMultiSource(locations []string) (interfaces.ByteSource, error) {
	sources := make([]interfaces.ByteSource, 0, len(locations))
	for _, location := range locations {
		if strings.TrimSpace(location) == "" {
			continue
		}
		src, err := f.ByteSourceFor(location)
		if err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", location, err)
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no locations", interfaces.ErrInvalidLocationURI)
	}

	return NewMultiSource(sources, f.log), nil
}

// createFileSource handles file:///absolute/path and file://./relative/path.
func (f *ByteSourceFactory) createFileSource(u *url.URL) (interfaces.ByteSource, error) {
	p := u.Path
	if u.Host != "" {
		p = u.Host + "/" + strings.TrimPrefix(p, "/")
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return nil, fmt.Errorf("%w: missing file path in %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	f.log.Debug("Creating file source", slog.String("path", p))
	return NewFileSource(p, f.log), nil
}

// createS3Source handles s3://[ACCESS_KEY:SECRET_KEY@]bucket/key?region=us-east-1&endpoint=host:port
func (f *ByteSourceFactory) createS3Source(u *url.URL) (interfaces.ByteSource, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: expected s3://bucket/key, got %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}

	var accessKey, secretKey string
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
	}

	f.log.Debug("Creating S3 source",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Bool("static_credentials", accessKey != ""))

	return NewS3Source(bucket, key, region, query.Get("endpoint"), accessKey, secretKey, f.log)
}

// createVaultSource handles vault://host:port/mount/path/to/secret?field=key&scheme=https
func (f *ByteSourceFactory) createVaultSource(u *url.URL) (interfaces.ByteSource, error) {
	mount, secretPath, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	if u.Host == "" || mount == "" || secretPath == "" {
		return nil, fmt.Errorf("%w: expected vault://host:port/mount/path, got %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	query := u.Query()
	scheme := query.Get("scheme")
	if scheme == "" {
		scheme = "https"
	}
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: invalid vault scheme %q", interfaces.ErrInvalidLocationURI, scheme)
	}

	f.log.Debug("Creating vault source",
		slog.String("host", u.Host),
		slog.String("mount", mount),
		slog.String("path", secretPath))

	return NewVaultSource(scheme+"://"+u.Host, mount, secretPath, query.Get("field"), f.log)
}

// createIPFSSource handles ipfs://host:port/<cid>[/path]?timeout=30s
func (f *ByteSourceFactory) createIPFSSource(u *url.URL) (interfaces.ByteSource, error) {
	contentPath := strings.Trim(u.Path, "/")
	if u.Hostname() == "" || contentPath == "" {
		return nil, fmt.Errorf("%w: expected ipfs://host:port/<cid>, got %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	port := u.Port()
	if port == "" {
		port = "5001"
	}

	timeout := DefaultIPFSTimeout
	if raw := u.Query().Get("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeout %q", interfaces.ErrInvalidLocationURI, raw)
		}
		timeout = d
	}

	f.log.Debug("Creating IPFS source", slog.String("path", contentPath))
	return NewIPFSSource(u.Hostname()+":"+port, contentPath, timeout, f.log), nil
}
