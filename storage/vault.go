package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// DefaultVaultField is the KV field read when the location names none.
const DefaultVaultField = "key"

// VaultSource reads one field of a HashiCorp Vault KV v2 secret.
// The client token is taken from VAULT_TOKEN.
type VaultSource struct {
	client      *api.Client
	mount       string
	secretPath  string
	field       string
	log         *slog.Logger
	locationURI string
}

// NewVaultSource creates a source for the given field of mount/secretPath on the
// Vault server at address (e.g. "https://vault.internal:8200").
func NewVaultSource(address, mount, secretPath, field string, log *slog.Logger) (*VaultSource, error) {
	if field == "" {
		field = DefaultVaultField
	}

	addr, err := url.Parse(address)
	if err != nil || addr.Host == "" {
		return nil, fmt.Errorf("%w: invalid vault address %q", interfaces.ErrInvalidLocationURI, address)
	}

	config := api.DefaultConfig()
	if config.Error != nil {
		return nil, fmt.Errorf("failed to read vault configuration: %w", config.Error)
	}
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	return &VaultSource{
		client:      client,
		mount:       mount,
		secretPath:  secretPath,
		field:       field,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s?field=%s&scheme=%s", addr.Host, mount, secretPath, field, addr.Scheme),
	}, nil
}

// Fetch reads the latest version of the secret and returns the configured field.
// Values prefixed with "base64:" are decoded, other values are returned as stored.
func (s *VaultSource) Fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()

	secret, err := s.client.KVv2(s.mount).Get(ctx, s.secretPath)
	if errors.Is(err, api.ErrSecretNotFound) {
		s.log.Debug("Secret not found in vault",
			slog.String("mount", s.mount),
			slog.String("path", s.secretPath),
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %s", interfaces.ErrSourceNotFound, s.locationURI)
	}
	if err != nil {
		s.log.Error("Failed to read secret from vault",
			slog.String("mount", s.mount),
			slog.String("path", s.secretPath),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: failed to read secret from vault: %v", interfaces.ErrBackendUnavailable, err)
	}

	raw, ok := secret.Data[s.field]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: field %q missing in %s", interfaces.ErrSourceNotFound, s.field, s.locationURI)
	}
	value, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("field %q in %s is not a string", s.field, s.locationURI)
	}

	data := []byte(value)
	if encoded, found := strings.CutPrefix(value, "base64:"); found {
		data, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 field %q: %w", s.field, err)
		}
	}

	s.log.Debug("Fetched content from vault",
		slog.String("mount", s.mount),
		slog.String("path", s.secretPath),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// LocationURI returns the URI that identifies this source.
func (s *VaultSource) LocationURI() string {
	return s.locationURI
}
