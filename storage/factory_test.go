package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteSourceFor_BarePath(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "public.key")
	encoded := filepath.Join(dir, "public.key.hex")
	require.NoError(t, os.WriteFile(raw, []byte{0xca, 0xfe}, 0o600))
	require.NoError(t, os.WriteFile(encoded, []byte("cafe\n"), 0o600))

	factory := NewByteSourceFactory(discardLogger())

	for _, location := range []string{raw, encoded, "file://" + raw, "file://" + encoded} {
		t.Run(location, func(t *testing.T) {
			src, err := factory.ByteSourceFor(location)
			require.NoError(t, err)

			data, err := src.Fetch(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []byte{0xca, 0xfe}, data)
		})
	}
}

func TestByteSourceFor_Multi(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.hex")
	require.NoError(t, os.WriteFile(present, []byte("0x0a0b"), 0o600))

	factory := NewByteSourceFactory(discardLogger())
	src, err := factory.ByteSourceFor(filepath.Join(dir, "missing") + ", " + present)
	require.NoError(t, err)
	require.IsType(t, &MultiSource{}, src)

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x0b}, data)
}

func TestByteSourceFor_RemoteSchemes(t *testing.T) {
	t.Setenv("VAULT_TOKEN", "test-token")
	factory := NewByteSourceFactory(discardLogger())

	tests := []struct {
		location string
		wantType any
		wantURI  string
		hex      bool
	}{
		{
			location: "s3://AKID:SECRET@keys-bucket/sbc/public.key?region=eu-west-1",
			wantType: &S3Source{},
			wantURI:  "s3://keys-bucket/sbc/public.key?region=eu-west-1",
		},
		{
			location: "s3://keys-bucket/sbc/public.key.hex?endpoint=http://localhost:9000",
			wantURI:  "s3://keys-bucket/sbc/public.key.hex?region=us-east-1&endpoint=http://localhost:9000",
			hex:      true,
		},
		{
			location: "vault://vault.internal:8200/secret/sbc/private?field=seed&scheme=http",
			wantType: &VaultSource{},
			wantURI:  "vault://vault.internal:8200/secret/sbc/private?field=seed&scheme=http",
		},
		{
			location: "vault://vault.internal:8200/secret/sbc/private.hex",
			wantURI:  "vault://vault.internal:8200/secret/sbc/private.hex?field=key&scheme=https",
			hex:      true,
		},
		{
			location: "ipfs://127.0.0.1/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/readme",
			wantType: &IPFSSource{},
			wantURI:  "ipfs://127.0.0.1:5001/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/readme?timeout=30s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			src, err := factory.ByteSourceFor(tt.location)
			require.NoError(t, err)

			if tt.hex {
				assert.IsType(t, &hexSource{}, src)
			} else {
				assert.IsType(t, tt.wantType, src)
			}
			assert.Equal(t, tt.wantURI, src.LocationURI())
			assert.NotContains(t, src.LocationURI(), "SECRET")
		})
	}
}

func TestByteSourceFor_Invalid(t *testing.T) {
	factory := NewByteSourceFactory(discardLogger())

	tests := []struct {
		location string
		wantErr  error
	}{
		{location: "", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "   ", wantErr: interfaces.ErrInvalidLocationURI},
		{location: ",", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "ftp://host/key", wantErr: ErrUnsupportedScheme},
		{location: "github://owner/repo", wantErr: ErrUnsupportedScheme},
		{location: "s3://bucket-only", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "vault://vault.internal:8200/secret", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "vault://vault.internal:8200/secret/x?scheme=ftp", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "ipfs://127.0.0.1:5001/", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "ipfs://127.0.0.1:5001/Qm?timeout=soon", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "file://", wantErr: interfaces.ErrInvalidLocationURI},
		{location: "s3://%zz/key", wantErr: interfaces.ErrInvalidLocationURI},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			_, err := factory.ByteSourceFor(tt.location)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
