package storage

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
)

// HexSuffix marks locations holding hex-encoded text.
const HexSuffix = ".hex"

// ErrInvalidHex is returned when a hex-named source does not hold valid hex.
var ErrInvalidHex = errors.New("invalid hex-encoded content")

// IsHexName reports whether name follows the hex naming convention.
func IsHexName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), HexSuffix)
}

// DecodeHex decodes hex text as stored in a hex-named source.
func DecodeHex(data []byte) ([]byte, error) {
	text := bytes.TrimSpace(data)
	text = bytes.TrimPrefix(bytes.TrimPrefix(text, []byte("0x")), []byte("0X"))

	out := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(out, text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return out, nil
}

// hexSource decodes the content of a hex-named source.
type hexSource struct {
	interfaces.ByteSource
}

func (s *hexSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := s.ByteSource.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	decoded, err := DecodeHex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.LocationURI(), err)
	}
	return decoded, nil
}

// withEncoding wraps src when name follows the hex naming convention.
func withEncoding(src interfaces.ByteSource, name string) interfaces.ByteSource {
	if IsHexName(name) {
		return &hexSource{ByteSource: src}
	}
	return src
}
