package totp

import (
	"fmt"
	"strings"
)

// Alphabet is the RFC 4648 base32 alphabet used for shared secrets.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		c := Alphabet[i]
		m[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			m[c+'a'-'A'] = byte(i)
		}
	}
	return m
}()

// DecodeBase32 decodes an unpadded base32 secret. Lowercase ASCII input is
// accepted; any other byte outside the alphabet is rejected.
// Trailing bits that do not fill a whole byte are discarded, so the result is
// always floor(len(secret)*5/8) bytes long.
func DecodeBase32(secret string) ([]byte, error) {
	out := make([]byte, 0, len(secret)*5/8)

	var buffer uint32
	var bits uint
	for i := 0; i < len(secret); i++ {
		val := decodeMap[secret[i]]
		if val == 0xFF {
			return nil, fmt.Errorf("%w: illegal symbol at position %d", ErrInvalidEncoding, i)
		}

		buffer = buffer<<5 | uint32(val)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buffer>>bits))
			buffer &= 1<<bits - 1
		}
	}

	return out, nil
}

// EncodeBase32 encodes b without padding.
func EncodeBase32(b []byte) string {
	var sb strings.Builder
	sb.Grow((len(b)*8 + 4) / 5)

	var buffer uint32
	var bits uint
	for _, c := range b {
		buffer = buffer<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(Alphabet[(buffer>>bits)&0x1F])
		}
		buffer &= 1<<bits - 1
	}
	if bits > 0 {
		sb.WriteByte(Alphabet[(buffer<<(5-bits))&0x1F])
	}

	return sb.String()
}
