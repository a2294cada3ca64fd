package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "plain", input: "deadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "uppercase", input: "DEADBEEF", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "prefix and newline", input: "0xdeadbeef\n", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "surrounding whitespace", input: "  0Xdead \t\r\n", want: []byte{0xde, 0xad}},
		{name: "empty", input: "", want: []byte{}},
		{name: "odd length", input: "abc", wantErr: true},
		{name: "not hex", input: "zz", wantErr: true},
		{name: "inner whitespace", input: "de ad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHex([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsHexName(t *testing.T) {
	assert.True(t, IsHexName("public.key.hex"))
	assert.True(t, IsHexName("PRIVATE.HEX"))
	assert.False(t, IsHexName("public.key"))
	assert.False(t, IsHexName("hex"))
	assert.False(t, IsHexName("key.hex.bin"))
}

func TestHexSource(t *testing.T) {
	ctx := context.Background()

	inner := new(MockByteSource)
	inner.On("Fetch", ctx).Return([]byte("0102ff\n"), nil)
	inner.On("LocationURI").Return("file:///keys/k.hex")

	src := withEncoding(inner, "k.hex")
	data, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, data)
	assert.Equal(t, "file:///keys/k.hex", src.LocationURI())

	bad := new(MockByteSource)
	bad.On("Fetch", ctx).Return([]byte("not hex"), nil)
	bad.On("LocationURI").Return("file:///keys/bad.hex")

	_, err = withEncoding(bad, "bad.hex").Fetch(ctx)
	assert.ErrorIs(t, err, ErrInvalidHex)

	raw := new(MockByteSource)
	assert.Same(t, raw, withEncoding(raw, "k.bin"))
}
