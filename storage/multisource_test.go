package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ruteri/sbc-auth-gateway/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockByteSource is a mock implementation of interfaces.ByteSource.
type MockByteSource struct {
	mock.Mock
}

func (m *MockByteSource) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockByteSource) LocationURI() string {
	return m.Called().String(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMultiSource_FirstSuccessWins(t *testing.T) {
	ctx := context.Background()
	first := new(MockByteSource)
	second := new(MockByteSource)
	third := new(MockByteSource)

	first.On("Fetch", ctx).Return(nil, interfaces.ErrSourceNotFound)
	first.On("LocationURI").Return("file:///missing")
	second.On("Fetch", ctx).Return([]byte("key material"), nil)

	multi := NewMultiSource([]interfaces.ByteSource{first, second, third}, discardLogger())

	data, err := multi.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("key material"), data)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
	third.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestMultiSource_AllFail(t *testing.T) {
	ctx := context.Background()
	first := new(MockByteSource)
	second := new(MockByteSource)

	first.On("Fetch", ctx).Return(nil, interfaces.ErrBackendUnavailable)
	first.On("LocationURI").Return("s3://bucket/key")
	second.On("Fetch", ctx).Return(nil, interfaces.ErrSourceNotFound)
	second.On("LocationURI").Return("file:///missing")

	multi := NewMultiSource([]interfaces.ByteSource{first, second}, discardLogger())

	_, err := multi.Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrBackendUnavailable)
	assert.ErrorIs(t, err, interfaces.ErrSourceNotFound)
}

func TestMultiSource_Empty(t *testing.T) {
	multi := NewMultiSource(nil, discardLogger())

	_, err := multi.Fetch(context.Background())
	assert.ErrorIs(t, err, interfaces.ErrSourceNotFound)
}

func TestMultiSource_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := new(MockByteSource)
	second := new(MockByteSource)
	first.On("Fetch", ctx).Return(nil, ctx.Err())

	multi := NewMultiSource([]interfaces.ByteSource{first, second}, discardLogger())

	_, err := multi.Fetch(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	second.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestMultiSource_LocationURI(t *testing.T) {
	first := new(MockByteSource)
	second := new(MockByteSource)
	first.On("LocationURI").Return("file:///a")
	second.On("LocationURI").Return("file:///b")

	multi := NewMultiSource([]interfaces.ByteSource{first, second}, discardLogger())
	assert.Equal(t, "file:///a,file:///b", multi.LocationURI())
}
