package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruteri/pixelprops/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testBuildProp = `ro.build.type=user
ro.build.date=Thu Aug  4 00:00:00 UTC 2022
ro.product.brand=google
ro.product.model=Pixel 6
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRecordSource implements interfaces.RecordSource for testing
type MockRecordSource struct {
	mock.Mock
	name string
}

func (m *MockRecordSource) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRecordSource) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockRecordSource) Name() string {
	return m.name
}

func (m *MockRecordSource) LocationURI() string {
	return "mock:" + m.name
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.prop")
	require.NoError(t, os.WriteFile(path, []byte(testBuildProp), 0o644))

	src := NewFileSource(path, testLogger())
	ctx := context.Background()

	assert.True(t, src.Available(ctx))
	assert.Equal(t, "file://"+path, src.LocationURI())
	assert.Equal(t, "file-build.prop", src.Name())

	data, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, testBuildProp, string(data))

	missing := NewFileSource(filepath.Join(dir, "missing.prop"), testLogger())
	_, err = missing.Fetch(ctx)
	assert.True(t, errors.Is(err, interfaces.ErrRecordNotFound))

	gone := NewFileSource(filepath.Join(dir, "nope", "build.prop"), testLogger())
	assert.False(t, gone.Available(ctx))
}

func TestLoadRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.prop")
	require.NoError(t, os.WriteFile(path, []byte(testBuildProp), 0o644))

	record, err := LoadRecord(context.Background(), NewFileSource(path, testLogger()))
	require.NoError(t, err)
	assert.Equal(t, "Pixel 6", record.Build().Model)
	assert.Equal(t, "Thu Aug  4 00:00:00 UTC 2022", record.BuildDate())

	require.NoError(t, os.WriteFile(path, []byte("ro.build.type=bogus\n"), 0o644))
	_, err = LoadRecord(context.Background(), NewFileSource(path, testLogger()))
	assert.Error(t, err)
}

func TestMultiSource_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to next available source", func(t *testing.T) {
		down := &MockRecordSource{name: "down"}
		down.On("Available", ctx).Return(false)

		empty := &MockRecordSource{name: "empty"}
		empty.On("Available", ctx).Return(true)
		empty.On("Fetch", ctx).Return(nil, interfaces.ErrRecordNotFound)

		good := &MockRecordSource{name: "good"}
		good.On("Available", ctx).Return(true)
		good.On("Fetch", ctx).Return([]byte(testBuildProp), nil)

		m := NewMultiSource([]interfaces.RecordSource{down, empty, good}, testLogger())
		data, err := m.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, testBuildProp, string(data))

		down.AssertNotCalled(t, "Fetch", ctx)
		empty.AssertExpectations(t)
		good.AssertExpectations(t)
	})

	t.Run("not found everywhere", func(t *testing.T) {
		a := &MockRecordSource{name: "a"}
		a.On("Available", ctx).Return(true)
		a.On("Fetch", ctx).Return(nil, interfaces.ErrRecordNotFound)

		m := NewMultiSource([]interfaces.RecordSource{a}, testLogger())
		_, err := m.Fetch(ctx)
		assert.True(t, errors.Is(err, interfaces.ErrRecordNotFound))
	})

	t.Run("backend failure is not reported as not found", func(t *testing.T) {
		boom := errors.New("connection reset")
		a := &MockRecordSource{name: "a"}
		a.On("Available", ctx).Return(true)
		a.On("Fetch", ctx).Return(nil, boom)

		m := NewMultiSource([]interfaces.RecordSource{a}, testLogger())
		_, err := m.Fetch(ctx)
		require.Error(t, err)
		assert.False(t, errors.Is(err, interfaces.ErrRecordNotFound))
		assert.True(t, errors.Is(err, boom))
	})
}

func TestMultiSource_Available(t *testing.T) {
	tests := []struct {
		name     string
		sources  []bool
		expected bool
	}{
		{"all sources available", []bool{true, true}, true},
		{"some sources available", []bool{false, true, false}, true},
		{"no sources available", []bool{false, false}, false},
		{"no sources", []bool{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sources []interfaces.RecordSource
			for i, available := range tt.sources {
				src := &MockRecordSource{name: string(rune('a' + i))}
				src.On("Available", mock.Anything).Return(available)
				sources = append(sources, src)
			}

			m := NewMultiSource(sources, testLogger())
			assert.Equal(t, tt.expected, m.Available(context.Background()))
		})
	}
}

func TestSourceFactory(t *testing.T) {
	sf := NewSourceFactory(testLogger())

	src, err := sf.SourceFor("file:///system/build.prop")
	require.NoError(t, err)
	assert.Equal(t, "file:///system/build.prop", src.LocationURI())

	src, err = sf.SourceFor("file://./testdata/build.prop")
	require.NoError(t, err)
	assert.Equal(t, "file://./testdata/build.prop", src.LocationURI())

	src, err = sf.SourceFor("s3://AKIA:secret@props/devices/oriole/build.prop?region=eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "s3-props", src.Name())
	assert.Equal(t, "s3://AKIA:***@props/devices/oriole/build.prop?region=eu-west-1", src.LocationURI())

	_, err = sf.SourceFor("s3://props/")
	assert.True(t, errors.Is(err, interfaces.ErrInvalidLocationURI))

	_, err = sf.SourceFor("ipfs://localhost:5001/")
	assert.True(t, errors.Is(err, interfaces.ErrInvalidLocationURI))

	multi, err := sf.CreateMultiSource([]interfaces.RecordSourceLocation{
		"ftp://nowhere",
		"file:///system/build.prop",
	})
	require.NoError(t, err)
	assert.Equal(t, "multi:[file:///system/build.prop]", multi.LocationURI())

	_, err = sf.CreateMultiSource([]interfaces.RecordSourceLocation{"ftp://nowhere"})
	assert.Error(t, err)
}
