package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruteri/pixelprops/interfaces"
)

// FileSource reads a build.prop from the local file system.
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

// Fetch reads the file. Returns ErrRecordNotFound if it doesn't exist.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, interfaces.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.log.Debug("Fetched build record from file",
		slog.String("path", s.path),
		slog.Int("size", len(data)))

	return data, nil
}

// Available checks that the directory holding the file is accessible.
func (s *FileSource) Available(ctx context.Context) bool {
	_, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		s.log.Debug("File source unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this source.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.path))
}

// LocationURI returns the URI that identifies this source.
func (s *FileSource) LocationURI() string {
	return s.locationURI
}
