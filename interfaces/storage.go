package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrRecordNotFound is returned when no source holds a baseline record.
	ErrRecordNotFound = errors.New("build record not found")

	// ErrSourceUnavailable is returned when a record source is not accessible.
	// This could be due to network issues, authentication failures, or a
	// missing mount.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrInvalidLocationURI is returned when a source location URI is malformed or unsupported.
	// URIs must follow the format: [scheme]://[auth@]host[:port][/path][?params]
	ErrInvalidLocationURI = errors.New("invalid record source URI")
)

// RecordSourceLocation is a URI identifying where a baseline build.prop lives.
type RecordSourceLocation string

// Validate checks that the location parses and uses a supported scheme.
func (loc RecordSourceLocation) Validate() error {
	parsed, err := url.Parse(string(loc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "file", "s3":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}
}

// String returns the raw URI.
func (loc RecordSourceLocation) String() string {
	return string(loc)
}

// RecordSource provides the raw bytes of a baseline build.prop.
type RecordSource interface {
	// Fetch retrieves the record, or ErrRecordNotFound.
	Fetch(ctx context.Context) ([]byte, error)

	// Available checks if the source is accessible.
	Available(ctx context.Context) bool

	// Name returns identifier for logging.
	Name() string

	// LocationURI returns URI identifying this source.
	LocationURI() string
}

// RecordSourceFactory creates record sources.
type RecordSourceFactory interface {
	// SourceFor creates a source from a URI. Supports file:// and s3://.
	SourceFor(location RecordSourceLocation) (RecordSource, error)

	// CreateMultiSource creates a source falling back across locations.
	CreateMultiSource(locations []RecordSourceLocation) (RecordSource, error)
}
