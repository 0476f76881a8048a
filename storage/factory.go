package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ruteri/pixelprops/interfaces"
)

// SourceFactory creates record sources from URI strings.
type SourceFactory struct {
	log *slog.Logger
}

var _ interfaces.RecordSourceFactory = (*SourceFactory)(nil)

// NewSourceFactory creates a new factory instance.
func NewSourceFactory(logger *slog.Logger) *SourceFactory {
	return &SourceFactory{log: logger}
}

// SourceFor creates a record source from a location URI.
//
// Supported schemes:
//   - file:// - Local filesystem
//   - s3:// - Amazon S3 or compatible object storage
func (sf *SourceFactory) SourceFor(location interfaces.RecordSourceLocation) (interfaces.RecordSource, error) {
	u, err := url.Parse(string(location))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "s3":
		return sf.createS3Source(u)
	case "file":
		return sf.createFileSource(u)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidLocationURI, u.Scheme)
	}
}

// CreateMultiSource creates a fallback source from a list of location URIs.
// Invalid locations are logged and skipped; an error is returned only if
// none could be created.
func (sf *SourceFactory) CreateMultiSource(locations []interfaces.RecordSourceLocation) (interfaces.RecordSource, error) {
	sources := make([]interfaces.RecordSource, 0, len(locations))

	for _, loc := range locations {
		source, err := sf.SourceFor(loc)
		if err != nil {
			sf.log.Warn("Failed to create record source",
				"err", err,
				slog.String("locationURI", string(loc)))
			continue
		}
		sources = append(sources, source)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no valid record sources created")
	}

	return NewMultiSource(sources, sf.log), nil
}

// createS3Source creates an S3 or S3-compatible source.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/path/build.prop?region=us-west-2&endpoint=custom.s3.com
func (sf *SourceFactory) createS3Source(u *url.URL) (interfaces.RecordSource, error) {
	sf.log.Debug("Creating S3 source", slog.String("bucket", u.Host), slog.String("key", u.Path))

	bucketName := u.Host
	if bucketName == "" {
		return nil, fmt.Errorf("%w: missing bucket in %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil, fmt.Errorf("%w: missing object key in %s", interfaces.ErrInvalidLocationURI, u.Redacted())
	}

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}
	endpoint := query.Get("endpoint")

	var accessKey, secretKey string
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
		sf.log.Debug("Using embedded S3 credentials")
	}

	return NewS3Source(bucketName, key, region, endpoint, accessKey, secretKey, sf.log)
}

// createFileSource creates a file system source.
// URI format: file:///absolute/path/build.prop or file://./relative/path/build.prop
func (sf *SourceFactory) createFileSource(u *url.URL) (interfaces.RecordSource, error) {
	sf.log.Debug("Creating file source", slog.String("uri", u.String()))

	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}

	if path == "" {
		return nil, fmt.Errorf("%w: empty path in %s", interfaces.ErrInvalidLocationURI, u.String())
	}

	return NewFileSource(path, sf.log), nil
}
