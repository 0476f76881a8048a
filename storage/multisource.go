package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ruteri/pixelprops/interfaces"
)

// MultiSource implements interfaces.RecordSource over several sources with fallback.
type MultiSource struct {
	sources []interfaces.RecordSource
	log     *slog.Logger
}

// NewMultiSource creates a source trying each of sources in order.
func NewMultiSource(sources []interfaces.RecordSource, logger *slog.Logger) *MultiSource {
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiSource{
		sources: sources,
		log:     logger,
	}
}

// Fetch returns the record from the first available source that has it.
// ErrRecordNotFound is returned only when every source reported it missing
// or was unavailable.
func (m *MultiSource) Fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()
	var errs []error
	allMissing := true

	for _, source := range m.sources {
		if !source.Available(ctx) {
			m.log.Debug("Source unavailable", slog.String("source_name", source.Name()))
			continue
		}

		data, err := source.Fetch(ctx)
		if err == nil {
			m.log.Info("Fetched build record",
				slog.String("source_name", source.Name()),
				slog.Duration("duration", time.Since(start)))
			return data, nil
		}

		if !errors.Is(err, interfaces.ErrRecordNotFound) {
			allMissing = false
		}
		errs = append(errs, fmt.Errorf("%s: %w", source.Name(), err))
		m.log.Debug("Failed to fetch from source",
			slog.String("source_name", source.Name()),
			"err", err)
	}

	m.log.Error("All sources failed to fetch build record",
		slog.Int("failed_sources", len(errs)),
		slog.Duration("duration", time.Since(start)))

	if allMissing {
		return nil, fmt.Errorf("%w in any of %d sources", interfaces.ErrRecordNotFound, len(m.sources))
	}
	return nil, fmt.Errorf("all sources failed to fetch build record: %w", errors.Join(errs...))
}

// Available checks if any source is available.
func (m *MultiSource) Available(ctx context.Context) bool {
	for _, source := range m.sources {
		if source.Available(ctx) {
			return true
		}
	}
	return false
}

// Name returns the name of this source.
func (m *MultiSource) Name() string {
	return "multi-source"
}

// LocationURI returns a combined URI of all sources.
func (m *MultiSource) LocationURI() string {
	locations := make([]string, 0, len(m.sources))
	for _, source := range m.sources {
		locations = append(locations, source.LocationURI())
	}

	return "multi:[" + strings.Join(locations, ",") + "]"
}
