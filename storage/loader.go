package storage

import (
	"context"
	"fmt"

	"github.com/ruteri/pixelprops/buildrecord"
	"github.com/ruteri/pixelprops/interfaces"
)

// LoadRecord fetches a build.prop from src and parses it.
func LoadRecord(ctx context.Context, src interfaces.RecordSource) (*buildrecord.Record, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching build record from %s: %w", src.Name(), err)
	}

	record, err := buildrecord.FromBuildProp(data)
	if err != nil {
		return nil, fmt.Errorf("parsing build record from %s: %w", src.Name(), err)
	}
	return record, nil
}
