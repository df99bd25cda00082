package indexdefinitions

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// IndexSource yields index definitions in catalog order.
type IndexSource interface {
	Next(ctx context.Context) bool
	Current() bson.Raw
	Err() error
}

// DumpIndexes drains source into writer as one JSON array and returns the
// number of documents written. On error the array is left unterminated.
func DumpIndexes(ctx context.Context, source IndexSource, writer io.Writer, opts ExportOptions) (int, error) {
	exporter, err := NewIndexExporter(writer, opts)
	if err != nil {
		return 0, err
	}

	for source.Next(ctx) {
		if err := exporter.WriteIndex(source.Current()); err != nil {
			return exporter.Count(), fmt.Errorf("write index definition %d: %w", exporter.Count(), err)
		}
	}
	if err := source.Err(); err != nil {
		return exporter.Count(), fmt.Errorf("read index definitions: %w", err)
	}

	if err := exporter.Finish(); err != nil {
		return exporter.Count(), err
	}
	return exporter.Count(), nil
}
