// Package store defines the record sink seam between the parsing core and
// the storage/indexing collaborator. Relational and vector persistence are
// external collaborators implementing Sink.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/openmishpat/wikilaw/pkg/extract"
)

// Sink consumes emitted section records. Implementations must tolerate
// concurrent Write calls: batch parsing runs documents in parallel and the
// sink is the only shared resource.
type Sink interface {
	Write(ctx context.Context, records []extract.SectionRecord) error
}

// LinesWriter writes records as JSON lines to an underlying writer,
// serializing concurrent writes with a mutex. Records from one Write call
// are contiguous in the output.
type LinesWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewLinesWriter creates a LinesWriter over w.
func NewLinesWriter(w io.Writer) *LinesWriter {
	return &LinesWriter{enc: json.NewEncoder(w)}
}

// Write encodes each record as one JSON line.
func (lw *LinesWriter) Write(ctx context.Context, records []extract.SectionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()

	for _, record := range records {
		if err := lw.enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", record.Section, err)
		}
	}
	return nil
}

// Discard is a Sink that drops all records, for dry runs.
type Discard struct{}

func (Discard) Write(ctx context.Context, records []extract.SectionRecord) error {
	return ctx.Err()
}
