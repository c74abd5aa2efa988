// Package batch runs the parser over many documents with bounded
// concurrency. Each document is parsed independently; one document's
// failure never affects the others.
package batch

import (
	"context"
	"strings"
	"sync"

	"github.com/openmishpat/wikilaw/pkg/extract"
	"github.com/openmishpat/wikilaw/pkg/fetch"
	"github.com/openmishpat/wikilaw/pkg/store"
)

// Entry records the outcome for one document in a batch run.
type Entry struct {
	Name     string   `json:"name"`
	Sections int      `json:"sections"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Report aggregates the outcomes of a batch run. Entries are in input
// order.
type Report struct {
	Attempted int     `json:"attempted"`
	Succeeded int     `json:"succeeded"`
	Degraded  int     `json:"degraded"`
	Failed    int     `json:"failed"`
	Sections  int     `json:"sections"`
	Entries   []Entry `json:"entries"`
}

// Runner parses a set of documents concurrently. The parser is shared
// across workers (it is stateless between Parse calls); the sink serializes
// its own writes.
type Runner struct {
	parser      *extract.Parser
	concurrency int
}

// NewRunner creates a Runner with the given parser and worker count. A
// concurrency of 1 or less runs documents sequentially.
func NewRunner(parser *extract.Parser, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{parser: parser, concurrency: concurrency}
}

// Run fetches, parses, and sinks every named document. Fetch, parse, or
// sink failures are recorded on the document's entry and the run continues;
// Run itself returns an error only when the context is cancelled.
func (r *Runner) Run(ctx context.Context, src fetch.Source, names []string, sink store.Sink) (*Report, error) {
	report := &Report{
		Attempted: len(names),
		Entries:   make([]Entry, len(names)),
	}

	throttle := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		throttle <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-throttle }()
			report.Entries[i] = r.runOne(ctx, src, name, sink)
		}(i, name)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, entry := range report.Entries {
		switch {
		case entry.Error != "":
			report.Failed++
		case len(entry.Warnings) > 0:
			report.Degraded++
			report.Sections += entry.Sections
		default:
			report.Succeeded++
			report.Sections += entry.Sections
		}
	}
	return report, nil
}

// runOne processes a single document end to end.
func (r *Runner) runOne(ctx context.Context, src fetch.Source, name string, sink store.Sink) Entry {
	entry := Entry{Name: name}

	text, err := src.Fetch(ctx, name)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}

	doc, err := r.parser.Parse(strings.NewReader(text))
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	entry.Sections = len(doc.Records)
	entry.Warnings = doc.Warnings

	if err := sink.Write(ctx, doc.Records); err != nil {
		entry.Error = err.Error()
		return entry
	}
	return entry
}
