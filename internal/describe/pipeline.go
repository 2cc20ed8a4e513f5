package describe

import (
	"context"
	"log/slog"

	"github.com/openadapt/oadesc/models"
	"github.com/openadapt/oadesc/types"
	"golang.org/x/sync/errgroup"
)

// Pipeline fans events out to a Generator and reassembles the sentences in
// original event order. The run aborts on the first terminal failure; a
// partial description set is not valid output.
type Pipeline struct {
	generator     Generator
	maxConcurrent int
}

// NewPipeline creates a pipeline with at most maxConcurrent generation
// calls in flight. Values below 1 mean sequential processing.
func NewPipeline(generator Generator, maxConcurrent int) *Pipeline {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Pipeline{generator: generator, maxConcurrent: maxConcurrent}
}

// Process returns one sentence per event, index-aligned with the input.
// Events have no data dependency on each other's descriptions, only on
// their position, so calls may run concurrently.
func (p *Pipeline) Process(ctx context.Context, events []models.ActionEvent) ([]string, error) {
	if len(events) == 0 {
		return nil, nil
	}

	lines := make([]string, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)

	for i, event := range events {
		g.Go(func() error {
			slog.Debug("describing event", "index", i+1, "total", len(events), "kind", event.Kind)
			sentence, err := p.generator.Describe(gctx, event)
			if err != nil {
				return &types.GenerationError{EventIndex: i + 1, Err: err}
			}
			lines[i] = sentence
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}
