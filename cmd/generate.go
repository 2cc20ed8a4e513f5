package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openadapt/oadesc/internal/describe"
	"github.com/openadapt/oadesc/internal/promptfile"
	"github.com/openadapt/oadesc/llm"
	"github.com/openadapt/oadesc/models"
	"github.com/openadapt/oadesc/store"
	"github.com/openadapt/oadesc/types"
	"github.com/spf13/afero"
)

// generateOptions carries the per-run knobs so the flow below stays
// testable without flags or prompts.
type generateOptions struct {
	recordingID             int64
	force                   bool
	maxEventsWithoutConfirm int
	// confirmLarge is asked before processing recordings with more events
	// than the limit above; nil means proceed.
	confirmLarge func(eventCount int) bool
	// validate, if non-nil, checks the finished list; advisory only.
	validate func(ctx context.Context, lines []string) (bool, error)
}

// runGenerate wires the real collaborators and runs the pipeline.
func runGenerate(ctx context.Context) error {
	cfg := GetConfig()

	recordingStore, err := store.NewSQLiteStore(cfg.Database.Path, time.Duration(cfg.Database.TimeoutSeconds)*time.Second)
	if err != nil {
		return err
	}
	defer func() { _ = recordingStore.Close() }()

	modelName := cfg.LLM.Model
	if modelName == "" {
		modelName = llm.DefaultModelForProvider(llm.Provider(cfg.LLM.Provider))
	}
	chatModel, err := llm.NewChatModel(ctx, llm.Config{
		Provider: llm.Provider(cfg.LLM.Provider),
		Model:    modelName,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("configure LLM: %w", err)
	}

	generator := describe.NewChatModelGenerator(chatModel, cfg.LLM.MaxRetries, time.Duration(cfg.LLM.RequestTimeoutSeconds)*time.Second)
	pipeline := describe.NewPipeline(generator, cfg.LLM.MaxConcurrent)

	writer := promptfile.NewWriter(afero.NewOsFs(), cfg.Output.Dir, cfg.Output.MaxFileSizeBytes, func(path string) bool {
		return confirm(fmt.Sprintf("File %s already exists. Overwrite it", path))
	})

	opts := generateOptions{
		recordingID:             recordingID,
		force:                   force,
		maxEventsWithoutConfirm: cfg.Output.MaxEventsWithoutConfirm,
		confirmLarge: func(eventCount int) bool {
			return confirm(fmt.Sprintf("Generate descriptions for %d events (one LLM call each)", eventCount))
		},
	}
	if runValidation {
		opts.validate = func(ctx context.Context, lines []string) (bool, error) {
			return describe.ValidateReplayability(ctx, chatModel, lines)
		}
	}

	return generate(ctx, recordingStore, pipeline, writer, opts)
}

// generate is the whole run: locate one recording, describe its events,
// write one numbered file. Every error is terminal; the run produces one
// complete, correctly ordered file or none.
func generate(ctx context.Context, recordingStore store.RecordingStore, pipeline *describe.Pipeline, writer *promptfile.Writer, opts generateOptions) error {
	slog.Info("starting action description generation")

	rec, err := locateRecording(ctx, recordingStore, opts.recordingID)
	if err != nil {
		return err
	}
	slog.Info("found recording", "recording", rec.Label(), "events", len(rec.Events))

	if len(rec.Events) == 0 {
		printWarning("Recording %s has no action events, nothing to do.", rec.Label())
		return nil
	}

	if !opts.force && opts.maxEventsWithoutConfirm > 0 && len(rec.Events) > opts.maxEventsWithoutConfirm {
		if opts.confirmLarge != nil && !opts.confirmLarge(len(rec.Events)) {
			printNotice("Description generation cancelled.")
			return nil
		}
	}

	lines, err := pipeline.Process(ctx, rec.Events)
	if err != nil {
		slog.Error("description generation failed", "recording", rec.ID, "stage", "generate", "error", err)
		return err
	}
	slog.Info("generated descriptions", "recording", rec.ID, "count", len(lines))

	path, err := writer.Save(lines, rec.ID, rec.TaskDescription, opts.force)
	if err != nil {
		slog.Error("saving descriptions failed", "recording", rec.ID, "stage", "write", "error", err)
		return err
	}
	printSuccess("Saved %d descriptions to %s", len(lines), path)

	if opts.validate != nil {
		ok, err := opts.validate(ctx, lines)
		switch {
		case err != nil:
			printWarning("Validation call failed: %v", err)
		case !ok:
			printWarning("Validation: the model judged the descriptions not replayable.")
		default:
			printNotice("Validation: descriptions look replayable.")
		}
	}
	return nil
}

// locateRecording returns the requested recording, or the most recent one
// when no id was given.
func locateRecording(ctx context.Context, recordingStore store.RecordingStore, id int64) (models.Recording, error) {
	if id != 0 {
		return recordingStore.GetRecording(ctx, id)
	}

	rec, err := recordingStore.LatestRecording(ctx)
	var notFound *types.NotFoundError
	if errors.As(err, &notFound) {
		slog.Warn("no recordings found in the database")
	}
	return rec, err
}
