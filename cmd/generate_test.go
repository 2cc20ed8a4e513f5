package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/openadapt/oadesc/internal/describe"
	"github.com/openadapt/oadesc/internal/promptfile"
	"github.com/openadapt/oadesc/models"
	"github.com/openadapt/oadesc/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements store.RecordingStore from a fixed recording set.
type fakeStore struct {
	recordings []models.Recording
}

func (s *fakeStore) GetRecording(ctx context.Context, id int64) (models.Recording, error) {
	for _, rec := range s.recordings {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.Recording{}, &types.NotFoundError{RecordingID: id}
}

func (s *fakeStore) LatestRecording(ctx context.Context) (models.Recording, error) {
	if len(s.recordings) == 0 {
		return models.Recording{}, &types.NotFoundError{}
	}
	latest := s.recordings[0]
	for _, rec := range s.recordings[1:] {
		if rec.Timestamp.After(latest.Timestamp) ||
			(rec.Timestamp.Equal(latest.Timestamp) && rec.ID > latest.ID) {
			latest = rec
		}
	}
	return latest, nil
}

func (s *fakeStore) Close() error { return nil }

// scriptedGenerator maps event kinds to canned sentences.
type scriptedGenerator struct {
	sentences map[models.ActionKind]string
}

func (g *scriptedGenerator) Describe(ctx context.Context, event models.ActionEvent) (string, error) {
	sentence, ok := g.sentences[event.Kind]
	if !ok {
		return "", fmt.Errorf("no script for %s", event.Kind)
	}
	return sentence, nil
}

func calculatorRecording() models.Recording {
	return models.Recording{
		ID:              42,
		TaskDescription: "Calculator Demo",
		Timestamp:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Events: []models.ActionEvent{
			{ID: 1, Kind: models.ActionMove, Target: "Calculator icon"},
			{ID: 2, Kind: models.ActionClick, Target: "Calculator icon"},
		},
	}
}

func calculatorGenerator() describe.Generator {
	return &scriptedGenerator{sentences: map[models.ActionKind]string{
		models.ActionMove:  "Move mouse to 'Calculator icon'",
		models.ActionClick: "Left singleclick 'Calculator icon'",
	}}
}

func TestGenerate_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &fakeStore{recordings: []models.Recording{calculatorRecording()}}
	pipeline := describe.NewPipeline(calculatorGenerator(), 2)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	err := generate(context.Background(), st, pipeline, writer, generateOptions{recordingID: 42})
	require.NoError(t, err)

	path := filepath.Join("prompts", "prompt_recording_42_Calculator_Demo.txt")
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "1. Move mouse to 'Calculator icon'\n2. Left singleclick 'Calculator icon'\n", string(data))
}

func TestGenerate_LatestWhenNoIDGiven(t *testing.T) {
	older := models.Recording{
		ID:              1,
		TaskDescription: "Old",
		Timestamp:       time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Events:          []models.ActionEvent{{ID: 1, Kind: models.ActionMove}},
	}
	fs := afero.NewMemMapFs()
	st := &fakeStore{recordings: []models.Recording{older, calculatorRecording()}}
	pipeline := describe.NewPipeline(calculatorGenerator(), 1)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	err := generate(context.Background(), st, pipeline, writer, generateOptions{})
	require.NoError(t, err)

	exists, err := afero.Exists(fs, filepath.Join("prompts", "prompt_recording_42_Calculator_Demo.txt"))
	require.NoError(t, err)
	assert.True(t, exists, "the most recent recording should have been processed")
}

func TestGenerate_EmptyStoreWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &fakeStore{}
	pipeline := describe.NewPipeline(calculatorGenerator(), 1)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	err := generate(context.Background(), st, pipeline, writer, generateOptions{})
	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)

	exists, err := afero.DirExists(fs, "prompts")
	require.NoError(t, err)
	assert.False(t, exists, "no output directory should be created on failure")
}

func TestGenerate_GenerationFailureWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &fakeStore{recordings: []models.Recording{calculatorRecording()}}
	failing := &scriptedGenerator{sentences: map[models.ActionKind]string{
		models.ActionMove: "Move mouse to 'Calculator icon'",
		// click missing: second event fails
	}}
	pipeline := describe.NewPipeline(failing, 1)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	err := generate(context.Background(), st, pipeline, writer, generateOptions{recordingID: 42})
	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)

	exists, err := afero.DirExists(fs, "prompts")
	require.NoError(t, err)
	assert.False(t, exists, "no partial output on generation failure")
}

func TestGenerate_LargeRecordingDeclined(t *testing.T) {
	rec := calculatorRecording()
	fs := afero.NewMemMapFs()
	st := &fakeStore{recordings: []models.Recording{rec}}
	pipeline := describe.NewPipeline(calculatorGenerator(), 1)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	asked := 0
	err := generate(context.Background(), st, pipeline, writer, generateOptions{
		recordingID:             42,
		maxEventsWithoutConfirm: 1,
		confirmLarge: func(eventCount int) bool {
			asked++
			assert.Equal(t, 2, eventCount)
			return false
		},
	})
	require.NoError(t, err, "a declined confirmation is a clean cancellation")
	assert.Equal(t, 1, asked)

	exists, err := afero.DirExists(fs, "prompts")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerate_ForceSkipsLargeRecordingConfirm(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &fakeStore{recordings: []models.Recording{calculatorRecording()}}
	pipeline := describe.NewPipeline(calculatorGenerator(), 1)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	err := generate(context.Background(), st, pipeline, writer, generateOptions{
		recordingID:             42,
		force:                   true,
		maxEventsWithoutConfirm: 1,
		confirmLarge: func(int) bool {
			t.Fatal("confirm must not be called with force=true")
			return false
		},
	})
	require.NoError(t, err)
}

func TestGenerate_ValidationIsAdvisory(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &fakeStore{recordings: []models.Recording{calculatorRecording()}}
	pipeline := describe.NewPipeline(calculatorGenerator(), 1)
	writer := promptfile.NewWriter(fs, "prompts", 10_000_000, nil)

	err := generate(context.Background(), st, pipeline, writer, generateOptions{
		recordingID: 42,
		validate: func(ctx context.Context, lines []string) (bool, error) {
			return false, errors.New("validator unreachable")
		},
	})
	require.NoError(t, err, "validation failures must not fail the run")
}
