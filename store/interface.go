package store

import (
	"context"

	"github.com/openadapt/oadesc/models"
)

// RecordingStore defines the read-only query interface over the recording
// database. Recordings are created by the capture system; this tool never
// mutates them.
type RecordingStore interface {
	// GetRecording retrieves one recording by its identifier, including its
	// action events in chronological capture order.
	// It returns *types.NotFoundError if no recording with that id exists.
	GetRecording(ctx context.Context, id int64) (models.Recording, error)

	// LatestRecording retrieves the most recently created recording
	// (maximum creation timestamp, ties broken by maximum id), including
	// its action events in chronological capture order.
	// It returns *types.NotFoundError if the store is empty.
	LatestRecording(ctx context.Context) (models.Recording, error)

	// Close releases the underlying database connection. It should be
	// called when the store is no longer needed.
	Close() error
}
