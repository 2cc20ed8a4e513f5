package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/openadapt/oadesc/models"
	"github.com/openadapt/oadesc/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements RecordingStore over the capture system's SQLite
// database. All access is read-only.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLiteStore opens the recording database at dbPath. The timeout
// applies per query, not to the whole run.
func NewSQLiteStore(dbPath string, timeout time.Duration) (*SQLiteStore, error) {
	// mode=ro keeps the promise that this tool never mutates the store.
	dsn := fmt.Sprintf("file:%s?mode=ro", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &types.StoreUnavailableError{Op: "open", Err: err}
	}

	return &SQLiteStore{db: db, timeout: timeout}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetRecording retrieves one recording by id with its action events.
func (s *SQLiteStore) GetRecording(ctx context.Context, id int64) (models.Recording, error) {
	return s.queryRecording(ctx, `
		SELECT id, timestamp, task_description
		FROM recording
		WHERE id = ?`, id)
}

// LatestRecording retrieves the recording with the maximum creation
// timestamp, ties broken by maximum id.
func (s *SQLiteStore) LatestRecording(ctx context.Context) (models.Recording, error) {
	return s.queryRecording(ctx, `
		SELECT id, timestamp, task_description
		FROM recording
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`)
}

func (s *SQLiteStore) queryRecording(ctx context.Context, query string, args ...any) (models.Recording, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		rec models.Recording
		ts  float64
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &ts, &rec.TaskDescription)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var id int64
		if len(args) > 0 {
			id, _ = args[0].(int64)
		}
		return models.Recording{}, &types.NotFoundError{RecordingID: id}
	case err != nil:
		return models.Recording{}, &types.StoreUnavailableError{Op: "get recording", Err: err}
	}
	rec.Timestamp = unixFloatTime(ts)

	events, err := s.loadEvents(ctx, rec.ID)
	if err != nil {
		return models.Recording{}, err
	}
	rec.Events = events
	return rec, nil
}

// loadEvents returns the recording's action events in chronological
// capture order (timestamp, then id for same-instant events).
func (s *SQLiteStore) loadEvents(ctx context.Context, recordingID int64) ([]models.ActionEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, timestamp,
		       COALESCE(mouse_x, 0), COALESCE(mouse_y, 0),
		       COALESCE(mouse_button_name, ''),
		       COALESCE(key_name, ''), COALESCE(text, ''),
		       COALESCE(active_segment_description, '')
		FROM action_event
		WHERE recording_id = ?
		ORDER BY timestamp ASC, id ASC`, recordingID)
	if err != nil {
		return nil, &types.StoreUnavailableError{Op: "load action events", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var events []models.ActionEvent
	for rows.Next() {
		var (
			e    models.ActionEvent
			kind string
			ts   float64
		)
		if err := rows.Scan(&e.ID, &kind, &ts, &e.MouseX, &e.MouseY, &e.MouseButton, &e.Key, &e.Text, &e.Target); err != nil {
			return nil, &types.StoreUnavailableError{Op: "scan action event", Err: err}
		}
		e.RecordingID = recordingID
		e.Kind = models.ActionKind(kind)
		e.Timestamp = unixFloatTime(ts)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StoreUnavailableError{Op: "iterate action events", Err: err}
	}
	return events, nil
}

// unixFloatTime converts the store's fractional unix seconds to time.Time.
func unixFloatTime(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
