package types

import "fmt"

// NotFoundError is returned when no recording matches the requested
// identifier, or when the store holds no recordings at all.
type NotFoundError struct {
	RecordingID int64 // 0 when the "latest" lookup came up empty
}

func (e *NotFoundError) Error() string {
	if e.RecordingID == 0 {
		return "no recordings found in the database"
	}
	return fmt.Sprintf("recording %d not found", e.RecordingID)
}

// StoreUnavailableError wraps connectivity or timeout failures talking to
// the recording database.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("recording store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// GenerationError is a terminal failure producing a description for one
// action event. The run aborts; partial description sets are not valid
// output.
type GenerationError struct {
	EventIndex int // 1-based position within the recording
	Err        error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("description generation failed for event %d: %v", e.EventIndex, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// WriteConflictError is returned when both the candidate output path and
// its timestamp-suffixed fallback already exist.
type WriteConflictError struct {
	Path string
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("output file %s already exists and so does its timestamped fallback", e.Path)
}

// FileTooLargeError is returned before writing when the serialized output
// would exceed the configured size limit. No file is touched.
type FileTooLargeError struct {
	SizeBytes int64
	MaxBytes  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("output would be %d bytes, exceeding the %d byte limit", e.SizeBytes, e.MaxBytes)
}
