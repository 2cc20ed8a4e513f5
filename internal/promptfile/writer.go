// Package promptfile names, versions, and persists generated description
// files.
package promptfile

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/openadapt/oadesc/types"
	"github.com/spf13/afero"
)

const (
	maxLabelLength  = 255
	timestampLayout = "20060102_150405"
)

// ConfirmFunc decides whether an existing file at path may be overwritten.
// Injected so the writer stays testable without simulating terminal input;
// the CLI wires a promptui confirm here.
type ConfirmFunc func(path string) bool

// Writer persists numbered description lines under a fixed output
// directory. Each run creates or replaces exactly one file.
type Writer struct {
	fs          afero.Fs
	dir         string
	maxFileSize int64
	confirm     ConfirmFunc
	now         func() time.Time
}

// NewWriter creates a Writer. confirm may be nil, in which case an
// existing file is never overwritten without force and the timestamped
// fallback is used instead.
func NewWriter(fs afero.Fs, dir string, maxFileSize int64, confirm ConfirmFunc) *Writer {
	return &Writer{
		fs:          fs,
		dir:         dir,
		maxFileSize: maxFileSize,
		confirm:     confirm,
		now:         time.Now,
	}
}

// Save numbers the lines, resolves the final path, and writes the file
// atomically. It returns the path written to.
func (w *Writer) Save(lines []string, recordingID int64, taskLabel string, force bool) (string, error) {
	content := Render(lines)
	if size := int64(len(content)); size > w.maxFileSize {
		return "", &types.FileTooLargeError{SizeBytes: size, MaxBytes: w.maxFileSize}
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", w.dir, err)
	}

	path, err := w.resolvePath(recordingID, taskLabel, force)
	if err != nil {
		return "", err
	}

	if err := w.writeAtomic(path, content); err != nil {
		return "", err
	}
	slog.Debug("saved descriptions", "path", path, "bytes", len(content), "lines", len(lines))
	return path, nil
}

// resolvePath applies the overwrite-or-version decision from §4.3: write
// to the candidate unless it exists and neither force nor the operator
// allows overwriting, in which case fall back to a timestamped name.
func (w *Writer) resolvePath(recordingID int64, taskLabel string, force bool) (string, error) {
	base := fmt.Sprintf("prompt_recording_%d_%s", recordingID, SanitizeLabel(taskLabel))
	candidate := filepath.Join(w.dir, base+".txt")

	exists, err := afero.Exists(w.fs, candidate)
	if err != nil {
		return "", fmt.Errorf("check %s: %w", candidate, err)
	}
	if !exists || force {
		return candidate, nil
	}

	if w.confirm != nil && w.confirm(candidate) {
		return candidate, nil
	}

	versioned := filepath.Join(w.dir, fmt.Sprintf("%s_%s.txt", base, w.now().Format(timestampLayout)))
	taken, err := afero.Exists(w.fs, versioned)
	if err != nil {
		return "", fmt.Errorf("check %s: %w", versioned, err)
	}
	if taken {
		return "", &types.WriteConflictError{Path: candidate}
	}
	slog.Info("existing file kept, saving to new file", "path", versioned)
	return versioned, nil
}

// writeAtomic writes content to a temporary file in the output directory
// and renames it into place, so a failed run leaves no partial file.
func (w *Writer) writeAtomic(path, content string) error {
	tmp, err := afero.TempFile(w.fs, w.dir, ".prompt_*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := w.fs.Rename(tmpName, path); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("move %s into place: %w", path, err)
	}
	return nil
}

// Render serializes lines as "<n>. <sentence>\n", 1-based, in input order.
func Render(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return b.String()
}

// SanitizeLabel converts a task label into a filesystem-safe token.
// Anything outside [A-Za-z0-9._-] becomes an underscore.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unnamed"
	}

	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	safe := b.String()
	if len(safe) > maxLabelLength {
		safe = safe[:maxLabelLength]
	}
	return safe
}
