package models

import (
	"fmt"
	"strings"
	"time"
)

// ActionKind represents the kind of a recorded interaction.
type ActionKind string

const (
	ActionMove        ActionKind = "move"
	ActionClick       ActionKind = "click"
	ActionDoubleClick ActionKind = "doubleclick"
	ActionScroll      ActionKind = "scroll"
	ActionPress       ActionKind = "press"
	ActionRelease     ActionKind = "release"
	ActionType        ActionKind = "type"
)

// Recording is a captured sequence of user-interaction events. Recordings
// are created by the capture system and are read-only here.
type Recording struct {
	ID              int64
	TaskDescription string
	Timestamp       time.Time
	// Events is in chronological capture order; that order is significant
	// and carries through to the numbered output.
	Events []ActionEvent
}

// ActionEvent is one recorded interaction within a Recording.
type ActionEvent struct {
	ID          int64
	RecordingID int64
	Kind        ActionKind
	Timestamp   time.Time
	MouseX      float64
	MouseY      float64
	MouseButton string
	Key         string
	Text        string
	// Target is the capture system's description of the UI element the
	// event acted on (e.g. "Calculator icon"). May be empty.
	Target string
}

// PromptText renders the event's structured data as a compact textual
// encoding suitable for a description prompt.
func (e ActionEvent) PromptText() string {
	parts := []string{fmt.Sprintf("action=%s", e.Kind)}
	switch e.Kind {
	case ActionMove, ActionScroll:
		parts = append(parts, fmt.Sprintf("x=%.0f y=%.0f", e.MouseX, e.MouseY))
	case ActionClick, ActionDoubleClick:
		button := e.MouseButton
		if button == "" {
			button = "left"
		}
		parts = append(parts, fmt.Sprintf("button=%s x=%.0f y=%.0f", button, e.MouseX, e.MouseY))
	case ActionPress, ActionRelease:
		if e.Key != "" {
			parts = append(parts, fmt.Sprintf("key=%q", e.Key))
		}
	case ActionType:
		if e.Text != "" {
			parts = append(parts, fmt.Sprintf("text=%q", e.Text))
		}
	}
	if e.Target != "" {
		parts = append(parts, fmt.Sprintf("target=%q", e.Target))
	}
	return strings.Join(parts, " ")
}

// Label returns the recording's display label, e.g. "42:Calculator Demo".
func (r Recording) Label() string {
	return fmt.Sprintf("%d:%s", r.ID, r.TaskDescription)
}
