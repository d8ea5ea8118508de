package history

import (
	"context"
	"time"

	"github.com/dgnsrekt/favicond/internal/entry"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// Change is one line of the history file.
type Change struct {
	Timestamp time.Time   `json:"timestamp"`
	Action    string      `json:"action"`
	Entry     entry.Entry `json:"entry"`
}

// Recorder turns lifecycle events into history lines.
type Recorder struct {
	w *Writer
}

var _ entry.Hooks = (*Recorder)(nil)

func NewRecorder(w *Writer) *Recorder {
	return &Recorder{w: w}
}

func (r *Recorder) OnSetup(ctx context.Context, e entry.Entry) error {
	return r.record(ActionCreated, e)
}

func (r *Recorder) OnOptionsUpdated(ctx context.Context, e entry.Entry) error {
	return r.record(ActionUpdated, e)
}

func (r *Recorder) OnRemove(ctx context.Context, e entry.Entry) error {
	return r.record(ActionRemoved, e)
}

func (r *Recorder) record(action string, e entry.Entry) error {
	return r.w.Write(Change{Timestamp: r.w.now().UTC(), Action: action, Entry: e})
}
