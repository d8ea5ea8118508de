// Package entry manages the user supplied settings of the integration: the page title and
// the frontend-relative icon directory.
package entry

import (
	"context"
	"time"
)

// Entry is one configured integration instance.
type Entry struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	IconPath        string    `json:"icon_path"`
	LaunchIconColor string    `json:"launch_icon_color,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Store persists entries. Implementations return a CodedError with
// types.CodeEntryNotFound for unknown ids and types.CodeDuplicate for title clashes.
type Store interface {
	Insert(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	FindByTitle(ctx context.Context, title string) (Entry, bool, error)
}

// Hooks is the lifecycle capability the host dispatches to.
type Hooks interface {
	OnSetup(ctx context.Context, e Entry) error
	OnOptionsUpdated(ctx context.Context, e Entry) error
	OnRemove(ctx context.Context, e Entry) error
}

// MultiHooks fans a lifecycle event out to every hook in order and returns the first error.
type MultiHooks []Hooks

func (m MultiHooks) OnSetup(ctx context.Context, e Entry) error {
	return m.each(func(h Hooks) error { return h.OnSetup(ctx, e) })
}

func (m MultiHooks) OnOptionsUpdated(ctx context.Context, e Entry) error {
	return m.each(func(h Hooks) error { return h.OnOptionsUpdated(ctx, e) })
}

func (m MultiHooks) OnRemove(ctx context.Context, e Entry) error {
	return m.each(func(h Hooks) error { return h.OnRemove(ctx, e) })
}

func (m MultiHooks) each(fn func(Hooks) error) error {
	var first error
	for _, h := range m {
		if h == nil {
			continue
		}
		if err := fn(h); err != nil && first == nil {
			first = err
		}
	}
	return first
}
