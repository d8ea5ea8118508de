// Package integration ties the entry lifecycle to icon discovery and page rendering.
package integration

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/events"
	"github.com/dgnsrekt/favicond/internal/frontend"
	"github.com/dgnsrekt/favicond/internal/icons"
	"github.com/dgnsrekt/favicond/internal/types"
)

// CurrentEntry is the read side of the entry manager.
type CurrentEntry interface {
	Current(ctx context.Context) (entry.Entry, error)
}

// IconResolver scans an icon path.
type IconResolver interface {
	Resolve(ctx context.Context, iconPath string) (icons.Manifest, error)
}

// Integration implements the lifecycle hooks and renders pages from the current entry.
// Nothing derived from an entry is kept between calls.
type Integration struct {
	entries  CurrentEntry
	resolver IconResolver
	broker   *events.Broker
	template []byte
}

var _ entry.Hooks = (*Integration)(nil)

func New(resolver IconResolver, broker *events.Broker) *Integration {
	return &Integration{resolver: resolver, broker: broker, template: frontend.IndexTemplate()}
}

// Bind attaches the entry source. It is separate from New because the manager needs the
// integration as its hook before it exists itself.
func (i *Integration) Bind(entries CurrentEntry) {
	i.entries = entries
}

func (i *Integration) OnSetup(ctx context.Context, e entry.Entry) error {
	i.checkIconDir(ctx, e)
	i.publish(events.TypeUpdated, e)
	return nil
}

func (i *Integration) OnOptionsUpdated(ctx context.Context, e entry.Entry) error {
	i.checkIconDir(ctx, e)
	i.publish(events.TypeUpdated, e)
	return nil
}

func (i *Integration) OnRemove(ctx context.Context, e entry.Entry) error {
	i.publish(events.TypeRemoved, e)
	return nil
}

// checkIconDir scans once so a bad path shows up in the log when it is configured.
func (i *Integration) checkIconDir(ctx context.Context, e entry.Entry) {
	m, err := i.resolver.Resolve(ctx, e.IconPath)
	if err != nil {
		slog.Warn("icon directory not usable, rendering defaults", "entry_id", e.ID, "icon_path", e.IconPath, "error", err)
		return
	}
	slog.Info("icons resolved", "entry_id", e.ID, "icon_path", e.IconPath, "records", len(m.Records))
}

func (i *Integration) publish(kind string, e entry.Entry) {
	if i.broker == nil {
		return
	}
	i.broker.Publish(events.Event{Type: kind, EntryID: e.ID, Title: e.Title, IconPath: e.IconPath})
}

// State is the metadata a render is built from.
type State struct {
	Entry    *entry.Entry
	Manifest icons.Manifest
	// ScanErr is set when the icon directory could not be scanned and defaults apply.
	ScanErr error
}

// Current loads the current entry and rescans its icon directory. A missing entry or an
// unusable directory yields defaults, never an error.
func (i *Integration) Current(ctx context.Context) (State, error) {
	if i.entries == nil {
		return State{}, nil
	}
	e, err := i.entries.Current(ctx)
	if err != nil {
		if types.HasCode(err, types.CodeEntryNotFound) {
			return State{}, nil
		}
		return State{}, err
	}

	st := State{Entry: &e}
	m, err := i.resolver.Resolve(ctx, e.IconPath)
	if err != nil {
		var se *icons.ScanError
		if !errors.As(err, &se) {
			return State{}, err
		}
		slog.Warn("icon scan failed, rendering defaults", "icon_path", e.IconPath, "reason", se.Reason)
		st.ScanErr = err
		return st, nil
	}
	st.Manifest = m
	return st, nil
}

// RenderIndex returns the index page with the current title and icons.
func (i *Integration) RenderIndex(ctx context.Context) ([]byte, error) {
	st, err := i.Current(ctx)
	if err != nil {
		return nil, err
	}
	meta := frontend.Metadata{Manifest: st.Manifest}
	if st.Entry != nil {
		meta.Title = st.Entry.Title
		meta.LaunchIconColor = st.Entry.LaunchIconColor
	}
	return frontend.Inject(i.template, meta)
}

// WebManifest returns the manifest.json document for the current entry.
func (i *Integration) WebManifest(ctx context.Context) (frontend.WebAppManifest, error) {
	st, err := i.Current(ctx)
	if err != nil {
		return frontend.WebAppManifest{}, err
	}
	title := ""
	if st.Entry != nil {
		title = st.Entry.Title
	}
	return frontend.WebManifest(title, st.Manifest), nil
}
