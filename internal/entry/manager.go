package entry

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dgnsrekt/favicond/internal/icons"
	"github.com/dgnsrekt/favicond/internal/types"
	"github.com/google/uuid"
)

var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Manager validates and persists entries and dispatches lifecycle hooks.
type Manager struct {
	store Store
	hooks Hooks
	now   func() time.Time

	// mu serializes store mutations. Hooks run after it is released.
	mu sync.Mutex
}

func NewManager(store Store, hooks Hooks) *Manager {
	return &Manager{store: store, hooks: hooks, now: time.Now}
}

func requireNonEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &types.CodedError{Code: types.CodeValidation, Message: fieldName + " is required"}
	}
	return nil
}

func validate(title, iconPath, color string) (string, string, string, error) {
	if err := requireNonEmpty(title, "title"); err != nil {
		return "", "", "", err
	}
	if err := requireNonEmpty(iconPath, "icon_path"); err != nil {
		return "", "", "", err
	}
	color = strings.TrimSpace(color)
	if color != "" && !colorRe.MatchString(color) {
		return "", "", "", &types.CodedError{Code: types.CodeValidation, Message: "launch_icon_color must be #RGB or #RRGGBB"}
	}
	return strings.TrimSpace(title), icons.NormalizePath(iconPath), color, nil
}

// Create validates the wizard input and stores a new entry. The icon directory is not
// checked, it may be created later.
func (m *Manager) Create(ctx context.Context, title, iconPath, color string) (Entry, error) {
	title, iconPath, color, err := validate(title, iconPath, color)
	if err != nil {
		return Entry{}, err
	}
	e, err := m.insert(ctx, title, iconPath, color)
	if err != nil {
		return Entry{}, err
	}
	slog.Info("entry created", "entry_id", e.ID, "title", e.Title, "icon_path", e.IconPath)

	if m.hooks != nil {
		if err := m.hooks.OnSetup(ctx, e); err != nil {
			slog.Warn("setup hook failed", "entry_id", e.ID, "error", err)
		}
	}
	return e, nil
}

func (m *Manager) insert(ctx context.Context, title, iconPath, color string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkDuplicate(ctx, title, ""); err != nil {
		return Entry{}, err
	}

	now := m.now().UTC()
	e := Entry{
		ID:              uuid.NewString(),
		Title:           title,
		IconPath:        iconPath,
		LaunchIconColor: color,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := m.store.Insert(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Update overwrites the settings of an existing entry and triggers a reload.
func (m *Manager) Update(ctx context.Context, id, title, iconPath, color string) (Entry, error) {
	if err := requireNonEmpty(id, "entry_id"); err != nil {
		return Entry{}, err
	}
	title, iconPath, color, err := validate(title, iconPath, color)
	if err != nil {
		return Entry{}, err
	}
	e, err := m.overwrite(ctx, strings.TrimSpace(id), title, iconPath, color)
	if err != nil {
		return Entry{}, err
	}
	slog.Info("entry updated", "entry_id", e.ID, "title", e.Title, "icon_path", e.IconPath)

	if m.hooks != nil {
		if err := m.hooks.OnOptionsUpdated(ctx, e); err != nil {
			slog.Warn("options hook failed", "entry_id", e.ID, "error", err)
		}
	}
	return e, nil
}

func (m *Manager) overwrite(ctx context.Context, id, title, iconPath, color string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.store.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if err := m.checkDuplicate(ctx, title, e.ID); err != nil {
		return Entry{}, err
	}

	e.Title = title
	e.IconPath = iconPath
	e.LaunchIconColor = color
	e.UpdatedAt = m.now().UTC()
	if !e.UpdatedAt.After(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt.Add(time.Nanosecond)
	}
	if err := m.store.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Current returns the most recently updated entry.
func (m *Manager) Current(ctx context.Context) (Entry, error) {
	all, err := m.store.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	if len(all) == 0 {
		return Entry{}, &types.CodedError{Code: types.CodeEntryNotFound, Message: "no entry configured"}
	}
	cur := all[0]
	for _, e := range all[1:] {
		if e.UpdatedAt.After(cur.UpdatedAt) {
			cur = e
		}
	}
	return cur, nil
}

func (m *Manager) Get(ctx context.Context, id string) (Entry, error) {
	if err := requireNonEmpty(id, "entry_id"); err != nil {
		return Entry{}, err
	}
	return m.store.Get(ctx, strings.TrimSpace(id))
}

func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	return m.store.List(ctx)
}

// Remove deletes the entry and lets the hooks restore the page defaults.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if err := requireNonEmpty(id, "entry_id"); err != nil {
		return err
	}
	e, err := m.deleteEntry(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	slog.Info("entry removed", "entry_id", e.ID, "title", e.Title)

	if m.hooks != nil {
		if err := m.hooks.OnRemove(ctx, e); err != nil {
			slog.Warn("remove hook failed", "entry_id", e.ID, "error", err)
		}
	}
	return nil
}

func (m *Manager) deleteEntry(ctx context.Context, id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.store.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if err := m.store.Delete(ctx, e.ID); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (m *Manager) checkDuplicate(ctx context.Context, title, selfID string) error {
	existing, ok, err := m.store.FindByTitle(ctx, title)
	if err != nil {
		return err
	}
	if ok && existing.ID != selfID {
		return &types.CodedError{Code: types.CodeDuplicate, Message: "an entry titled " + title + " already exists"}
	}
	return nil
}
