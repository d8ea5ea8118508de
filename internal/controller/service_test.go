package controller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/entrystore"
	"github.com/dgnsrekt/favicond/internal/events"
	"github.com/dgnsrekt/favicond/internal/icons"
	"github.com/dgnsrekt/favicond/internal/integration"
	"github.com/dgnsrekt/favicond/internal/types"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	store, err := entrystore.Open(filepath.Join(root, ".storage", "favicon.db"))
	if err != nil {
		t.Fatalf("entrystore.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	resolver := icons.NewResolver(root)
	pages := integration.New(resolver, events.NewBroker())
	mgr := entry.NewManager(store, pages)
	pages.Bind(mgr)
	return NewService(mgr, resolver, pages), root
}

func TestRequireNonEmpty(t *testing.T) {
	s := &Service{}
	if err := s.requireNonEmpty("/local/favicons/", "icon_path"); err != nil {
		t.Fatalf("requireNonEmpty() = %v; want nil", err)
	}

	if err := s.requireNonEmpty("   ", "icon_path"); err == nil {
		t.Fatalf("requireNonEmpty() = nil; want validation error")
	} else if got, ok := err.(*types.CodedError); !ok {
		t.Fatalf("requireNonEmpty() = %T; want *types.CodedError", err)
	} else if got.Code != types.CodeValidation {
		t.Fatalf("requireNonEmpty() code = %q; want %q", got.Code, types.CodeValidation)
	} else if got.Message != "icon_path is required" {
		t.Fatalf("requireNonEmpty() message = %q; want %q", got.Message, "icon_path is required")
	}
}

func TestResolveIcons_RequiresIconPath(t *testing.T) {
	s := &Service{}
	_, err := s.ResolveIcons(context.Background(), "  ")
	var got *types.CodedError
	if !errors.As(err, &got) {
		t.Fatalf("ResolveIcons() error type = %T; want *types.CodedError", err)
	}
	if got.Code != types.CodeValidation {
		t.Fatalf("ResolveIcons() code = %q; want %q", got.Code, types.CodeValidation)
	}
}

func TestCurrentIconsFollowsUpdate(t *testing.T) {
	s, root := newTestService(t)
	ctx := context.Background()
	dir := filepath.Join(root, icons.WWWDir, "icons2")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("os.MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "favicon-128x128.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("os.WriteFile() failed: %v", err)
	}

	e, err := s.CreateEntry(ctx, "Home", "/local/favicons/", "")
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if _, err := s.CurrentIcons(ctx); !icons.IsReason(err, icons.ReasonNotFound) {
		t.Fatalf("CurrentIcons() error = %v; want NOT_FOUND", err)
	}

	if _, err := s.UpdateEntry(ctx, e.ID, "New Title", "/local/icons2/", ""); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}
	m, err := s.CurrentIcons(ctx)
	if err != nil {
		t.Fatalf("CurrentIcons() error = %v", err)
	}
	if len(m.AndroidIcons()) != 1 || m.AndroidIcons()[0].SizePx != 128 {
		t.Fatalf("CurrentIcons() = %+v; want one 128px icon", m)
	}
}
