package controller

import (
	"context"
	"strings"

	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/frontend"
	"github.com/dgnsrekt/favicond/internal/icons"
	"github.com/dgnsrekt/favicond/internal/integration"
	"github.com/dgnsrekt/favicond/internal/types"
)

// Service wraps the entry manager, the icon resolver and page rendering for the API.
type Service struct {
	entries  *entry.Manager
	resolver *icons.Resolver
	pages    *integration.Integration
}

func NewService(entries *entry.Manager, resolver *icons.Resolver, pages *integration.Integration) *Service {
	return &Service{entries: entries, resolver: resolver, pages: pages}
}

func (s *Service) requireNonEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &types.CodedError{Code: types.CodeValidation, Message: fieldName + " is required"}
	}
	return nil
}

func (s *Service) CreateEntry(ctx context.Context, title, iconPath, color string) (entry.Entry, error) {
	return s.entries.Create(ctx, title, iconPath, color)
}

func (s *Service) UpdateEntry(ctx context.Context, id, title, iconPath, color string) (entry.Entry, error) {
	return s.entries.Update(ctx, id, title, iconPath, color)
}

func (s *Service) CurrentEntry(ctx context.Context) (entry.Entry, error) {
	return s.entries.Current(ctx)
}

func (s *Service) GetEntry(ctx context.Context, id string) (entry.Entry, error) {
	return s.entries.Get(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	return s.entries.List(ctx)
}

func (s *Service) RemoveEntry(ctx context.Context, id string) error {
	return s.entries.Remove(ctx, id)
}

// ResolveIcons scans an arbitrary icon path, e.g. to preview a path before saving it.
func (s *Service) ResolveIcons(ctx context.Context, iconPath string) (icons.Manifest, error) {
	if err := s.requireNonEmpty(iconPath, "icon_path"); err != nil {
		return icons.Manifest{}, err
	}
	return s.resolver.Resolve(ctx, iconPath)
}

// CurrentIcons scans the icon path of the current entry. Unlike page rendering, scan
// failures are returned to the caller.
func (s *Service) CurrentIcons(ctx context.Context) (icons.Manifest, error) {
	e, err := s.entries.Current(ctx)
	if err != nil {
		return icons.Manifest{}, err
	}
	return s.resolver.Resolve(ctx, e.IconPath)
}

func (s *Service) RenderIndex(ctx context.Context) ([]byte, error) {
	return s.pages.RenderIndex(ctx)
}

func (s *Service) WebManifest(ctx context.Context) (frontend.WebAppManifest, error) {
	return s.pages.WebManifest(ctx)
}
