// Package setup imports an entry from the favicon block of a YAML configuration file.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/icons"
	"gopkg.in/yaml.v3"
)

// Block is the `favicon:` section of the configuration file.
type Block struct {
	Title           string `yaml:"title"`
	IconPath        string `yaml:"icon_path"`
	LaunchIconColor string `yaml:"launch_icon_color"`
}

type file struct {
	Favicon *Block `yaml:"favicon"`
}

// Load reads the favicon block from path. A missing file or a file without the block
// returns nil.
func Load(path string) (*Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("setup config: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("setup config: %w", err)
	}
	return f.Favicon, nil
}

// Manager is the subset of entry.Manager used to apply a block.
type Manager interface {
	Create(ctx context.Context, title, iconPath, color string) (entry.Entry, error)
	Update(ctx context.Context, id, title, iconPath, color string) (entry.Entry, error)
	List(ctx context.Context) ([]entry.Entry, error)
}

// Apply creates an entry for the block, or updates the entry with the same title when the
// stored values differ.
func Apply(ctx context.Context, mgr Manager, b *Block) (entry.Entry, error) {
	if b == nil {
		return entry.Entry{}, nil
	}
	existing, err := mgr.List(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	title := strings.TrimSpace(b.Title)
	for _, e := range existing {
		if e.Title != title {
			continue
		}
		if e.IconPath == icons.NormalizePath(b.IconPath) && e.LaunchIconColor == strings.TrimSpace(b.LaunchIconColor) {
			return e, nil
		}
		updated, err := mgr.Update(ctx, e.ID, b.Title, b.IconPath, b.LaunchIconColor)
		if err != nil {
			return entry.Entry{}, err
		}
		slog.Info("setup block applied to existing entry", "entry_id", updated.ID, "title", updated.Title)
		return updated, nil
	}

	created, err := mgr.Create(ctx, b.Title, b.IconPath, b.LaunchIconColor)
	if err != nil {
		return entry.Entry{}, err
	}
	slog.Info("setup block created entry", "entry_id", created.ID, "title", created.Title)
	return created, nil
}
