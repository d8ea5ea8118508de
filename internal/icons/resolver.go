package icons

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"syscall"
)

const (
	faviconName = "favicon.ico"
	applePrefix = "favicon-apple-"
)

var sizedIconRe = regexp.MustCompile(`^favicon-([0-9]+)x([0-9]+)\.png$`)

// Resolver scans icon directories below a configuration root.
type Resolver struct {
	configRoot string
}

func NewResolver(configRoot string) *Resolver {
	return &Resolver{configRoot: configRoot}
}

// Resolve lists the directory behind iconPath and returns the classified icons.
// The directory is read on every call.
func (r *Resolver) Resolve(ctx context.Context, iconPath string) (Manifest, error) {
	dir, err := LocalPath(r.configRoot, iconPath)
	if err != nil {
		return Manifest{}, err
	}
	if err := ctx.Err(); err != nil {
		return Manifest{}, err
	}

	entries, err := readDirUnsorted(dir)
	if err != nil {
		return Manifest{}, err
	}

	href := NormalizePath(iconPath)
	slog.Debug("scanning icon directory", "icon_path", href, "dir", dir, "entries", len(entries))

	var (
		favicon   *Record
		apple     []Record
		appleSeen = make(map[string]bool)
		android   = make(map[int]Record)
	)
	for _, de := range entries {
		name := de.Name()
		if !isRegularFile(dir, de) {
			continue
		}
		rec, ok := Classify(name)
		if !ok {
			continue
		}
		rec.Href = href + name

		switch rec.Role {
		case BrowserFavicon:
			if favicon == nil {
				favicon = &rec
				slog.Info("found favicon", "href", rec.Href)
			}
		case AppleTouchIcon:
			if !appleSeen[name] {
				appleSeen[name] = true
				apple = append(apple, rec)
				slog.Info("found apple icon", "href", rec.Href)
			}
		case AndroidIcon:
			if prev, ok := android[rec.SizePx]; ok {
				slog.Debug("icon size overridden", "size", rec.SizePx, "previous", prev.Filename, "filename", name)
			}
			android[rec.SizePx] = rec
			slog.Info("found icon", "href", rec.Href, "sizes", rec.Sizes())
		}
	}

	m := Manifest{IconPath: href}
	if favicon != nil {
		m.Records = append(m.Records, *favicon)
	}
	m.Records = append(m.Records, apple...)

	sizes := make([]int, 0, len(android))
	for size := range android {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		m.Records = append(m.Records, android[size])
	}
	return m, nil
}

// Classify maps a filename onto an icon role. Matching is case-sensitive.
func Classify(name string) (Record, bool) {
	switch {
	case name == faviconName:
		return Record{Role: BrowserFavicon, Filename: name}, true
	case strings.HasPrefix(name, applePrefix):
		return Record{Role: AppleTouchIcon, Filename: name}, true
	}

	m := sizedIconRe.FindStringSubmatch(name)
	if m == nil || m[1] != m[2] {
		return Record{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return Record{}, false
	}
	return Record{Role: AndroidIcon, Filename: name, SizePx: n}, true
}

// readDirUnsorted returns entries in the order the filesystem lists them.
func readDirUnsorted(dir string) ([]fs.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, scanErr(dir, err)
	}
	if !info.IsDir() {
		return nil, scanErr(dir, fmt.Errorf("%s: %w", dir, syscall.ENOTDIR))
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, scanErr(dir, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Debug("icon directory close failed", "dir", dir, "error", cerr)
		}
	}()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, scanErr(dir, err)
	}
	return entries, nil
}

func isRegularFile(dir string, de fs.DirEntry) bool {
	mode := de.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, de.Name()))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
