package icons

import (
	"path/filepath"
	"strings"
)

const (
	// LocalPrefix is the frontend path the host mounts over WWWDir.
	LocalPrefix = "/local/"
	// WWWDir is the configuration subdirectory served under LocalPrefix.
	WWWDir = "www"
)

// NormalizePath trims whitespace, collapses repeated slashes and makes sure the path
// has exactly one leading and one trailing slash. Empty input stays empty. Dot segments
// are kept so LocalPath can reject them.
func NormalizePath(iconPath string) string {
	p := strings.TrimSpace(iconPath)
	if p == "" {
		return ""
	}
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/") + "/"
}

// LocalPath maps a frontend-relative icon path onto the directory it is served from.
func LocalPath(configRoot, iconPath string) (string, error) {
	p := NormalizePath(iconPath)
	if !strings.HasPrefix(p, LocalPrefix) {
		return "", &ScanError{Reason: ReasonInvalidPath, Path: iconPath}
	}
	rest := strings.TrimPrefix(p, LocalPrefix)
	for _, seg := range strings.Split(rest, "/") {
		if seg == ".." || seg == "." {
			return "", &ScanError{Reason: ReasonInvalidPath, Path: iconPath}
		}
	}
	return filepath.Join(configRoot, WWWDir, filepath.FromSlash(rest)), nil
}
