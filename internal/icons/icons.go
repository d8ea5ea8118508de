// Package icons discovers user supplied favicons in a frontend-relative directory and
// classifies them into the roles the index page needs.
package icons

import (
	"strconv"
)

// Role is the purpose an icon file serves on the page.
type Role string

const (
	BrowserFavicon Role = "BROWSER_FAVICON"
	AppleTouchIcon Role = "APPLE_TOUCH_ICON"
	AndroidIcon    Role = "ANDROID_ICON"
)

// Record is one classified icon file.
type Record struct {
	Role     Role   `json:"role" enum:"BROWSER_FAVICON,APPLE_TOUCH_ICON,ANDROID_ICON"`
	Filename string `json:"filename"`
	Href     string `json:"href" doc:"Frontend-relative URL of the file"`
	SizePx   int    `json:"size_px,omitempty" doc:"Edge length in pixels, android icons only"`
}

// Sizes returns the HTML sizes attribute value for sized icons.
func (r Record) Sizes() string {
	if r.SizePx <= 0 {
		return ""
	}
	n := strconv.Itoa(r.SizePx)
	return n + "x" + n
}

// Manifest is the result of one directory scan. Records are ordered favicon first,
// then apple touch icons in listing order, then android icons by ascending size.
type Manifest struct {
	IconPath string   `json:"icon_path"`
	Records  []Record `json:"records"`
}

// ManifestIcon is an entry of the web app manifest icons array.
type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// Favicon returns the authoritative browser favicon, if any.
func (m Manifest) Favicon() (Record, bool) {
	for _, r := range m.Records {
		if r.Role == BrowserFavicon {
			return r, true
		}
	}
	return Record{}, false
}

func (m Manifest) AppleTouchIcons() []Record { return m.byRole(AppleTouchIcon) }

func (m Manifest) AndroidIcons() []Record { return m.byRole(AndroidIcon) }

// WebManifestIcons converts the android icons into manifest.json entries.
func (m Manifest) WebManifestIcons() []ManifestIcon {
	android := m.AndroidIcons()
	out := make([]ManifestIcon, 0, len(android))
	for _, r := range android {
		out = append(out, ManifestIcon{Src: r.Href, Sizes: r.Sizes(), Type: "image/png"})
	}
	return out
}

func (m Manifest) byRole(role Role) []Record {
	var out []Record
	for _, r := range m.Records {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}
