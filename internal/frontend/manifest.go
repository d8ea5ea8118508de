package frontend

import (
	"github.com/dgnsrekt/favicond/internal/icons"
)

// WebAppManifest is the document served at /manifest.json.
type WebAppManifest struct {
	Name            string               `json:"name"`
	ShortName       string               `json:"short_name"`
	StartURL        string               `json:"start_url"`
	Display         string               `json:"display"`
	ThemeColor      string               `json:"theme_color"`
	BackgroundColor string               `json:"background_color"`
	Icons           []icons.ManifestIcon `json:"icons"`
}

func defaultManifestIcons() []icons.ManifestIcon {
	var out []icons.ManifestIcon
	for _, size := range []string{"192x192", "384x384", "512x512", "1024x1024"} {
		out = append(out, icons.ManifestIcon{
			Src:   "/static/icons/favicon-" + size + ".png",
			Sizes: size,
			Type:  "image/png",
		})
	}
	return out
}

// WebManifest builds the manifest for the given title and icons. Host defaults fill in
// whatever is not configured.
func WebManifest(title string, m icons.Manifest) WebAppManifest {
	doc := WebAppManifest{
		Name:            DefaultTitle,
		ShortName:       DefaultShortName,
		StartURL:        "/?homescreen=1",
		Display:         "standalone",
		ThemeColor:      "#03A9F4",
		BackgroundColor: "#FFFFFF",
		Icons:           defaultManifestIcons(),
	}
	if title != "" {
		doc.Name = title
		doc.ShortName = title
	}
	if custom := m.WebManifestIcons(); len(custom) > 0 {
		doc.Icons = custom
	}
	return doc
}
