package frontend

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgnsrekt/favicond/internal/icons"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type linkTag struct {
	rel, href, sizes string
}

func collectLinks(t *testing.T, page []byte) (title string, links []linkTag) {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("html.Parse() failed: %v", err)
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if n.FirstChild != nil {
					title = n.FirstChild.Data
				}
			case atom.Link:
				rel := attr(n, "rel")
				if rel != "manifest" && rel != "mask-icon" {
					links = append(links, linkTag{rel: rel, href: attr(n, "href"), sizes: attr(n, "sizes")})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return title, links
}

func exampleManifest() icons.Manifest {
	return icons.Manifest{
		IconPath: "/local/favicons/",
		Records: []icons.Record{
			{Role: icons.BrowserFavicon, Filename: "favicon.ico", Href: "/local/favicons/favicon.ico"},
			{Role: icons.AppleTouchIcon, Filename: "favicon-apple-touch.png", Href: "/local/favicons/favicon-apple-touch.png"},
			{Role: icons.AndroidIcon, Filename: "favicon-192x192.png", Href: "/local/favicons/favicon-192x192.png", SizePx: 192},
			{Role: icons.AndroidIcon, Filename: "favicon-512x512.png", Href: "/local/favicons/favicon-512x512.png", SizePx: 512},
		},
	}
}

func TestInjectAppliesTitleAndIcons(t *testing.T) {
	out, err := Inject(IndexTemplate(), Metadata{Title: "My Home", Manifest: exampleManifest()})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	title, links := collectLinks(t, out)
	if title != "My Home" {
		t.Fatalf("title = %q; want %q", title, "My Home")
	}
	want := []linkTag{
		{rel: "shortcut icon", href: "/local/favicons/favicon.ico"},
		{rel: "apple-touch-icon", href: "/local/favicons/favicon-apple-touch.png"},
		{rel: "icon", href: "/local/favicons/favicon-192x192.png", sizes: "192x192"},
		{rel: "icon", href: "/local/favicons/favicon-512x512.png", sizes: "512x512"},
	}
	if len(links) != len(want) {
		t.Fatalf("links = %+v; want %+v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Fatalf("link[%d] = %+v; want %+v", i, links[i], want[i])
		}
	}
}

func TestInjectEmptyManifestUsesDefaults(t *testing.T) {
	out, err := Inject(IndexTemplate(), Metadata{})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}

	title, links := collectLinks(t, out)
	if title != DefaultTitle {
		t.Fatalf("title = %q; want %q", title, DefaultTitle)
	}
	if len(links) != 2 {
		t.Fatalf("links = %+v; want shortcut icon and default apple icon", links)
	}
	if links[0].rel != "shortcut icon" || links[0].href != DefaultFavicon {
		t.Fatalf("link[0] = %+v; want default shortcut icon", links[0])
	}
	if links[1].href != DefaultAppleIcon {
		t.Fatalf("link[1] = %+v; want default apple icon", links[1])
	}
}

func TestInjectEscapesTitle(t *testing.T) {
	out, err := Inject(IndexTemplate(), Metadata{Title: `Home </title><script>x</script>`})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	if strings.Contains(string(out), "<script>x</script>") {
		t.Fatalf("title was not escaped: %s", out)
	}
	title, _ := collectLinks(t, out)
	if title != `Home </title><script>x</script>` {
		t.Fatalf("title = %q; want original text", title)
	}
}

func TestInjectRecolorsLaunchIcon(t *testing.T) {
	out, err := Inject(IndexTemplate(), Metadata{LaunchIconColor: "#ff0000"})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	page := string(out)
	if !strings.Contains(page, `color="#ff0000"`) {
		t.Fatalf("mask icon color not applied: %s", page)
	}
	if !strings.Contains(page, `fill="#ff0000"`) {
		t.Fatalf("launch screen fill not applied: %s", page)
	}
	if strings.Contains(page, `fill="`+DefaultLaunchColor+`"`) {
		t.Fatalf("default launch fill left in page: %s", page)
	}
	if !strings.Contains(page, `content="#03A9F4"`) {
		t.Fatalf("theme color should be left alone: %s", page)
	}
}

func TestInjectAddsTitleWhenMissing(t *testing.T) {
	doc := []byte(`<!DOCTYPE html><html><head><meta charset="utf-8"></head><body></body></html>`)
	out, err := Inject(doc, Metadata{Title: "Cabin"})
	if err != nil {
		t.Fatalf("Inject() error = %v", err)
	}
	title, links := collectLinks(t, out)
	if title != "Cabin" {
		t.Fatalf("title = %q; want %q", title, "Cabin")
	}
	if len(links) != 2 || links[0].rel != "shortcut icon" {
		t.Fatalf("links = %+v; want appended defaults", links)
	}
}

func TestWebManifest(t *testing.T) {
	doc := WebManifest("My Home", exampleManifest())
	if doc.Name != "My Home" || doc.ShortName != "My Home" {
		t.Fatalf("names = %q/%q; want My Home", doc.Name, doc.ShortName)
	}
	if len(doc.Icons) != 2 || doc.Icons[0].Sizes != "192x192" || doc.Icons[1].Src != "/local/favicons/favicon-512x512.png" {
		t.Fatalf("icons = %+v; want the two android icons", doc.Icons)
	}

	def := WebManifest("", icons.Manifest{})
	if def.Name != DefaultTitle || def.ShortName != DefaultShortName {
		t.Fatalf("default names = %q/%q", def.Name, def.ShortName)
	}
	if len(def.Icons) != 4 {
		t.Fatalf("default icons = %+v; want 4", def.Icons)
	}
}
