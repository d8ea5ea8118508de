// Package frontend renders the index page and web app manifest with the configured title
// and icons applied.
package frontend

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/dgnsrekt/favicond/internal/icons"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultTitle     = "Home Assistant"
	DefaultShortName = "Assistant"
	DefaultFavicon   = "/static/icons/favicon.ico"
	DefaultAppleIcon = "/static/icons/favicon-apple-180x180.png"
	// DefaultLaunchColor is the launch icon color the built-in page ships with.
	DefaultLaunchColor = "#18BCF2"
)

//go:embed assets/index.html
var indexHTML []byte

// IndexTemplate returns a copy of the built-in index page.
func IndexTemplate() []byte {
	return bytes.Clone(indexHTML)
}

// Metadata is what gets written into the page.
type Metadata struct {
	Title           string
	Manifest        icons.Manifest
	LaunchIconColor string
}

// Inject rewrites the title and icon links of doc.
func Inject(doc []byte, meta Metadata) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	head := findElement(root, atom.Head)
	if head == nil {
		return nil, fmt.Errorf("page has no head element")
	}

	if meta.Title != "" {
		setTitle(head, meta.Title)
	}
	replaceIconLinks(head, iconLinks(meta.Manifest))
	if meta.LaunchIconColor != "" {
		recolor(root, meta.LaunchIconColor)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// iconLinks builds the link elements for a manifest: one shortcut icon, the apple touch
// icons and the sized icons in ascending size.
func iconLinks(m icons.Manifest) []*html.Node {
	favicon := DefaultFavicon
	if rec, ok := m.Favicon(); ok {
		favicon = rec.Href
	}
	links := []*html.Node{linkNode("rel", "shortcut icon", "href", favicon)}

	apple := m.AppleTouchIcons()
	if len(apple) == 0 {
		links = append(links, linkNode("rel", "apple-touch-icon", "href", DefaultAppleIcon))
	}
	for _, rec := range apple {
		links = append(links, linkNode("rel", "apple-touch-icon", "href", rec.Href))
	}
	for _, rec := range m.AndroidIcons() {
		links = append(links, linkNode("rel", "icon", "type", "image/png", "sizes", rec.Sizes(), "href", rec.Href))
	}
	return links
}

func linkNode(kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "link", DataAtom: atom.Link}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func isIconLink(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Link {
		return false
	}
	for _, tok := range strings.Fields(strings.ToLower(attr(n, "rel"))) {
		switch tok {
		case "icon", "apple-touch-icon", "apple-touch-icon-precomposed":
			return true
		}
	}
	return false
}

// replaceIconLinks swaps every existing icon link for links, placed where the first old
// one was.
func replaceIconLinks(head *html.Node, links []*html.Node) {
	var old []*html.Node
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if isIconLink(c) {
			old = append(old, c)
		}
	}

	var anchor *html.Node
	if len(old) > 0 {
		anchor = old[0]
	}
	for i, l := range links {
		if i > 0 || anchor == nil {
			head.InsertBefore(newline(), anchor)
		}
		head.InsertBefore(l, anchor)
	}
	for _, n := range old {
		if prev := n.PrevSibling; prev != nil && prev.Type == html.TextNode && strings.TrimSpace(prev.Data) == "" && n != anchor {
			head.RemoveChild(prev)
		}
		head.RemoveChild(n)
	}
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n  "}
}

func setTitle(head *html.Node, title string) {
	t := findElement(head, atom.Title)
	if t == nil {
		t = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.AppendChild(t)
	}
	for c := t.FirstChild; c != nil; {
		next := c.NextSibling
		t.RemoveChild(c)
		c = next
	}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// recolor sets the mask icon color and the fill of launch screen SVG paths that still
// carry DefaultLaunchColor.
func recolor(n *html.Node, color string) {
	if n.Type == html.ElementNode {
		switch {
		case n.DataAtom == atom.Link && strings.EqualFold(attr(n, "rel"), "mask-icon"):
			setAttr(n, "color", color)
		case n.Namespace == "svg" && n.Data == "path" && strings.EqualFold(attr(n, "fill"), DefaultLaunchColor):
			setAttr(n, "fill", color)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		recolor(c, color)
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
