package hub

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors of the hub's file base layout.
const (
	classCard           = "filebaseFileCard"
	classSubject        = "filebaseFileSubject"
	classLabel          = "label"
	classDownloadButton = "filebaseDownloadButton"
	classExternalURL    = "externalURL"
	downloadPathMarker  = "file-download"
)

var (
	// ErrNoVersionLabel is returned when a listing carries no version label.
	ErrNoVersionLabel = errors.New("listing has no version label")
	// ErrNoDetailLink is returned when a listing carries no link.
	ErrNoDetailLink = errors.New("listing has no detail link")
	// ErrNoDownloadLink is returned when a detail page has no download button.
	ErrNoDownloadLink = errors.New("detail page has no download link")
)

// Listing is one card of a listing page.
type Listing struct {
	Name    string
	Content string
}

// ParseListing extracts the mod cards of a listing page. Links inside each card
// are made absolute against pageURL so the serialized card stands on its own.
func ParseListing(body []byte, pageURL string) ([]Listing, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing url %q: %w", pageURL, err)
	}

	var listings []Listing
	for _, card := range findAll(doc, withClass(classCard)) {
		subject := find(card, withClass(classSubject))
		if subject == nil {
			continue
		}
		name := collapse(text(subject))
		if name == "" {
			continue
		}

		absolutize(card, base)

		var buf bytes.Buffer
		if err := html.Render(&buf, card); err != nil {
			return nil, fmt.Errorf("failed to render card %q: %w", name, err)
		}
		listings = append(listings, Listing{Name: name, Content: buf.String()})
	}
	return listings, nil
}

// VersionLabel returns the text of the first label in a listing card.
func VersionLabel(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse listing: %w", err)
	}
	label := find(doc, withClass(classLabel))
	if label == nil {
		return "", ErrNoVersionLabel
	}
	v := collapse(text(label))
	if v == "" {
		return "", ErrNoVersionLabel
	}
	return v, nil
}

// DetailLink returns the first link of a listing card.
func DetailLink(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse listing: %w", err)
	}
	a := find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.A && attr(n, "href") != ""
	})
	if a == nil {
		return "", ErrNoDetailLink
	}
	return attr(a, "href"), nil
}

// DownloadPageLink returns the download button target of a detail page.
func DownloadPageLink(page *Page) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page.Body))
	if err != nil {
		return "", fmt.Errorf("failed to parse detail page: %w", err)
	}
	a := find(doc, func(n *html.Node) bool {
		if n.DataAtom != atom.A || attr(n, "href") == "" {
			return false
		}
		return hasClass(n, classDownloadButton) || strings.Contains(attr(n, "href"), downloadPathMarker)
	})
	if a == nil {
		return "", ErrNoDownloadLink
	}
	return resolve(page.URL, attr(a, "href"))
}

// ExternalLink returns where a download page points: an external link, a meta
// refresh target, or the page itself.
func ExternalLink(page *Page) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page.Body))
	if err != nil {
		return "", fmt.Errorf("failed to parse download page: %w", err)
	}

	a := find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.A && hasClass(n, classExternalURL) && attr(n, "href") != ""
	})
	if a != nil {
		return resolve(page.URL, attr(a, "href"))
	}

	meta := find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && strings.EqualFold(attr(n, "http-equiv"), "refresh")
	})
	if meta != nil {
		if target := refreshTarget(attr(meta, "content")); target != "" {
			return resolve(page.URL, target)
		}
	}

	return page.URL, nil
}

// refreshTarget parses "5; url=https://..." into its URL.
func refreshTarget(content string) string {
	i := strings.Index(strings.ToLower(content), "url=")
	if i < 0 {
		return ""
	}
	return strings.Trim(strings.TrimSpace(content[i+len("url="):]), `'"`)
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

func absolutize(n *html.Node, base *url.URL) {
	walk(n, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		for i, a := range n.Attr {
			if a.Key != "href" && a.Key != "src" {
				continue
			}
			if ref, err := url.Parse(a.Val); err == nil {
				n.Attr[i].Val = base.ResolveReference(ref).String()
			}
		}
		return true
	})
}

func withClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(n *html.Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// findAll returns matching nodes without descending into a match.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	if match(n) {
		return []*html.Node{n}
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, match)...)
	}
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
