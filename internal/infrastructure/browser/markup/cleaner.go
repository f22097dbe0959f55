package markup

import (
	"strings"

	"golang.org/x/net/html"
)

type Config struct {
	StripTags     []string
	StripAttrs    []string
	MaxOutputSize int
}

// DefaultConfig strips everything a planner has no use for. Webmail pages are
// enormous; the size cap keeps the compacted document bounded.
var DefaultConfig = Config{
	StripTags: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta", "head", "title",
	},
	StripAttrs: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	MaxOutputSize: 100_000,
}

// Compact reduces raw page HTML to the interactive skeleton: comments,
// presentation tags and noisy attributes are dropped, aria-* and role are
// kept since the planner selectors key on them. Returns the input unchanged
// when it cannot be parsed.
func Compact(rawHTML string, cfg *Config) string {
	if cfg == nil {
		cfg = &DefaultConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	body := findBody(doc)
	if body == nil {
		return rawHTML
	}

	clean(body, cfg)

	var sb strings.Builder
	_ = html.Render(&sb, body)

	return truncate(sb.String(), cfg.MaxOutputSize)
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func clean(n *html.Node, cfg *Config) {
	if n.Type == html.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type != html.ElementNode {
		return
	}

	for _, tag := range cfg.StripTags {
		if n.Data == tag {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return
		}
	}

	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if !dropAttr(attr, cfg) {
			kept = append(kept, attr)
		}
	}
	n.Attr = kept

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		clean(c, cfg)
		c = next
	}
}

func dropAttr(attr html.Attribute, cfg *Config) bool {
	for _, key := range cfg.StripAttrs {
		if attr.Key == key {
			return true
		}
	}
	// Inline handlers carry no locator value and bloat the output.
	return strings.HasPrefix(attr.Key, "on")
}

func truncate(s string, maxSize int) string {
	if maxSize > 0 && len(s) > maxSize {
		return s[:maxSize] + "\n<!-- truncated -->"
	}
	return s
}
