package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// NormalizeBody reduces a message body to plain text. HTML bodies are walked
// for visible text; anything that does not parse as HTML markup is returned
// trimmed as-is.
func NormalizeBody(body string) string {
	trimmed := strings.TrimSpace(body)
	if !looksLikeHTML(trimmed) {
		return trimmed
	}

	doc, err := html.Parse(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}
	return strings.TrimSpace(visibleText(doc))
}

// looksLikeHTML is a cheap pre-check so plain prose containing "<" is not
// run through the parser.
func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range []string{"<html", "<body", "<div", "<p>", "<p ", "<br", "<table", "<span"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
