package render

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractTitle returns the text of the first h1 element in rendered HTML, or
// an empty string when the page has none.
func ExtractTitle(rendered string) string {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "h1" {
			title = strings.TrimSpace(extractText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractText(c))
	}
	return b.String()
}
