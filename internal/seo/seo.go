// Package seo emits page metadata: title, description, preview image and
// canonical URL, merged from site defaults and per-page values.
package seo

import (
	"fmt"
	"html"
	"strings"

	"git.home.luguber.info/inful/docportal/internal/config"
)

// Meta is the structured metadata emitted per page.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
}

// ForPage merges site defaults with a page title. A non-empty page title is
// combined with the site title; otherwise the site title stands alone.
func ForPage(site config.SiteConfig, pageTitle, canonical string) Meta {
	title := site.Title
	if pageTitle != "" {
		title = pageTitle + " | " + site.Title
	}
	return Meta{
		Title:       title,
		Description: site.Description,
		ImageURL:    site.PreviewImage,
		Canonical:   canonical,
	}
}

// HeadTags renders the metadata as HTML head tags.
func (m Meta) HeadTags() string {
	esc := html.EscapeString
	var b strings.Builder
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(m.Title))
	fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s\">\n", esc(m.Title))
	if m.Description != "" {
		fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", esc(m.Description))
		fmt.Fprintf(&b, "<meta property=\"og:description\" content=\"%s\">\n", esc(m.Description))
	}
	if m.ImageURL != "" {
		fmt.Fprintf(&b, "<meta property=\"og:image\" content=\"%s\">\n", esc(m.ImageURL))
	}
	if m.Canonical != "" {
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", esc(m.Canonical))
	}
	return b.String()
}
