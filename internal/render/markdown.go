// Package render turns markdown content files into HTML page bodies and
// extracts the page title used for SEO metadata.
package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	derrors "git.home.luguber.info/inful/docportal/internal/errors"
)

// coreDir is the content subdirectory for framework-agnostic pages.
const coreDir = "core"

// Page is a rendered documentation page.
type Page struct {
	HTML  string
	Title string
}

// Renderer renders markdown pages from a content root laid out as
// <root>/<version>/<framework|core>/<page>.md.
type Renderer struct {
	root string
	md   goldmark.Markdown
}

// New creates a renderer over the given content root.
func New(root string) *Renderer {
	return &Renderer{root: root, md: goldmark.New()}
}

// RenderPage renders the page for a version/framework pair. A page missing
// under the framework directory falls back to the core page; only when both
// are absent is the page reported as not found.
func (r *Renderer) RenderPage(version, framework, page string) (*Page, error) {
	page = strings.Trim(page, "/")
	if page == "" {
		page = "index"
	}
	if !validPagePath(page) {
		return nil, derrors.PageNotFound(version, framework, page)
	}

	source, err := r.readFirst(
		filepath.Join(r.root, version, framework, page+".md"),
		filepath.Join(r.root, version, coreDir, page+".md"),
	)
	if err != nil {
		return nil, derrors.PageNotFound(version, framework, page)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, derrors.RenderFailed(page, err)
	}

	html := buf.String()
	return &Page{HTML: html, Title: ExtractTitle(html)}, nil
}

func (r *Renderer) readFirst(paths ...string) ([]byte, error) {
	var lastErr error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// validPagePath rejects traversal attempts before the path touches the filesystem.
func validPagePath(page string) bool {
	for _, seg := range strings.Split(page, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
