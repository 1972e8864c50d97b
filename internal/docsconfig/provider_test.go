package docsconfig

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docportal/internal/errors"
)

const v3Config = `
search:
  provider: algolia
  index_name: example-docs
menu:
  - label: Guide
    children:
      - label: Intro
        to: /intro
framework_menus:
  solid:
    - label: Guide
      children:
        - label: Solid Intro
          to: /solid/intro
`

func writeDocsConfig(t *testing.T, dir, version, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, version+".yaml"), []byte(content), 0o644))
}

func TestFileProviderLoadsVersion(t *testing.T) {
	dir := t.TempDir()
	writeDocsConfig(t, dir, "v3", v3Config)

	p := NewFileProvider(dir, slog.Default())
	cfg, err := p.ForVersion("v3")
	require.NoError(t, err)

	assert.Equal(t, "algolia", cfg.Search.Provider)
	require.Len(t, cfg.Menu, 1)
	assert.Equal(t, "Guide", cfg.Menu[0].Label)
	require.Contains(t, cfg.FrameworkMenus, "solid")
}

func TestFileProviderUnknownVersion(t *testing.T) {
	p := NewFileProvider(t.TempDir(), nil)
	_, err := p.ForVersion("v99")
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryNotFound))
}

func TestFileProviderCachesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	writeDocsConfig(t, dir, "v3", v3Config)

	p := NewFileProvider(dir, nil)
	first, err := p.ForVersion("v3")
	require.NoError(t, err)

	// Rewrite the file; the cached config must still be served.
	writeDocsConfig(t, dir, "v3", `{menu: [{label: Changed, children: []}]}`)
	cached, err := p.ForVersion("v3")
	require.NoError(t, err)
	assert.Same(t, first, cached)

	p.Invalidate()
	reloaded, err := p.ForVersion("v3")
	require.NoError(t, err)
	assert.Equal(t, "Changed", reloaded.Menu[0].Label)
}

func TestValidateMenusFlagsDuplicateLabels(t *testing.T) {
	cfg := &DocsConfig{
		Menu: []MenuGroup{
			{Label: "Guide"},
			{Label: " guide "},
		},
		FrameworkMenus: map[string][]MenuGroup{
			"vue": {{Label: "API"}, {Label: "api"}},
		},
	}
	warnings := ValidateMenus(cfg)
	require.Len(t, warnings, 2)
}

func TestValidateMenusCleanConfig(t *testing.T) {
	cfg := &DocsConfig{Menu: []MenuGroup{{Label: "Guide"}, {Label: "API"}}}
	assert.Empty(t, ValidateMenus(cfg))
}
