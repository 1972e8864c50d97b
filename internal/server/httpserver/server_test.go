package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docportal/internal/config"
	"git.home.luguber.info/inful/docportal/internal/docsconfig"
	"git.home.luguber.info/inful/docportal/internal/metrics"
	"git.home.luguber.info/inful/docportal/internal/prefs"
	"git.home.luguber.info/inful/docportal/internal/render"
)

// captureRecorder records IncRequest statuses for assertions.
type captureRecorder struct {
	metrics.NoopRecorder
	statuses []int
}

func (c *captureRecorder) IncRequest(_ string, status int) {
	c.statuses = append(c.statuses, status)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	docsDir := filepath.Join(root, "docsconfig")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "v3.yaml"), []byte(`
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
`), 0o644))

	contentDir := filepath.Join(root, "content")
	page := filepath.Join(contentDir, "v3", "core", "guide", "intro.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(page), 0o755))
	require.NoError(t, os.WriteFile(page, []byte("# Getting Started\n\nHello.\n"), 0o644))

	cfgPath := filepath.Join(root, "docportal.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
server:
  base_path: /docs
site:
  title: Example Library
  description: Docs for Example
frameworks:
  - name: react
  - name: solid
versions:
  supported: ["v1", "v2", "v3"]
  default: v3
  default_framework: react
content:
  dir: `+contentDir+`
  docs_config_dir: `+docsDir+`
`), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	return cfg
}

func testServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	return New(cfg, Options{
		Provider: docsconfig.NewFileProvider(cfg.Content.DocsConfigDir, nil),
		Renderer: render.New(cfg.Content.Dir),
		Prefs:    prefs.NewCookieStore(cfg.Prefs.CookieName),
	})
}

func get(t *testing.T, s *Server, path string, modify ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = "docs.example.com"
	for _, m := range modify {
		m(req)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRedirectsPathsWithoutVersionMarker(t *testing.T) {
	s := testServer(t, testConfig(t))

	for _, path := range []string{"/", "/docs", "/docs/"} {
		rec := get(t, s, path)
		require.Equal(t, http.StatusFound, rec.Code, "path %s", path)
		assert.Equal(t, "http://docs.example.com/docs/latest/react/", rec.Header().Get("Location"))
	}
}

func TestRedirectHonorsForwardedProto(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs", func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "https")
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://docs.example.com/docs/latest/react/", rec.Header().Get("Location"))
}

func TestVersionedPathsPassThrough(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs/latest/react/guide/intro")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDocsPageRendersShell(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs/v3/solid/guide/intro")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Getting Started | Example Library</title>")
	assert.Contains(t, body, "<h1>Getting Started</h1>")
	// Framework child from the merged menu with its badge.
	assert.Contains(t, body, "Solid Intro")
	assert.Contains(t, body, `<span class="badge">solid</span>`)
	assert.Contains(t, body, `<span class="badge">core</span>`)
}

func TestDocsUnknownVersionIs404(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs/v99/react/guide/intro")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocsUnknownPageIs404(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs/v3/react/guide/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNavJSON(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs/latest/solid/nav.json")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Version string                  `json:"version"`
		Nav     docsconfig.AssembledNav `json:"nav"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "v3", payload.Version)
	assert.Equal(t, "solid", payload.Nav.Framework)
	require.NotEmpty(t, payload.Nav.Menu)
	assert.Equal(t, "Links", payload.Nav.Menu[0].Label)
	assert.Contains(t, payload.Nav.FrameworkSelector.Options, "react")
	assert.Contains(t, payload.Nav.VersionSelector.Options, "latest")
}

func TestPreferenceCookieInfluencesResolution(t *testing.T) {
	s := testServer(t, testConfig(t))
	rec := get(t, s, "/docs/latest/solid/nav.json")
	require.Equal(t, http.StatusOK, rec.Code)

	// Explicit route param beats the preference cookie.
	rec = get(t, s, "/docs/latest/react/nav.json", func(r *http.Request) {
		r.Header.Set("Cookie", config.DefaultCookieName+"=solid")
	})
	var payload struct {
		Nav docsconfig.AssembledNav `json:"nav"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "react", payload.Nav.Framework)
}

func TestSetPreferenceCookie(t *testing.T) {
	s := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/api/preference", strings.NewReader(`{"framework":"solid"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, config.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, "solid", cookies[0].Value)
}

func TestSetPreferenceRejectsUnknownFramework(t *testing.T) {
	s := testServer(t, testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/api/preference", strings.NewReader(`{"framework":"svelte"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetPreferencePersistentStore(t *testing.T) {
	cfg := testConfig(t)
	store, err := prefs.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	s := New(cfg, Options{
		Provider:  docsconfig.NewFileProvider(cfg.Content.DocsConfigDir, nil),
		Renderer:  render.New(cfg.Content.Dir),
		Prefs:     prefs.StoreResolver{Store: store},
		PrefStore: store,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/preference", strings.NewReader(`{"framework":"solid"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// A client ID cookie was issued and the preference persisted under it.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, prefs.ClientIDCookie, cookies[0].Name)

	framework, ok, err := store.Get(req.Context(), cookies[0].Value)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "solid", framework)
}

func TestReloadSwapsVersions(t *testing.T) {
	cfg := testConfig(t)
	s := testServer(t, cfg)

	rec := get(t, s, "/docs/v4/react/nav.json")
	require.Equal(t, http.StatusNotFound, rec.Code)

	updated := *cfg
	updated.Versions.Supported = []string{"v1", "v2", "v3", "v4"}
	s.Reload(&updated)

	// v4 resolves now; its docs config is still missing, which surfaces as
	// unknown version from the provider, but the registry accepts it.
	rec = get(t, s, "/docs/v4/react/nav.json")
	assert.Equal(t, http.StatusNotFound, rec.Code) // no v4.yaml on disk

	rec = get(t, s, "/docs/v3/react/nav.json")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReloadUpdatesCanonicalRedirect(t *testing.T) {
	cfg := testConfig(t)
	s := testServer(t, cfg)

	rec := get(t, s, "/docs")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "http://docs.example.com/docs/latest/react/", rec.Header().Get("Location"))

	updated := *cfg
	updated.Versions.DefaultFramework = "solid"
	s.Reload(&updated)

	rec = get(t, s, "/docs")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://docs.example.com/docs/latest/solid/", rec.Header().Get("Location"))
}

func TestErrorResponsesCountRequests(t *testing.T) {
	cfg := testConfig(t)
	recorder := &captureRecorder{}
	s := New(cfg, Options{
		Provider: docsconfig.NewFileProvider(cfg.Content.DocsConfigDir, nil),
		Renderer: render.New(cfg.Content.Dir),
		Prefs:    prefs.NewCookieStore(cfg.Prefs.CookieName),
		Recorder: recorder,
	})

	rec := get(t, s, "/docs/v99/react/guide/intro")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, recorder.statuses, http.StatusNotFound)
}
