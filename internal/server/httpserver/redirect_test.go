package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonical(path string) func() string {
	return func() string { return path }
}

func TestRedirectorMarkerAbsent(t *testing.T) {
	rd := &Redirector{Marker: "/docs/", Canonical: canonical("/docs/latest/react/")}
	passed := false
	h := rd.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { passed = true }))

	req := httptest.NewRequest(http.MethodGet, "/somewhere/else", nil)
	req.Host = "docs.example.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://docs.example.com/docs/latest/react/", rec.Header().Get("Location"))
	assert.False(t, passed)
}

func TestRedirectorMarkerPresent(t *testing.T) {
	rd := &Redirector{Marker: "/docs/", Canonical: canonical("/docs/latest/react/")}
	passed := false
	h := rd.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		passed = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/docs/v3/solid/guide/intro", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, passed)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOriginOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Host = "example.org:8080"
	assert.Equal(t, "http://example.org:8080", originOf(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://example.org:8080", originOf(req))
}
