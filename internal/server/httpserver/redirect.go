package httpserver

import (
	"net/http"
	"strings"

	"git.home.luguber.info/inful/docportal/internal/metrics"
)

// Redirector sends requests whose path lacks the version marker to the
// canonical default path. A missing marker is the expected trigger condition,
// not an error; requests carrying the marker pass through untouched.
// Canonical is a function so the target follows config reloads.
type Redirector struct {
	Marker    string
	Canonical func() string
	Recorder  metrics.Recorder
}

// Middleware applies the redirect-or-pass-through decision around a handler.
func (rd *Redirector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, rd.Marker) {
			rd.Redirect(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Redirect issues the canonical redirect unconditionally. Registered directly
// on bare paths that carry the marker but no version segment.
func (rd *Redirector) Redirect(w http.ResponseWriter, r *http.Request) {
	if rd.Recorder != nil {
		rd.Recorder.IncRedirect()
	}
	http.Redirect(w, r, originOf(r)+rd.Canonical(), http.StatusFound)
}

// originOf derives the request origin from the request itself so redirects
// work across environments without a configured external URL.
func originOf(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
