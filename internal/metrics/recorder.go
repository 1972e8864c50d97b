// Package metrics provides observability hooks for the portal. Components
// receive a Recorder by injection; the default NoopRecorder keeps metrics
// optional without nil checks at call sites.
package metrics

import "time"

// Recorder defines observability hooks for request serving. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	IncRequest(route string, status int)
	IncRedirect()
	IncConfigReload(success bool)
	ObserveRenderDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncRequest(string, int)              {}
func (NoopRecorder) IncRedirect()                        {}
func (NoopRecorder) IncConfigReload(bool)                {}
func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
