package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	requests       *prom.CounterVec
	redirects      prom.Counter
	configReloads  *prom.CounterVec
	renderDuration prom.Histogram
}

// NewPrometheusRecorder constructs and registers the portal collectors. Each
// call registers fresh collectors, so a registry must not be reused across
// recorders.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.requests = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docportal",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"route", "status"})
	pr.redirects = prom.NewCounter(prom.CounterOpts{
		Namespace: "docportal",
		Name:      "redirects_total",
		Help:      "Requests redirected to the canonical default path",
	})
	pr.configReloads = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docportal",
		Name:      "config_reloads_total",
		Help:      "Configuration reloads by result",
	}, []string{"result"})
	pr.renderDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "docportal",
		Name:      "render_duration_seconds",
		Help:      "Markdown page render duration",
		Buckets:   prom.DefBuckets,
	})
	reg.MustRegister(pr.requests, pr.redirects, pr.configReloads, pr.renderDuration)
	return pr
}

func (pr *PrometheusRecorder) IncRequest(route string, status int) {
	pr.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (pr *PrometheusRecorder) IncRedirect() {
	pr.redirects.Inc()
}

func (pr *PrometheusRecorder) IncConfigReload(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	pr.configReloads.WithLabelValues(result).Inc()
}

func (pr *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	pr.renderDuration.Observe(d.Seconds())
}

// Handler exposes the registry for the /metrics endpoint.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{})
}
