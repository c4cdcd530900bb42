// Package metrics exposes Prometheus instrumentation for role resolution.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the resolutions counter.
const (
	OutcomeExplicit = "explicit"
	OutcomeDefault  = "default"
)

// Recorder registers and updates the resolution metrics.
type Recorder struct {
	registry *prometheus.Registry

	resolutions      *prometheus.CounterVec
	staleFallbacks   *prometheus.CounterVec
	cameraErrors     prometheus.Counter
	availableStreams prometheus.Gauge
}

// NewRecorder creates a recorder backed by the given registry.
// A nil registry gets a fresh one.
func NewRecorder(registry *prometheus.Registry) *Recorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &Recorder{
		registry: registry,
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamroles_resolutions_total",
			Help: "Role resolutions performed, labelled by role and outcome.",
		}, []string{"role", "outcome"}),
		staleFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamroles_stale_fallbacks_total",
			Help: "Resolutions where a pinned stream no longer existed and the computed default was used.",
		}, []string{"role"}),
		cameraErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamroles_camera_query_errors_total",
			Help: "Failed camera stream list queries.",
		}),
		availableStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "streamroles_streams_available",
			Help: "Stream variants offered by the camera at the last successful query.",
		}),
	}

	registry.MustRegister(r.resolutions, r.staleFallbacks, r.cameraErrors, r.availableStreams)
	return r
}

// Handler returns the HTTP handler serving the registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveResolution records one role resolution.
func (r *Recorder) ObserveResolution(role string, isDefault bool) {
	outcome := OutcomeExplicit
	if isDefault {
		outcome = OutcomeDefault
	}
	r.resolutions.WithLabelValues(role, outcome).Inc()
}

// ObserveStaleFallback records a pinned stream falling back to the default.
func (r *Recorder) ObserveStaleFallback(role string) {
	r.staleFallbacks.WithLabelValues(role).Inc()
}

// ObserveCameraError records a failed stream list query.
func (r *Recorder) ObserveCameraError() {
	r.cameraErrors.Inc()
}

// SetAvailableStreams records the size of the last successful stream list.
func (r *Recorder) SetAvailableStreams(count int) {
	r.availableStreams.Set(float64(count))
}
