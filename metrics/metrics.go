// Package metrics exports flood search activity as Prometheus series.
//
// A Recorder is registered on a caller-supplied Registerer so tests and
// embedders can keep it off the global registry. Its Options feed the
// counters straight from engine hooks.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
)

const namespace = "gridflood"

// Outcome label values of searches_total.
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
	OutcomeStopped     = "stopped"
)

// Recorder holds the search series.
type Recorder struct {
	steps      prometheus.Counter
	discovered prometheus.Counter
	searches   *prometheus.CounterVec
	pathLength prometheus.Histogram
	frontier   prometheus.Gauge
}

// NewRecorder creates the series and registers them on reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		steps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Frontier nodes expanded.",
		}),
		discovered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discovered_total",
			Help:      "Cells added to a frontier, origins included.",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches that left the running state, by outcome.",
		}, []string{"outcome"}),
		pathLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length",
			Help:      "Cells on the reconstructed path of found searches.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512 cells
		}),
		frontier: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_size",
			Help:      "Frontier size after the latest observed step.",
		}),
	}
}

// Options returns engine hooks that update the recorder.
func (r *Recorder) Options() []flood.Option {
	return []flood.Option{
		flood.WithOnDiscover(func(gridgeom.Cell) { r.discovered.Inc() }),
		flood.WithOnExpand(func(gridgeom.Cell) { r.steps.Inc() }),
		flood.WithOnFinish(func(s flood.State, path []gridgeom.Cell) {
			switch s {
			case flood.Found:
				r.searches.WithLabelValues(OutcomeFound).Inc()
				r.pathLength.Observe(float64(len(path)))
			case flood.Unreachable:
				r.searches.WithLabelValues(OutcomeUnreachable).Inc()
			}
			r.frontier.Set(0)
		}),
	}
}

// Stopped counts a search halted by the user before it finished.
func (r *Recorder) Stopped() {
	r.searches.WithLabelValues(OutcomeStopped).Inc()
	r.frontier.Set(0)
}

// ObserveFrontier records the current frontier size.
func (r *Recorder) ObserveFrontier(n int) { r.frontier.Set(float64(n)) }

// Handler serves the series gathered by g in the Prometheus text format.
// A nil g serves the default registry.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
