package metrics

import "github.com/prometheus/client_golang/prometheus"

func (r *Recorder) StepsCounter() prometheus.Counter      { return r.steps }
func (r *Recorder) DiscoveredCounter() prometheus.Counter { return r.discovered }

func (r *Recorder) SearchesCounter(outcome string) prometheus.Counter {
	return r.searches.WithLabelValues(outcome)
}
