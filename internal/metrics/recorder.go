package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
)

// Recorder collects build metrics. A nil *Recorder is valid and records
// nothing, so callers never need to check whether metrics are enabled.
type Recorder struct {
	reg           *prom.Registry
	buildDuration prom.Histogram
	builds        *prom.CounterVec
	pages         *prom.CounterVec
}

func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		reg: reg,
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "writings",
			Name:      "build_duration_seconds",
			Help:      "Duration of full site builds",
			Buckets:   prom.DefBuckets,
		}),
		builds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "writings",
			Name:      "builds_total",
			Help:      "Builds by outcome",
		}, []string{"outcome"}),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "writings",
			Name:      "pages_total",
			Help:      "Content files processed, by result",
		}, []string{"result"}),
	}
	reg.MustRegister(r.buildDuration, r.builds, r.pages)
	return r
}

func (r *Recorder) ObserveBuild(d time.Duration, outcome Outcome) {
	if r == nil {
		return
	}
	r.buildDuration.Observe(d.Seconds())
	r.builds.WithLabelValues(string(outcome)).Inc()
}

func (r *Recorder) AddPages(written, skipped int) {
	if r == nil {
		return
	}
	r.pages.WithLabelValues("written").Add(float64(written))
	r.pages.WithLabelValues("skipped").Add(float64(skipped))
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
