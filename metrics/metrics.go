// Package metrics records the outcome of a run in a private prometheus
// registry. Since qmwc exits after each run, the registry is written to a
// file for the node_exporter textfile collector rather than served.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	r *prometheus.Registry

	Candidates *prometheus.GaugeVec
	LastRun    prometheus.Gauge
	LastChange prometheus.Gauge
	Result     *prometheus.GaugeVec

	lastChangeOnce sync.Once
}

// Results are the values of the "result" label.
var Results = []string{"changed", "dry_run", "skipped_locked", "error"}

func New() *Metrics {
	r := prometheus.NewRegistry()

	m := &Metrics{
		r: r,
		Candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qmwc_candidates",
			Help: "number of wallpaper candidates found in the directory",
		}, []string{"dir"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qmwc_last_run_timestamp_seconds",
			Help: "time of the last run",
		}),
		LastChange: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qmwc_last_change_timestamp_seconds",
			Help: "time the wallpaper was last changed",
		}),
		Result: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "qmwc_last_run_result",
			Help: "1 for the result of the last run, 0 for the others",
		}, []string{"result"}),
	}

	// LastChange is registered by SetLastChange, so a run that doesn't
	// know when the wallpaper last changed leaves it out instead of
	// reporting 0.
	r.MustRegister(m.Candidates, m.LastRun, m.Result)

	return m
}

// SetResult marks result as the outcome of the run at t.
func (m *Metrics) SetResult(result string, t time.Time) {
	for _, r := range Results {
		v := 0.0
		if r == result {
			v = 1
		}
		m.Result.WithLabelValues(r).Set(v)
	}
	m.LastRun.Set(float64(t.Unix()))
}

// SetLastChange sets the time the wallpaper was last changed.
func (m *Metrics) SetLastChange(t time.Time) {
	m.lastChangeOnce.Do(func() {
		m.r.MustRegister(m.LastChange)
	})
	m.LastChange.Set(float64(t.Unix()))
}

// WriteTextfile writes the registry in the text exposition format. The
// file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.r)
}
