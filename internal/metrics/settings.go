package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Settings store Prometheus metrics.
var (
	SettingsWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Name:      "settings_writes_total",
			Help:      "Settings write attempts by section and outcome",
		},
		[]string{"section", "result"}, // section: all|agent-parameters|...; result: ok|rejected
	)

	SettingsResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Name:      "settings_resets_total",
			Help:      "Total resets to default settings",
		},
	)

	SettingsPersistErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentdesk",
			Name:      "settings_persist_errors_total",
			Help:      "Settings snapshots that failed to persist",
		},
	)
)

// Write outcomes.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

var settingsOnce sync.Once

// RegisterSettingsMetrics registers settings metrics with the default registry. Safe to call more than once.
func RegisterSettingsMetrics() {
	settingsOnce.Do(func() {
		prometheus.MustRegister(SettingsWritesTotal)
		prometheus.MustRegister(SettingsResetsTotal)
		prometheus.MustRegister(SettingsPersistErrorsTotal)
	})
}
