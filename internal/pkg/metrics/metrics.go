/*
Package metrics declares the Prometheus collectors exported on /metrics.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cryptohub"

var (
	// Events counts inbound live-session frames by type.
	Events = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navbar",
			Name:      "events_total",
			Help:      "Browser events received by live navbar sessions.",
		},
		[]string{"type"},
	)

	// SidebarTransitions counts sidebar state changes by trigger and resulting state.
	SidebarTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navbar",
			Name:      "sidebar_transitions_total",
			Help:      "Sidebar open/close transitions by reason.",
		},
		[]string{"reason", "state"},
	)

	// Logouts counts logout completions by outcome.
	Logouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navbar",
			Name:      "logouts_total",
			Help:      "Logout attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// LiveSessions is the number of connected live navbar sessions.
	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "sessions",
			Help:      "Connected live navbar sessions.",
		},
	)

	// RenderDuration observes how long a navbar render takes.
	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "navbar",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering navbar markup.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
		},
	)
)
