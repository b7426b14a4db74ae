package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cyclesTotal tracks completed monitoring cycles by outcome.
	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "annwatch_cycles_total",
		Help: "Total number of completed monitoring cycles, labeled by status.",
	}, []string{"status"})
	// candidatesTotal tracks how many candidate blocks extraction produced.
	candidatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "annwatch_candidates_total",
		Help: "Total number of announcement candidates extracted.",
	})
	// notificationsTotal tracks messages delivered, labeled by destination kind.
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "annwatch_notifications_total",
		Help: "Total number of Telegram notifications sent, labeled by kind.",
	}, []string{"kind"})
	// alertsThrottledTotal tracks owner alerts suppressed by the throttle window.
	alertsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "annwatch_alerts_throttled_total",
		Help: "Total number of owner error alerts suppressed by throttling.",
	})
)
