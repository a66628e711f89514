package outbox

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ticks         prometheus.Counter
	skippedTicks  prometheus.Counter
	fetched       prometheus.Counter
	sent          *prometheus.CounterVec
	failed        *prometheus.CounterVec
	deadLettered  *prometheus.CounterVec
	unroutable    *prometheus.CounterVec
	persistErrors prometheus.Counter
	oldestDueLag  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_relay_ticks_total",
			Help: "Relay ticks that fetched due messages.",
		}),
		skippedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_relay_skipped_ticks_total",
			Help: "Ticks skipped because the previous tick was still running.",
		}),
		fetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_relay_fetched_total",
			Help: "Due messages fetched from the outbox.",
		}),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_relay_sent_total",
			Help: "Messages acknowledged by the broker.",
		}, []string{"event_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_relay_failed_total",
			Help: "Failed delivery attempts scheduled for retry.",
		}, []string{"event_type"}),
		deadLettered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_relay_dead_lettered_total",
			Help: "Messages moved to DEAD_LETTER after exhausting retries.",
		}, []string{"event_type"}),
		unroutable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_relay_unroutable_total",
			Help: "Messages whose event type has no configured destination.",
		}, []string{"event_type"}),
		persistErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_relay_persist_errors_total",
			Help: "Status writes that failed after a delivery outcome.",
		}),
		oldestDueLag: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outbox_relay_oldest_due_lag_seconds",
			Help: "Age of the oldest due message seen by the last tick.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ticks,
			m.skippedTicks,
			m.fetched,
			m.sent,
			m.failed,
			m.deadLettered,
			m.unroutable,
			m.persistErrors,
			m.oldestDueLag,
		)
	}

	return m
}
