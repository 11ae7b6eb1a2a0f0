package tail

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cursorBlockGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tail_cursor_block",
		Help: "Highest block whose events have been durably applied to the store",
	})
	followBlockGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tail_follow_block",
		Help: "Head block minus the configured confirmation depth, the tail's target height",
	})
	eventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tail_events_applied_total",
			Help: "Count of chain events applied to the store, by event name",
		},
		[]string{
			"event",
		},
	)
	eventsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tail_events_skipped_total",
		Help: "Count of chain events that were replays or could not be honored",
	})
	votesSkippedByCache = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tail_votes_skipped_by_cache_total",
		Help: "Count of VoteCast events dropped before the store because their nullifier was recently applied",
	})
	batchApplyLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tail_batch_apply_seconds",
			Help:    "Time to apply one event window and advance the cursor in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
	backoffCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tail_backoffs_total",
		Help: "Count of passes aborted by an RPC failure and retried with backoff",
	})
	leaseRenewFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tail_lease_renew_failures_total",
		Help: "Count of failed tail lease renewals",
	})
)
