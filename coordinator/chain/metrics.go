package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chain_rpc_latency_milliseconds",
			Help:    "Captures RPC latency per eth client method in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000},
		},
		[]string{
			"method",
		},
	)
	rpcErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_rpc_errors_total",
			Help: "Count of failed RPC calls per eth client method",
		},
		[]string{
			"method",
		},
	)
	revertedWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_reverted_writes_total",
			Help: "Count of registry transactions that reverted or failed to submit",
		},
		[]string{
			"method",
		},
	)
	groupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chain_membership_groups_created_total",
		Help: "The number of membership groups created by the coordinator key",
	})
	membersEnrolled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chain_members_enrolled_total",
		Help: "The number of identity commitments enrolled into membership groups",
	})
	miningLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chain_tx_mining_seconds",
			Help:    "Time from transaction submission to first confirmation in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
	connectedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chain_rpc_connected",
		Help: "Whether the coordinator currently holds a live RPC connection (1) or not (0)",
	})
)
