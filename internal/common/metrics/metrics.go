package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_transactions_completed_total",
			Help: "Total number of transactions completed per operation",
		},
		[]string{"operation", "backend"},
	)

	TransactionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_transactions_failed_total",
			Help: "Total number of transactions failed per operation",
		},
		[]string{"operation", "error_code"},
	)

	TransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gateway_transaction_duration_seconds",
			Help: "Duration of transaction processing in seconds",
		},
		[]string{"operation"},
	)

	TransactionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_transactions_active",
			Help: "Number of in-flight transactions per operation",
		},
		[]string{"operation"},
	)
)
