package observability

import (
	"errors"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

var (
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Value movements attempted by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_quote_duration_seconds",
			Help:      "Latency of exchange rate quotes",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source", "outcome"},
	)

	ScheduledRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_transfer_runs_total",
			Help:      "Scheduled transfer executions by outcome",
		},
		[]string{"outcome"},
	)

	AlertFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_failures_total",
			Help:      "Alerts that could not be delivered",
		},
	)

	PendingTopUpsStaged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pending_topups_staged_total",
			Help:      "Top-up requests staged for approval",
		},
	)
)

// Outcome reduces an error to a low-cardinality metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrBusinessRule):
		return "business_rule"
	case errors.Is(err, apperrors.ErrExternal):
		return "external"
	default:
		return "error"
	}
}
