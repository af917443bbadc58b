package gateway

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

var (
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schooldata",
		Subsystem: "gateway",
		Name:      "calls_total",
		Help:      "Gateway tool calls by tool and outcome.",
	}, []string{"tool", "outcome"})

	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schooldata",
		Subsystem: "gateway",
		Name:      "call_duration_seconds",
		Help:      "Gateway tool call latency.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"tool"})
)

func observe(tool string, start time.Time, err *error) {
	outcome := outcomeOK
	switch {
	case *err == nil:
	case errors.Is(*err, ErrReadOnly):
		outcome = outcomeRejected
	default:
		outcome = outcomeError
	}
	callsTotal.WithLabelValues(tool, outcome).Inc()
	callDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}
