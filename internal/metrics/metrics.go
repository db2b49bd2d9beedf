package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	billingUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_address_updates_total",
			Help: "Billing address writes issued by billing sections",
		},
		[]string{"result", "auto_save"},
	)

	billingUpdateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_address_update_duration_seconds",
			Help:    "Duration of billing address writes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	syncActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_sync_actions_total",
			Help: "Decisions taken by the billing/shipping synchronizer",
		},
		[]string{"action"},
	)

	mountedSections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "billing_sections_mounted",
			Help: "Billing address sections currently mounted",
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"tier"},
	)
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

func ObserveBillingUpdate(result string, autoSave bool, t *Timer) {
	billingUpdatesTotal.WithLabelValues(result, strconv.FormatBool(autoSave)).Inc()
	if t != nil {
		billingUpdateDuration.WithLabelValues(result).Observe(t.Duration().Seconds())
	}
}

func RecordSyncAction(action string) {
	syncActionsTotal.WithLabelValues(action).Inc()
}

func SectionMounted() {
	mountedSections.Inc()
}

func SectionUnmounted() {
	mountedSections.Dec()
}

func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RateLimited(tier string) {
	rateLimitedTotal.WithLabelValues(tier).Inc()
}
