// Package metrics exposes prometheus collectors for the HTTP surface and the OTP lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "identity"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
	otpIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_issued_total",
			Help:      "One-time codes issued",
		},
		[]string{"role", "purpose"},
	)
	otpVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "One-time code verification attempts by outcome",
		},
		[]string{"role", "purpose", "result"},
	)
	tokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Session tokens issued",
		},
		[]string{"role"},
	)
	deliveryFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_delivery_failures_total",
			Help:      "OTP deliveries that failed and were skipped",
		},
		[]string{"channel"},
	)
)

func ObserveHTTP(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func OtpIssued(role, purpose string) {
	otpIssuedTotal.WithLabelValues(role, purpose).Inc()
}

func OtpVerified(role, purpose, result string) {
	otpVerificationsTotal.WithLabelValues(role, purpose, result).Inc()
}

func TokenIssued(role string) {
	tokensIssuedTotal.WithLabelValues(role).Inc()
}

func DeliveryFailed(channel string) {
	deliveryFailuresTotal.WithLabelValues(channel).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
