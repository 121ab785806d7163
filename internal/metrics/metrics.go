package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearby_provider_requests_total",
			Help: "Total number of events provider searches",
		},
		[]string{"outcome"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nearby_provider_request_duration_seconds",
			Help:    "Events provider search duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"outcome"},
	)

	providerRecordsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nearby_provider_records_dropped_total",
			Help: "Provider records dropped because they could not be mapped to an item",
		},
	)

	itemCacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearby_item_cache_writes_total",
			Help: "Best-effort item cache writes performed by search",
		},
		[]string{"outcome"},
	)

	favoriteChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearby_favorite_changes_total",
			Help: "Favorite pairs added or removed",
		},
		[]string{"op"},
	)

	circuitStateChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearby_circuit_state_changes_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "to"},
	)
)

func ObserveProviderRequest(outcome string, d time.Duration) {
	providerRequestsTotal.WithLabelValues(outcome).Inc()
	providerRequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func RecordDroppedRecord() {
	providerRecordsDroppedTotal.Inc()
}

func RecordItemCacheWrite(outcome string) {
	itemCacheWritesTotal.WithLabelValues(outcome).Inc()
}

func RecordFavoriteChanges(op string, n int) {
	if n <= 0 {
		return
	}
	favoriteChangesTotal.WithLabelValues(op).Add(float64(n))
}

func RecordCircuitStateChange(name, to string) {
	circuitStateChangesTotal.WithLabelValues(name, to).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
