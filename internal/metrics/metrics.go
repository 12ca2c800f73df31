package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barber_agenda"

var (
	once sync.Once

	appointmentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_transitions_total",
			Help:      "Count of appointment state changes by target status.",
		},
		[]string{"status"},
	)

	bookingRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejections_total",
			Help:      "Count of refused bookings by reason code.",
		},
		[]string{"reason"},
	)

	scheduleSyncs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_syncs_total",
			Help:      "Count of schedule replace operations by scope.",
		},
		[]string{"scope"},
	)

	slotsServed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_slots",
			Help:      "Number of slots returned per availability query.",
			Buckets:   []float64{0, 1, 5, 10, 20, 40, 80},
		},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			appointmentTransitions,
			bookingRejections,
			scheduleSyncs,
			slotsServed,
			httpDuration,
		)
	})
}

func IncTransition(status string) {
	appointmentTransitions.WithLabelValues(status).Inc()
}

func IncRejection(reason string) {
	bookingRejections.WithLabelValues(reason).Inc()
}

func IncScheduleSync(scope string) {
	scheduleSyncs.WithLabelValues(scope).Inc()
}

func ObserveSlots(n int) {
	slotsServed.Observe(float64(n))
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
