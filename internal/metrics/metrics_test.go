package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookingRejections.WithLabelValues("SLOT_UNAVAILABLE"))
	IncRejection("SLOT_UNAVAILABLE")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingRejections.WithLabelValues("SLOT_UNAVAILABLE")))

	IncTransition("confirmed")
	assert.GreaterOrEqual(t, testutil.ToFloat64(appointmentTransitions.WithLabelValues("confirmed")), 1.0)

	IncScheduleSync("weekly")
	ObserveSlots(12)
	ObserveHTTP("GET", "/health", 200, 3*time.Millisecond)
}
