package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func TestTransitions(t *testing.T) {
	type action func(*models.Appointment, time.Time) error

	actions := map[string]action{
		"confirm":  Confirm,
		"complete": Complete,
		"cancel":   Cancel,
	}

	allowed := map[string]map[Status]Status{
		"confirm":  {StatusPending: StatusConfirmed},
		"complete": {StatusConfirmed: StatusCompleted},
		"cancel":   {StatusPending: StatusCancelled, StatusConfirmed: StatusCancelled},
	}

	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	now := time.Date(2030, 6, 3, 10, 0, 0, 0, time.UTC)

	for name, act := range actions {
		for _, from := range all {
			ap := &models.Appointment{Status: string(from)}
			err := act(ap, now)

			to, ok := allowed[name][from]
			if ok {
				require.NoError(t, err, "%s from %s", name, from)
				assert.Equal(t, string(to), ap.Status)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s from %s", name, from)
				assert.Equal(t, string(from), ap.Status)
			}
		}
	}
}

func TestConfirmPayment(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusCompleted), PaymentStatus: string(PaymentWaiting)}
	require.NoError(t, ConfirmPayment(ap, now))
	assert.Equal(t, string(PaymentPaid), ap.PaymentStatus)
	assert.NotNil(t, ap.PaidAt)

	// já pago
	assert.Error(t, ConfirmPayment(ap, now))

	cancelled := &models.Appointment{Status: string(StatusCancelled), PaymentStatus: string(PaymentWaiting)}
	assert.True(t, httperr.IsBusiness(ConfirmPayment(cancelled, now), "invalid_state"))
}

func TestRetract(t *testing.T) {
	manual := &models.Appointment{Status: string(StatusConfirmed), Origin: string(OriginManual)}
	assert.NoError(t, Retract(manual))

	customer := &models.Appointment{Status: string(StatusPending), Origin: string(OriginCustomer)}
	assert.True(t, httperr.IsBusiness(Retract(customer), "not_manual_entry"))

	done := &models.Appointment{Status: string(StatusCompleted), Origin: string(OriginManual)}
	assert.True(t, httperr.IsBusiness(Retract(done), "invalid_state"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(OriginCustomer))
	assert.Equal(t, StatusConfirmed, InitialStatus(OriginManual))
}

func TestRevenueRecords(t *testing.T) {
	now := time.Date(2030, 6, 3, 18, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		ID:           9,
		BarbershopID: 1,
		BarberID:     2,
		Services: []models.AppointmentService{
			{BarberProductID: 10, Price: 40},
			{BarberProductID: 11, Price: 25.5},
		},
	}

	recs := RevenueRecords(ap, now)
	require.Len(t, recs, 2)
	assert.Equal(t, uint(11), recs[1].ServiceID)
	assert.Equal(t, 25.5, recs[1].Amount)
	assert.Equal(t, uint(2), recs[0].BarberID)
	assert.Equal(t, now, recs[0].OccurredAt)
}
