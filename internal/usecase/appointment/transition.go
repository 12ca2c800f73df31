package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// transition carrega o agendamento do barbeiro, aplica a ação de domínio
// e grava o resultado. Usado por confirmar, cancelar e pagamento.
type transition struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	action string
	apply  func(*models.Appointment, time.Time) error
	metric func(*models.Appointment) string
}

func (t transition) execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := t.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := t.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, err
	}

	prev := domain.SnapshotOf(ap)
	now := timezone.NowIn(shop.Timezone)
	if err := t.apply(ap, now); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateAppointment(ctx, ap, prev); err != nil {
		return nil, err
	}

	t.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       t.action,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})
	metrics.IncTransition(t.metric(ap))

	return ap, nil
}

func statusLabel(ap *models.Appointment) string {
	return ap.Status
}

func paymentLabel(ap *models.Appointment) string {
	return ap.PaymentStatus
}
