package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type CompleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	revenue domain.RevenueEmitter
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	revenue domain.RevenueEmitter,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		audit:   audit,
		revenue: revenue,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, err
	}

	prev := domain.SnapshotOf(ap)
	now := timezone.NowIn(shop.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	records := domain.RevenueRecords(ap, now)
	if err := uc.repo.CompleteAppointment(ctx, ap, prev, records); err != nil {
		return nil, err
	}

	// só depois do commit
	uc.revenue.Emit(records)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_completed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"revenue_records": len(records),
			"total":           ap.TotalPrice,
		},
	})
	metrics.IncTransition(ap.Status)

	return ap, nil
}
