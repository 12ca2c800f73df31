package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
)

// RetractAppointment apaga de vez um lançamento manual feito por engano.
type RetractAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRetractAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RetractAppointment {
	return &RetractAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RetractAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return err
	}

	if err := domain.Retract(ap); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap, domain.SnapshotOf(ap)); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_retracted",
		Entity:       "appointment",
		EntityID:     &appointmentID,
		Metadata: map[string]any{
			"start": ap.StartTime,
		},
	})

	return nil
}
