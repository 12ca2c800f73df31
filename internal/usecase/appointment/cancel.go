package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// CancelAppointment libera o horário na hora; não há retenção.
type CancelAppointment struct {
	transition
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{transition{
		repo:   repo,
		audit:  audit,
		action: "appointment_cancelled",
		apply:  domain.Cancel,
		metric: statusLabel,
	}}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.execute(ctx, barbershopID, barberID, appointmentID)
}
