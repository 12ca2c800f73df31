package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type ConfirmPayment struct {
	transition
}

func NewConfirmPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{transition{
		repo:   repo,
		audit:  audit,
		action: "payment_confirmed",
		apply:  domain.ConfirmPayment,
		metric: paymentLabel,
	}}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.execute(ctx, barbershopID, barberID, appointmentID)
}
