package handlers

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type transitionFunc func(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error)
