package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetDefaultBarber(
		ctx context.Context,
		barbershopID uint,
	) (*models.User, error)

	// -------- Product --------
	ListProducts(
		ctx context.Context,
		barbershopID uint,
		ids []uint,
	) ([]models.BarberProduct, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
	) (*models.Client, error)

	// -------- Appointment (reserve) --------

	// Reserve refaz a checagem de sobreposição e grava o agendamento
	// atomicamente. Perdendo a corrida, devolve ErrSlotTaken.
	Reserve(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	// UpdateAppointment, CompleteAppointment e DeleteAppointment falham com
	// invalid_state quando o registro já saiu do estado prev.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		prev Snapshot,
	) error

	CompleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
		prev Snapshot,
		records []models.RevenueRecord,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
		prev Snapshot,
	) error

	// -------- Availability --------
	ListActiveForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

// RevenueEmitter recebe os lançamentos depois do commit da conclusão.
type RevenueEmitter interface {
	Emit(records []models.RevenueRecord)
}
