package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Store persiste as três fontes de expediente de cada barbeiro.
// Toda escrita recebe entradas já validadas e roda em uma transação.
type Store interface {
	// -------- Weekly --------
	ReplaceWeekly(
		ctx context.Context,
		barberID uint,
		entries []models.WeeklyAvailability,
	) error

	ListWeekly(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklyAvailability, error)

	ListWeeklyByDay(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WeeklyAvailability, error)

	// -------- Daily --------
	ReplaceDaily(
		ctx context.Context,
		barberID uint,
		date string,
		entries []models.DateOverride,
	) error

	ClearDaily(
		ctx context.Context,
		barberID uint,
		date string,
	) error

	ListDaily(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.DateOverride, error)

	ListDailyFrom(
		ctx context.Context,
		barberID uint,
		from string,
	) ([]models.DateOverride, error)

	// -------- Exceptions --------
	AddException(
		ctx context.Context,
		e *models.ScheduleException,
	) error

	RemoveException(
		ctx context.Context,
		barberID uint,
		id uint,
	) error

	GetException(
		ctx context.Context,
		barberID uint,
		date string,
	) (*models.ScheduleException, error)

	ListExceptions(
		ctx context.Context,
		barberID uint,
		from string,
		to string,
	) ([]models.ScheduleException, error)
}

// LoadSources lê tudo que Resolve precisa para a data.
func LoadSources(ctx context.Context, store Store, barberID uint, date time.Time) (Sources, error) {
	day := date.Format(DateLayout)

	ex, err := store.GetException(ctx, barberID, day)
	if err != nil {
		return Sources{}, err
	}

	overrides, err := store.ListDaily(ctx, barberID, day)
	if err != nil {
		return Sources{}, err
	}

	weekly, err := store.ListWeeklyByDay(ctx, barberID, int(date.Weekday()))
	if err != nil {
		return Sources{}, err
	}

	return Sources{Weekly: weekly, Overrides: overrides, Exception: ex}, nil
}
