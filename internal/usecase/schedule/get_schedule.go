package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ScheduleView é o que a tela de configurações mostra.
type ScheduleView struct {
	Weekly     []models.WeeklyAvailability `json:"weekly"`
	Overrides  []models.DateOverride       `json:"overrides"`
	Exceptions []models.ScheduleException  `json:"exceptions"`
}

type GetSchedule struct {
	store domain.Store
}

func NewGetSchedule(store domain.Store) *GetSchedule {
	return &GetSchedule{store: store}
}

// Execute traz o semanal completo e overrides/exceções a partir de from.
func (uc *GetSchedule) Execute(
	ctx context.Context,
	barberID uint,
	from string,
) (*ScheduleView, error) {

	weekly, err := uc.store.ListWeekly(ctx, barberID)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.store.ListDailyFrom(ctx, barberID, from)
	if err != nil {
		return nil, err
	}

	exceptions, err := uc.store.ListExceptions(ctx, barberID, from, "")
	if err != nil {
		return nil, err
	}

	return &ScheduleView{
		Weekly:     orEmpty(weekly),
		Overrides:  orEmpty(overrides),
		Exceptions: orEmpty(exceptions),
	}, nil
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
