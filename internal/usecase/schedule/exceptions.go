package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Exceptions cria e remove exceções uma a uma.
type Exceptions struct {
	store  domain.Store
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewExceptions(
	store domain.Store,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *Exceptions {
	return &Exceptions{
		store:  store,
		locker: locker,
		audit:  audit,
	}
}

func (uc *Exceptions) Add(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	in models.ScheduleException,
) (*models.ScheduleException, error) {

	ex, err := domain.CanonicalException(barberID, in)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, lock.ScheduleKey(barberID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := uc.store.AddException(ctx, &ex); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "schedule_exception_added",
		Entity:       "schedule_exception",
		EntityID:     &ex.ID,
		Metadata:     map[string]any{"date": ex.Date, "type": ex.Type},
	})

	return &ex, nil
}

func (uc *Exceptions) Remove(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	id uint,
) error {

	unlock, err := uc.locker.Lock(ctx, lock.ScheduleKey(barberID))
	if err != nil {
		return err
	}
	defer unlock()

	if err := uc.store.RemoveException(ctx, barberID, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "schedule_exception_removed",
		Entity:       "schedule_exception",
		EntityID:     &id,
	})

	return nil
}
