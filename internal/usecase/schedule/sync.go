package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// WEEKLY
// ======================================================

// SyncWeekly troca todo o calendário semanal do barbeiro.
// Validação falha antes de qualquer escrita; repetir o mesmo payload não muda nada.
type SyncWeekly struct {
	store  domain.Store
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewSyncWeekly(
	store domain.Store,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *SyncWeekly {
	return &SyncWeekly{
		store:  store,
		locker: locker,
		audit:  audit,
	}
}

func (uc *SyncWeekly) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	entries []models.WeeklyAvailability,
) ([]models.WeeklyAvailability, error) {

	canonical, err := domain.CanonicalWeekly(barberID, entries)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, lock.ScheduleKey(barberID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := uc.store.ReplaceWeekly(ctx, barberID, canonical); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "weekly_schedule_synced",
		Entity:       "weekly_availability",
		Metadata:     map[string]any{"entries": len(canonical)},
	})
	metrics.IncScheduleSync("weekly")

	return canonical, nil
}

// ======================================================
// DAILY
// ======================================================

type SyncDaily struct {
	store  domain.Store
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewSyncDaily(
	store domain.Store,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *SyncDaily {
	return &SyncDaily{
		store:  store,
		locker: locker,
		audit:  audit,
	}
}

func (uc *SyncDaily) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
	entries []models.DateOverride,
) ([]models.DateOverride, error) {

	canonical, err := domain.CanonicalDaily(barberID, date, entries)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, lock.ScheduleKey(barberID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := uc.store.ReplaceDaily(ctx, barberID, date, canonical); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "daily_schedule_synced",
		Entity:       "date_override",
		Metadata:     map[string]any{"date": date, "entries": len(canonical)},
	})
	metrics.IncScheduleSync("daily")

	return canonical, nil
}

// Clear remove os overrides da data; o dia volta a seguir o semanal.
func (uc *SyncDaily) Clear(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) error {

	if _, err := domain.ParseDate(date); err != nil {
		return err
	}

	unlock, err := uc.locker.Lock(ctx, lock.ScheduleKey(barberID))
	if err != nil {
		return err
	}
	defer unlock()

	if err := uc.store.ClearDaily(ctx, barberID, date); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "daily_schedule_cleared",
		Entity:       "date_override",
		Metadata:     map[string]any{"date": date},
	})
	metrics.IncScheduleSync("daily_clear")

	return nil
}
