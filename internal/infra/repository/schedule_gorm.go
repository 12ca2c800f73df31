package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// --------------------------------------------------
// Weekly
// --------------------------------------------------

func (r *ScheduleGormRepository) ReplaceWeekly(
	ctx context.Context,
	barberID uint,
	entries []models.WeeklyAvailability,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})

	return httperr.ErrStorage("replace_weekly", err)
}

func (r *ScheduleGormRepository) ListWeekly(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklyAvailability, error) {

	var out []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.ErrStorage("list_weekly", err)
	}
	return out, nil
}

func (r *ScheduleGormRepository) ListWeeklyByDay(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.WeeklyAvailability, error) {

	var out []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, weekday).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.ErrStorage("list_weekly", err)
	}
	return out, nil
}

// --------------------------------------------------
// Daily
// --------------------------------------------------

func (r *ScheduleGormRepository) ReplaceDaily(
	ctx context.Context,
	barberID uint,
	date string,
	entries []models.DateOverride,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ? AND date = ?", barberID, date).
			Delete(&models.DateOverride{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})

	return httperr.ErrStorage("replace_daily", err)
}

func (r *ScheduleGormRepository) ClearDaily(
	ctx context.Context,
	barberID uint,
	date string,
) error {
	return httperr.ErrStorage("clear_daily", r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Delete(&models.DateOverride{}).Error)
}

func (r *ScheduleGormRepository) ListDaily(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.DateOverride, error) {

	var out []models.DateOverride
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.ErrStorage("list_daily", err)
	}
	return out, nil
}

func (r *ScheduleGormRepository) ListDailyFrom(
	ctx context.Context,
	barberID uint,
	from string,
) ([]models.DateOverride, error) {

	var out []models.DateOverride
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date >= ?", barberID, from).
		Order("date ASC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.ErrStorage("list_daily", err)
	}
	return out, nil
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

func (r *ScheduleGormRepository) AddException(
	ctx context.Context,
	e *models.ScheduleException,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ScheduleException{}).
			Where("barber_id = ? AND date = ?", e.BarberID, e.Date).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("exception_already_exists")
		}
		return tx.Create(e).Error
	})

	switch {
	case err == nil:
		return nil
	case httperr.IsBusiness(err, "exception_already_exists"), httperr.IsUniqueViolation(err):
		return httperr.ErrBusiness("exception_already_exists")
	default:
		return httperr.ErrStorage("add_exception", err)
	}
}

func (r *ScheduleGormRepository) RemoveException(
	ctx context.Context,
	barberID uint,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.ScheduleException{})
	if res.Error != nil {
		return httperr.ErrStorage("remove_exception", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("exception_not_found")
	}
	return nil
}

// GetException devolve nil quando não há exceção na data.
func (r *ScheduleGormRepository) GetException(
	ctx context.Context,
	barberID uint,
	date string,
) (*models.ScheduleException, error) {

	var ex models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&ex).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, httperr.ErrStorage("get_exception", err)
	}
	return &ex, nil
}

func (r *ScheduleGormRepository) ListExceptions(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.ScheduleException, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var out []models.ScheduleException
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, httperr.ErrStorage("list_exceptions", err)
	}
	return out, nil
}

// Compile-time check
var _ schedule.Store = (*ScheduleGormRepository)(nil)
