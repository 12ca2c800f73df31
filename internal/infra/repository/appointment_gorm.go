package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// lookupErr traduz registro ausente em erro de negócio e o resto em erro de storage.
func lookupErr(err error, code, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return httperr.ErrStorage(op, err)
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, lookupErr(err, "barbershop_not_found", "get_barbershop")
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, lookupErr(err, "barbershop_not_found", "get_barbershop")
	}
	return &shop, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&barber).Error; err != nil {
		return nil, lookupErr(err, "barber_not_found", "get_barber")
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetDefaultBarber(
	ctx context.Context,
	barbershopID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND role = ?", barbershopID, "owner").
		Order("id ASC").
		First(&barber).Error; err != nil {
		return nil, lookupErr(err, "barber_not_found", "get_barber")
	}
	return &barber, nil
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *AppointmentGormRepository) ListProducts(
	ctx context.Context,
	barbershopID uint,
	ids []uint,
) ([]models.BarberProduct, error) {

	var products []models.BarberProduct
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = ? AND id IN ?", barbershopID, true, ids).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, httperr.ErrStorage("list_products", err)
	}
	return products, nil
}

// ListCatalog lista os serviços ativos que o cliente pode escolher.
func (r *AppointmentGormRepository) ListCatalog(
	ctx context.Context,
	barbershopID uint,
	category string,
) ([]models.BarberProduct, error) {

	q := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = ?", barbershopID, true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var products []models.BarberProduct
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, httperr.ErrStorage("list_catalog", err)
	}
	return products, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// GetOrCreateClient busca pelo telefone. Sem telefone não há cadastro.
func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
) (*models.Client, error) {

	if phone == "" {
		return nil, nil
	}

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrStorage("get_client", err)
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		if !httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrStorage("create_client", err)
		}
		// cadastrado em paralelo por outra reserva
		if err := r.db.WithContext(ctx).
			Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
			First(&client).Error; err != nil {
			return nil, httperr.ErrStorage("get_client", err)
		}
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (reserve)
// --------------------------------------------------

func (r *AppointmentGormRepository) Reserve(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pg := isPostgres(tx)

		if pg {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				bookingLockKey(ap.BarberID),
			).Error; err != nil {
				return err
			}
		}

		q := tx.Model(&models.Appointment{}).
			Select("id").
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID,
				domain.ActiveStatuses(),
				ap.EndTime,
				ap.StartTime,
			).
			Limit(1)

		if pg {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var conflicts []models.Appointment
		if err := q.Find(&conflicts).Error; err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return domain.ErrSlotTaken
		}

		return tx.Create(ap).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSlotTaken), httperr.IsExclusionConflict(err):
		return domain.ErrSlotTaken
	default:
		return httperr.ErrStorage("reserve_appointment", err)
	}
}

func bookingLockKey(barberID uint) string {
	return "booking:" + uintToString(barberID)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}

	return &ap, nil
}

var errStaleState = httperr.ErrBusiness("invalid_state")

// transitionErr deixa passar a perda de corrida como erro de negócio.
func transitionErr(op string, err error) error {
	if errors.Is(err, errStaleState) {
		return err
	}
	return httperr.ErrStorage(op, err)
}

// applyTransition grava o novo estado só se o registro ainda estiver em prev.
func applyTransition(tx *gorm.DB, ap *models.Appointment, prev domain.Snapshot) error {
	res := tx.Model(&models.Appointment{}).
		Where("id = ? AND status = ? AND payment_status = ?", ap.ID, prev.Status, prev.PaymentStatus).
		Updates(map[string]any{
			"status":         ap.Status,
			"payment_status": ap.PaymentStatus,
			"confirmed_at":   ap.ConfirmedAt,
			"completed_at":   ap.CompletedAt,
			"cancelled_at":   ap.CancelledAt,
			"paid_at":        ap.PaidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleState
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	prev domain.Snapshot,
) error {
	return transitionErr(
		"update_appointment",
		applyTransition(r.db.WithContext(ctx), ap, prev),
	)
}

// CompleteAppointment grava a conclusão e os lançamentos na mesma transação.
func (r *AppointmentGormRepository) CompleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	prev domain.Snapshot,
	records []models.RevenueRecord,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyTransition(tx, ap, prev); err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})

	return transitionErr("complete_appointment", err)
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	prev domain.Snapshot,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", ap.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		res := tx.
			Where("id = ? AND status = ?", ap.ID, prev.Status).
			Delete(&models.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleState
		}
		return nil
	})

	return transitionErr("delete_appointment", err)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.ActiveStatuses(), end.UTC(), start.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.ErrStorage("list_active_appointments", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Services").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start.UTC(),
			end.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, httperr.ErrStorage("list_appointments", err)
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
