package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint

	// BarberID zero escolhe o barbeiro principal da barbearia.
	BarberID uint

	ServiceIDs []uint
	Start      string

	ClientName  string
	ClientPhone string
	Notes       string

	Origin     domain.Origin
	IsOverride bool
}

func (in CreateAppointmentInput) validate() error {
	if strings.TrimSpace(in.ClientName) == "" {
		return httperr.ErrValidation("missing_client_name", "Nome do cliente é obrigatório.")
	}
	if strings.TrimSpace(in.Start) == "" {
		return httperr.ErrValidation("missing_date", "Data e hora são obrigatórias.")
	}
	if in.Origin != domain.OriginCustomer && in.Origin != domain.OriginManual {
		return httperr.ErrValidation("invalid_origin", "Origem do agendamento inválida.")
	}
	if in.IsOverride && in.Origin != domain.OriginManual {
		return httperr.ErrValidation("override_not_allowed", "Somente o barbeiro pode forçar um encaixe.")
	}
	return nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	planner dayPlanner
	locker  lock.Locker
	audit   *audit.Dispatcher
	now     func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	store schedule.Store,
	locker lock.Locker,
	audit *audit.Dispatcher,
	granularity time.Duration,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		planner: dayPlanner{repo: repo, store: store, granularity: granularity},
		locker:  locker,
		audit:   audit,
		now:     time.Now,
	}
}

func (uc *CreateAppointment) WithClock(now func() time.Time) *CreateAppointment {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Entrada
	// --------------------------------------------------
	if err := in.validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Barbearia, barbeiro e serviços
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(shop.Timezone, strings.TrimSpace(in.Start))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Data ou hora inválida.")
	}
	start = start.Truncate(time.Minute)

	barber, err := resolveBarber(ctx, uc.repo, shop.ID, in.BarberID)
	if err != nil {
		return nil, err
	}

	services, err := selectServices(ctx, uc.repo, shop.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Regras de agenda
	// --------------------------------------------------
	date := timezone.StartOfDay(start)
	now := uc.now().In(date.Location())

	req, err := uc.planner.request(
		ctx,
		shop,
		barber.ID,
		date,
		services.duration,
		earliestFor(shop, now, in.Origin == domain.OriginCustomer),
	)
	if err != nil {
		return nil, err
	}

	end := start.Add(services.duration)

	if in.IsOverride {
		// encaixe ignora expediente, almoço e passado; bloqueio e sobreposição valem sempre
		switch {
		case req.Resolution.Blocked():
			return nil, uc.reject(ctx, shop.ID, barber.ID, start, domain.ReasonDateBlocked)
		case domain.Overlaps(req.Busy, start, end):
			return nil, uc.reject(ctx, shop.ID, barber.ID, start, domain.ReasonSlotUnavailable)
		}
	} else if r := domain.Diagnose(req, start); r != domain.ReasonNone {
		return nil, uc.reject(ctx, shop.ID, barber.ID, start, r)
	}

	// --------------------------------------------------
	// 4. Reserva atômica
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, lock.BookingKey(barber.ID, date.Format(schedule.DateLayout)))
	if err != nil {
		return nil, err
	}
	defer unlock()

	client, err := uc.repo.GetOrCreateClient(ctx, shop.ID, strings.TrimSpace(in.ClientName), strings.TrimSpace(in.ClientPhone))
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BarbershopID:    shop.ID,
		BarberID:        barber.ID,
		ClientName:      strings.TrimSpace(in.ClientName),
		ClientPhone:     strings.TrimSpace(in.ClientPhone),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(services.duration / time.Minute),
		TotalPrice:      services.price,
		Status:          string(domain.InitialStatus(in.Origin)),
		PaymentStatus:   string(domain.PaymentWaiting),
		Origin:          string(in.Origin),
		IsOverride:      in.IsOverride,
		Notes:           in.Notes,
		Services:        services.lines(),
	}
	if client != nil {
		ap.ClientID = &client.ID
	}
	if ap.Status == string(domain.StatusConfirmed) {
		ap.ConfirmedAt = &now
	}

	if err := uc.repo.Reserve(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.audit.Dispatch(audit.Event{
				BarbershopID: shop.ID,
				UserID:       &barber.ID,
				Action:       "appointment_conflict",
				Entity:       "appointment",
				Metadata: map[string]any{
					"start": start,
					"end":   end,
				},
			})
			metrics.IncRejection(domain.ReasonSlotUnavailable.Code())
		}
		return nil, err
	}
	ap.StartTime = ap.StartTime.In(date.Location())
	ap.EndTime = ap.EndTime.In(date.Location())

	// --------------------------------------------------
	// 5. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &barber.ID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"origin":      ap.Origin,
			"is_override": ap.IsOverride,
		},
	})
	metrics.IncTransition(ap.Status)

	return ap, nil
}

func (uc *CreateAppointment) reject(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	r domain.Reason,
) error {
	zerolog.Ctx(ctx).Debug().
		Uint("barbershop_id", barbershopID).
		Uint("barber_id", barberID).
		Time("start", start).
		Str("reason", r.Code()).
		Msg("booking rejected")

	metrics.IncRejection(r.Code())
	return domain.ErrPolicy(r)
}
