package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceIDs   []uint
	Date         string

	// Customer liga a antecedência mínima da barbearia.
	Customer bool
}

type AvailabilityOutput struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`

	// Reason explica a lista vazia.
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

type GetAvailability struct {
	repo    domain.Repository
	planner dayPlanner
	now     func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	store schedule.Store,
	granularity time.Duration,
) *GetAvailability {
	return &GetAvailability{
		repo:    repo,
		planner: dayPlanner{repo: repo, store: store, granularity: granularity},
		now:     time.Now,
	}
}

func (uc *GetAvailability) WithClock(now func() time.Time) *GetAvailability {
	uc.now = now
	return uc
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityOutput, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
	}

	barber, err := resolveBarber(ctx, uc.repo, shop.ID, in.BarberID)
	if err != nil {
		return nil, err
	}

	services, err := selectServices(ctx, uc.repo, shop.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(date.Location())
	req, err := uc.planner.request(
		ctx,
		shop,
		barber.ID,
		date,
		services.duration,
		earliestFor(shop, now, in.Customer),
	)
	if err != nil {
		return nil, err
	}

	out := &AvailabilityOutput{
		Date:  in.Date,
		Slots: domain.AvailableSlots(req),
	}

	if len(out.Slots) == 0 {
		r := emptyReason(req)
		out.Reason = r.Code()
		out.Message = r.Message()
	}

	metrics.ObserveSlots(len(out.Slots))
	return out, nil
}

func emptyReason(req domain.SlotRequest) domain.Reason {
	if req.Resolution.Blocked() {
		return domain.ReasonDateBlocked
	}

	fits := false
	var lastStart time.Time
	for _, iv := range req.Resolution.Intervals {
		from, to := iv.Start.On(req.Date), iv.End.On(req.Date)
		if to.Sub(from) >= req.Duration {
			fits = true
			lastStart = to.Add(-req.Duration)
		}
	}

	switch {
	case !fits:
		return domain.ReasonOutOfWorkingHours
	case !req.Earliest.IsZero() && lastStart.Before(req.Earliest):
		return domain.ReasonDateInPast
	default:
		return domain.ReasonSlotUnavailable
	}
}
