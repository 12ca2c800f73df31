package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// dayPlanner monta o SlotRequest de um barbeiro em uma data.
// Sempre lê o estado já gravado, sem cache.
type dayPlanner struct {
	repo        domain.Repository
	store       schedule.Store
	granularity time.Duration
}

func (p dayPlanner) request(
	ctx context.Context,
	shop *models.Barbershop,
	barberID uint,
	date time.Time,
	duration time.Duration,
	earliest time.Time,
) (domain.SlotRequest, error) {

	src, err := schedule.LoadSources(ctx, p.store, barberID, date)
	if err != nil {
		return domain.SlotRequest{}, err
	}

	busy, err := p.repo.ListActiveForPeriod(ctx, barberID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return domain.SlotRequest{}, err
	}

	return domain.SlotRequest{
		Date:        date,
		Resolution:  schedule.Resolve(date, src),
		Busy:        domain.BusyFrom(busy),
		Duration:    duration,
		Granularity: p.step(shop),
		Earliest:    earliest,
	}, nil
}

func (p dayPlanner) step(shop *models.Barbershop) time.Duration {
	if shop.SlotGranularityMinutes > 0 {
		return time.Duration(shop.SlotGranularityMinutes) * time.Minute
	}
	if p.granularity > 0 {
		return p.granularity
	}
	return domain.DefaultGranularity
}

// earliestFor aplica a antecedência mínima só para o cliente final.
func earliestFor(shop *models.Barbershop, now time.Time, customer bool) time.Time {
	if customer && shop.MinAdvanceMinutes > 0 {
		return now.Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)
	}
	return now
}

// ======================================================
// Barber / services
// ======================================================

func resolveBarber(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {
	if barberID == 0 {
		return repo.GetDefaultBarber(ctx, barbershopID)
	}
	return repo.GetBarber(ctx, barbershopID, barberID)
}

type serviceSelection struct {
	products []models.BarberProduct
	duration time.Duration
	price    float64
}

func (s serviceSelection) lines() []models.AppointmentService {
	out := make([]models.AppointmentService, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, models.AppointmentService{
			BarberProductID: p.ID,
			Name:            p.Name,
			DurationMin:     p.DurationMin,
			Price:           p.Price,
		})
	}
	return out
}

func selectServices(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	ids []uint,
) (serviceSelection, error) {

	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return serviceSelection{}, httperr.ErrValidation("missing_services", "Informe ao menos um serviço.")
	}

	products, err := repo.ListProducts(ctx, barbershopID, unique)
	if err != nil {
		return serviceSelection{}, err
	}
	if len(products) != len(unique) {
		return serviceSelection{}, httperr.ErrBusiness("product_not_found")
	}

	sel := serviceSelection{products: products}
	for _, p := range products {
		sel.duration += p.Duration()
		sel.price += p.Price
	}
	if sel.duration <= 0 {
		return serviceSelection{}, httperr.ErrValidation("invalid_duration", "Serviço sem duração definida.")
	}

	return sel, nil
}
