package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

const DefaultGranularity = 15 * time.Minute

// Busy é o intervalo ocupado por um agendamento ativo.
type Busy struct {
	Start time.Time
	End   time.Time
}

func BusyFrom(aps []models.Appointment) []Busy {
	out := make([]Busy, 0, len(aps))
	for _, ap := range aps {
		out = append(out, Busy{Start: ap.StartTime, End: ap.EndTime})
	}
	return out
}

// Overlaps diz se [start, end) cruza algum intervalo ocupado.
func Overlaps(busy []Busy, start, end time.Time) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

type SlotRequest struct {
	// Date é o dia consultado, no fuso da barbearia.
	Date       time.Time
	Resolution schedule.Resolution
	Busy       []Busy

	Duration    time.Duration
	Granularity time.Duration

	// Earliest é o primeiro instante aceito. Zero desliga a regra.
	Earliest time.Time
}

func (r SlotRequest) step() time.Duration {
	if r.Granularity <= 0 {
		return DefaultGranularity
	}
	return r.Granularity
}

func (r SlotRequest) bounds(iv schedule.Interval) (time.Time, time.Time) {
	return iv.Start.On(r.Date), iv.End.On(r.Date)
}

// AvailableSlots percorre cada intervalo aberto a partir do início, em passos
// de Granularity, e devolve os horários "HH:MM" reserváveis em ordem.
func AvailableSlots(req SlotRequest) []string {
	slots := []string{}
	if req.Duration <= 0 {
		return slots
	}

	seen := make(map[string]struct{})
	step := req.step()

	for _, iv := range req.Resolution.Intervals {
		from, to := req.bounds(iv)

		for c := from; !c.Add(req.Duration).After(to); c = c.Add(step) {
			if !req.Earliest.IsZero() && c.Before(req.Earliest) {
				continue
			}
			if Overlaps(req.Busy, c, c.Add(req.Duration)) {
				continue
			}

			hm := c.Format(schedule.ClockLayout)
			if _, ok := seen[hm]; ok {
				continue
			}
			seen[hm] = struct{}{}
			slots = append(slots, hm)
		}
	}

	return slots
}

// Diagnose reavalia um horário específico contra cada regra, na ordem:
// bloqueio, expediente, almoço, ocupação e passado. A primeira que falha vence.
func Diagnose(req SlotRequest, start time.Time) Reason {
	res := req.Resolution
	if res.Blocked() {
		return ReasonDateBlocked
	}

	end := start.Add(req.Duration)

	inShift := false
	for _, iv := range res.Shifts {
		from, to := req.bounds(iv)
		if !start.Before(from) && !end.After(to) {
			inShift = true
			break
		}
	}
	if !inShift || req.Duration <= 0 {
		return ReasonOutOfWorkingHours
	}

	for _, br := range res.Breaks {
		from, to := req.bounds(br)
		if start.Before(to) && from.Before(end) {
			return ReasonLunchBreak
		}
	}

	if Overlaps(req.Busy, start, end) {
		return ReasonSlotUnavailable
	}

	if !req.Earliest.IsZero() && start.Before(req.Earliest) {
		return ReasonDateInPast
	}

	return ReasonNone
}

// Check devolve PolicyError quando o horário não pode ser reservado.
func Check(req SlotRequest, start time.Time) error {
	if r := Diagnose(req, start); r != ReasonNone {
		return ErrPolicy(r)
	}
	return nil
}
