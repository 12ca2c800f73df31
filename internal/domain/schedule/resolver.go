package schedule

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ===============================
// Exception types
// ===============================

type ExceptionType string

const (
	ExceptionBlocked  ExceptionType = "blocked"
	ExceptionExtended ExceptionType = "extended"
)

// ===============================
// Resolution
// ===============================

// Source indica qual fonte definiu o expediente do dia.
type Source string

const (
	SourceNone     Source = "none"
	SourceBlocked  Source = "blocked"
	SourceExtended Source = "extended"
	SourceOverride Source = "override"
	SourceWeekly   Source = "weekly"
)

// Sources reúne tudo que o barbeiro tem cadastrado para uma data.
type Sources struct {
	Weekly    []models.WeeklyAvailability
	Overrides []models.DateOverride
	Exception *models.ScheduleException
}

type Resolution struct {
	Source Source

	// Intervals são os trechos abertos, já sem almoço.
	Intervals []Interval

	// Shifts são os turnos antes de remover o almoço.
	Shifts []Interval

	// Breaks são os almoços removidos.
	Breaks []Interval
}

func (r Resolution) Blocked() bool {
	return r.Source == SourceBlocked
}

// Resolve aplica a precedência exceção > override > semanal para a data.
// Entradas com horário malformado são ignoradas.
func Resolve(date time.Time, src Sources) Resolution {
	if ex := src.Exception; ex != nil {
		switch ExceptionType(ex.Type) {
		case ExceptionBlocked:
			return Resolution{Source: SourceBlocked}
		case ExceptionExtended:
			iv, ok := parseInterval(ex.StartTime, ex.EndTime)
			if !ok {
				return Resolution{Source: SourceExtended}
			}
			ivs := Normalize([]Interval{iv})
			return Resolution{Source: SourceExtended, Intervals: ivs, Shifts: ivs}
		}
	}

	if len(src.Overrides) > 0 {
		var shifts []Interval
		for _, o := range src.Overrides {
			if !o.IsActive {
				continue
			}
			if iv, ok := parseInterval(o.StartTime, o.EndTime); ok {
				shifts = append(shifts, iv)
			}
		}
		shifts = Normalize(shifts)
		return Resolution{Source: SourceOverride, Intervals: shifts, Shifts: shifts}
	}

	weekday := int(date.Weekday())
	var shifts, breaks []Interval
	for _, w := range src.Weekly {
		if w.DayOfWeek != weekday || !w.IsActive {
			continue
		}
		iv, ok := parseInterval(w.StartTime, w.EndTime)
		if !ok {
			continue
		}
		shifts = append(shifts, iv)

		if w.LunchStart != "" && w.LunchEnd != "" {
			if lunch, ok := parseInterval(w.LunchStart, w.LunchEnd); ok {
				breaks = append(breaks, lunch)
			}
		}
	}

	if len(shifts) == 0 {
		return Resolution{Source: SourceNone}
	}

	shifts = Normalize(shifts)
	breaks = Normalize(breaks)

	return Resolution{
		Source:    SourceWeekly,
		Intervals: Subtract(shifts, breaks),
		Shifts:    shifts,
		Breaks:    breaks,
	}
}

func parseInterval(start, end string) (Interval, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, false
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, false
	}
	iv := Interval{Start: s, End: e}
	return iv, iv.Valid()
}
