package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

const CodeOverlappingInterval = "overlapping_interval"

var (
	ErrOverlappingInterval = httperr.ErrValidation(CodeOverlappingInterval, "Existem horários sobrepostos no mesmo dia.")
	ErrInvalidTime         = httperr.ErrValidation("invalid_time", "Horário inválido. Use o formato HH:MM.")
	ErrInvalidInterval     = httperr.ErrValidation("invalid_interval", "O horário de início deve ser anterior ao de término.")
	ErrInvalidLunch        = httperr.ErrValidation("invalid_lunch", "Almoço deve ter início e fim dentro do expediente.")
	ErrInvalidDayOfWeek    = httperr.ErrValidation("invalid_day_of_week", "Dia da semana deve estar entre 0 e 6.")
	ErrInvalidDate         = httperr.ErrValidation("invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
	ErrInvalidException    = httperr.ErrValidation("invalid_exception_type", "Tipo de exceção deve ser blocked ou extended.")
)

// ParseDate valida uma data "AAAA-MM-DD".
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func canonicalInterval(start, end string) (Interval, error) {
	s, err := ParseClock(strings.TrimSpace(start))
	if err != nil {
		return Interval{}, ErrInvalidTime
	}
	e, err := ParseClock(strings.TrimSpace(end))
	if err != nil {
		return Interval{}, ErrInvalidTime
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

// ===============================
// Weekly
// ===============================

// CanonicalWeekly valida o conjunto semanal completo de um barbeiro e
// devolve as entradas normalizadas, ordenadas por (dia, início).
// Entradas inativas também participam da checagem de sobreposição.
func CanonicalWeekly(barberID uint, entries []models.WeeklyAvailability) ([]models.WeeklyAvailability, error) {
	out := make([]models.WeeklyAvailability, 0, len(entries))

	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return nil, ErrInvalidDayOfWeek
		}

		iv, err := canonicalInterval(e.StartTime, e.EndTime)
		if err != nil {
			return nil, err
		}

		w := models.WeeklyAvailability{
			BarberID:  barberID,
			DayOfWeek: e.DayOfWeek,
			StartTime: iv.Start.String(),
			EndTime:   iv.End.String(),
			IsActive:  e.IsActive,
		}

		hasStart := strings.TrimSpace(e.LunchStart) != ""
		hasEnd := strings.TrimSpace(e.LunchEnd) != ""
		if hasStart != hasEnd {
			return nil, ErrInvalidLunch
		}
		if hasStart {
			lunch, err := canonicalInterval(e.LunchStart, e.LunchEnd)
			if err != nil || !iv.Contains(lunch) {
				return nil, ErrInvalidLunch
			}
			w.LunchStart = lunch.Start.String()
			w.LunchEnd = lunch.End.String()
		}

		out = append(out, w)
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].DayOfWeek != out[b].DayOfWeek {
			return out[a].DayOfWeek < out[b].DayOfWeek
		}
		return out[a].StartTime < out[b].StartTime
	})

	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		if prev.DayOfWeek == cur.DayOfWeek && cur.StartTime < prev.EndTime {
			return nil, ErrOverlappingInterval
		}
	}

	return out, nil
}

// ===============================
// Daily
// ===============================

// CanonicalDaily valida os overrides de uma data.
func CanonicalDaily(barberID uint, date string, entries []models.DateOverride) ([]models.DateOverride, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	out := make([]models.DateOverride, 0, len(entries))
	for _, e := range entries {
		iv, err := canonicalInterval(e.StartTime, e.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, models.DateOverride{
			BarberID:  barberID,
			Date:      date,
			StartTime: iv.Start.String(),
			EndTime:   iv.End.String(),
			IsActive:  e.IsActive,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].StartTime < out[b].StartTime
	})

	for i := 1; i < len(out); i++ {
		if out[i].StartTime < out[i-1].EndTime {
			return nil, ErrOverlappingInterval
		}
	}

	return out, nil
}

// ===============================
// Exception
// ===============================

// CanonicalException valida e normaliza uma exceção. Bloqueios descartam
// horários; extensões exigem início anterior ao fim.
func CanonicalException(barberID uint, e models.ScheduleException) (models.ScheduleException, error) {
	if _, err := ParseDate(e.Date); err != nil {
		return models.ScheduleException{}, err
	}

	out := models.ScheduleException{
		BarberID: barberID,
		Date:     e.Date,
		Type:     strings.ToLower(strings.TrimSpace(e.Type)),
		Reason:   strings.TrimSpace(e.Reason),
	}

	switch ExceptionType(out.Type) {
	case ExceptionBlocked:
	case ExceptionExtended:
		iv, err := canonicalInterval(e.StartTime, e.EndTime)
		if err != nil {
			return models.ScheduleException{}, err
		}
		out.StartTime = iv.Start.String()
		out.EndTime = iv.End.String()
	default:
		return models.ScheduleException{}, ErrInvalidException
	}

	return out, nil
}
