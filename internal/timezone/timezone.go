package timezone

import (
	"fmt"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate lê "AAAA-MM-DD" e devolve a meia-noite local da barbearia.
func ParseDate(tz, value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, Location(tz))
}

// ParseDateTime aceita RFC3339 (com fuso) ou horário local sem fuso
// ("2006-01-02T15:04", "2006-01-02 15:04", com ou sem segundos).
// O resultado é sempre expresso no fuso da barbearia.
func ParseDateTime(tz, value string) (time.Time, error) {
	loc := Location(tz)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range []string{
		localTimeLayout,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid datetime %q", value)
}

// StartOfDay devolve a meia-noite do dia de t, no fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
