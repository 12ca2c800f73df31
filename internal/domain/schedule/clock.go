package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Clock é um horário local em minutos desde a meia-noite.
type Clock int

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"

	endOfDay Clock = 24 * 60
)

// ParseClock aceita "HH:MM" em 24h. "24:00" representa o fim do dia.
func ParseClock(hm string) (Clock, error) {
	if hm == "24:00" {
		return endOfDay, nil
	}
	if len(hm) != len(ClockLayout) {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On posiciona o horário na data informada, no fuso da própria data.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, int(c), 0, 0, date.Location())
}

// ===============================
// Interval
// ===============================

// Interval é um intervalo semiaberto [Start, End).
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

func (i Interval) Valid() bool {
	return i.Start < i.End
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

func (i Interval) MarshalText() ([]byte, error) {
	return []byte(i.Start.String() + "-" + i.End.String()), nil
}

// Normalize descarta intervalos vazios ou invertidos, ordena e une os que
// se sobrepõem ou se tocam.
func Normalize(in []Interval) []Interval {
	out := make([]Interval, 0, len(in))
	for _, iv := range in {
		if iv.Valid() {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Start < out[b].Start
	})

	merged := out[:0]
	for _, iv := range out {
		n := len(merged)
		if n > 0 && iv.Start <= merged[n-1].End {
			if iv.End > merged[n-1].End {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract remove de base todos os trechos cobertos por holes.
func Subtract(base, holes []Interval) []Interval {
	holes = Normalize(holes)
	out := make([]Interval, 0, len(base))

	for _, iv := range Normalize(base) {
		cur := iv
		for _, h := range holes {
			if !cur.Valid() {
				break
			}
			if !cur.Overlaps(h) {
				continue
			}
			if h.Start > cur.Start {
				out = append(out, Interval{Start: cur.Start, End: h.Start})
			}
			cur.Start = h.End
		}
		if cur.Valid() {
			out = append(out, cur)
		}
	}
	return out
}
