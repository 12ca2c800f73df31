package appointment

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

var (
	loc, _ = time.LoadLocation("America/Sao_Paulo")
	monday = time.Date(2030, 6, 3, 0, 0, 0, 0, loc)
)

func at(hm string) time.Time {
	c, err := schedule.ParseClock(hm)
	if err != nil {
		panic(err)
	}
	return c.On(monday)
}

func mondayRequest(duration time.Duration, busy ...Busy) SlotRequest {
	res := schedule.Resolve(monday, schedule.Sources{
		Weekly: []models.WeeklyAvailability{{
			DayOfWeek:  1,
			StartTime:  "09:00",
			EndTime:    "18:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			IsActive:   true,
		}},
	})

	return SlotRequest{
		Date:        monday,
		Resolution:  res,
		Busy:        busy,
		Duration:    duration,
		Granularity: 15 * time.Minute,
	}
}

func TestAvailableSlots_MondayScenario(t *testing.T) {
	existing := Busy{Start: at("10:00"), End: at("10:45")}
	slots := AvailableSlots(mondayRequest(30*time.Minute, existing))

	for _, hm := range []string{"09:00", "09:15", "09:30", "10:45", "11:30", "13:00", "17:30"} {
		assert.Contains(t, slots, hm)
	}
	// 09:45 termina às 10:15 e cruza o agendamento existente
	for _, hm := range []string{"09:45", "10:00", "10:15", "10:30", "11:45", "12:00", "12:15", "12:30", "12:45", "17:45"} {
		assert.NotContains(t, slots, hm)
	}

	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
	assert.IsIncreasing(t, slots)
}

func TestAvailableSlots_EmptyWhenBlocked(t *testing.T) {
	req := mondayRequest(30 * time.Minute)
	req.Resolution = schedule.Resolution{Source: schedule.SourceBlocked}

	assert.Empty(t, AvailableSlots(req))
}

func TestAvailableSlots_RespectsEarliest(t *testing.T) {
	req := mondayRequest(30 * time.Minute)
	req.Earliest = at("16:10")

	assert.Equal(t, []string{"16:15", "16:30", "16:45", "17:00", "17:15", "17:30"}, AvailableSlots(req))
}

func TestAvailableSlots_DefaultGranularity(t *testing.T) {
	req := mondayRequest(60 * time.Minute)
	req.Granularity = 0

	slots := AvailableSlots(req)
	assert.Contains(t, slots, "09:15")
	assert.Contains(t, slots, "11:00")
	assert.NotContains(t, slots, "11:15")
}

func TestDiagnose_Order(t *testing.T) {
	existing := Busy{Start: at("10:00"), End: at("10:45")}

	cases := []struct {
		name  string
		req   SlotRequest
		start string
		want  Reason
	}{
		{"free", mondayRequest(30*time.Minute, existing), "09:00", ReasonNone},
		{"before opening", mondayRequest(30*time.Minute, existing), "08:45", ReasonOutOfWorkingHours},
		{"crosses closing", mondayRequest(30*time.Minute, existing), "17:45", ReasonOutOfWorkingHours},
		{"lunch", mondayRequest(30*time.Minute, existing), "12:15", ReasonLunchBreak},
		{"runs into lunch", mondayRequest(30*time.Minute, existing), "11:45", ReasonLunchBreak},
		{"taken", mondayRequest(30*time.Minute, existing), "10:30", ReasonSlotUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Diagnose(tc.req, at(tc.start)))
		})
	}
}

func TestDiagnose_BlockedComesFirst(t *testing.T) {
	req := mondayRequest(30 * time.Minute)
	req.Resolution = schedule.Resolution{Source: schedule.SourceBlocked}
	req.Earliest = at("23:00")

	assert.Equal(t, ReasonDateBlocked, Diagnose(req, at("10:00")))
}

func TestDiagnose_PastIsLast(t *testing.T) {
	req := mondayRequest(30*time.Minute, Busy{Start: at("10:00"), End: at("10:45")})
	req.Earliest = at("15:00")

	assert.Equal(t, ReasonSlotUnavailable, Diagnose(req, at("10:00")))
	assert.Equal(t, ReasonDateInPast, Diagnose(req, at("14:00")))
	assert.Equal(t, ReasonNone, Diagnose(req, at("15:00")))
}

func TestDiagnose_AgreesWithAvailableSlots(t *testing.T) {
	req := mondayRequest(45*time.Minute,
		Busy{Start: at("09:30"), End: at("10:00")},
		Busy{Start: at("15:00"), End: at("16:15")},
	)
	req.Earliest = at("09:10")

	slots := AvailableSlots(req)
	for c := at("08:00"); c.Before(at("19:00")); c = c.Add(15 * time.Minute) {
		hm := c.Format("15:04")
		ok := Diagnose(req, c) == ReasonNone
		assert.Equal(t, ok, contains(slots, hm), fmt.Sprintf("candidate %s", hm))
	}
}

func TestCheck_ReturnsPolicyError(t *testing.T) {
	err := Check(mondayRequest(30*time.Minute), at("12:00"))

	pe, ok := AsPolicy(err)
	assert.True(t, ok)
	assert.Equal(t, ReasonLunchBreak, pe.Reason)
	assert.Equal(t, "LUNCH_BREAK", err.Error())
}

func TestConflictErrorUnwrapsToSlotUnavailable(t *testing.T) {
	pe, ok := AsPolicy(ErrSlotTaken)
	assert.True(t, ok)
	assert.Equal(t, ReasonSlotUnavailable, pe.Reason)
	assert.Equal(t, "Este horário já está ocupado.", pe.Reason.Message())
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
