package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func TestCanonicalWeekly_SortsAndStampsBarber(t *testing.T) {
	out, err := CanonicalWeekly(7, []models.WeeklyAvailability{
		{DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "08:00", EndTime: "12:00", IsActive: true},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, 1, out[0].DayOfWeek)
	assert.Equal(t, "08:00", out[1].StartTime)
	assert.Equal(t, "14:00", out[2].StartTime)
	for _, w := range out {
		assert.Equal(t, uint(7), w.BarberID)
	}
}

func TestCanonicalWeekly_Rejections(t *testing.T) {
	cases := map[string]struct {
		entries []models.WeeklyAvailability
		code    string
	}{
		"overlap": {
			entries: []models.WeeklyAvailability{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
				{DayOfWeek: 1, StartTime: "11:00", EndTime: "14:00"},
			},
			code: CodeOverlappingInterval,
		},
		"inverted": {
			entries: []models.WeeklyAvailability{{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}},
			code:    "invalid_interval",
		},
		"bad format": {
			entries: []models.WeeklyAvailability{{DayOfWeek: 1, StartTime: "9h", EndTime: "12:00"}},
			code:    "invalid_time",
		},
		"day out of range": {
			entries: []models.WeeklyAvailability{{DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}},
			code:    "invalid_day_of_week",
		},
		"lunch half": {
			entries: []models.WeeklyAvailability{{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00"}},
			code:    "invalid_lunch",
		},
		"lunch outside": {
			entries: []models.WeeklyAvailability{{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", LunchStart: "17:30", LunchEnd: "18:30"}},
			code:    "invalid_lunch",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := CanonicalWeekly(1, tc.entries)
			ve, ok := httperr.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tc.code, ve.Code)
		})
	}
}

func TestCanonicalWeekly_TouchingShiftsAllowed(t *testing.T) {
	_, err := CanonicalWeekly(1, []models.WeeklyAvailability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: 1, StartTime: "12:00", EndTime: "14:00"},
	})
	assert.NoError(t, err)
}

func TestCanonicalDaily(t *testing.T) {
	out, err := CanonicalDaily(3, "2030-06-03", []models.DateOverride{
		{StartTime: "14:00", EndTime: "16:00", IsActive: true},
		{StartTime: "09:00", EndTime: "12:00", IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", out[0].StartTime)
	assert.Equal(t, "2030-06-03", out[1].Date)

	_, err = CanonicalDaily(3, "03/06/2030", nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = CanonicalDaily(3, "2030-06-03", []models.DateOverride{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "09:00", EndTime: "10:00"},
	})
	assert.ErrorIs(t, err, ErrOverlappingInterval)
}

func TestCanonicalException(t *testing.T) {
	blocked, err := CanonicalException(2, models.ScheduleException{
		Date: "2030-12-24", Type: "Blocked", StartTime: "09:00", EndTime: "10:00", Reason: " Natal ",
	})
	require.NoError(t, err)
	assert.Equal(t, "blocked", blocked.Type)
	assert.Empty(t, blocked.StartTime)
	assert.Equal(t, "Natal", blocked.Reason)

	_, err = CanonicalException(2, models.ScheduleException{Date: "2030-12-24", Type: "extended", StartTime: "10:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = CanonicalException(2, models.ScheduleException{Date: "2030-12-24", Type: "holiday"})
	assert.ErrorIs(t, err, ErrInvalidException)
}
