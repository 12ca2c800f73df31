package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/testutil"
)

func TestScheduleRepository_ReplaceWeekly(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleGormRepository(testutil.NewDB(t))

	first := []models.WeeklyAvailability{
		testutil.MondayShift(1),
		{BarberID: 1, DayOfWeek: 2, StartTime: "10:00", EndTime: "14:00", IsActive: true},
	}
	require.NoError(t, repo.ReplaceWeekly(ctx, 1, first))
	require.NoError(t, repo.ReplaceWeekly(ctx, 2, []models.WeeklyAvailability{testutil.MondayShift(2)}))

	second := []models.WeeklyAvailability{
		{BarberID: 1, DayOfWeek: 5, StartTime: "08:00", EndTime: "12:00", IsActive: true},
	}
	require.NoError(t, repo.ReplaceWeekly(ctx, 1, second))

	got, err := repo.ListWeekly(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].DayOfWeek)

	// outro barbeiro intacto
	other, err := repo.ListWeeklyByDay(ctx, 2, 1)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestScheduleRepository_Daily(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleGormRepository(testutil.NewDB(t))

	require.NoError(t, repo.ReplaceDaily(ctx, 1, "2030-06-03", []models.DateOverride{
		{BarberID: 1, Date: "2030-06-03", StartTime: "09:00", EndTime: "13:00", IsActive: true},
	}))
	require.NoError(t, repo.ReplaceDaily(ctx, 1, "2030-06-10", []models.DateOverride{
		{BarberID: 1, Date: "2030-06-10", StartTime: "14:00", EndTime: "18:00", IsActive: true},
	}))

	upcoming, err := repo.ListDailyFrom(ctx, 1, "2030-06-04")
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "2030-06-10", upcoming[0].Date)

	require.NoError(t, repo.ClearDaily(ctx, 1, "2030-06-03"))
	day, err := repo.ListDaily(ctx, 1, "2030-06-03")
	require.NoError(t, err)
	assert.Empty(t, day)
}

func TestScheduleRepository_Exceptions(t *testing.T) {
	ctx := context.Background()
	repo := NewScheduleGormRepository(testutil.NewDB(t))

	ex := &models.ScheduleException{BarberID: 1, Date: "2030-12-24", Type: "blocked", Reason: "Natal"}
	require.NoError(t, repo.AddException(ctx, ex))
	require.NotZero(t, ex.ID)

	dup := &models.ScheduleException{BarberID: 1, Date: "2030-12-24", Type: "extended", StartTime: "08:00", EndTime: "12:00"}
	err := repo.AddException(ctx, dup)
	assert.True(t, httperr.IsBusiness(err, "exception_already_exists"))

	got, err := repo.GetException(ctx, 1, "2030-12-24")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "blocked", got.Type)

	none, err := repo.GetException(ctx, 1, "2030-12-25")
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := repo.ListExceptions(ctx, 1, "2030-01-01", "2030-12-31")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// barbeiro errado não remove
	assert.True(t, httperr.IsBusiness(repo.RemoveException(ctx, 2, ex.ID), "exception_not_found"))
	require.NoError(t, repo.RemoveException(ctx, 1, ex.ID))
	assert.True(t, httperr.IsBusiness(repo.RemoveException(ctx, 1, ex.ID), "exception_not_found"))
}
