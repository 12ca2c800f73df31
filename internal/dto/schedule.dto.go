package dto

import "github.com/BruksfildServices01/barber-agenda/internal/models"

type WeeklyEntryDTO struct {
	DayOfWeek  int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	IsActive   *bool  `json:"is_active"`
}

type DailyEntryDTO struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

// ativo quando omitido
func active(v *bool) bool {
	return v == nil || *v
}

func (e WeeklyEntryDTO) Model() models.WeeklyAvailability {
	return models.WeeklyAvailability{
		DayOfWeek:  e.DayOfWeek,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		LunchStart: e.LunchStart,
		LunchEnd:   e.LunchEnd,
		IsActive:   active(e.IsActive),
	}
}

func (e DailyEntryDTO) Model() models.DateOverride {
	return models.DateOverride{
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		IsActive:  active(e.IsActive),
	}
}

func WeeklyModels(in []WeeklyEntryDTO) []models.WeeklyAvailability {
	out := make([]models.WeeklyAvailability, 0, len(in))
	for _, e := range in {
		out = append(out, e.Model())
	}
	return out
}

func DailyModels(in []DailyEntryDTO) []models.DateOverride {
	out := make([]models.DateOverride, 0, len(in))
	for _, e := range in {
		out = append(out, e.Model())
	}
	return out
}
