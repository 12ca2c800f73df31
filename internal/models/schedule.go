package models

import "time"

// WeeklyAvailability é um turno recorrente do barbeiro em um dia da semana.
// Chave: (barber_id, day_of_week, start_time).
type WeeklyAvailability struct {
	BarberID  uint   `gorm:"primaryKey;autoIncrement:false" json:"barber_id"`
	DayOfWeek int    `gorm:"primaryKey;autoIncrement:false" json:"day_of_week"`
	StartTime string `gorm:"primaryKey;size:5" json:"start_time"`

	EndTime    string `gorm:"size:5;not null" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start,omitempty"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end,omitempty"`
	IsActive   bool   `json:"is_active"`
}

func (WeeklyAvailability) TableName() string {
	return "weekly_availabilities"
}

// DateOverride substitui o expediente semanal em uma data específica.
// Chave: (barber_id, date, start_time).
type DateOverride struct {
	BarberID  uint   `gorm:"primaryKey;autoIncrement:false" json:"barber_id"`
	Date      string `gorm:"primaryKey;size:10" json:"date"`
	StartTime string `gorm:"primaryKey;size:5" json:"start_time"`

	EndTime  string `gorm:"size:5;not null" json:"end_time"`
	IsActive bool   `json:"is_active"`
}

// ScheduleException bloqueia ou estende o atendimento em uma data.
// Existe no máximo uma por (barber_id, date).
type ScheduleException struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"not null;uniqueIndex:idx_schedule_exceptions_barber_date" json:"barber_id"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_schedule_exceptions_barber_date" json:"date"`

	Type      string `gorm:"size:20;not null" json:"type"`
	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
