package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	BarberID     uint `gorm:"index:idx_appointments_barber_start" json:"barber_id"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	StartTime       time.Time `gorm:"index:idx_appointments_barber_start" json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalPrice      float64   `json:"total_price"`

	Status        string `gorm:"size:20;not null" json:"status"`
	PaymentStatus string `gorm:"size:20;not null" json:"payment_status"`
	Origin        string `gorm:"size:20;not null" json:"origin"`
	IsOverride    bool   `json:"is_override"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	PaidAt      *time.Time `json:"paid_at"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService guarda o serviço agendado com preço e duração do momento.
type AppointmentService struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	AppointmentID   uint    `gorm:"index;not null" json:"appointment_id"`
	BarberProductID uint    `gorm:"not null" json:"service_id"`
	Name            string  `gorm:"size:100" json:"name"`
	DurationMin     int     `json:"duration_min"`
	Price           float64 `json:"price"`
}
