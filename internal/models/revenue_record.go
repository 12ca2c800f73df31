package models

import "time"

// RevenueRecord é o lançamento enviado ao financeiro quando um atendimento
// é concluído. Um registro por serviço prestado.
type RevenueRecord struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`
	BarbershopID  uint `gorm:"index" json:"barbershop_id"`
	BarberID      uint `json:"barber_id"`
	ServiceID     uint `json:"service_id"`

	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"timestamp"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
