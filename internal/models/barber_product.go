package models

import "time"

// BarberProduct é um serviço do catálogo (corte, barba...). A duração
// soma no tamanho do agendamento; inativos não podem ser reservados.
type BarberProduct struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index:idx_products_catalog,priority:1" json:"barbershop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Category    string  `gorm:"size:50" json:"category"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"index:idx_products_catalog,priority:2" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration converte DurationMin para time.Duration.
func (p BarberProduct) Duration() time.Duration {
	return time.Duration(p.DurationMin) * time.Minute
}
