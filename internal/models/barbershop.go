package models

import "time"

type Barbershop struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// Antecedência mínima exigida em agendamentos feitos pelo cliente.
	MinAdvanceMinutes int `json:"min_advance_minutes"`

	// Passo entre horários ofertados. Zero usa o padrão da configuração.
	SlotGranularityMinutes int `json:"slot_granularity_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
