package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Origin        string    `json:"origin"`
	IsOverride    bool      `json:"is_override"`
	ClientName    string    `json:"client_name"`
	ClientPhone   string    `json:"client_phone,omitempty"`
	Services      []string  `json:"services"`
	TotalPrice    float64   `json:"total_price"`
}

// AppointmentList converte para a agenda, com horários no fuso da barbearia.
func AppointmentList(aps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		names := make([]string, 0, len(ap.Services))
		for _, s := range ap.Services {
			names = append(names, s.Name)
		}

		out = append(out, AppointmentListDTO{
			ID:            ap.ID,
			StartTime:     ap.StartTime.In(loc),
			EndTime:       ap.EndTime.In(loc),
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			Origin:        ap.Origin,
			IsOverride:    ap.IsOverride,
			ClientName:    ap.ClientName,
			ClientPhone:   ap.ClientPhone,
			Services:      names,
			TotalPrice:    ap.TotalPrice,
		})
	}
	return out
}
