// Package ledger entrega ao financeiro os lançamentos de receita gerados
// na conclusão dos atendimentos.
package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Message é o contrato publicado para o financeiro.
type Message struct {
	RecordID      uint      `json:"record_id"`
	AppointmentID uint      `json:"appointment_id"`
	BarbershopID  uint      `json:"barbershop_id"`
	BarberID      uint      `json:"barber_id"`
	ServiceID     uint      `json:"service_id"`
	Amount        float64   `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

func MessageFrom(r models.RevenueRecord) Message {
	return Message{
		RecordID:      r.ID,
		AppointmentID: r.AppointmentID,
		BarbershopID:  r.BarbershopID,
		BarberID:      r.BarberID,
		ServiceID:     r.ServiceID,
		Amount:        r.Amount,
		Timestamp:     r.OccurredAt.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// LogPublisher só registra os lançamentos. Usado quando não há broker configurado.
type LogPublisher struct {
	log *zerolog.Logger
}

func NewLogPublisher(log *zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, msg Message) error {
	p.log.Info().
		Uint("record_id", msg.RecordID).
		Uint("appointment_id", msg.AppointmentID).
		Uint("barber_id", msg.BarberID).
		Uint("service_id", msg.ServiceID).
		Float64("amount", msg.Amount).
		Time("timestamp", msg.Timestamp).
		Msg("revenue record")
	return nil
}
