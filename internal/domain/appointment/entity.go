package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Snapshot é o estado lido antes de uma transição. O repositório só grava
// se o registro ainda estiver nele.
type Snapshot struct {
	Status        string
	PaymentStatus string
}

func SnapshotOf(ap *models.Appointment) Snapshot {
	return Snapshot{Status: ap.Status, PaymentStatus: ap.PaymentStatus}
}

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func ConfirmPayment(ap *models.Appointment, now time.Time) error {
	if err := CanConfirmPayment(Status(ap.Status), PaymentStatus(ap.PaymentStatus)); err != nil {
		return err
	}

	ap.PaymentStatus = string(PaymentPaid)
	ap.PaidAt = &now
	return nil
}

func Retract(ap *models.Appointment) error {
	return CanRetract(Status(ap.Status), Origin(ap.Origin))
}

// RevenueRecords gera um lançamento por serviço do atendimento concluído.
func RevenueRecords(ap *models.Appointment, now time.Time) []models.RevenueRecord {
	out := make([]models.RevenueRecord, 0, len(ap.Services))
	for _, s := range ap.Services {
		out = append(out, models.RevenueRecord{
			AppointmentID: ap.ID,
			BarbershopID:  ap.BarbershopID,
			BarberID:      ap.BarberID,
			ServiceID:     s.BarberProductID,
			Amount:        s.Price,
			OccurredAt:    now,
		})
	}
	return out
}
