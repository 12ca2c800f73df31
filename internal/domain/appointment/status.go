package appointment

import "github.com/BruksfildServices01/barber-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses ocupam a agenda do barbeiro.
func ActiveStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusCompleted),
	}
}

type PaymentStatus string

const (
	PaymentWaiting PaymentStatus = "waiting_payment"
	PaymentPaid    PaymentStatus = "paid"
)

// Origin diz quem criou o agendamento.
type Origin string

const (
	OriginCustomer Origin = "customer"
	OriginManual   Origin = "manual"
)

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanConfirmPayment(current Status, payment PaymentStatus) error {
	if current == StatusCancelled || payment != PaymentWaiting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanRetract só vale para lançamentos manuais ainda não atendidos.
func CanRetract(current Status, origin Origin) error {
	if origin != OriginManual {
		return httperr.ErrBusiness("not_manual_entry")
	}
	return CanCancel(current)
}

// InitialStatus: cliente aguarda confirmação, lançamento manual já nasce confirmado.
func InitialStatus(origin Origin) Status {
	if origin == OriginManual {
		return StatusConfirmed
	}
	return StatusPending
}
