package appointment

import "errors"

// Reason é o motivo de um horário não poder ser reservado.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDateBlocked
	ReasonOutOfWorkingHours
	ReasonLunchBreak
	ReasonSlotUnavailable
	ReasonDateInPast
)

var reasonCodes = map[Reason]string{
	ReasonDateBlocked:       "DATE_BLOCKED",
	ReasonOutOfWorkingHours: "OUT_OF_WORKING_HOURS",
	ReasonLunchBreak:        "LUNCH_BREAK",
	ReasonSlotUnavailable:   "SLOT_UNAVAILABLE",
	ReasonDateInPast:        "DATE_IN_PAST",
}

var reasonMessages = map[Reason]string{
	ReasonDateBlocked:       "O barbeiro não atende nesta data.",
	ReasonOutOfWorkingHours: "Fora do horário de atendimento.",
	ReasonLunchBreak:        "Este horário coincide com o intervalo de almoço.",
	ReasonSlotUnavailable:   "Este horário já está ocupado.",
	ReasonDateInPast:        "Não é possível agendar para um horário que já passou.",
}

// Code é o identificador estável usado na API.
func (r Reason) Code() string {
	return reasonCodes[r]
}

func (r Reason) Message() string {
	return reasonMessages[r]
}

func (r Reason) String() string {
	if r == ReasonNone {
		return "NONE"
	}
	return r.Code()
}

// ===============================
// Errors
// ===============================

// PolicyError é uma recusa esperada de agendamento.
type PolicyError struct {
	Reason Reason
}

func (e PolicyError) Error() string {
	return e.Reason.Code()
}

func ErrPolicy(r Reason) error {
	return PolicyError{Reason: r}
}

func AsPolicy(err error) (PolicyError, bool) {
	var pe PolicyError
	ok := errors.As(err, &pe)
	return pe, ok
}

// ConflictError indica que outro agendamento levou o horário durante a reserva.
type ConflictError struct{}

func (ConflictError) Error() string {
	return "slot already taken"
}

func (ConflictError) Unwrap() error {
	return PolicyError{Reason: ReasonSlotUnavailable}
}

var ErrSlotTaken error = ConflictError{}
