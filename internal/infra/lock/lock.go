// Package lock fornece exclusão mútua por chave para reservas e edições de agenda.
package lock

import (
	"context"
	"fmt"
)

// Locker adquire a chave e devolve a função de liberação.
// Bloqueia até conseguir ou até o contexto terminar.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func BookingKey(barberID uint, date string) string {
	return fmt.Sprintf("booking:%d:%s", barberID, date)
}

func ScheduleKey(barberID uint) string {
	return fmt.Sprintf("schedule:%d", barberID)
}
