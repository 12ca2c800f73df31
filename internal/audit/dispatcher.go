package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zerolog.Logger
	queue chan Event
	wg    sync.WaitGroup
}

func NewDispatcher(sink Sink, log *zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.sink.Record(context.Background(), ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit error")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// fila cheia: descarta, nunca bloqueia a API
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
