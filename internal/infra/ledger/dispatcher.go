package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Store interface {
	MarkPublished(ctx context.Context, ids []uint, at time.Time) error
	ListUnpublished(ctx context.Context, limit int) ([]models.RevenueRecord, error)
}

// Dispatcher publica fora do caminho da requisição.
// Fila cheia descarta o lote; os registros seguem no banco sem published_at.
type Dispatcher struct {
	publisher Publisher
	store     Store
	log       *zerolog.Logger
	queue     chan []models.RevenueRecord
	wg        sync.WaitGroup
	now       func() time.Time
}

func NewDispatcher(publisher Publisher, store Store, log *zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		store:     store,
		log:       log,
		queue:     make(chan []models.RevenueRecord, 100),
		now:       time.Now,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for batch := range d.queue {
		d.publish(batch)
	}
}

func (d *Dispatcher) publish(batch []models.RevenueRecord) {
	ctx := context.Background()

	published := make([]uint, 0, len(batch))
	for _, rec := range batch {
		if err := d.publisher.Publish(ctx, MessageFrom(rec)); err != nil {
			d.log.Error().Err(err).Uint("record_id", rec.ID).Msg("ledger publish failed")
			continue
		}
		published = append(published, rec.ID)
	}

	if err := d.store.MarkPublished(ctx, published, d.now()); err != nil {
		d.log.Error().Err(err).Msg("ledger mark published failed")
	}
}

// Emit satisfaz appointment.RevenueEmitter.
func (d *Dispatcher) Emit(records []models.RevenueRecord) {
	if len(records) == 0 {
		return
	}

	select {
	case d.queue <- records:
	default:
		d.log.Warn().Int("records", len(records)).Msg("ledger queue full, dropping batch")
	}
}

// Replay reenfileira os lançamentos que ficaram sem publicação.
func (d *Dispatcher) Replay(ctx context.Context, limit int) error {
	pending, err := d.store.ListUnpublished(ctx, limit)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		d.log.Info().Int("records", len(pending)).Msg("replaying unpublished revenue records")
	}
	d.Emit(pending)
	return nil
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
