package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type fakePublisher struct {
	mu   sync.Mutex
	msgs []Message
	fail map[uint]bool
}

func (p *fakePublisher) Publish(_ context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail[msg.RecordID] {
		return errors.New("broker down")
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	ids     []uint
	pending []models.RevenueRecord
}

func (s *fakeStore) ListUnpublished(_ context.Context, limit int) ([]models.RevenueRecord, error) {
	if len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *fakeStore) MarkPublished(_ context.Context, ids []uint, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, ids...)
	return nil
}

func TestDispatcher_PublishesAndMarks(t *testing.T) {
	log := zerolog.Nop()
	pub := &fakePublisher{fail: map[uint]bool{2: true}}
	store := &fakeStore{}

	d := NewDispatcher(pub, store, &log)
	d.Emit([]models.RevenueRecord{
		{ID: 1, AppointmentID: 5, ServiceID: 10, Amount: 40},
		{ID: 2, AppointmentID: 5, ServiceID: 11, Amount: 20},
	})
	d.Emit(nil)
	d.Close()

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, uint(10), pub.msgs[0].ServiceID)
	assert.Equal(t, []uint{1}, store.ids)
}

func TestDispatcher_Replay(t *testing.T) {
	log := zerolog.Nop()
	pub := &fakePublisher{}
	store := &fakeStore{pending: []models.RevenueRecord{{ID: 4}, {ID: 5}, {ID: 6}}}

	d := NewDispatcher(pub, store, &log)
	require.NoError(t, d.Replay(context.Background(), 2))
	d.Close()

	assert.Equal(t, []uint{4, 5}, store.ids)
}

type fakeChannel struct {
	key string
	msg amqp.Publishing
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _ string, key string, _, _ bool, msg amqp.Publishing) error {
	c.key = key
	c.msg = msg
	return nil
}

func TestAMQPPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p := NewAMQPPublisher(ch, "revenue_records", time.Second)

	ts := time.Date(2030, 6, 3, 18, 0, 0, 0, time.UTC)
	require.NoError(t, p.Publish(context.Background(), Message{RecordID: 3, BarberID: 2, ServiceID: 7, Amount: 35, Timestamp: ts}))

	assert.Equal(t, "revenue_records", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var got Message
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, 35.0, got.Amount)
	assert.True(t, ts.Equal(got.Timestamp))
}
