package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zerolog.Nop()
	l := NewRedisLocker(client, time.Second, &log)
	l.retry = 5 * time.Millisecond
	return l, mr
}

func assertMutualExclusion(t *testing.T, l Locker) {
	t.Helper()

	var (
		wg      sync.WaitGroup
		inside  int32
		maxSeen int32
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := l.Lock(context.Background(), BookingKey(1, "2030-06-03"))
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
}

func TestMemoryLocker_MutualExclusion(t *testing.T) {
	assertMutualExclusion(t, NewMemoryLocker())
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	l := NewMemoryLocker()

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // idempotente

	_, err = l.Lock(context.Background(), "k")
	assert.NoError(t, err)
}

func TestMemoryLocker_IndependentKeys(t *testing.T) {
	l := NewMemoryLocker()

	a, err := l.Lock(context.Background(), ScheduleKey(1))
	require.NoError(t, err)
	defer a()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	b, err := l.Lock(ctx, ScheduleKey(2))
	require.NoError(t, err)
	b()
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	l, _ := newRedisLocker(t)
	assertMutualExclusion(t, l)
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	l, mr := newRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "schedule:1")
	require.NoError(t, err)

	// o TTL expirou e outra instância pegou a chave
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("lock:schedule:1", "other-token"))

	unlock()

	got, err := mr.Get("lock:schedule:1")
	require.NoError(t, err)
	assert.Equal(t, "other-token", got)
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	l, mr := newRedisLocker(t)

	_, err := l.Lock(context.Background(), "booking:1:2030-06-03")
	require.NoError(t, err)

	mr.FastForward(1500 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlock, err := l.Lock(ctx, "booking:1:2030-06-03")
	require.NoError(t, err)
	unlock()

	assert.False(t, mr.Exists("lock:booking:1:2030-06-03"))
}

func TestRedisLocker_ContextCancelled(t *testing.T) {
	l, _ := newRedisLocker(t)

	_, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
