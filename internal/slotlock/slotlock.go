package slotlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/VitalCareServices/clinic-scheduler/internal/httperr"
)

// ======================================================
// SLOT LOCK
// ======================================================
//
// Mutual exclusion keyed by (doctor, instant) held across the
// check-then-insert of a booking. The database keeps its own partial
// unique index as backstop; the lock turns a losing race into a clean
// slot_already_booked instead of a constraint error.

type Locker interface {
	// Acquire blocks competing bookings for the same slot. The
	// returned release func must be called once the booking attempt is
	// finished.
	Acquire(ctx context.Context, doctorID uint, date time.Time) (release func(), err error)
}

func Key(doctorID uint, date time.Time) string {
	return fmt.Sprintf("slot:%d:%d", doctorID, date.UTC().Unix())
}

// ------------------------------------------------------
// Redis locker (multi-instance deployments)
// ------------------------------------------------------

const (
	lockTTL       = 10 * time.Second
	retryInterval = 50 * time.Millisecond
)

// releaseScript deletes the lock only if we still own it, so an expired
// lock taken over by another booking is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, doctorID uint, date time.Time) (func(), error) {
	key := Key(doctorID, date)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			// the caller never learned whether the slot is taken, so
			// this is a retryable timeout, not a conflict
			return nil, httperr.ErrBusiness("slot_lock_timeout")
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		releaseScript.Run(context.Background(), l.client, []string{key}, token)
	}
	return release, nil
}

// ------------------------------------------------------
// Local locker (single node, tests)
// ------------------------------------------------------

// LocalLocker holds one single-slot channel per key so a waiter can
// give up when its context expires, unlike a plain mutex.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) Acquire(ctx context.Context, doctorID uint, date time.Time) (func(), error) {
	key := Key(doctorID, date)

	l.mu.Lock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, httperr.ErrBusiness("slot_lock_timeout")
	}

	release := func() { <-ch }
	return release, nil
}

// Compile-time checks
var (
	_ Locker = (*RedisLocker)(nil)
	_ Locker = (*LocalLocker)(nil)
)
