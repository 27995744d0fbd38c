// Package lock serializes in-process work per player id. It sits in front
// of the optimistic store so same-node double-clicks contend here instead
// of burning CAS retries.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrLockTimeout = errors.New("lock acquisition timeout")

type playerMutex struct {
	ch chan struct{}
}

// PlayerLock hands out one mutex per player id. Mutexes are channel-based
// so acquisition can race a timeout.
type PlayerLock struct {
	locks sync.Map // map[int64]*playerMutex
}

func NewPlayerLock() *PlayerLock {
	return &PlayerLock{}
}

func (pl *PlayerLock) get(playerID int64) *playerMutex {
	if v, ok := pl.locks.Load(playerID); ok {
		return v.(*playerMutex)
	}
	m := &playerMutex{ch: make(chan struct{}, 1)}
	actual, _ := pl.locks.LoadOrStore(playerID, m)
	return actual.(*playerMutex)
}

// Acquire blocks until the player's lock is held, the timeout elapses, or
// the context is cancelled.
func (pl *PlayerLock) Acquire(ctx context.Context, playerID int64, timeout time.Duration) error {
	m := pl.get(playerID)
	if timeout <= 0 {
		select {
		case m.ch <- struct{}{}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m.ch <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire never blocks.
func (pl *PlayerLock) TryAcquire(playerID int64) bool {
	m := pl.get(playerID)
	select {
	case m.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

func (pl *PlayerLock) Release(playerID int64) {
	if v, ok := pl.locks.Load(playerID); ok {
		select {
		case <-v.(*playerMutex).ch:
		default:
		}
	}
}
