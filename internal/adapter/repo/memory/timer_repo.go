package memory

import (
	"context"
	"time"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type TimerRepo struct {
	store *Store
}

func NewTimerRepo(store *Store) TimerRepo {
	return TimerRepo{store: store}
}

func (r TimerRepo) Get(_ context.Context, playerID int64, name string) (game.Timer, error) {
	t, ok := r.store.timers[timerKey(playerID, name)]
	if !ok {
		return game.Timer{}, ports.ErrNotFound
	}
	return t, nil
}

func (r TimerRepo) Upsert(_ context.Context, t game.Timer) error {
	r.store.timers[timerKey(t.PlayerID, t.Name)] = t
	return nil
}

func (r TimerRepo) Delete(_ context.Context, playerID int64, name string) error {
	delete(r.store.timers, timerKey(playerID, name))
	return nil
}

func (r TimerRepo) ListByPlayer(_ context.Context, playerID int64) ([]game.Timer, error) {
	var out []game.Timer
	for _, t := range r.store.timers {
		if t.PlayerID == playerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r TimerRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for k, t := range r.store.timers {
		if !t.ExpiresAt.After(cutoff) {
			delete(r.store.timers, k)
			deleted++
		}
	}
	return deleted, nil
}
