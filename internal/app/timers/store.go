package timers

import (
	"context"
	"errors"
	"time"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

// Store gates actions behind named per-player timers. Expiry is lazy: every
// read filters on now, so correctness never depends on rows being deleted.
type Store struct {
	Timers ports.TimerRepository
}

func (s Store) HasActiveTimer(ctx context.Context, playerID int64, name string, now time.Time) (bool, error) {
	t, err := s.Timers.Get(ctx, playerID, name)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return t.Active(now), nil
}

func (s Store) RemainingSeconds(ctx context.Context, playerID int64, name string, now time.Time) (int, error) {
	t, err := s.Timers.Get(ctx, playerID, name)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return t.RemainingSeconds(now), nil
}

// SetTimer upserts: a second call with the same name replaces the first,
// last writer wins. Used deliberately to extend or replace a cooldown.
func (s Store) SetTimer(ctx context.Context, playerID int64, name string, durationSeconds int, metadata map[string]string, now time.Time) (game.Timer, error) {
	t := game.NewTimer(playerID, name, durationSeconds, metadata, now)
	if err := s.Timers.Upsert(ctx, t); err != nil {
		return game.Timer{}, err
	}
	return t, nil
}

// ClearTimer is an idempotent unconditional delete.
func (s Store) ClearTimer(ctx context.Context, playerID int64, name string) error {
	err := s.Timers.Delete(ctx, playerID, name)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

// ActiveTimers lists the timers still running at now, for status surfaces.
func (s Store) ActiveTimers(ctx context.Context, playerID int64, now time.Time) ([]game.Timer, error) {
	all, err := s.Timers.ListByPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]game.Timer, 0, len(all))
	for _, t := range all {
		if t.Active(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ReapExpired is storage hygiene only; nothing relies on it for gating.
func (s Store) ReapExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.Timers.DeleteExpiredBefore(ctx, now)
}
