package memory

import (
	"context"

	"omerta/internal/app/ports"
)

type AttemptRepo struct {
	store *Store
}

func NewAttemptRepo(store *Store) AttemptRepo {
	return AttemptRepo{store: store}
}

func (r AttemptRepo) Append(_ context.Context, rec ports.AttemptRecord) error {
	r.store.attempts = append(r.store.attempts, rec)
	return nil
}

func (r AttemptRepo) ListByPlayer(_ context.Context, playerID int64, limit int) ([]ports.AttemptRecord, error) {
	var out []ports.AttemptRecord
	for i := len(r.store.attempts) - 1; i >= 0; i-- {
		if r.store.attempts[i].PlayerID != playerID {
			continue
		}
		out = append(out, r.store.attempts[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
