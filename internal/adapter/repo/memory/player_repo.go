package memory

import (
	"context"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) GetByID(_ context.Context, playerID int64) (game.Player, error) {
	p, ok := r.store.players[playerID]
	if !ok {
		return game.Player{}, ports.ErrNotFound
	}
	return p, nil
}

func (r PlayerRepo) SaveWithVersion(_ context.Context, p game.Player, expectedVersion int64) error {
	current, ok := r.store.players[p.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.players[p.ID] = p
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.players[p.ID] = p
	return nil
}

func (r PlayerRepo) CountAtRank(_ context.Context, rankID int) (int64, error) {
	var n int64
	for _, p := range r.store.players {
		if p.RankID == rankID {
			n++
		}
	}
	return n, nil
}
