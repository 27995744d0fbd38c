package ledger

import (
	"context"
	"sync"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPlayerRepo struct {
	mu   sync.Mutex
	byID map[int64]game.Player
}

func (r *stubPlayerRepo) GetByID(_ context.Context, playerID int64) (game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[playerID]
	if !ok {
		return game.Player{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *stubPlayerRepo) SaveWithVersion(_ context.Context, p game.Player, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[p.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byID[p.ID] = p
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *stubPlayerRepo) CountAtRank(_ context.Context, rankID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.byID {
		if p.RankID == rankID {
			n++
		}
	}
	return n, nil
}

func newLedger(players ...game.Player) (Ledger, *stubPlayerRepo) {
	repo := &stubPlayerRepo{byID: map[int64]game.Player{}}
	for _, p := range players {
		repo.byID[p.ID] = p
	}
	return Ledger{TxManager: stubTxManager{}, Players: repo}, repo
}
