package memory

import (
	"context"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type CatalogRepo struct {
	store *Store
}

func NewCatalogRepo(store *Store) CatalogRepo {
	return CatalogRepo{store: store}
}

func (r CatalogRepo) Definition(_ context.Context, kind game.Kind, definitionID int) (game.ActionDefinition, error) {
	def, ok := r.store.defs[defKey(kind, definitionID)]
	if !ok {
		return game.ActionDefinition{}, ports.ErrNotFound
	}
	return def, nil
}

func (r CatalogRepo) Ranks(_ context.Context) ([]game.Rank, error) {
	out := make([]game.Rank, len(r.store.ranks))
	copy(out, r.store.ranks)
	return out, nil
}
