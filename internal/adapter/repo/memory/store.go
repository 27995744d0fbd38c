package memory

import (
	"fmt"
	"sync"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

// Store backs every repository with plain maps behind one mutex. The tx
// manager holds the mutex for the whole transaction, which gives the same
// serialization the database row lock gives in production.
type Store struct {
	mu       sync.Mutex
	players  map[int64]game.Player
	timers   map[string]game.Timer
	attempts []ports.AttemptRecord
	defs     map[string]game.ActionDefinition
	ranks    []game.Rank
}

func NewStore() *Store {
	return &Store{
		players: make(map[int64]game.Player),
		timers:  make(map[string]game.Timer),
		defs:    make(map[string]game.ActionDefinition),
	}
}

func timerKey(playerID int64, name string) string {
	return fmt.Sprintf("%d::%s", playerID, name)
}

func defKey(kind game.Kind, id int) string {
	return fmt.Sprintf("%s::%d", kind, id)
}

func (s *Store) SeedPlayer(p game.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

func (s *Store) SeedDefinition(def game.ActionDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[defKey(def.Kind, def.ID)] = def
}

func (s *Store) SeedRanks(ranks []game.Rank) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranks = game.SortRanks(ranks)
}
