package action

import (
	"context"
	"strconv"
	"sync"
	"time"

	"omerta/internal/app/ports"
	"omerta/internal/app/progression"
	"omerta/internal/app/timers"
	"omerta/internal/domain/game"
	"omerta/internal/pkg/lock"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPlayerRepo struct {
	mu       sync.Mutex
	byID     map[int64]game.Player
	saveErr  error
	saveErrN int
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
	if r.saveErr != nil && r.saveErrN != 0 {
		if r.saveErrN > 0 {
			r.saveErrN--
		}
		return r.saveErr
	}
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

type stubTimerRepo struct {
	mu      sync.Mutex
	byKey   map[string]game.Timer
	getErr  error
	saveErr error
}

func timerStubKey(playerID int64, name string) string {
	return strconv.FormatInt(playerID, 10) + "|" + name
}

func (r *stubTimerRepo) Get(_ context.Context, playerID int64, name string) (game.Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return game.Timer{}, r.getErr
	}
	t, ok := r.byKey[timerStubKey(playerID, name)]
	if !ok {
		return game.Timer{}, ports.ErrNotFound
	}
	return t, nil
}

func (r *stubTimerRepo) Upsert(_ context.Context, t game.Timer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byKey[timerStubKey(t.PlayerID, t.Name)] = t
	return nil
}

func (r *stubTimerRepo) Delete(_ context.Context, playerID int64, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byKey, timerStubKey(playerID, name))
	return nil
}

func (r *stubTimerRepo) ListByPlayer(_ context.Context, playerID int64) ([]game.Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []game.Timer
	for _, t := range r.byKey {
		if t.PlayerID == playerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTimerRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.byKey {
		if !t.ExpiresAt.After(cutoff) {
			delete(r.byKey, k)
			n++
		}
	}
	return n, nil
}

type stubAttemptRepo struct {
	mu      sync.Mutex
	records []ports.AttemptRecord
}

func (r *stubAttemptRepo) Append(_ context.Context, rec ports.AttemptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *stubAttemptRepo) ListByPlayer(_ context.Context, playerID int64, limit int) ([]ports.AttemptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ports.AttemptRecord
	for i := len(r.records) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r.records[i].PlayerID == playerID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type stubCatalogRepo struct {
	defs  map[string]game.ActionDefinition
	ranks []game.Rank
}

func catalogStubKey(kind game.Kind, id int) string {
	return string(kind) + "|" + strconv.Itoa(id)
}

func (r *stubCatalogRepo) Definition(_ context.Context, kind game.Kind, definitionID int) (game.ActionDefinition, error) {
	def, ok := r.defs[catalogStubKey(kind, definitionID)]
	if !ok {
		return game.ActionDefinition{}, ports.ErrNotFound
	}
	return def, nil
}

func (r *stubCatalogRepo) Ranks(_ context.Context) ([]game.Rank, error) {
	return r.ranks, nil
}

type stubMetrics struct {
	mu        sync.Mutex
	results   []game.Result
	declines  []game.DeclineReason
	conflicts int
	failures  int
}

func (m *stubMetrics) RecordResult(result game.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *stubMetrics) RecordDecline(reason game.DeclineReason) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.declines = append(m.declines, reason)
}

func (m *stubMetrics) RecordConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func (m *stubMetrics) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

type stubNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (n *stubNotifier) Notify(_ context.Context, evt ports.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

// scriptRoller replays a fixed sequence of draws, then repeats the last one.
type scriptRoller struct {
	draws []int
	i     int
}

func (r *scriptRoller) Roll(min, max int) int {
	if len(r.draws) == 0 {
		return min
	}
	v := r.draws[r.i]
	if r.i < len(r.draws)-1 {
		r.i++
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

type fixture struct {
	uc       UseCase
	players  *stubPlayerRepo
	timers   *stubTimerRepo
	attempts *stubAttemptRepo
	catalog  *stubCatalogRepo
	metrics  *stubMetrics
	notifier *stubNotifier
	now      time.Time
}

func newFixture(roller game.Roller) *fixture {
	f := &fixture{
		players:  &stubPlayerRepo{byID: map[int64]game.Player{}},
		timers:   &stubTimerRepo{byKey: map[string]game.Timer{}},
		attempts: &stubAttemptRepo{},
		catalog:  &stubCatalogRepo{defs: map[string]game.ActionDefinition{}},
		metrics:  &stubMetrics{},
		notifier: &stubNotifier{},
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	store := timers.Store{Timers: f.timers}
	f.uc = UseCase{
		TxManager: stubTxManager{},
		Players:   f.players,
		Timers:    store,
		Attempts:  f.attempts,
		Catalog:   f.catalog,
		Progress: progression.Service{
			TxManager: stubTxManager{},
			Players:   f.players,
			Catalog:   f.catalog,
		},
		Locks:    lock.NewPlayerLock(),
		Metrics:  f.metrics,
		Notifier: f.notifier,
		Roller:   roller,
		Rules:    DefaultRules(),
		Now:      func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) seedPlayer(p game.Player) {
	f.players.byID[p.ID] = p
}

func (f *fixture) seedDefinition(def game.ActionDefinition) {
	f.catalog.defs[catalogStubKey(def.Kind, def.ID)] = def
}

func (f *fixture) seedRanks(ranks []game.Rank) {
	f.catalog.ranks = ranks
}

func (f *fixture) player(id int64) game.Player {
	return f.players.byID[id]
}
