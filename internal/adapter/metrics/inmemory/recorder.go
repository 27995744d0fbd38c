package inmemory

import (
	"sync"

	"omerta/internal/domain/game"
)

type Snapshot struct {
	AttemptTotal    uint64            `json:"attempt_total"`
	AttemptResolved uint64            `json:"attempt_resolved"`
	AttemptDeclined uint64            `json:"attempt_declined"`
	AttemptConflict uint64            `json:"attempt_conflict"`
	AttemptFailure  uint64            `json:"attempt_failure"`
	ByResult        map[string]uint64 `json:"by_result"`
	ByDecline       map[string]uint64 `json:"by_decline"`
}

type Recorder struct {
	mu        sync.Mutex
	resolved  uint64
	declined  uint64
	conflict  uint64
	failure   uint64
	byResult  map[string]uint64
	byDecline map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult:  map[string]uint64{},
		byDecline: map[string]uint64{},
	}
}

func (r *Recorder) RecordResult(result game.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved++
	r.byResult[string(result)]++
}

func (r *Recorder) RecordDecline(reason game.DeclineReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.declined++
	r.byDecline[string(reason)]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		AttemptResolved: r.resolved,
		AttemptDeclined: r.declined,
		AttemptConflict: r.conflict,
		AttemptFailure:  r.failure,
		AttemptTotal:    r.resolved + r.declined + r.conflict + r.failure,
		ByResult:        make(map[string]uint64, len(r.byResult)),
		ByDecline:       make(map[string]uint64, len(r.byDecline)),
	}
	for k, v := range r.byResult {
		out.ByResult[k] = v
	}
	for k, v := range r.byDecline {
		out.ByDecline[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
