package ports

import (
	"context"
	"time"

	"omerta/internal/domain/game"
)

type PlayerRepository interface {
	GetByID(ctx context.Context, playerID int64) (game.Player, error)
	// SaveWithVersion persists the aggregate iff the stored version still
	// equals expectedVersion; returns ErrConflict on a CAS miss. Version 0
	// means create.
	SaveWithVersion(ctx context.Context, p game.Player, expectedVersion int64) error
	CountAtRank(ctx context.Context, rankID int) (int64, error)
}

type TimerRepository interface {
	Get(ctx context.Context, playerID int64, name string) (game.Timer, error)
	// Upsert overwrites any existing timer for (player, name); last writer
	// wins.
	Upsert(ctx context.Context, t game.Timer) error
	Delete(ctx context.Context, playerID int64, name string) error
	ListByPlayer(ctx context.Context, playerID int64) ([]game.Timer, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AttemptRecord is the append-only audit row, one per resolved attempt.
// Declines are not recorded.
type AttemptRecord struct {
	ID             string
	PlayerID       int64
	Kind           game.Kind
	DefinitionID   int
	Result         game.Result
	CashDelta      int64
	RespectDelta   int64
	BulletsDelta   int64
	HealthDelta    int64
	ExperienceGain int64
	JailSeconds    int
	CreatedAt      time.Time
}

type AttemptRepository interface {
	Append(ctx context.Context, rec AttemptRecord) error
	ListByPlayer(ctx context.Context, playerID int64, limit int) ([]AttemptRecord, error)
}

// CatalogRepository serves the read-only content tables. Lookup misses are
// configuration errors (ErrNotFound), never gameplay declines.
type CatalogRepository interface {
	Definition(ctx context.Context, kind game.Kind, definitionID int) (game.ActionDefinition, error)
	Ranks(ctx context.Context) ([]game.Rank, error)
}
