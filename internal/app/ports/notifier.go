package ports

import (
	"context"
	"time"
)

// Event is a plain data notification for an external renderer. The core
// never formats player-facing text beyond the outcome message.
type Event struct {
	PlayerID   int64
	Type       string
	OccurredAt time.Time
	Payload    map[string]any
}

const (
	EventRankUp  = "rank_up"
	EventLevelUp = "level_up"
	EventJailed  = "jailed"
	EventFreed   = "freed"
)

type Notifier interface {
	Notify(ctx context.Context, evt Event)
}
