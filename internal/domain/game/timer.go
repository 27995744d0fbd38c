package game

import "time"

// Timer blocks one action kind for one player until ExpiresAt. Expiry is
// lazy: readers filter on now, nothing depends on rows being deleted.
type Timer struct {
	PlayerID  int64
	Name      string
	ExpiresAt time.Time
	Duration  int
	Metadata  map[string]string
	CreatedAt time.Time
}

func NewTimer(playerID int64, name string, durationSeconds int, metadata map[string]string, now time.Time) Timer {
	return Timer{
		PlayerID:  playerID,
		Name:      name,
		ExpiresAt: now.Add(time.Duration(durationSeconds) * time.Second),
		Duration:  durationSeconds,
		Metadata:  metadata,
		CreatedAt: now,
	}
}

func (t Timer) Active(now time.Time) bool {
	return t.ExpiresAt.After(now)
}

// RemainingSeconds rounds up; an active timer never reports zero.
func (t Timer) RemainingSeconds(now time.Time) int {
	if !t.Active(now) {
		return 0
	}
	remaining := t.ExpiresAt.Sub(now)
	seconds := int((remaining + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
