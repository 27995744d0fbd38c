package timers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reaper periodically sweeps expired timer rows. Purely hygiene; gating
// stays correct with the sweep disabled.
type Reaper struct {
	Store    Store
	Interval time.Duration
	Logger   zerolog.Logger
	Now      func() time.Time
}

func (r Reaper) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := r.Store.ReapExpired(ctx, nowFn())
			if err != nil {
				r.Logger.Warn().Err(err).Msg("timer reap failed")
				continue
			}
			if deleted > 0 {
				r.Logger.Debug().Int64("deleted", deleted).Msg("reaped expired timers")
			}
		}
	}
}
