// Package zlog emits gameplay events as structured log lines. It stands in
// for a real push channel (websocket, telegram) in deployments that only
// need an audit trail.
package zlog

import (
	"context"

	"github.com/rs/zerolog"

	"omerta/internal/app/ports"
)

type Notifier struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) Notifier {
	return Notifier{log: log}
}

func (n Notifier) Notify(_ context.Context, evt ports.Event) {
	n.log.Info().
		Int64("player_id", evt.PlayerID).
		Str("event", evt.Type).
		Time("occurred_at", evt.OccurredAt).
		Fields(evt.Payload).
		Msg("game event")
}

var _ ports.Notifier = Notifier{}
