package ports

import "omerta/internal/domain/game"

type AttemptMetrics interface {
	RecordResult(result game.Result)
	RecordDecline(reason game.DeclineReason)
	RecordConflict()
	RecordFailure()
}
