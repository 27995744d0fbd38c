package action

import "omerta/internal/domain/game"

type Request struct {
	PlayerID     int64
	Kind         game.Kind
	DefinitionID int
}

// Response is the structured attempt result. Declined is a normal outcome
// (cooldown, jail, level, funds, contention), never an error; hard errors
// (unknown catalog row, storage failure) surface through the error return.
type Response struct {
	Declined        bool
	DeclineReason   game.DeclineReason
	Result          game.Result
	Message         string
	WaitSeconds     int
	CashDelta       int64
	RespectDelta    int64
	BulletsDelta    int64
	HealthDelta     int64
	ExperienceGain  int64
	JailSeconds     int
	JailCleared     bool
	CooldownSeconds int
	LevelsGained    int
	NewLevel        int
	RankUps         []game.Rank
	Player          game.Player
}

func declined(reason game.DeclineReason, message string, waitSeconds int) Response {
	return Response{
		Declined:      true,
		DeclineReason: reason,
		Message:       message,
		WaitSeconds:   waitSeconds,
	}
}
