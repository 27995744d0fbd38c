package status

import (
	"context"
	"time"

	"omerta/internal/app/ports"
	"omerta/internal/app/timers"
	"omerta/internal/domain/game"
)

// UseCase serves the read-only status surface: cooldown countdowns and a
// point-in-time resource snapshot.
type UseCase struct {
	Players ports.PlayerRepository
	Timers  timers.Store
	Now     func() time.Time
}

type TimerView struct {
	Name             string `json:"name"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

type PlayerView struct {
	PlayerID             int64       `json:"player_id"`
	Username             string      `json:"username"`
	Level                int         `json:"level"`
	Experience           int64       `json:"experience"`
	Cash                 int64       `json:"cash"`
	Bank                 int64       `json:"bank"`
	Energy               int64       `json:"energy"`
	MaxEnergy            int64       `json:"max_energy"`
	Health               int64       `json:"health"`
	MaxHealth            int64       `json:"max_health"`
	Respect              int64       `json:"respect"`
	Bullets              int64       `json:"bullets"`
	RankID               int         `json:"rank_id"`
	LocationID           int         `json:"location_id"`
	Jailed               bool        `json:"jailed"`
	JailRemainingSeconds int         `json:"jail_remaining_seconds,omitempty"`
	Timers               []TimerView `json:"timers,omitempty"`
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) Cooldown(ctx context.Context, playerID int64, kind game.Kind) (int, error) {
	return u.Timers.RemainingSeconds(ctx, playerID, string(kind), u.now())
}

func (u UseCase) Resources(ctx context.Context, playerID int64) (PlayerView, error) {
	now := u.now()
	p, err := u.Players.GetByID(ctx, playerID)
	if err != nil {
		return PlayerView{}, err
	}
	active, err := u.Timers.ActiveTimers(ctx, playerID, now)
	if err != nil {
		return PlayerView{}, err
	}

	view := PlayerView{
		PlayerID:             p.ID,
		Username:             p.Username,
		Level:                p.Level,
		Experience:           p.Experience,
		Cash:                 p.Cash,
		Bank:                 p.Bank,
		Energy:               p.Energy,
		MaxEnergy:            p.MaxEnergy,
		Health:               p.Health,
		MaxHealth:            p.MaxHealth,
		Respect:              p.Respect,
		Bullets:              p.Bullets,
		RankID:               p.RankID,
		LocationID:           p.LocationID,
		Jailed:               p.Jailed(now),
		JailRemainingSeconds: p.JailRemainingSeconds(now),
	}
	for _, t := range active {
		view.Timers = append(view.Timers, TimerView{
			Name:             t.Name,
			RemainingSeconds: t.RemainingSeconds(now),
		})
	}
	return view, nil
}
