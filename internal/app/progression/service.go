package progression

import (
	"context"
	"time"

	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

// Service resolves level-ups and rank transitions from experience grants.
type Service struct {
	TxManager ports.TxManager
	Players   ports.PlayerRepository
	Catalog   ports.CatalogRepository
	Notifier  ports.Notifier
	Now       func() time.Time
}

type Result struct {
	LevelsGained int
	NewLevel     int
	RankUps      []game.Rank
}

// Apply grants experience to the working aggregate inside the caller's
// transaction. Rank-ups cascade in a loop bounded by the catalog size, so a
// single large grant applies every qualifying tier in one call. A full
// tier (user_limit reached) stops the cascade; the experience stays banked
// until a slot frees.
func (s Service) Apply(ctx context.Context, p *game.Player, amount int64) (Result, error) {
	res := Result{NewLevel: p.Level}
	if amount <= 0 {
		return res, nil
	}

	p.Credit(game.FieldExperience, amount)

	newLevel := game.LevelForExperience(p.Experience)
	if newLevel > p.Level {
		res.LevelsGained = newLevel - p.Level
		p.Level = newLevel
	}
	res.NewLevel = p.Level

	ranks, err := s.Catalog.Ranks(ctx)
	if err != nil {
		return Result{}, err
	}
	sorted := game.SortRanks(ranks)

	idx := -1
	for i, r := range sorted {
		if r.ID == p.RankID {
			idx = i
			break
		}
	}

	for idx+1 < len(sorted) {
		next := sorted[idx+1]
		if p.Experience < next.RequiredExp {
			break
		}
		if next.UserLimit > 0 {
			held, err := s.Players.CountAtRank(ctx, next.ID)
			if err != nil {
				return Result{}, err
			}
			if held >= int64(next.UserLimit) {
				break
			}
		}
		p.Credit(game.FieldCash, next.CashReward)
		p.Credit(game.FieldBullets, next.BulletReward)
		p.RaiseMaxHealth(next.MaxHealth)
		p.RankID = next.ID
		res.RankUps = append(res.RankUps, next)
		idx++
	}

	return res, nil
}

// AddExperience is the standalone grant operation: its own transaction, CAS
// save, notifications after commit. Zero or negative grants are no-ops.
func (s Service) AddExperience(ctx context.Context, playerID int64, amount int64, sourceTag string) (Result, error) {
	if amount <= 0 {
		p, err := s.Players.GetByID(ctx, playerID)
		if err != nil {
			return Result{}, err
		}
		return Result{NewLevel: p.Level}, nil
	}

	var res Result
	err := s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.Players.GetByID(txCtx, playerID)
		if err != nil {
			return err
		}
		res, err = s.Apply(txCtx, &p, amount)
		if err != nil {
			return err
		}
		expected := p.Version
		p.Version++
		return s.Players.SaveWithVersion(txCtx, p, expected)
	})
	if err != nil {
		return Result{}, err
	}

	s.notify(ctx, playerID, res, sourceTag)
	return res, nil
}

func (s Service) notify(ctx context.Context, playerID int64, res Result, sourceTag string) {
	if s.Notifier == nil {
		return
	}
	nowFn := s.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	if res.LevelsGained > 0 {
		s.Notifier.Notify(ctx, ports.Event{
			PlayerID:   playerID,
			Type:       ports.EventLevelUp,
			OccurredAt: now,
			Payload:    map[string]any{"new_level": res.NewLevel, "source": sourceTag},
		})
	}
	for _, rank := range res.RankUps {
		s.Notifier.Notify(ctx, ports.Event{
			PlayerID:   playerID,
			Type:       ports.EventRankUp,
			OccurredAt: now,
			Payload:    map[string]any{"rank_id": rank.ID, "rank": rank.Name, "source": sourceTag},
		})
	}
}
