package action

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"omerta/internal/app/ports"
	"omerta/internal/app/progression"
	"omerta/internal/app/timers"
	"omerta/internal/domain/game"
	"omerta/internal/pkg/lock"
)

var (
	ErrUnknownKind       = errors.New("unknown action kind")
	ErrUnknownDefinition = errors.New("unknown action definition")
)

const (
	defaultLockTimeout     = 3 * time.Second
	defaultConflictRetries = 3
)

// UseCase orchestrates one attempt end to end: per-player lock, transaction,
// precondition chain, cost debit, outcome, mutation, audit row. An attempt
// either fully commits or fully rolls back.
type UseCase struct {
	TxManager       ports.TxManager
	Players         ports.PlayerRepository
	Timers          timers.Store
	Attempts        ports.AttemptRepository
	Catalog         ports.CatalogRepository
	Progress        progression.Service
	Locks           *lock.PlayerLock
	LockTimeout     time.Duration
	ConflictRetries int
	Metrics         ports.AttemptMetrics
	Notifier        ports.Notifier
	Roller          game.Roller
	Rules           map[game.Kind]game.Rule
	Now             func() time.Time
}

func (u UseCase) Attempt(ctx context.Context, req Request) (Response, error) {
	rule, ok := u.Rules[req.Kind]
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	def, err := u.Catalog.Definition(ctx, req.Kind, req.DefinitionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, fmt.Errorf("%w: %s/%d: %w", ErrUnknownDefinition, req.Kind, req.DefinitionID, err)
		}
		return Response{}, err
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	if u.Locks != nil {
		timeout := u.LockTimeout
		if timeout <= 0 {
			timeout = defaultLockTimeout
		}
		if err := u.Locks.Acquire(ctx, req.PlayerID, timeout); err != nil {
			if errors.Is(err, lock.ErrLockTimeout) {
				u.recordDecline(game.DeclineSystemBusy)
				return declined(game.DeclineSystemBusy, "try again in a moment", 0), nil
			}
			return Response{}, err
		}
		defer u.Locks.Release(req.PlayerID)
	}

	retries := u.ConflictRetries
	if retries <= 0 {
		retries = defaultConflictRetries
	}

	var resp Response
	for i := 0; ; i++ {
		resp, err = u.runOnce(ctx, rule, def, req.PlayerID, nowFn())
		if err == nil {
			break
		}
		if errors.Is(err, ports.ErrConflict) && i < retries {
			if u.Metrics != nil {
				u.Metrics.RecordConflict()
			}
			continue
		}
		if errors.Is(err, ports.ErrConflict) {
			u.recordDecline(game.DeclineSystemBusy)
			return declined(game.DeclineSystemBusy, "try again in a moment", 0), nil
		}
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		return Response{}, err
	}

	if resp.Declined {
		u.recordDecline(resp.DeclineReason)
		return resp, nil
	}
	if u.Metrics != nil {
		u.Metrics.RecordResult(resp.Result)
	}
	u.notify(ctx, req.PlayerID, resp)
	return resp, nil
}

// runOnce executes the whole attempt inside one transaction. Declines come
// back as values with no writes performed; ports.ErrConflict aborts the
// transaction and is retried by the caller.
func (u UseCase) runOnce(ctx context.Context, rule game.Rule, def game.ActionDefinition, playerID int64, now time.Time) (Response, error) {
	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := u.Players.GetByID(txCtx, playerID)
		if err != nil {
			return err
		}

		if decline, ok := u.checkPreconditions(txCtx, rule, def, p, now); !ok {
			out = decline
			return nil
		}

		cost := rule.Cost(def)
		if cost.Amount > 0 {
			if _, ok := p.Debit(cost.Field, cost.Amount); !ok {
				out = declined(game.DeclineInsufficientResource,
					fmt.Sprintf("not enough %s", cost.Field), 0)
				return nil
			}
		}

		outcome := rule.Evaluate(p, def, u.Roller, now)
		prog, err := u.applyOutcome(txCtx, &p, outcome, now)
		if err != nil {
			return err
		}

		expected := p.Version
		p.Version++
		if err := u.Players.SaveWithVersion(txCtx, p, expected); err != nil {
			return err
		}

		if err := u.Attempts.Append(txCtx, ports.AttemptRecord{
			ID:             uuid.NewString(),
			PlayerID:       p.ID,
			Kind:           def.Kind,
			DefinitionID:   def.ID,
			Result:         outcome.Result,
			CashDelta:      outcome.CashDelta,
			RespectDelta:   outcome.RespectDelta,
			BulletsDelta:   outcome.BulletsDelta,
			HealthDelta:    outcome.HealthDelta,
			ExperienceGain: outcome.ExperienceGain,
			JailSeconds:    outcome.JailSeconds,
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		// Timer backends may live outside the transaction (redis). Arm the
		// cooldown only after the versioned save, so an aborted iteration
		// leaves no timer behind for the retry to hit.
		if rule.Cooldown().Applies(outcome.Result) && def.CooldownSeconds > 0 {
			meta := map[string]string{"definition_id": strconv.Itoa(def.ID)}
			if _, err := u.Timers.SetTimer(txCtx, p.ID, string(def.Kind), def.CooldownSeconds, meta, now); err != nil {
				return err
			}
		}

		out = Response{
			Result:         outcome.Result,
			Message:        outcome.Message,
			CashDelta:      outcome.CashDelta,
			RespectDelta:   outcome.RespectDelta,
			BulletsDelta:   outcome.BulletsDelta,
			HealthDelta:    outcome.HealthDelta,
			ExperienceGain: outcome.ExperienceGain,
			JailSeconds:    outcome.JailSeconds,
			JailCleared:    outcome.ClearJail,
			LevelsGained:   prog.LevelsGained,
			NewLevel:       prog.NewLevel,
			RankUps:        prog.RankUps,
			Player:         p,
		}
		if rule.Cooldown().Applies(outcome.Result) {
			out.CooldownSeconds = def.CooldownSeconds
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

// checkPreconditions runs the shared gate chain in its fixed order: jail,
// cooldown, level, kind-specific extras. First failure short-circuits.
func (u UseCase) checkPreconditions(ctx context.Context, rule game.Rule, def game.ActionDefinition, p game.Player, now time.Time) (Response, bool) {
	if p.Jailed(now) && !rule.AllowedWhileJailed() {
		return declined(game.DeclineJailed, "you are in jail", p.JailRemainingSeconds(now)), false
	}

	remaining, err := u.Timers.RemainingSeconds(ctx, p.ID, string(def.Kind), now)
	if err != nil {
		// Surfacing a read failure as busy keeps the chain total; the
		// transaction has written nothing yet.
		return declined(game.DeclineSystemBusy, "try again in a moment", 0), false
	}
	if remaining > 0 {
		return declined(game.DeclineCooldownActive, "you need to lay low", remaining), false
	}

	if p.Level < def.RequiredLevel {
		return declined(game.DeclineUnderLevel,
			fmt.Sprintf("requires level %d", def.RequiredLevel), 0), false
	}

	if reason := rule.Precheck(p, def, now); reason != "" {
		return declined(reason, "you can't do that right now", 0), false
	}

	return Response{}, true
}

func (u UseCase) applyOutcome(ctx context.Context, p *game.Player, outcome game.Outcome, now time.Time) (progression.Result, error) {
	p.Credit(game.FieldCash, outcome.CashDelta)
	p.Credit(game.FieldRespect, outcome.RespectDelta)
	p.Credit(game.FieldBullets, outcome.BulletsDelta)
	p.Credit(game.FieldHealth, outcome.HealthDelta)

	prog, err := u.Progress.Apply(ctx, p, outcome.ExperienceGain)
	if err != nil {
		return progression.Result{}, err
	}

	if outcome.ClearJail {
		p.ReleaseFromJail()
	}
	if outcome.JailSeconds > 0 {
		p.Jail(now, outcome.JailSeconds)
	}
	if outcome.NewLocationID != 0 {
		p.LocationID = outcome.NewLocationID
	}
	return prog, nil
}

func (u UseCase) recordDecline(reason game.DeclineReason) {
	if u.Metrics != nil {
		u.Metrics.RecordDecline(reason)
	}
}

func (u UseCase) notify(ctx context.Context, playerID int64, resp Response) {
	if u.Notifier == nil {
		return
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	switch resp.Result {
	case game.ResultCaught:
		u.Notifier.Notify(ctx, ports.Event{
			PlayerID:   playerID,
			Type:       ports.EventJailed,
			OccurredAt: now,
			Payload:    map[string]any{"jail_seconds": resp.JailSeconds},
		})
	case game.ResultSuccess:
		if resp.JailCleared {
			u.Notifier.Notify(ctx, ports.Event{
				PlayerID:   playerID,
				Type:       ports.EventFreed,
				OccurredAt: now,
			})
		}
	}
	if resp.LevelsGained > 0 {
		u.Notifier.Notify(ctx, ports.Event{
			PlayerID:   playerID,
			Type:       ports.EventLevelUp,
			OccurredAt: now,
			Payload:    map[string]any{"new_level": resp.NewLevel},
		})
	}
	for _, rank := range resp.RankUps {
		u.Notifier.Notify(ctx, ports.Event{
			PlayerID:   playerID,
			Type:       ports.EventRankUp,
			OccurredAt: now,
			Payload:    map[string]any{"rank_id": rank.ID, "rank": rank.Name},
		})
	}
}
