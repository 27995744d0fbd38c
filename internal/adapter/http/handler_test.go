package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"omerta/internal/app/action"
	"omerta/internal/app/ledger"
	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type passTxManager struct{}

func (passTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mapPlayerRepo struct {
	byID map[int64]game.Player
}

func (r *mapPlayerRepo) GetByID(_ context.Context, playerID int64) (game.Player, error) {
	p, ok := r.byID[playerID]
	if !ok {
		return game.Player{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *mapPlayerRepo) SaveWithVersion(_ context.Context, p game.Player, expectedVersion int64) error {
	current, ok := r.byID[p.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byID[p.ID] = p
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *mapPlayerRepo) CountAtRank(_ context.Context, rankID int) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.RankID == rankID {
			n++
		}
	}
	return n, nil
}

func bankHandler(players ...game.Player) Handler {
	repo := &mapPlayerRepo{byID: map[int64]game.Player{}}
	for _, p := range players {
		repo.byID[p.ID] = p
	}
	return Handler{Ledger: ledger.Ledger{TxManager: passTxManager{}, Players: repo}}
}

func TestWriteError_CatalogMissIsServerError(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("%w: %q", action.ErrUnknownKind, "arson"),
		fmt.Errorf("%w: crime/99", action.ErrUnknownDefinition),
	} {
		ctx := &app.RequestContext{}
		writeError(ctx, err)

		if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
			t.Fatalf("status mismatch for %v: got=%d want=%d", err, got, want)
		}
		var body map[string]map[string]string
		if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got, want := body["error"]["code"], "internal_error"; got != want {
			t.Fatalf("error code mismatch: got=%q want=%q", got, want)
		}
		// The misconfigured id never leaks to the client.
		if got := body["error"]["message"]; got != "internal error" {
			t.Fatalf("message leaked: %q", got)
		}
	}
}

func TestWriteError_NotFoundAndConflict(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrNotFound)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	ctx = &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)
	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, fmt.Errorf("pq: connection refused at 10.0.0.4"))

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["message"], "internal error"; got != want {
		t.Fatalf("message leaked: %q", got)
	}
}

func TestAttemptView_Declined(t *testing.T) {
	out := attemptView(action.Response{
		Declined:      true,
		DeclineReason: game.DeclineCooldownActive,
		Message:       "you need to lay low",
		WaitSeconds:   42,
	})
	if out.Status != "declined" {
		t.Fatalf("status = %q, want declined", out.Status)
	}
	if out.DeclineReason != string(game.DeclineCooldownActive) {
		t.Fatalf("decline reason = %q", out.DeclineReason)
	}
	if out.WaitSeconds != 42 {
		t.Fatalf("wait seconds = %d, want 42", out.WaitSeconds)
	}
	if out.Player != nil {
		t.Fatal("declined response carries a player snapshot")
	}
}

func TestAttemptView_Resolved(t *testing.T) {
	p := game.NewPlayer(1, "vito", 1)
	out := attemptView(action.Response{
		Result:          game.ResultSuccess,
		Message:         "you pulled it off",
		CashDelta:       150,
		ExperienceGain:  25,
		CooldownSeconds: 60,
		LevelsGained:    1,
		NewLevel:        2,
		RankUps:         []game.Rank{{ID: 2, Name: "Soldier", CashReward: 5000}},
		Player:          p,
	})
	if out.Status != "resolved" {
		t.Fatalf("status = %q, want resolved", out.Status)
	}
	if out.Result != string(game.ResultSuccess) || out.CashDelta != 150 {
		t.Fatalf("view = %+v", out)
	}
	if len(out.RankUps) != 1 || out.RankUps[0].Name != "Soldier" {
		t.Fatalf("rank ups = %+v", out.RankUps)
	}
	if out.Player == nil || out.Player.PlayerID != 1 {
		t.Fatalf("player view = %+v", out.Player)
	}
}

func TestAttempt_InvalidBody(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": "not a number"}`))

	h.attempt(nil, ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestAttempt_RejectsUnknownKindBeforeUseCase(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": 1, "kind": "arson", "definition_id": 1}`))

	h.attempt(nil, ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "unknown_kind"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestBank_DepositAndWithdraw(t *testing.T) {
	h := bankHandler(game.NewPlayer(1, "vito", 1))

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": 1, "direction": "deposit", "amount": 600}`))
	h.bank(nil, ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var out bankResponse
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.Cash != game.DefaultCash-600 || out.Bank != 600 {
		t.Fatalf("balances = %+v", out)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": 1, "direction": "withdraw", "amount": 100}`))
	h.bank(nil, ctx)

	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.Cash != game.DefaultCash-500 || out.Bank != 500 {
		t.Fatalf("balances = %+v", out)
	}
}

func TestBank_InsufficientFunds(t *testing.T) {
	h := bankHandler(game.NewPlayer(1, "vito", 1))

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": 1, "direction": "withdraw", "amount": 50}`))
	h.bank(nil, ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusUnprocessableEntity; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "insufficient_funds"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestBank_RejectsBadDirectionAndAmount(t *testing.T) {
	h := bankHandler(game.NewPlayer(1, "vito", 1))

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": 1, "direction": "burn", "amount": 10}`))
	h.bank(nil, ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"player_id": 1, "direction": "deposit", "amount": 0}`))
	h.bank(nil, ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	h.kpi(nil, ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}
