package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/rs/zerolog/log"

	"omerta/internal/app/action"
	"omerta/internal/app/ledger"
	"omerta/internal/app/ports"
	"omerta/internal/app/status"
	"omerta/internal/domain/game"
)

type Handler struct {
	ActionUC action.UseCase
	StatusUC status.UseCase
	Ledger   ledger.Ledger
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	g := s.Group("/api/game")
	g.POST("/attempt", h.attempt)
	g.POST("/bank", h.bank)
	g.GET("/cooldown", h.cooldown)
	g.GET("/player/:id", h.player)

	s.GET("/ops/kpi", h.kpi)
}

type attemptRequest struct {
	PlayerID     int64  `json:"player_id"`
	Kind         string `json:"kind"`
	DefinitionID int    `json:"definition_id"`
}

type attemptResponse struct {
	Status          string     `json:"status"`
	DeclineReason   string     `json:"decline_reason,omitempty"`
	Result          string     `json:"result,omitempty"`
	Message         string     `json:"message,omitempty"`
	WaitSeconds     int        `json:"wait_seconds,omitempty"`
	CashDelta       int64      `json:"cash_delta,omitempty"`
	RespectDelta    int64      `json:"respect_delta,omitempty"`
	BulletsDelta    int64      `json:"bullets_delta,omitempty"`
	HealthDelta     int64      `json:"health_delta,omitempty"`
	ExperienceGain  int64      `json:"experience_gain,omitempty"`
	JailSeconds     int        `json:"jail_seconds,omitempty"`
	JailCleared     bool       `json:"jail_cleared,omitempty"`
	CooldownSeconds int        `json:"cooldown_seconds,omitempty"`
	LevelsGained    int        `json:"levels_gained,omitempty"`
	NewLevel        int        `json:"new_level,omitempty"`
	RankUps         []rankView `json:"rank_ups,omitempty"`

	Player *status.PlayerView `json:"player,omitempty"`
}

type rankView struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CashReward   int64  `json:"cash_reward"`
	BulletReward int64  `json:"bullet_reward"`
}

type cooldownResponse struct {
	PlayerID         int64  `json:"player_id"`
	Kind             string `json:"kind"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

func (h Handler) attempt(c context.Context, ctx *app.RequestContext) {
	var body attemptRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.PlayerID <= 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player_id", "player_id must be positive")
		return
	}
	if !game.IsValidKind(game.Kind(body.Kind)) {
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_kind", "unknown action kind")
		return
	}

	resp, err := h.ActionUC.Attempt(c, action.Request{
		PlayerID:     body.PlayerID,
		Kind:         game.Kind(body.Kind),
		DefinitionID: body.DefinitionID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, attemptView(resp))
}

func attemptView(resp action.Response) attemptResponse {
	out := attemptResponse{
		Message:     resp.Message,
		WaitSeconds: resp.WaitSeconds,
	}
	if resp.Declined {
		out.Status = "declined"
		out.DeclineReason = string(resp.DeclineReason)
		return out
	}

	out.Status = "resolved"
	out.Result = string(resp.Result)
	out.CashDelta = resp.CashDelta
	out.RespectDelta = resp.RespectDelta
	out.BulletsDelta = resp.BulletsDelta
	out.HealthDelta = resp.HealthDelta
	out.ExperienceGain = resp.ExperienceGain
	out.JailSeconds = resp.JailSeconds
	out.JailCleared = resp.JailCleared
	out.CooldownSeconds = resp.CooldownSeconds
	out.LevelsGained = resp.LevelsGained
	out.NewLevel = resp.NewLevel
	for _, r := range resp.RankUps {
		out.RankUps = append(out.RankUps, rankView{
			ID:           r.ID,
			Name:         r.Name,
			CashReward:   r.CashReward,
			BulletReward: r.BulletReward,
		})
	}
	pv := playerView(resp.Player)
	out.Player = &pv
	return out
}

func playerView(p game.Player) status.PlayerView {
	return status.PlayerView{
		PlayerID:   p.ID,
		Username:   p.Username,
		Level:      p.Level,
		Experience: p.Experience,
		Cash:       p.Cash,
		Bank:       p.Bank,
		Energy:     p.Energy,
		MaxEnergy:  p.MaxEnergy,
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Respect:    p.Respect,
		Bullets:    p.Bullets,
		RankID:     p.RankID,
		LocationID: p.LocationID,
	}
}

type bankRequest struct {
	PlayerID  int64  `json:"player_id"`
	Direction string `json:"direction"`
	Amount    int64  `json:"amount"`
}

type bankResponse struct {
	PlayerID int64 `json:"player_id"`
	Cash     int64 `json:"cash"`
	Bank     int64 `json:"bank"`
}

func (h Handler) bank(c context.Context, ctx *app.RequestContext) {
	var body bankRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.PlayerID <= 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player_id", "player_id must be positive")
		return
	}
	if body.Amount <= 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_amount", "amount must be positive")
		return
	}
	var from, to game.Field
	switch body.Direction {
	case "deposit":
		from, to = game.FieldCash, game.FieldBank
	case "withdraw":
		from, to = game.FieldBank, game.FieldCash
	default:
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_direction", "direction must be deposit or withdraw")
		return
	}

	if err := h.Ledger.Transfer(c, body.PlayerID, from, to, body.Amount); err != nil {
		var short *ledger.InsufficientFundsError
		if errors.As(err, &short) {
			writeErrorBody(ctx, consts.StatusUnprocessableEntity, "insufficient_funds",
				fmt.Sprintf("missing %d %s", short.Missing, short.Field))
			return
		}
		writeError(ctx, err)
		return
	}

	p, err := h.Ledger.Snapshot(c, body.PlayerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, bankResponse{PlayerID: p.ID, Cash: p.Cash, Bank: p.Bank})
}

func (h Handler) cooldown(c context.Context, ctx *app.RequestContext) {
	playerID, err := strconv.ParseInt(string(ctx.Query("player_id")), 10, 64)
	if err != nil || playerID <= 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player_id", "player_id must be positive")
		return
	}
	kind := game.Kind(ctx.Query("kind"))
	if !game.IsValidKind(kind) {
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_kind", "unknown action kind")
		return
	}

	remaining, err := h.StatusUC.Cooldown(c, playerID, kind)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, cooldownResponse{
		PlayerID:         playerID,
		Kind:             string(kind),
		RemainingSeconds: remaining,
	})
}

func (h Handler) player(c context.Context, ctx *app.RequestContext) {
	playerID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || playerID <= 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player_id", "player id must be positive")
		return
	}

	view, err := h.StatusUC.Resources(c, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, view)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, action.ErrUnknownKind), errors.Is(err, action.ErrUnknownDefinition):
		// Catalog misses are server misconfiguration, not gameplay; hide the
		// detail from the client and surface it to operators.
		log.Error().Err(err).Msg("catalog lookup failed")
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
