package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"omerta/internal/adapter/repo/gorm/model"
	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type TimerRepo struct {
	db *gorm.DB
}

func NewTimerRepo(db *gorm.DB) TimerRepo {
	return TimerRepo{db: db}
}

func (r TimerRepo) Get(ctx context.Context, playerID int64, name string) (game.Timer, error) {
	var m model.Timer
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ? AND timer_name = ?", playerID, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.Timer{}, ports.ErrNotFound
		}
		return game.Timer{}, err
	}
	return timerFromModel(m), nil
}

// Upsert leans on the (player_id, timer_name) primary key: conflicting
// writes replace the row, last writer wins.
func (r TimerRepo) Upsert(ctx context.Context, t game.Timer) error {
	var meta []byte
	if len(t.Metadata) > 0 {
		meta, _ = json.Marshal(t.Metadata)
	}
	m := model.Timer{
		PlayerID:  t.PlayerID,
		Name:      t.Name,
		ExpiresAt: t.ExpiresAt,
		Duration:  int32(t.Duration),
		Metadata:  meta,
		CreatedAt: t.CreatedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "timer_name"}},
		UpdateAll: true,
	}).Create(&m).Error
}

func (r TimerRepo) Delete(ctx context.Context, playerID int64, name string) error {
	return getDBFromCtx(ctx, r.db).
		Where("player_id = ? AND timer_name = ?", playerID, name).
		Delete(&model.Timer{}).Error
}

func (r TimerRepo) ListByPlayer(ctx context.Context, playerID int64) ([]game.Timer, error) {
	var rows []model.Timer
	err := getDBFromCtx(ctx, r.db).
		Where("player_id = ?", playerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]game.Timer, 0, len(rows))
	for _, m := range rows {
		out = append(out, timerFromModel(m))
	}
	return out, nil
}

func (r TimerRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := getDBFromCtx(ctx, r.db).
		Where("expires_at <= ?", cutoff).
		Delete(&model.Timer{})
	return res.RowsAffected, res.Error
}

func timerFromModel(m model.Timer) game.Timer {
	var meta map[string]string
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &meta)
	}
	return game.Timer{
		PlayerID:  m.PlayerID,
		Name:      m.Name,
		ExpiresAt: m.ExpiresAt,
		Duration:  int(m.Duration),
		Metadata:  meta,
		CreatedAt: m.CreatedAt,
	}
}
