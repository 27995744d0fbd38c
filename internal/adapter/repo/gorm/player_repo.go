package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"omerta/internal/adapter/repo/gorm/model"
	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type PlayerRepo struct {
	db *gorm.DB
}

func NewPlayerRepo(db *gorm.DB) PlayerRepo {
	return PlayerRepo{db: db}
}

func (r PlayerRepo) GetByID(ctx context.Context, playerID int64) (game.Player, error) {
	var m model.Player
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.Player{}, ports.ErrNotFound
		}
		return game.Player{}, err
	}
	return playerFromModel(m), nil
}

func (r PlayerRepo) SaveWithVersion(ctx context.Context, p game.Player, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := playerToModel(p)
		m.UpdatedAt = time.Now()
		return db.Create(&m).Error
	}

	updates := map[string]any{
		"level":       int32(p.Level),
		"experience":  p.Experience,
		"cash":        p.Cash,
		"bank":        p.Bank,
		"energy":      p.Energy,
		"max_energy":  p.MaxEnergy,
		"health":      p.Health,
		"max_health":  p.MaxHealth,
		"respect":     p.Respect,
		"bullets":     p.Bullets,
		"rank_id":     int32(p.RankID),
		"location_id": int32(p.LocationID),
		"jail_until":  p.JailUntil,
		"version":     p.Version,
		"updated_at":  time.Now(),
	}

	res := db.Model(&model.Player{}).
		Where("id = ? AND version = ?", p.ID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r PlayerRepo) CountAtRank(ctx context.Context, rankID int) (int64, error) {
	var n int64
	err := getDBFromCtx(ctx, r.db).Model(&model.Player{}).
		Where("rank_id = ?", int32(rankID)).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func playerFromModel(m model.Player) game.Player {
	return game.Player{
		ID:         m.ID,
		Username:   m.Username,
		Level:      int(m.Level),
		Experience: m.Experience,
		Cash:       m.Cash,
		Bank:       m.Bank,
		Energy:     m.Energy,
		MaxEnergy:  m.MaxEnergy,
		Health:     m.Health,
		MaxHealth:  m.MaxHealth,
		Respect:    m.Respect,
		Bullets:    m.Bullets,
		RankID:     int(m.RankID),
		LocationID: int(m.LocationID),
		JailUntil:  m.JailUntil,
		Version:    m.Version,
		UpdatedAt:  m.UpdatedAt,
	}
}

func playerToModel(p game.Player) model.Player {
	return model.Player{
		ID:         p.ID,
		Username:   p.Username,
		Level:      int32(p.Level),
		Experience: p.Experience,
		Cash:       p.Cash,
		Bank:       p.Bank,
		Energy:     p.Energy,
		MaxEnergy:  p.MaxEnergy,
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Respect:    p.Respect,
		Bullets:    p.Bullets,
		RankID:     int32(p.RankID),
		LocationID: int32(p.LocationID),
		JailUntil:  p.JailUntil,
		Version:    p.Version,
	}
}
