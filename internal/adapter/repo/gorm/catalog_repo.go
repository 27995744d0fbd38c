package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"omerta/internal/adapter/repo/gorm/model"
	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return CatalogRepo{db: db}
}

func (r CatalogRepo) Definition(ctx context.Context, kind game.Kind, definitionID int) (game.ActionDefinition, error) {
	var m model.ActionDefinition
	err := getDBFromCtx(ctx, r.db).
		Where("kind = ? AND id = ?", string(kind), int32(definitionID)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.ActionDefinition{}, ports.ErrNotFound
		}
		return game.ActionDefinition{}, err
	}
	return game.ActionDefinition{
		ID:              int(m.ID),
		Kind:            game.Kind(m.Kind),
		Name:            m.Name,
		RequiredLevel:   int(m.RequiredLevel),
		EnergyCost:      m.EnergyCost,
		CashCost:        m.CashCost,
		BulletCost:      m.BulletCost,
		CooldownSeconds: int(m.CooldownSeconds),
		SuccessRate:     int(m.SuccessRate),
		MinCash:         m.MinCash,
		MaxCash:         m.MaxCash,
		ExperienceGain:  m.ExperienceGain,
		RespectGain:     m.RespectGain,
		HealthGain:      m.HealthGain,
		MaxBulletBonus:  m.MaxBulletBonus,
		DestinationID:   int(m.DestinationID),
	}, nil
}

func (r CatalogRepo) Ranks(ctx context.Context) ([]game.Rank, error) {
	var rows []model.Rank
	if err := getDBFromCtx(ctx, r.db).Order("required_exp ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]game.Rank, 0, len(rows))
	for _, m := range rows {
		out = append(out, game.Rank{
			ID:           int(m.ID),
			Name:         m.Name,
			RequiredExp:  m.RequiredExp,
			UserLimit:    int(m.UserLimit),
			CashReward:   m.CashReward,
			BulletReward: m.BulletReward,
			MaxHealth:    m.MaxHealth,
		})
	}
	return out, nil
}
