package gormrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"omerta/internal/adapter/repo/gorm/model"
	"omerta/internal/app/ports"
	"omerta/internal/domain/game"
)

type AttemptRepo struct {
	db *gorm.DB
}

func NewAttemptRepo(db *gorm.DB) AttemptRepo {
	return AttemptRepo{db: db}
}

func (r AttemptRepo) Append(ctx context.Context, rec ports.AttemptRecord) error {
	m := model.Attempt{
		ID:             rec.ID,
		PlayerID:       rec.PlayerID,
		Kind:           string(rec.Kind),
		DefinitionID:   int32(rec.DefinitionID),
		Result:         string(rec.Result),
		CashDelta:      rec.CashDelta,
		RespectDelta:   rec.RespectDelta,
		BulletsDelta:   rec.BulletsDelta,
		HealthDelta:    rec.HealthDelta,
		ExperienceGain: rec.ExperienceGain,
		JailSeconds:    int32(rec.JailSeconds),
		CreatedAt:      rec.CreatedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r AttemptRepo) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]ports.AttemptRecord, error) {
	var rows []model.Attempt
	query := getDBFromCtx(ctx, r.db).
		Where("player_id = ?", playerID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.AttemptRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, ports.AttemptRecord{
			ID:             m.ID,
			PlayerID:       m.PlayerID,
			Kind:           game.Kind(m.Kind),
			DefinitionID:   int(m.DefinitionID),
			Result:         game.Result(m.Result),
			CashDelta:      m.CashDelta,
			RespectDelta:   m.RespectDelta,
			BulletsDelta:   m.BulletsDelta,
			HealthDelta:    m.HealthDelta,
			ExperienceGain: m.ExperienceGain,
			JailSeconds:    int(m.JailSeconds),
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}
