// Package model holds the gorm row types. Schema lives in migrations/;
// these structs mirror it.
package model

import "time"

type Player struct {
	ID         int64      `gorm:"column:id;primaryKey"`
	Username   string     `gorm:"column:username"`
	Level      int32      `gorm:"column:level"`
	Experience int64      `gorm:"column:experience"`
	Cash       int64      `gorm:"column:cash"`
	Bank       int64      `gorm:"column:bank"`
	Energy     int64      `gorm:"column:energy"`
	MaxEnergy  int64      `gorm:"column:max_energy"`
	Health     int64      `gorm:"column:health"`
	MaxHealth  int64      `gorm:"column:max_health"`
	Respect    int64      `gorm:"column:respect"`
	Bullets    int64      `gorm:"column:bullets"`
	RankID     int32      `gorm:"column:rank_id"`
	LocationID int32      `gorm:"column:location_id"`
	JailUntil  *time.Time `gorm:"column:jail_until"`
	Version    int64      `gorm:"column:version"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (Player) TableName() string { return "players" }

type Timer struct {
	PlayerID  int64     `gorm:"column:player_id;primaryKey"`
	Name      string    `gorm:"column:timer_name;primaryKey"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	Duration  int32     `gorm:"column:duration"`
	Metadata  []byte    `gorm:"column:metadata"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Timer) TableName() string { return "timers" }

type Attempt struct {
	ID             string    `gorm:"column:id;primaryKey"`
	PlayerID       int64     `gorm:"column:player_id"`
	Kind           string    `gorm:"column:kind"`
	DefinitionID   int32     `gorm:"column:definition_id"`
	Result         string    `gorm:"column:result"`
	CashDelta      int64     `gorm:"column:cash_delta"`
	RespectDelta   int64     `gorm:"column:respect_delta"`
	BulletsDelta   int64     `gorm:"column:bullets_delta"`
	HealthDelta    int64     `gorm:"column:health_delta"`
	ExperienceGain int64     `gorm:"column:experience_gain"`
	JailSeconds    int32     `gorm:"column:jail_seconds"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (Attempt) TableName() string { return "attempts" }

type Rank struct {
	ID           int32  `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name"`
	RequiredExp  int64  `gorm:"column:required_exp"`
	UserLimit    int32  `gorm:"column:user_limit"`
	CashReward   int64  `gorm:"column:cash_reward"`
	BulletReward int64  `gorm:"column:bullet_reward"`
	MaxHealth    int64  `gorm:"column:max_health"`
}

func (Rank) TableName() string { return "ranks" }

type ActionDefinition struct {
	ID              int32  `gorm:"column:id;primaryKey"`
	Kind            string `gorm:"column:kind;primaryKey"`
	Name            string `gorm:"column:name"`
	RequiredLevel   int32  `gorm:"column:required_level"`
	EnergyCost      int64  `gorm:"column:energy_cost"`
	CashCost        int64  `gorm:"column:cash_cost"`
	BulletCost      int64  `gorm:"column:bullet_cost"`
	CooldownSeconds int32  `gorm:"column:cooldown_seconds"`
	SuccessRate     int32  `gorm:"column:success_rate"`
	MinCash         int64  `gorm:"column:min_cash"`
	MaxCash         int64  `gorm:"column:max_cash"`
	ExperienceGain  int64  `gorm:"column:experience_gain"`
	RespectGain     int64  `gorm:"column:respect_gain"`
	HealthGain      int64  `gorm:"column:health_gain"`
	MaxBulletBonus  int64  `gorm:"column:max_bullet_bonus"`
	DestinationID   int32  `gorm:"column:destination_id"`
}

func (ActionDefinition) TableName() string { return "action_definitions" }
