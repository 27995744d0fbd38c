package game

import "time"

// Player is the mutable aggregate root. All resource mutation goes through
// Credit/Debit so the floor and clamp invariants hold everywhere.
type Player struct {
	ID         int64
	Username   string
	Level      int
	Experience int64
	Cash       int64
	Bank       int64
	Energy     int64
	MaxEnergy  int64
	Health     int64
	MaxHealth  int64
	Respect    int64
	Bullets    int64
	RankID     int
	LocationID int
	JailUntil  *time.Time
	Version    int64
	UpdatedAt  time.Time
}

// Registration defaults.
const (
	DefaultEnergy  = 100
	DefaultHealth  = 100
	DefaultCash    = 1000
	DefaultBullets = 50
)

func NewPlayer(id int64, username string, locationID int) Player {
	return Player{
		ID:         id,
		Username:   username,
		Level:      1,
		Cash:       DefaultCash,
		Energy:     DefaultEnergy,
		MaxEnergy:  DefaultEnergy,
		Health:     DefaultHealth,
		MaxHealth:  DefaultHealth,
		Bullets:    DefaultBullets,
		RankID:     1,
		LocationID: locationID,
		// Version 1 from birth: expectedVersion 0 is reserved for create.
		Version: 1,
	}
}

func (p Player) FieldValue(f Field) int64 {
	switch f {
	case FieldCash:
		return p.Cash
	case FieldBank:
		return p.Bank
	case FieldEnergy:
		return p.Energy
	case FieldHealth:
		return p.Health
	case FieldRespect:
		return p.Respect
	case FieldBullets:
		return p.Bullets
	case FieldExperience:
		return p.Experience
	}
	return 0
}

func (p *Player) setField(f Field, v int64) {
	switch f {
	case FieldCash:
		p.Cash = v
	case FieldBank:
		p.Bank = v
	case FieldEnergy:
		p.Energy = v
	case FieldHealth:
		p.Health = v
	case FieldRespect:
		p.Respect = v
	case FieldBullets:
		p.Bullets = v
	case FieldExperience:
		p.Experience = v
	}
}

func (p Player) fieldMax(f Field) (int64, bool) {
	switch f {
	case FieldEnergy:
		return p.MaxEnergy, true
	case FieldHealth:
		return p.MaxHealth, true
	}
	return 0, false
}

// Credit adds amount to the field, clamping capped fields to their maximum.
// Negative or zero amounts are no-ops. Returns the new value.
func (p *Player) Credit(f Field, amount int64) int64 {
	if amount <= 0 {
		return p.FieldValue(f)
	}
	v := p.FieldValue(f) + amount
	if max, ok := p.fieldMax(f); ok && v > max {
		v = max
	}
	p.setField(f, v)
	return v
}

// Debit subtracts amount from the field. Fails without mutating when the
// result would drop below the field's floor. Returns the new value and
// whether the debit applied.
func (p *Player) Debit(f Field, amount int64) (int64, bool) {
	if amount < 0 {
		return p.FieldValue(f), false
	}
	v := p.FieldValue(f) - amount
	if f.floored() && v < 0 {
		return p.FieldValue(f), false
	}
	p.setField(f, v)
	return v, true
}

// Damage reduces health without the debit floor failure: health bottoms out
// at zero instead of rejecting the hit.
func (p *Player) Damage(amount int64) int64 {
	if amount <= 0 {
		return p.Health
	}
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	return p.Health
}

// Jailed reports whether the player is locked up at the given instant.
func (p Player) Jailed(now time.Time) bool {
	return p.JailUntil != nil && p.JailUntil.After(now)
}

// JailRemainingSeconds rounds up so a freshly jailed player never sees zero.
func (p Player) JailRemainingSeconds(now time.Time) int {
	if !p.Jailed(now) {
		return 0
	}
	remaining := p.JailUntil.Sub(now)
	seconds := int((remaining + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// Jail sets jail_until relative to now. A second call while already jailed
// extends from the current release time, not from now.
func (p *Player) Jail(now time.Time, seconds int) {
	if seconds <= 0 {
		return
	}
	base := now
	if p.Jailed(now) {
		base = *p.JailUntil
	}
	until := base.Add(time.Duration(seconds) * time.Second)
	p.JailUntil = &until
}

func (p *Player) ReleaseFromJail() {
	p.JailUntil = nil
}

// RaiseMaxHealth lifts the health ceiling, topping current health up to the
// new maximum. Rank-up perk; never lowers the ceiling.
func (p *Player) RaiseMaxHealth(max int64) {
	if max <= p.MaxHealth {
		return
	}
	p.MaxHealth = max
	p.Health = max
}
