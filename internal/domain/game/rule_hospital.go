package game

import "time"

// HospitalRule: pay cash, get patched up. Health credit clamps to the
// player's maximum; paying for treatment at full health is the player's
// mistake, not a decline.
type HospitalRule struct{}

func (HospitalRule) Kind() Kind               { return KindHospital }
func (HospitalRule) AllowedWhileJailed() bool { return false }
func (HospitalRule) Cooldown() CooldownPolicy { return CooldownAlways }

func (HospitalRule) Cost(def ActionDefinition) Cost {
	return Cost{Field: FieldCash, Amount: def.CashCost}
}

func (HospitalRule) Precheck(Player, ActionDefinition, time.Time) DeclineReason { return "" }

func (HospitalRule) Evaluate(_ Player, def ActionDefinition, _ Roller, _ time.Time) Outcome {
	return Outcome{
		Result:      ResultSuccess,
		HealthDelta: def.HealthGain,
		Message:     "patched up",
	}
}
