package game

import "time"

// GymRule: deterministic training. Always succeeds, always cools down.
type GymRule struct{}

func (GymRule) Kind() Kind               { return KindGym }
func (GymRule) AllowedWhileJailed() bool { return false }
func (GymRule) Cooldown() CooldownPolicy { return CooldownAlways }

func (GymRule) Cost(def ActionDefinition) Cost {
	return Cost{Field: FieldEnergy, Amount: def.EnergyCost}
}

func (GymRule) Precheck(Player, ActionDefinition, time.Time) DeclineReason { return "" }

func (GymRule) Evaluate(_ Player, def ActionDefinition, _ Roller, _ time.Time) Outcome {
	return Outcome{
		Result:         ResultSuccess,
		ExperienceGain: def.ExperienceGain,
		RespectDelta:   def.RespectGain,
		Message:        "good session",
	}
}
