package game

import "time"

// TheftRule: the vehicle-theft variant of the crime skeleton. Unlike crime,
// a failed-but-escaped theft still arms the cooldown, sentences scale at
// ID*30 seconds, and success rolls a bullets bonus on top of the cash take.
type TheftRule struct{}

func (TheftRule) Kind() Kind               { return KindTheft }
func (TheftRule) AllowedWhileJailed() bool { return false }
func (TheftRule) Cooldown() CooldownPolicy { return CooldownOnSuccessOrEscape }

func (TheftRule) Cost(def ActionDefinition) Cost {
	return Cost{Field: FieldEnergy, Amount: def.EnergyCost}
}

func (TheftRule) Precheck(Player, ActionDefinition, time.Time) DeclineReason { return "" }

func (TheftRule) Evaluate(_ Player, def ActionDefinition, roll Roller, _ time.Time) Outcome {
	if rollSucceeds(roll, def.SuccessRate) {
		cash := def.MinCash
		if def.MaxCash > def.MinCash {
			cash = int64(roll.Roll(int(def.MinCash), int(def.MaxCash)))
		}
		var bullets int64
		if def.MaxBulletBonus > 0 {
			bullets = int64(roll.Roll(0, int(def.MaxBulletBonus)))
		}
		return Outcome{
			Result:         ResultSuccess,
			CashDelta:      cash,
			BulletsDelta:   bullets,
			RespectDelta:   def.RespectGain,
			ExperienceGain: def.ExperienceGain,
			Message:        "the car is yours",
		}
	}
	if caughtByCatchRoll(roll) {
		return Outcome{
			Result:      ResultCaught,
			JailSeconds: def.ID * TheftJailFactor,
			Message:     "caught with your hand on the wheel",
		}
	}
	return Outcome{
		Result:  ResultEscaped,
		Message: "the alarm went off, you bolted",
	}
}
