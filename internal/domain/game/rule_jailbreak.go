package game

import "time"

// JailbreakRule: the only kind usable while jailed; in fact it requires it.
// Bullets buy the attempt. Success walks free, getting caught extends the
// sentence by ID*20 seconds, a failed break leaves it unchanged. Always
// cools down so the cell door cannot be hammered.
type JailbreakRule struct{}

func (JailbreakRule) Kind() Kind               { return KindJailbreak }
func (JailbreakRule) AllowedWhileJailed() bool { return true }
func (JailbreakRule) Cooldown() CooldownPolicy { return CooldownAlways }

func (JailbreakRule) Cost(def ActionDefinition) Cost {
	return Cost{Field: FieldBullets, Amount: def.BulletCost}
}

func (JailbreakRule) Precheck(p Player, _ ActionDefinition, now time.Time) DeclineReason {
	if !p.Jailed(now) {
		return DeclineNotJailed
	}
	return ""
}

func (JailbreakRule) Evaluate(_ Player, def ActionDefinition, roll Roller, _ time.Time) Outcome {
	if rollSucceeds(roll, def.SuccessRate) {
		return Outcome{
			Result:         ResultSuccess,
			ClearJail:      true,
			ExperienceGain: def.ExperienceGain,
			RespectDelta:   def.RespectGain,
			Message:        "you are out",
		}
	}
	if caughtByCatchRoll(roll) {
		return Outcome{
			Result:      ResultCaught,
			JailSeconds: def.ID * JailbreakJailFactor,
			Message:     "the guards caught you at the fence",
		}
	}
	return Outcome{
		Result:  ResultEscaped,
		Message: "back to the cell before anyone noticed",
	}
}
