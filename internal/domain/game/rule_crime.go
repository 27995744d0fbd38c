package game

import "time"

// CrimeRule: roll against the definition's success rate; on success the cash
// reward is uniform in [MinCash, MaxCash] and a short cooldown is set. On a
// miss a 1-in-3 catch roll sends the player to jail for ID*15 seconds; a
// clean escape costs nothing further and sets no cooldown.
type CrimeRule struct{}

func (CrimeRule) Kind() Kind               { return KindCrime }
func (CrimeRule) AllowedWhileJailed() bool { return false }
func (CrimeRule) Cooldown() CooldownPolicy { return CooldownOnSuccess }

func (CrimeRule) Cost(def ActionDefinition) Cost {
	return Cost{Field: FieldEnergy, Amount: def.EnergyCost}
}

func (CrimeRule) Precheck(Player, ActionDefinition, time.Time) DeclineReason { return "" }

func (CrimeRule) Evaluate(_ Player, def ActionDefinition, roll Roller, _ time.Time) Outcome {
	if rollSucceeds(roll, def.SuccessRate) {
		cash := def.MinCash
		if def.MaxCash > def.MinCash {
			cash = int64(roll.Roll(int(def.MinCash), int(def.MaxCash)))
		}
		return Outcome{
			Result:         ResultSuccess,
			CashDelta:      cash,
			RespectDelta:   def.RespectGain,
			ExperienceGain: def.ExperienceGain,
			Message:        "you pulled it off",
		}
	}
	if caughtByCatchRoll(roll) {
		return Outcome{
			Result:      ResultCaught,
			JailSeconds: def.ID * CrimeJailFactor,
			Message:     "the cops were waiting for you",
		}
	}
	return Outcome{
		Result:  ResultEscaped,
		Message: "you failed but slipped away",
	}
}
