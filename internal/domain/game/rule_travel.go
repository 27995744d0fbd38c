package game

import "time"

// TravelRule: pay for the ticket, move city, ride out the travel timer.
// Declined when the destination is where the player already is.
type TravelRule struct{}

func (TravelRule) Kind() Kind               { return KindTravel }
func (TravelRule) AllowedWhileJailed() bool { return false }
func (TravelRule) Cooldown() CooldownPolicy { return CooldownAlways }

func (TravelRule) Cost(def ActionDefinition) Cost {
	return Cost{Field: FieldCash, Amount: def.CashCost}
}

func (TravelRule) Precheck(p Player, def ActionDefinition, _ time.Time) DeclineReason {
	if def.DestinationID == p.LocationID {
		return DeclineSameLocation
	}
	return ""
}

func (TravelRule) Evaluate(_ Player, def ActionDefinition, _ Roller, _ time.Time) Outcome {
	return Outcome{
		Result:        ResultSuccess,
		NewLocationID: def.DestinationID,
		Message:       "you are on your way",
	}
}
