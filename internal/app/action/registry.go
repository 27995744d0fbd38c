package action

import "omerta/internal/domain/game"

// DefaultRules wires every supported kind to its evaluator. Each kind keeps
// its own numeric policy; the engine owns the shared transaction skeleton.
func DefaultRules() map[game.Kind]game.Rule {
	return map[game.Kind]game.Rule{
		game.KindCrime:     game.CrimeRule{},
		game.KindTheft:     game.TheftRule{},
		game.KindGym:       game.GymRule{},
		game.KindHospital:  game.HospitalRule{},
		game.KindTravel:    game.TravelRule{},
		game.KindJailbreak: game.JailbreakRule{},
	}
}
