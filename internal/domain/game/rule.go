package game

import "time"

// Cost is the resource debited before an attempt resolves.
type Cost struct {
	Field  Field
	Amount int64
}

// Rule is the pure per-kind evaluator. Rules never mutate state; the engine
// owns the transaction, the cost debit, and the application of the Outcome.
type Rule interface {
	Kind() Kind

	// AllowedWhileJailed exempts the kind from the not-jailed gate.
	AllowedWhileJailed() bool

	// Cooldown names which results arm the kind's cooldown timer.
	Cooldown() CooldownPolicy

	// Cost reads the attempt's price from the definition.
	Cost(def ActionDefinition) Cost

	// Precheck runs kind-specific gates after the shared chain (jail,
	// cooldown, level, cost). Returns a decline reason or empty string.
	Precheck(p Player, def ActionDefinition, now time.Time) DeclineReason

	// Evaluate resolves the outcome. The player passed in has already paid
	// the cost.
	Evaluate(p Player, def ActionDefinition, roll Roller, now time.Time) Outcome
}

// catchRollSides is the secondary 1-in-3 jail check shared by the risky
// kinds. Independent of the primary roll's margin.
const catchRollSides = 3

func caughtByCatchRoll(roll Roller) bool {
	return roll.Roll(1, catchRollSides) == 1
}

// rollSucceeds draws 1..100 inclusive and compares with <=, so a rate of 100
// always succeeds and 0 never does.
func rollSucceeds(roll Roller, successRate int) bool {
	return roll.Roll(1, 100) <= successRate
}
