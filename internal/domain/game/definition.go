package game

// Kind is a category of repeatable player activity.
type Kind string

const (
	KindCrime     Kind = "crime"
	KindTheft     Kind = "theft"
	KindGym       Kind = "gym"
	KindHospital  Kind = "hospital"
	KindTravel    Kind = "travel"
	KindJailbreak Kind = "jailbreak"
)

func IsValidKind(k Kind) bool {
	switch k {
	case KindCrime, KindTheft, KindGym, KindHospital, KindTravel, KindJailbreak:
		return true
	}
	return false
}

// ActionDefinition is one catalog row for a kind: a specific crime, gym
// routine, treatment, destination, or escape plan. Read-only at request time.
type ActionDefinition struct {
	ID              int
	Kind            Kind
	Name            string
	RequiredLevel   int
	EnergyCost      int64
	CashCost        int64
	BulletCost      int64
	CooldownSeconds int
	SuccessRate     int
	MinCash         int64
	MaxCash         int64
	ExperienceGain  int64
	RespectGain     int64
	HealthGain      int64
	MaxBulletBonus  int64
	DestinationID   int
}

// Jail scaling constants per kind, in seconds per definition id. Bigger jobs
// carry longer sentences.
const (
	CrimeJailFactor     = 15
	TheftJailFactor     = 30
	JailbreakJailFactor = 20
)
