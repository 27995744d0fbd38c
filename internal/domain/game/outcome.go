package game

// Result classifies how a resolved attempt ended. Declines never reach
// outcome resolution; they are a separate surface (DeclineReason).
type Result string

const (
	ResultSuccess Result = "success"
	ResultEscaped Result = "escaped"
	ResultCaught  Result = "caught"
)

// DeclineReason explains a precondition failure. Declines are ordinary
// outcomes for the caller, not errors.
type DeclineReason string

const (
	DeclineJailed               DeclineReason = "jailed"
	DeclineNotJailed            DeclineReason = "not_jailed"
	DeclineCooldownActive       DeclineReason = "cooldown_active"
	DeclineUnderLevel           DeclineReason = "under_level"
	DeclineInsufficientResource DeclineReason = "insufficient_resource"
	DeclineSameLocation         DeclineReason = "same_location"
	DeclineSystemBusy           DeclineReason = "system_busy"
)

// Outcome is what a rule decided. It is a pure value; the engine applies it.
type Outcome struct {
	Result         Result
	CashDelta      int64
	RespectDelta   int64
	BulletsDelta   int64
	HealthDelta    int64
	ExperienceGain int64
	JailSeconds    int
	ClearJail      bool
	NewLocationID  int
	Message        string
}

// CooldownPolicy controls which results arm the per-kind cooldown timer.
// Crime historically cooled down only on success; that asymmetry is kept as
// explicit per-kind configuration rather than unified.
type CooldownPolicy int

const (
	CooldownOnSuccess CooldownPolicy = iota
	CooldownOnSuccessOrEscape
	CooldownAlways
)

func (p CooldownPolicy) Applies(r Result) bool {
	switch p {
	case CooldownOnSuccess:
		return r == ResultSuccess
	case CooldownOnSuccessOrEscape:
		return r == ResultSuccess || r == ResultEscaped
	case CooldownAlways:
		return true
	}
	return false
}
