package game

// Field names a numeric resource on the player aggregate.
type Field string

const (
	FieldCash       Field = "cash"
	FieldBank       Field = "bank"
	FieldEnergy     Field = "energy"
	FieldHealth     Field = "health"
	FieldRespect    Field = "respect"
	FieldBullets    Field = "bullets"
	FieldExperience Field = "experience"
)

// floored reports whether the field has a hard floor at zero. Respect is
// allowed to go negative; the UI floors it at render time.
func (f Field) floored() bool {
	switch f {
	case FieldCash, FieldBank, FieldEnergy, FieldHealth, FieldBullets, FieldExperience:
		return true
	}
	return false
}

// capped reports whether the field clamps against a per-player maximum.
func (f Field) capped() bool {
	return f == FieldEnergy || f == FieldHealth
}

func IsValidField(f Field) bool {
	switch f {
	case FieldCash, FieldBank, FieldEnergy, FieldHealth, FieldRespect, FieldBullets, FieldExperience:
		return true
	}
	return false
}
