package game

import "sort"

// Rank is a read-only progression tier. UserLimit caps how many players may
// hold the rank at once; zero means unlimited.
type Rank struct {
	ID           int
	Name         string
	RequiredExp  int64
	UserLimit    int
	CashReward   int64
	BulletReward int64
	MaxHealth    int64
}

// SortRanks orders the catalog by required experience, which is also the
// promotion order. Rank catalogs are small; sorting defensively on load is
// cheaper than trusting insert order.
func SortRanks(ranks []Rank) []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	sort.Slice(out, func(i, j int) bool { return out[i].RequiredExp < out[j].RequiredExp })
	return out
}

// Level thresholds follow a quadratic curve: total experience needed for
// level L is 100*(L-1)^2, so level 2 at 100 exp, level 3 at 400, and so on.
const maxLevel = 200

func ExperienceForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return 100 * n * n
}

func LevelForExperience(exp int64) int {
	if exp <= 0 {
		return 1
	}
	level := 1
	for level < maxLevel && exp >= ExperienceForLevel(level+1) {
		level++
	}
	return level
}
