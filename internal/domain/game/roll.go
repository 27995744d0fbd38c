package game

import (
	"math/rand"
	"sync"
	"time"
)

// Roller draws uniform integers over inclusive bounds. Injected so outcome
// tests can pin every draw.
type Roller interface {
	Roll(min, max int) int
}

type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a rand-backed Roller. Seed zero seeds from the clock.
func NewRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Roll(min, max int) int {
	if max <= min {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Intn(max-min+1)
}
