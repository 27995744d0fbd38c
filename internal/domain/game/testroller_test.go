package game

// scriptRoller replays a fixed sequence of draws, then repeats the last one.
type scriptRoller struct {
	draws []int
	i     int
}

func (r *scriptRoller) Roll(min, max int) int {
	if len(r.draws) == 0 {
		return min
	}
	v := r.draws[r.i]
	if r.i < len(r.draws)-1 {
		r.i++
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}
