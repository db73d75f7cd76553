// Package matching derives the weekly mate-call pairings. Everything here
// is deterministic: the same seed always produces the same assignment, so
// any client can re-derive the current week's matching from the calendar
// alone.
package matching

import "math"

// lcg is the tiny linear congruential generator behind the seeded
// shuffle. The constants are the classic 9301/49297/233280 set; outputs
// are uniform in [0, 1).
type lcg struct {
	state int
}

func (g *lcg) next() float64 {
	g.state = (g.state*9301 + 49297) % 233280
	return float64(g.state) / 233280
}

// Shuffle returns a seeded Fisher-Yates permutation of items. The input
// is never mutated; the same seed always yields the same permutation.
func Shuffle(items []int, seed int) []int {
	result := make([]int, len(items))
	copy(result, items)
	g := &lcg{state: seed}
	for i := len(result) - 1; i > 0; i-- {
		j := int(math.Floor(g.next() * float64(i+1)))
		result[i], result[j] = result[j], result[i]
	}
	return result
}
