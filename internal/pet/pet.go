package pet

import (
	"math/rand"
	"time"
)

// Testable time and random functions
var (
	TimeNow     = func() time.Time { return time.Now().UTC() }
	RandFloat64 = rand.Float64
)

// Wander picks the pet's next spot in the playground, as a percentage of
// its width. With 40% chance the pet stays put.
func Wander(position float64) float64 {
	if RandFloat64() <= 0.4 {
		return position
	}
	return RandFloat64()*80 + 10
}

// FullnessBar renders value (0-100) as a bar of width cells.
func FullnessBar(value, width int) string {
	if width <= 0 {
		return ""
	}
	filled := max(0, min(value, MaxFullness)) * width / MaxFullness
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
