package blend

// levelDelta maps a target level to the fractional brightness change applied to each channel
// Level 10 is the neutral baseline
var levelDelta = map[int]float64{
	3: -0.22, 4: -0.18, 5: -0.14, 6: -0.10, 7: -0.06,
	8: -0.03, 9: -0.01, 10: 0.00, 11: 0.03, 12: 0.06,
	13: 0.09, 14: 0.12,
}

const (
	MinLevel = 3
	MaxLevel = 14
)

// LevelDelta returns the delta for a level; ok is false outside MinLevel..MaxLevel
func LevelDelta(level int) (float64, bool) {
	d, ok := levelDelta[level]
	return d, ok
}

// Levels returns the supported levels in ascending order
func Levels() []int {
	out := make([]int, 0, MaxLevel-MinLevel+1)
	for l := MinLevel; l <= MaxLevel; l++ {
		out = append(out, l)
	}
	return out
}

// adjustChannel applies c' = clamp(c*(1+delta), 0, 255) without rounding
func adjustChannel(c uint8, delta float64) float64 {
	return clampFloat(float64(c) * (1 + delta))
}
