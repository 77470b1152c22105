package render

import "math"

const fullScale = 32768.0

// ToDB converts a sample amplitude to decibels relative to full scale.
// Zero is treated as the smallest nonzero amplitude so the result stays
// finite.
func ToDB(amplitude int) float64 {
	if amplitude == 0 {
		amplitude = 1
	}
	if amplitude < 0 {
		amplitude = -amplitude
	}
	return 20 * math.Log10(float64(amplitude)/fullScale)
}

// ClampDB limits db to [-maxRange, 0].
func ClampDB(db, maxRange float64) float64 {
	return min(max(db, -maxRange), 0)
}
