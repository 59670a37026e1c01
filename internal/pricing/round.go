package pricing

import "math"

// Round2 rounds x to two decimal places, compensating for binary
// floating-point representation drift: a magnitude-scaled epsilon is added
// before rounding so that values that are *meant* to sit on a half-cent
// boundary but are stored a hair below it (e.g. 19.005 → 19.004999…) still
// round up. Naive round(x*100)/100 gets those wrong.
//
// Halves round toward positive infinity: Round2(19.005) == 19.01 and
// Round2(-2.345) == -2.34.
func Round2(x float64) float64 {
	return math.Round((x+math.Abs(x)*1e-12)*100) / 100
}
