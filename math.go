package plot

import "math"

// RoundDownTo rounds x down to a multiple of step.
func RoundDownTo(x, step float64) float64 {
	return math.Floor(x/step) * step
}

// RoundUpTo rounds x up to a multiple of step.
func RoundUpTo(x, step float64) float64 {
	return math.Ceil(x/step) * step
}

// niceStep returns a step of the form {1,2,5}*10^k so that the interval
// of width r is covered by roughly n steps.
func niceStep(r float64, n int) float64 {
	if r <= 0 || n <= 0 {
		return 1
	}
	raw := r / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f < 1.5:
		return mag
	case f < 3.5:
		return 2 * mag
	case f < 7.5:
		return 5 * mag
	}
	return 10 * mag
}
