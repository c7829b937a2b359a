package prediction

import "math"

// Score awards points for a settled prediction from the absolute difference
// between the predicted and the actual max temperature. Band upper bounds are
// inclusive: a difference of exactly 0.5 scores 7, not 5.
func Score(predicted, actual float64) int {
	diff := math.Abs(predicted - actual)
	switch {
	case diff == 0:
		return 10
	case diff <= 0.5:
		return 7
	case diff <= 1.0:
		return 5
	case diff <= 1.5:
		return 3
	case diff <= 2.0:
		return 1
	default:
		return 0
	}
}
