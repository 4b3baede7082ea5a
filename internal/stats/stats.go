package stats

import (
	"math"
	"sort"
	"time"
)

type statsError struct {
	err string
}

func (s statsError) Error() string {
	return s.err
}

// Package-wide error values. All error identification should use these.
var (
	// ErrEmptyInput input must not be empty
	ErrEmptyInput = statsError{"input must not be empty"}
	// ErrBounds input is outside of range
	ErrBounds = statsError{"input is outside of range"}
)

// Mean returns the arithmetic mean of the input.
func Mean(input []float64) (float64, error) {
	if len(input) == 0 {
		return math.NaN(), ErrEmptyInput
	}
	var sum float64
	for _, n := range input {
		sum += n
	}
	return sum / float64(len(input)), nil
}

// Min returns the smallest value of the input.
func Min(input []float64) (float64, error) {
	if len(input) == 0 {
		return math.NaN(), ErrEmptyInput
	}
	min := input[0]
	for _, n := range input[1:] {
		if n < min {
			min = n
		}
	}
	return min, nil
}

// Max returns the largest value of the input.
func Max(input []float64) (float64, error) {
	if len(input) == 0 {
		return math.NaN(), ErrEmptyInput
	}
	max := input[0]
	for _, n := range input[1:] {
		if n > max {
			max = n
		}
	}
	return max, nil
}

// Percentile returns the value below which percent of the sorted input falls,
// using nearest-rank on a sorted copy.
func Percentile(input []float64, percent float64) (float64, error) {
	if len(input) == 0 {
		return math.NaN(), ErrEmptyInput
	}
	if percent <= 0 || percent > 100 {
		return math.NaN(), ErrBounds
	}

	sorted := make([]float64, len(input))
	copy(sorted, input)
	sort.Float64s(sorted)

	rank := int(math.Ceil(percent / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1], nil
}

// StdDev returns the corrected sample standard deviation (Bessel's
// correction). A single-element input has zero deviation.
func StdDev(input []float64) (float64, error) {
	if len(input) == 0 {
		return math.NaN(), ErrEmptyInput
	}
	if len(input) == 1 {
		return 0, nil
	}
	mean, _ := Mean(input)
	var sum float64
	for _, n := range input {
		d := n - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(input)-1)), nil
}

// Durations converts a duration slice to float64 milliseconds for the
// statistics helpers above.
func Durations(input []time.Duration) []float64 {
	out := make([]float64, len(input))
	for i, d := range input {
		out[i] = float64(d) / float64(time.Millisecond)
	}
	return out
}
