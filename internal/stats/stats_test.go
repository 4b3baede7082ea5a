package stats

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
		wantErr  error
	}{
		{name: "simple", input: []float64{1, 2, 3, 4}, expected: 2.5},
		{name: "single value", input: []float64{42}, expected: 42},
		{name: "negative values", input: []float64{-2, 2}, expected: 0},
		{name: "empty input", input: nil, wantErr: ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mean(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	input := []float64{3.2, 1.1, 9.9, 4.4}

	min, err := Min(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if min != 1.1 {
		t.Errorf("expected min 1.1, got %v", min)
	}

	max, err := Max(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max != 9.9 {
		t.Errorf("expected max 9.9, got %v", max)
	}

	if _, err := Min(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Max(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		percent  float64
		expected float64
		wantErr  error
	}{
		{name: "median of odd set", input: []float64{1, 2, 3, 4, 5}, percent: 50, expected: 3},
		{name: "p90 of ten values", input: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, percent: 90, expected: 9},
		{name: "p100 is max", input: []float64{5, 1, 3}, percent: 100, expected: 5},
		{name: "unsorted input", input: []float64{9, 1, 5}, percent: 50, expected: 5},
		{name: "empty input", input: nil, percent: 50, wantErr: ErrEmptyInput},
		{name: "percent out of range", input: []float64{1}, percent: 0, wantErr: ErrBounds},
		{name: "percent above 100", input: []float64{1}, percent: 101, wantErr: ErrBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percentile(tt.input, tt.percent)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	input := []float64{9, 1, 5}
	if _, err := Percentile(input, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input[0] != 9 || input[1] != 1 || input[2] != 5 {
		t.Errorf("input was mutated: %v", input)
	}
}

func TestStdDev(t *testing.T) {
	// Corrected sample deviation of {2,4,4,4,5,5,7,9} is ~2.138
	got, err := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-2.1381) > 0.001 {
		t.Errorf("expected ~2.138, got %v", got)
	}

	single, err := StdDev([]float64{5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single != 0 {
		t.Errorf("expected 0 for single value, got %v", single)
	}

	if _, err := StdDev(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDurations(t *testing.T) {
	got := Durations([]time.Duration{time.Second, 250 * time.Millisecond})
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	if got[0] != 1000 || got[1] != 250 {
		t.Errorf("unexpected conversion: %v", got)
	}
}
