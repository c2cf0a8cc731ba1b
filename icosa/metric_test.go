package icosa

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

func TestDefaults(t *testing.T) {
	a, c := MustStarting('A').Point, MustStarting('C').Point
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"EdgeChord", EdgeChord.Deriv, a.Sub(c.Vector).Norm()},
		{"EdgeSpan", EdgeSpan.Deriv, float64(a.Distance(c))},
		{"AvgArea", AvgArea.Deriv, s2.PointArea(a, c, MustStarting('E').Point)},
	}
	for _, test := range tests {
		if !float64Near(test.got, test.want, 1e-12) {
			t.Errorf("%s.Deriv = %v, want %v", test.name, test.got, test.want)
		}
	}
}

func TestLengthMetricValue(t *testing.T) {
	tests := []struct {
		metric    LengthMetric
		iteration int
		want      float64
	}{
		{NewLengthMetric(1.0), 1, 0.5},
		{NewLengthMetric(1.0), 2, 0.25},
		{NewLengthMetric(2.0), 1, 1.0},
		{NewLengthMetric(2.0), 2, 0.5},
	}
	for _, test := range tests {
		got := test.metric.Value(test.iteration)
		if !float64Near(got, test.want, 1e-14) {
			t.Errorf("%v.Value(%d) = %v, want %v", test.metric, test.iteration, got, test.want)
		}
	}
}

func TestAreaMetricValue(t *testing.T) {
	if got, want := AvgArea.Value(3), 4*math.Pi/triangleCount(3); !float64Near(got, want, 1e-15) {
		t.Errorf("AvgArea.Value(3) = %v, want %v", got, want)
	}
}

// triangleCount is the number of lattice triangles at iteration n.
func triangleCount(n int) float64 {
	return 20 * math.Pow(4, float64(n))
}

func TestLengthMetricMinIteration(t *testing.T) {
	tests := []struct {
		metric LengthMetric
		value  float64
		want   int
	}{
		{NewLengthMetric(1.0), 1.0, 0},
		{NewLengthMetric(1.0), 0.5, 1},
		{NewLengthMetric(1.0), 0.4, 2},
		{NewLengthMetric(1.0), 2.0, 0},
		{NewLengthMetric(2.0), 0.3, 3},
		{NewLengthMetric(1.0), 0, MaxIteration},
	}
	for _, test := range tests {
		if got := test.metric.MinIteration(test.value); got != test.want {
			t.Errorf("%v.MinIteration(%v) = %d, want %d", test.metric, test.value, got, test.want)
		}
	}
}

func TestIterationsForEdgeLength(t *testing.T) {
	w := EdgeChord.Deriv
	tests := []struct {
		length, radius float64
		want           int
	}{
		{w, 1, 0},
		{2 * w, 1, 0},
		{w / 2, 1, 1},
		{w / 2 * 1.001, 1, 1},
		{w / 2 * 0.999, 1, 2},
		{100, 6371, 7},
		{1, 6371, 13},
	}
	for _, test := range tests {
		if got := IterationsForEdgeLength(test.length, test.radius); got != test.want {
			t.Errorf("IterationsForEdgeLength(%v, %v) = %d, want %d", test.length, test.radius, got, test.want)
		}
	}
}
