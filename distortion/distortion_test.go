package distortion

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func float64Near(x, y, ε float64) bool {
	return math.Abs(x-y) <= ε
}

func TestConstants(t *testing.T) {
	r5 := math.Sqrt(5)
	tests := []struct {
		name      string
		got, want float64
	}{
		{"H", H, math.Sqrt((5 + r5) / 10)},
		{"W", W, math.Sqrt(2.0 / 5 * (5 - r5))},
		{"B", B, math.Sqrt(3.0 / 10 * (5 - r5))},
		{"G", G, math.Sqrt((5 + 2*r5) / 15)},
		{"Gamma", Gamma, math.Atan(3 - r5)},
		{"B/G", B / G, (9 - 3*r5) / 2},
		{"H²+(W/2)²", H*H + W*W/4, 1},
	}
	for _, test := range tests {
		if !float64Near(test.got, test.want, 1e-12) {
			t.Errorf("%s = %v, want %v", test.name, test.got, test.want)
		}
	}
}

func TestLPProportion(t *testing.T) {
	tests := []struct {
		a, want float64
	}{
		{0, 0},
		{0.25, 0.2701752257873207},
		{0.5, 0.5},
		{0.75, 0.7298247742126793},
		{1, 1},
	}
	for _, test := range tests {
		got := LPProportion(test.a)
		if !float64Near(got, test.want, 1e-12) {
			t.Errorf("LPProportion(%v) = %v, want %v", test.a, got, test.want)
		}
		if back := ThetaProportion(got); !float64Near(back, test.a, 1e-12) {
			t.Errorf("ThetaProportion(%v) = %v, want %v", got, back, test.a)
		}
	}
}

func TestWarpProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("ThetaProportion inverts LPProportion", prop.ForAll(
		func(a float64) bool {
			return float64Near(ThetaProportion(LPProportion(a)), a, 1e-12)
		},
		gen.Float64Range(0, 1),
	))
	properties.Property("LPProportion is symmetric about the edge's middle", prop.ForAll(
		func(a float64) bool {
			return float64Near(LPProportion(1-a), 1-LPProportion(a), 1e-12)
		},
		gen.Float64Range(0, 1),
	))
	properties.Property("LP and ThetaFromLP are inverse", prop.ForAll(
		func(theta float64) bool {
			return float64Near(ThetaFromLP(LP(theta)), theta, 1e-12)
		},
		gen.Float64Range(0, Alpha),
	))
	properties.TestingRun(t)
}
