package scalar

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r3"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func float64Near(x, y, ε float64) bool {
	return math.Abs(x-y) <= ε
}

func TestSnap(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{0.49999999999999994, 0.5},
		{0.25000000000000006, 0.25},
		{0.75000000000001, 0.75},
		{-0.75000000000001, -0.75},
		{1.0 / 3, 1.0 / 3},
		{0.123456789123, 0.123456789123},
		{3.0 / 128, 3.0 / 128},
	}
	for _, test := range tests {
		if got := Snap(test.x); got != test.want {
			t.Errorf("Snap(%v) = %v, want %v", test.x, got, test.want)
		}
	}
}

func TestDecompose(t *testing.T) {
	v1 := r3.Vector{X: 1, Y: 0, Z: 0}
	v2 := r3.Vector{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0}
	tests := []struct {
		a1, a2 float64
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{0.25, 0.5},
		{0.75, 0.125},
	}
	for _, test := range tests {
		v := v1.Mul(test.a1).Add(v2.Mul(test.a2))
		a1, a2, err := Decompose(v, v1, v2)
		if err != nil {
			t.Errorf("Decompose(%v) failed: %v", v, err)
			continue
		}
		if !float64Near(a1, test.a1, 1e-12) || !float64Near(a2, test.a2, 1e-12) {
			t.Errorf("Decompose(%v) = (%v, %v), want (%v, %v)", v, a1, a2, test.a1, test.a2)
		}
	}
}

func TestDecomposeClampsNoise(t *testing.T) {
	v1 := r3.Vector{X: 1, Y: 0, Z: 1}
	v2 := r3.Vector{X: 0, Y: 1, Z: 1}
	v := v1.Mul(-1e-12).Add(v2.Mul(1 + 1e-12))
	a1, a2, err := Decompose(v, v1, v2)
	if err != nil {
		t.Fatalf("Decompose(%v) failed: %v", v, err)
	}
	if a1 != 0 || a2 != 1 {
		t.Errorf("Decompose(%v) = (%v, %v), want (0, 1)", v, a1, a2)
	}
}

func TestDecomposeErrors(t *testing.T) {
	v1 := r3.Vector{X: 1, Y: 0, Z: 0}
	v2 := r3.Vector{X: 0, Y: 1, Z: 0}
	tests := []struct {
		v r3.Vector
	}{
		{r3.Vector{X: 2, Y: 0, Z: 0}},
		{r3.Vector{X: -0.5, Y: 0.5, Z: 0}},
		{r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}},
	}
	for _, test := range tests {
		_, _, err := Decompose(test.v, v1, v2)
		if !errors.Is(err, ErrInvalidVectorDecomposition) {
			t.Errorf("Decompose(%v) error = %v, want ErrInvalidVectorDecomposition", test.v, err)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		x, m, want float64
	}{
		{5, 3, 2},
		{-1, 3, 2},
		{-3, 3, 0},
		{7.5, 2, 1.5},
		{-math.Pi / 6, 2 * math.Pi, 2*math.Pi - math.Pi/6},
	}
	for _, test := range tests {
		if got := Mod(test.x, test.m); !float64Near(got, test.want, 1e-15) {
			t.Errorf("Mod(%v, %v) = %v, want %v", test.x, test.m, got, test.want)
		}
	}
}

func TestZigzag(t *testing.T) {
	a := math.Pi / 3
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{a / 2, a / 2},
		{a, a},
		{a + 0.1, a - 0.1},
		{2*a + 0.2, 0.2},
		{5*a + 0.3, a - 0.3},
	}
	for _, test := range tests {
		if got := Zigzag(test.x, a); !float64Near(got, test.want, 1e-12) {
			t.Errorf("Zigzag(%v, %v) = %v, want %v", test.x, a, got, test.want)
		}
	}
}

func TestZigzagRoundTrip(t *testing.T) {
	a := math.Pi / 3
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("ZigzagInverse undoes Zigzag", prop.ForAll(
		func(x float64) bool {
			n := int(math.Floor(x / a))
			y := Zigzag(x, a)
			return y >= -1e-12 && y <= a+1e-12 && float64Near(ZigzagInverse(y, a, n), x, 1e-12)
		},
		gen.Float64Range(0, 2*math.Pi),
	))
	properties.TestingRun(t)
}
