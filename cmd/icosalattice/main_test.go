package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Kuhron/icosalattice/conversion"
	"github.com/Kuhron/icosalattice/distortion"
	"github.com/Kuhron/icosalattice/peel"
	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/pierrre/geohash"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// run executes the command line args and returns what it wrote to stdout
// and stderr.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{
			[]string{"convert", "E12", "L33"},
			"E12 63.395602 32.644439\nL33 -74.141263 -36.000000\n",
		},
		{
			[]string{"convert", "--method", "ancestry", "C10", "B"},
			"C1 58.282526 0.000000\nB -90.000000 0.000000\n",
		},
		{
			[]string{"convert", "--method", "r_theta_adjustment", "E12"},
			"E12 61.966974 36.000000\n",
		},
		{
			[]string{"locate", "--lat", "-74.141263", "--lng", "-36", "--max-iterations", "4"},
			"L33 -74.141263 -36.000000\n",
		},
		{
			[]string{"locate", "--lat", "26.565051", "--lng", "0", "--max-iterations", "4"},
			"C 26.565051 0.000000\n",
		},
		{
			[]string{"neighbors", "C1"},
			"A K1 C2 C E2 E1\n",
		},
		{
			[]string{"neighbors", "A"},
			"C E G I K\n",
		},
		{
			[]string{"float", "encode", "H2", "E231033"},
			"H2 7.75\nE231033 4.844970703125\n",
		},
		{
			[]string{"float", "decode", "7.75", "4.844970703125"},
			"H2 7.75\nE231033 4.844970703125\n",
		},
		{
			[]string{"float", "encode", "--float64", "H2", "E231033"},
			"H2 7.75\nE231033 4.844970703125\n",
		},
		{
			[]string{"float", "decode", "--float64", "7.75"},
			"H2 7.75\n",
		},
		{
			[]string{"path", "--direction", "L", "C", "A"},
			"C 26.565051 0.000000\nA 90.000000 0.000000\n",
		},
	}
	for _, test := range tests {
		got, _, err := run(t, test.args...)
		require.NoError(t, err, "%v", test.args)
		if got != test.want {
			t.Errorf("%v printed\n%s\nwant\n%s", test.args, got, test.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	got, _, err := run(t, "describe", "E12")
	require.NoError(t, err)

	faces, err := pointcode.FacesOf("E12")
	require.NoError(t, err)
	var names []string
	for _, f := range faces {
		names = append(names, f.Name)
	}
	conv, err := conversion.NewConverter("corrected-plane-gridding")
	require.NoError(t, err)
	ll, err := conversion.PointCodeToLatLng(conv, "E12")
	require.NoError(t, err)

	l, dd, err := distortion.Distort(0.75, 0.25)
	require.NoError(t, err)

	want := strings.Join([]string{
		"code: E12",
		"iteration: 2",
		"parent: E1",
		"directional parent: C1",
		"children: E121 E122 E123",
		"faces: " + strings.Join(names, " "),
		"peel: E(0.75, 0.25)",
		"triangle: up interior (0.5, 0.75, 0.75)",
		"distorted: " + peel.Coordinate{Start: 'E', L: l, D: dd}.String(),
		"spacing: " + strconv.FormatFloat(s1.Angle(math.Atan(2)/4).Degrees(), 'g', -1, 64),
		"area: " + strconv.FormatFloat(math.Pi/5/16, 'g', -1, 64),
		"lat: 63.395602",
		"lng: 32.644439",
		"geohash: " + geohash.Encode(ll.Lat.Degrees(), ll.Lng.Degrees(), geohashPrecision),
		"float: 4.6875",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("describe E12 printed\n%s\nwant\n%s", got, want)
	}

	got, _, err = run(t, "describe", "G")
	require.NoError(t, err)
	if strings.Contains(got, "parent") {
		t.Errorf("describe G printed parents:\n%s", got)
	}
}

func TestWrittenIteration(t *testing.T) {
	tests := []struct {
		code string
		want []string
	}{
		{"C", []string{"A", "K", "L", "D", "E"}},
		{"C0", []string{"C1", "C2", "C3", "D1", "E2"}},
		{"C10", []string{"C11", "C12", "C13", "C01", "E21", "E12"}},
		{"A0", []string{"C1", "E1", "G1", "I1", "K1"}},
	}
	for _, test := range tests {
		out, _, err := run(t, "neighbors", test.code)
		require.NoError(t, err, test.code)
		require.ElementsMatch(t, test.want, strings.Fields(out), "neighbors %s", test.code)
	}

	out, _, err := run(t, "describe", "C0")
	require.NoError(t, err)
	require.Contains(t, out, "code: C0\n")
	require.Contains(t, out, "iteration: 0\n")
	require.Contains(t, out, "children: C01 C02 C03\n")

	out, _, err = run(t, "describe", "C")
	require.NoError(t, err)
	require.Contains(t, out, "children: C1 C2 C3\n")

	_, _, err = run(t, "neighbors", "C0x")
	require.True(t, errors.Is(err, pointcode.ErrInvalidPointCode), "%v", err)
}

func TestMeasure(t *testing.T) {
	got, _, err := run(t, "measure", "C", "D", "E")
	require.NoError(t, err)
	if !strings.HasPrefix(got, "angles: 72.000000 72.000000 72.000000\n") {
		t.Errorf("measure C D E printed\n%s", got)
	}

	out, _, err := run(t, "measure", "-o", "json", "--radius", "2", "A", "C")
	require.NoError(t, err)
	var m measurement
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, []string{"A", "C"}, m.Codes)
	require.InDelta(t, 63.434949, m.Arc, 1e-6)
	require.InDelta(t, 2*math.Atan(2), m.Distance, 1e-12)
	require.InDelta(t, 2*4/math.Sqrt(10+2*math.Sqrt(5)), m.Chord, 1e-12)

	out, _, err = run(t, "measure", "-o", "json", "--radius", "6371", "C", "D", "E")
	require.NoError(t, err)
	m = measurement{}
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.InDelta(t, 4*math.Pi*6371*6371/20, m.Area, 1e-3)

	_, _, err = run(t, "measure", "C")
	require.Error(t, err)
	_, _, err = run(t, "measure", "--radius", "0", "C", "D")
	require.Error(t, err)
}

func TestLocateEdgeLength(t *testing.T) {
	out, stderr, err := run(t, "locate", "--log-level", "debug",
		"--lat", "-74.141263", "--lng", "-36", "--edge-length", "100", "--radius", "6371")
	require.NoError(t, err)
	require.Equal(t, "L33 -74.141263 -36.000000\n", out)
	require.Contains(t, stderr, "iterations=7")

	_, _, err = run(t, "locate", "--lat", "0", "--lng", "0", "--edge-length", "-1")
	require.Error(t, err)
}

func TestLocatePointCount(t *testing.T) {
	out, stderr, err := run(t, "locate", "--log-level", "debug",
		"--lat", "-74.141263", "--lng", "-36", "--point-count", "600")
	require.NoError(t, err)
	require.Equal(t, "L33 -74.141263 -36.000000\n", out)
	require.Contains(t, stderr, "iterations=3")

	_, _, err = run(t, "locate", "--lat", "0", "--lng", "0", "--point-count", "600", "--edge-length", "1")
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	out, _, err := run(t, "path", "-d", "DL", "C1", "K1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "C1 "), "got %q", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "K1 "), "got %q", lines[1])

	out, _, err = run(t, "path", "-o", "geojson", "-d", "D", "C", "C33")
	require.NoError(t, err)
	var fc geojson.FeatureCollection
	require.NoError(t, json.Unmarshal([]byte(out), &fc))
	require.Len(t, fc.Features, 1)
	line, ok := fc.Features[0].Geometry.(*geom.LineString)
	require.True(t, ok, "feature is %T", fc.Features[0].Geometry)
	require.Equal(t, 4, line.NumCoords())

	_, _, err = run(t, "path", "-d", "sideways", "C", "A")
	require.Error(t, err)
}

func TestRandom(t *testing.T) {
	out, _, err := run(t, "random", "-n", "20", "--min-iterations", "2", "--max-iterations", "5", "--seed", "7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		code, err := pointcode.Parse(strings.Fields(l)[0])
		require.NoError(t, err)
		if it := code.IterationBorn(); it < 2 || it > 5 {
			t.Errorf("random code %s is born at iteration %d, want 2 to 5", code, it)
		}
	}
	again, _, err := run(t, "random", "-n", "20", "--min-iterations", "2", "--max-iterations", "5", "--seed", "7")
	require.NoError(t, err)
	require.Equal(t, out, again)

	_, _, err = run(t, "random", "--min-iterations", "9", "--max-iterations", "5")
	require.Error(t, err)
}

func TestJSONOutput(t *testing.T) {
	out, _, err := run(t, "convert", "-o", "json", "E12")
	require.NoError(t, err)
	var recs []pointRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Equal(t, []pointRecord{{Code: "E12", Lat: 63.395602, Lng: 32.644439}}, recs)

	out, _, err = run(t, "neighbors", "--output", "json", "D")
	require.NoError(t, err)
	var nb neighborsRecord
	require.NoError(t, json.Unmarshal([]byte(out), &nb))
	require.Equal(t, "D", nb.Code)
	require.Len(t, nb.Neighbors, 5)

	out, _, err = run(t, "describe", "-o", "json", "C")
	require.NoError(t, err)
	var d description
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	require.Equal(t, 0, d.Iteration)
	require.Empty(t, d.Parent)
	require.Len(t, d.Faces, 5)
}

func TestGeoJSONOutput(t *testing.T) {
	out, _, err := run(t, "neighbors", "-o", "geojson", "C1")
	require.NoError(t, err)
	var fc geojson.FeatureCollection
	require.NoError(t, json.Unmarshal([]byte(out), &fc))
	require.Len(t, fc.Features, 2)

	center, ok := fc.Features[0].Geometry.(*geom.Point)
	require.True(t, ok, "first feature is %T", fc.Features[0].Geometry)
	require.InDelta(t, 0.0, center.X(), 1e-9)
	require.InDelta(t, 58.282526, center.Y(), 1e-6)

	ring, ok := fc.Features[1].Geometry.(*geom.Polygon)
	require.True(t, ok, "second feature is %T", fc.Features[1].Geometry)
	require.Equal(t, 7, ring.NumCoords())
	require.Equal(t, ring.Coord(0), ring.Coord(6))

	out, _, err = run(t, "locate", "-o", "geojson", "--lat", "90", "--lng", "0")
	require.NoError(t, err)
	fc = geojson.FeatureCollection{}
	require.NoError(t, json.Unmarshal([]byte(out), &fc))
	require.Len(t, fc.Features, 1)
	require.Equal(t, "A", fc.Features[0].Properties["code"])
}

func TestCommandErrors(t *testing.T) {
	_, _, err := run(t, "convert", "Z1")
	if !errors.Is(err, pointcode.ErrInvalidPointCode) {
		t.Errorf("convert Z1 error = %v, want ErrInvalidPointCode", err)
	}
	_, _, err = run(t, "float", "decode", "--", "-1")
	require.Error(t, err)
	_, _, err = run(t, "float", "decode", "0.1")
	if !errors.Is(err, pointcode.ErrInvalidFloatEncoding) {
		t.Errorf("float decode 0.1 error = %v, want ErrInvalidFloatEncoding", err)
	}
	_, _, err = run(t, "float", "encode", "-o", "geojson", "C")
	require.Error(t, err)
	_, _, err = run(t, "float", "encode", "--float64", "C"+strings.Repeat("1", 30))
	if !errors.Is(err, pointcode.ErrInvalidFloatEncoding) {
		t.Errorf("float encode --float64 of 30 digits error = %v, want ErrInvalidFloatEncoding", err)
	}
	_, _, err = run(t, "convert", "--method", "nearest", "C")
	if !errors.Is(err, conversion.ErrUnknownMethod) {
		t.Errorf("--method nearest error = %v, want ErrUnknownMethod", err)
	}
	_, _, err = run(t, "locate", "--lat", "0")
	require.Error(t, err)
	_, _, err = run(t, "neighbors", "C", "D")
	require.Error(t, err)
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := run(t, "convert", "--log-level", "debug", "E12")
	require.NoError(t, err)
	require.Contains(t, stderr, "resolved configuration")
	require.Contains(t, stderr, "code=E12")

	_, stderr, err = run(t, "convert", "E12")
	require.NoError(t, err)
	require.Empty(t, stderr)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icosalattice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, "method: ancestry\nround: false\nmax-iterations: 6\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, Config{
		Method:        "ancestry",
		MaxIterations: 6,
		Round:         false,
		LogLevel:      "info",
		Output:        "text",
	}, cfg)

	out, _, err := run(t, "convert", "--config", path, "C2")
	require.NoError(t, err)
	require.NotEqual(t, "C2 31.717474 -36.000000\n", out, "round: false should print full precision")
	require.True(t, strings.HasPrefix(out, "C2 31.71747"), "got %q", out)

	out, _, err = run(t, "convert", "--config", path, "--round", "C2")
	require.NoError(t, err)
	require.Equal(t, "C2 31.717474 -36.000000\n", out)

	empty := writeConfig(t, "")
	cfg, err = loadConfig(empty)
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(writeConfig(t, "methd: ancestry\n"))
	require.Error(t, err)
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := defaultConfig()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"method", func(c *Config) { c.Method = "nearest" }},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"negative iterations", func(c *Config) { c.MaxIterations = -3 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"output", func(c *Config) { c.Output = "xml" }},
	}
	for _, test := range tests {
		c := defaultConfig()
		test.modify(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: Validate(%+v) = nil, want error", test.name, c)
		}
	}
}
