package conversion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/cockroachdb/datadriven"
	"github.com/golang/geo/s2"
)

// degrees formats an angle for expected output, without a sign on values
// that round to zero.
func degrees(x float64) string {
	if math.Abs(x) < 5e-7 {
		x = 0
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			var name string
			d.ScanArgs(t, "method", &name)
			conv, err := NewConverter(name)
			if err != nil {
				t.Fatal(err)
			}

			var out []string
			switch d.Cmd {
			case "latlng":
				for _, line := range strings.Split(strings.TrimSpace(d.Input), "\n") {
					code := pointcode.Code(strings.TrimSpace(line))
					ll, err := PointCodeToLatLng(conv, code)
					if err != nil {
						out = append(out, fmt.Sprintf("%s error: %v", code, err))
						continue
					}
					out = append(out, fmt.Sprintf("%s %s %s", code, degrees(ll.Lat.Degrees()), degrees(ll.Lng.Degrees())))
				}

			case "locate":
				var iterations int
				d.ScanArgs(t, "iterations", &iterations)
				for _, line := range strings.Split(strings.TrimSpace(d.Input), "\n") {
					f := strings.Fields(line)
					if len(f) != 2 {
						t.Fatalf("want \"lat lng\", got %q", line)
					}
					lat, err := strconv.ParseFloat(f[0], 64)
					if err != nil {
						t.Fatal(err)
					}
					lng, err := strconv.ParseFloat(f[1], 64)
					if err != nil {
						t.Fatal(err)
					}
					code, err := LatLngToPointCode(conv, s2.LatLngFromDegrees(lat, lng), iterations)
					if err != nil {
						out = append(out, "error: "+err.Error())
						continue
					}
					out = append(out, code.String())
				}

			default:
				t.Fatalf("unknown command %q", d.Cmd)
			}
			return strings.Join(out, "\n") + "\n"
		})
	})
}
