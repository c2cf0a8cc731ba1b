package conversion_test

import (
	"fmt"

	"github.com/Kuhron/icosalattice/conversion"
	"github.com/golang/geo/s2"
)

func ExampleConverter() {
	conv, err := conversion.NewConverter("corrected-plane-gridding")
	if err != nil {
		fmt.Println(err)
		return
	}
	ll, _ := conversion.PointCodeToLatLng(conv, "E12")
	fmt.Printf("%.4f %.4f\n", ll.Lat.Degrees(), ll.Lng.Degrees())

	code, _ := conversion.LatLngToPointCode(conv, s2.LatLngFromDegrees(-74.141263, -36), 4)
	fmt.Println(code)
	// Output:
	// 63.3956 32.6444
	// L33
}
