package conversion

import (
	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
)

// ToLatLng returns the latitude and longitude of p.
func ToLatLng(p s2.Point) s2.LatLng {
	return s2.LatLngFromPoint(p)
}

// FromLatLng returns the point at ll, which must be a valid latitude and
// longitude.
func FromLatLng(ll s2.LatLng) (s2.Point, error) {
	if !ll.IsValid() {
		return s2.Point{}, errors.Newf("invalid latitude and longitude %v", ll)
	}
	return s2.PointFromLatLng(ll), nil
}

// PointCodeToLatLng returns the latitude and longitude of code under conv.
func PointCodeToLatLng(conv Converter, code pointcode.Code) (s2.LatLng, error) {
	p, err := conv.PointCodeToXYZ(code)
	if err != nil {
		return s2.LatLng{}, err
	}
	return ToLatLng(p), nil
}

// LatLngToPointCode returns the code of the lattice point nearest to ll.
func LatLngToPointCode(conv Converter, ll s2.LatLng, maxIterations int) (pointcode.Code, error) {
	p, err := FromLatLng(ll)
	if err != nil {
		return "", err
	}
	return conv.XYZToPointCode(p, maxIterations)
}
