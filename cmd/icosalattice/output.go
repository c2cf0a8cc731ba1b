package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type pointRecord struct {
	Code string  `json:"code"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type neighborsRecord struct {
	pointRecord
	Neighbors []pointRecord `json:"neighbors"`
}

type floatRecord struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type measurement struct {
	Codes    []string  `json:"codes"`
	Arc      float64   `json:"arc,omitempty"`
	Chord    float64   `json:"chord,omitempty"`
	Distance float64   `json:"distance,omitempty"`
	Angles   []float64 `json:"angles,omitempty"`
	Area     float64   `json:"area,omitempty"`
}

// description is everything describe prints about a point. Triangle and
// Distorted are its peel coordinate in triangle form and after the
// triangle warp; poles have neither. Spacing is the nominal edge length in
// degrees at the point's iteration and Area the mean area of its triangles
// on the unit sphere.
type description struct {
	pointRecord
	Iteration         int      `json:"iteration"`
	Parent            string   `json:"parent,omitempty"`
	DirectionalParent string   `json:"directional_parent,omitempty"`
	Children          []string `json:"children,omitempty"`
	Faces             []string `json:"faces"`
	Peel              string   `json:"peel"`
	Triangle          string   `json:"triangle,omitempty"`
	Distorted         string   `json:"distorted,omitempty"`
	Spacing           float64  `json:"spacing"`
	Area              float64  `json:"area"`
	Geohash           string   `json:"geohash"`
	Float             string   `json:"float"`
}

// degrees rounds x to six decimal places when rounding is on. Values that
// round to zero lose their sign.
func (e *env) degrees(x float64) float64 {
	if e.cfg.Round {
		x = math.Round(x*1e6) / 1e6
	}
	if x == 0 {
		return 0
	}
	return x
}

func (e *env) formatDegrees(x float64) string {
	x = e.degrees(x)
	if e.cfg.Round {
		return strconv.FormatFloat(x, 'f', 6, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func (e *env) rounded(r pointRecord) pointRecord {
	r.Lat, r.Lng = e.degrees(r.Lat), e.degrees(r.Lng)
	return r
}

func (e *env) writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) pointFeature(r pointRecord, props map[string]interface{}) *geojson.Feature {
	r = e.rounded(r)
	if props == nil {
		props = map[string]interface{}{}
	}
	props["code"] = r.Code
	return &geojson.Feature{
		ID:         r.Code,
		Geometry:   geom.NewPointFlat(geom.XY, []float64{r.Lng, r.Lat}),
		Properties: props,
	}
}

func (e *env) writeFeatures(w io.Writer, features ...*geojson.Feature) error {
	b, err := json.Marshal(&geojson.FeatureCollection{Features: features})
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func (e *env) writePoints(w io.Writer, recs []pointRecord) error {
	switch e.cfg.Output {
	case outputJSON:
		out := make([]pointRecord, len(recs))
		for i, r := range recs {
			out[i] = e.rounded(r)
		}
		return e.writeJSON(w, out)
	case outputGeoJSON:
		features := make([]*geojson.Feature, len(recs))
		for i, r := range recs {
			features[i] = e.pointFeature(r, nil)
		}
		return e.writeFeatures(w, features...)
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", r.Code, e.formatDegrees(r.Lat), e.formatDegrees(r.Lng)); err != nil {
			return err
		}
	}
	return nil
}

// writeNeighbors prints the neighbors of center. As GeoJSON they form a
// closed ring around it.
func (e *env) writeNeighbors(w io.Writer, center pointRecord, ring []pointRecord) error {
	codes := make([]string, len(ring))
	for i, r := range ring {
		codes[i] = r.Code
	}
	switch e.cfg.Output {
	case outputJSON:
		rec := neighborsRecord{pointRecord: e.rounded(center)}
		for _, r := range ring {
			rec.Neighbors = append(rec.Neighbors, e.rounded(r))
		}
		return e.writeJSON(w, rec)
	case outputGeoJSON:
		flat := make([]float64, 0, 2*len(ring)+2)
		for _, r := range append(ring, ring[0]) {
			r = e.rounded(r)
			flat = append(flat, r.Lng, r.Lat)
		}
		polygon := &geojson.Feature{
			ID:         center.Code + "/neighbors",
			Geometry:   geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}),
			Properties: map[string]interface{}{"code": center.Code, "neighbors": codes},
		}
		return e.writeFeatures(w, e.pointFeature(center, nil), polygon)
	}
	_, err := fmt.Fprintln(w, strings.Join(codes, " "))
	return err
}

// writePath prints the points of a path in order. As GeoJSON they form a
// line string.
func (e *env) writePath(w io.Writer, recs []pointRecord) error {
	if e.cfg.Output != outputGeoJSON {
		return e.writePoints(w, recs)
	}
	codes := make([]string, len(recs))
	flat := make([]float64, 0, 2*len(recs))
	for i, r := range recs {
		r = e.rounded(r)
		codes[i] = r.Code
		flat = append(flat, r.Lng, r.Lat)
	}
	var g geom.T = geom.NewLineStringFlat(geom.XY, flat)
	if len(recs) == 1 {
		g = geom.NewPointFlat(geom.XY, flat)
	}
	return e.writeFeatures(w, &geojson.Feature{
		ID:         codes[0] + "/" + codes[len(codes)-1],
		Geometry:   g,
		Properties: map[string]interface{}{"codes": codes},
	})
}

func (e *env) writeFloats(w io.Writer, recs []floatRecord) error {
	switch e.cfg.Output {
	case outputJSON:
		return e.writeJSON(w, recs)
	case outputGeoJSON:
		return errors.New("float has no geojson output")
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "%s %s\n", r.Code, r.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) writeDescription(w io.Writer, d description) error {
	switch e.cfg.Output {
	case outputJSON:
		d.pointRecord = e.rounded(d.pointRecord)
		return e.writeJSON(w, d)
	case outputGeoJSON:
		props := map[string]interface{}{
			"iteration": d.Iteration,
			"faces":     d.Faces,
			"peel":      d.Peel,
			"triangle":  d.Triangle,
			"distorted": d.Distorted,
			"spacing":   d.Spacing,
			"area":      d.Area,
			"geohash":   d.Geohash,
			"float":     d.Float,
		}
		if d.Parent != "" {
			props["parent"] = d.Parent
			props["directional_parent"] = d.DirectionalParent
		}
		if len(d.Children) > 0 {
			props["children"] = d.Children
		}
		return e.writeFeatures(w, e.pointFeature(d.pointRecord, props))
	}
	lines := [][2]string{
		{"code", d.Code},
		{"iteration", strconv.Itoa(d.Iteration)},
	}
	if d.Parent != "" {
		lines = append(lines, [2]string{"parent", d.Parent}, [2]string{"directional parent", d.DirectionalParent})
	}
	if len(d.Children) > 0 {
		lines = append(lines, [2]string{"children", strings.Join(d.Children, " ")})
	}
	lines = append(lines,
		[2]string{"faces", strings.Join(d.Faces, " ")},
		[2]string{"peel", d.Peel},
	)
	if d.Triangle != "" {
		lines = append(lines, [2]string{"triangle", d.Triangle}, [2]string{"distorted", d.Distorted})
	}
	lines = append(lines,
		[2]string{"spacing", strconv.FormatFloat(d.Spacing, 'g', -1, 64)},
		[2]string{"area", strconv.FormatFloat(d.Area, 'g', -1, 64)},
		[2]string{"lat", e.formatDegrees(d.Lat)},
		[2]string{"lng", e.formatDegrees(d.Lng)},
		[2]string{"geohash", d.Geohash},
		[2]string{"float", d.Float},
	)
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", l[0], l[1]); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) writeMeasurement(w io.Writer, m measurement) error {
	switch e.cfg.Output {
	case outputJSON:
		return e.writeJSON(w, m)
	case outputGeoJSON:
		return errors.New("measure has no geojson output")
	}
	format := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	var lines [][2]string
	if len(m.Angles) == 0 {
		lines = [][2]string{
			{"arc", e.formatDegrees(m.Arc)},
			{"chord", format(m.Chord)},
			{"distance", format(m.Distance)},
		}
	} else {
		angles := make([]string, len(m.Angles))
		for i, a := range m.Angles {
			angles[i] = e.formatDegrees(a)
		}
		lines = [][2]string{
			{"angles", strings.Join(angles, " ")},
			{"area", format(m.Area)},
		}
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", l[0], l[1]); err != nil {
			return err
		}
	}
	return nil
}
