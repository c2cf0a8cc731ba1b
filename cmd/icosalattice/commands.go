package main

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/Kuhron/icosalattice/conversion"
	"github.com/Kuhron/icosalattice/distortion"
	"github.com/Kuhron/icosalattice/exactfloat"
	"github.com/Kuhron/icosalattice/icosa"
	"github.com/Kuhron/icosalattice/peel"
	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pierrre/geohash"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// geohashPrecision is the number of geohash characters printed by
// describe, about 4cm at the equator.
const geohashPrecision = 12

// point looks up the position of code under the configured method.
func (e *env) point(code pointcode.Code) (pointRecord, error) {
	ll, err := conversion.PointCodeToLatLng(e.conv, code)
	if err != nil {
		return pointRecord{}, err
	}
	e.log.WithFields(logrus.Fields{
		"method": e.conv.Method(),
		"code":   code,
	}).Debugf("placed at %v", ll)
	return pointRecord{Code: code.String(), Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}, nil
}

func parseCodes(args []string) ([]pointcode.Code, error) {
	codes := make([]pointcode.Code, len(args))
	for i, a := range args {
		c, err := pointcode.Parse(a)
		if err != nil {
			return nil, err
		}
		codes[i] = c
	}
	return codes, nil
}

// parseWritten is like parseCodes but keeps trailing zeros, which set the
// iteration that neighbors, children and paths are taken at.
func parseWritten(args []string) ([]pointcode.Code, error) {
	codes := make([]pointcode.Code, len(args))
	for i, a := range args {
		c := pointcode.Code(a)
		if err := pointcode.Validate(c); err != nil {
			return nil, err
		}
		codes[i] = c
	}
	return codes, nil
}

func newConvertCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <code>...",
		Short: "print the latitude and longitude of point codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseCodes(args)
			if err != nil {
				return err
			}
			recs := make([]pointRecord, 0, len(codes))
			for _, c := range codes {
				r, err := e.point(c)
				if err != nil {
					return err
				}
				recs = append(recs, r)
			}
			return e.writePoints(cmd.OutOrStdout(), recs)
		},
	}
}

func newLocateCommand(e *env) *cobra.Command {
	var lat, lng, edgeLength, radius float64
	var pointCount int64
	cmd := &cobra.Command{
		Use:   "locate --lat <degrees> --lng <degrees>",
		Short: "print the code of the lattice point nearest a latitude and longitude",
		Long: `
Print the code of the lattice point nearest a latitude and longitude, using
at most --max-iterations digits. With --edge-length the number of digits is
instead the fewest at which lattice edges are no longer than the given
great circle distance on a sphere of the given --radius. With --point-count
it is the fewest at which the lattice has at least that many points.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			iterations := e.cfg.MaxIterations
			if cmd.Flags().Changed("edge-length") {
				if edgeLength <= 0 || radius <= 0 {
					return errors.Newf("edge length %v and radius %v must be positive", edgeLength, radius)
				}
				chord := icosa.ArcToChord(s1.Angle(edgeLength / radius))
				iterations = icosa.IterationsForEdgeLength(chord, 1)
			}
			if cmd.Flags().Changed("point-count") {
				if pointCount <= 2 {
					return errors.Newf("point count %d must be more than 2", pointCount)
				}
				iterations = int(math.Ceil(pointcode.IterationsForPointCount(pointCount)))
			}
			ll := s2.LatLngFromDegrees(lat, lng)
			code, err := conversion.LatLngToPointCode(e.conv, ll, iterations)
			if err != nil {
				return err
			}
			e.log.WithFields(logrus.Fields{
				"method":     e.conv.Method(),
				"code":       code,
				"iterations": iterations,
			}).Debugf("located %v", ll)
			r, err := e.point(code)
			if err != nil {
				return err
			}
			return e.writePoints(cmd.OutOrStdout(), []pointRecord{r})
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.Flags().Float64Var(&edgeLength, "edge-length", 0, "largest acceptable lattice edge, in units of --radius")
	cmd.Flags().Float64Var(&radius, "radius", 1, "radius of the sphere")
	cmd.Flags().Int64Var(&pointCount, "point-count", 0, "smallest acceptable number of lattice points")
	cmd.MarkFlagsMutuallyExclusive("edge-length", "point-count")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newNeighborsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors <code>",
		Short: "print the neighbors of a point counterclockwise",
		Long: `
Print the neighbors of a point counterclockwise at the iteration its code is
written at: C has five neighbors one icosahedron edge away, C00 five
neighbors a quarter edge away.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseWritten(args)
			if err != nil {
				return err
			}
			code := codes[0]
			nb, err := pointcode.OrderedNeighbors(code)
			if err != nil {
				return err
			}
			center, err := e.point(code)
			if err != nil {
				return err
			}
			ring := make([]pointRecord, 0, len(nb))
			for _, c := range nb {
				r, err := e.point(c)
				if err != nil {
					return err
				}
				ring = append(ring, r)
			}
			return e.writeNeighbors(cmd.OutOrStdout(), center, ring)
		},
	}
}

func newFloatCommand(e *env) *cobra.Command {
	var float64s bool
	cmd := &cobra.Command{
		Use:   "float",
		Short: "encode point codes as numbers and back",
	}
	cmd.PersistentFlags().BoolVar(&float64s, "float64", false, "use float64 values, which hold codes of up to 24 digits")
	cmd.AddCommand(&cobra.Command{
		Use:   "encode <code>...",
		Short: "print the exact number encoding each code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseCodes(args)
			if err != nil {
				return err
			}
			var recs []floatRecord
			for _, c := range codes {
				if float64s {
					x, err := pointcode.EncodeFloat(c)
					if err != nil {
						return err
					}
					recs = append(recs, floatRecord{Code: c.String(), Value: strconv.FormatFloat(x, 'g', -1, 64)})
					continue
				}
				x, err := pointcode.EncodeExact(c)
				if err != nil {
					return err
				}
				recs = append(recs, floatRecord{Code: c.String(), Value: x.String()})
			}
			return e.writeFloats(cmd.OutOrStdout(), recs)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "decode <number>...",
		Short: "print the code encoded by each number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var recs []floatRecord
			for _, a := range args {
				if float64s {
					x, err := strconv.ParseFloat(a, 64)
					if err != nil {
						return errors.Mark(err, pointcode.ErrInvalidFloatEncoding)
					}
					c, err := pointcode.DecodeFloat(x)
					if err != nil {
						return err
					}
					recs = append(recs, floatRecord{Code: c.String(), Value: a})
					continue
				}
				x, err := exactfloat.Parse(a)
				if err != nil {
					return errors.Mark(err, pointcode.ErrInvalidFloatEncoding)
				}
				c, err := pointcode.DecodeExact(x)
				if err != nil {
					return err
				}
				recs = append(recs, floatRecord{Code: c.String(), Value: a})
			}
			return e.writeFloats(cmd.OutOrStdout(), recs)
		},
	})
	return cmd
}

func newDescribeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <code>",
		Short: "print everything known about a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseWritten(args)
			if err != nil {
				return err
			}
			d, err := e.describe(codes[0])
			if err != nil {
				return err
			}
			return e.writeDescription(cmd.OutOrStdout(), d)
		},
	}
}

func (e *env) describe(code pointcode.Code) (description, error) {
	r, err := e.point(code)
	if err != nil {
		return description{}, err
	}
	it := code.IterationBorn()
	d := description{
		pointRecord: r,
		Iteration:   it,
		Spacing:     s1.Angle(icosa.EdgeSpan.Value(it)).Degrees(),
		Area:        icosa.AvgArea.Value(it),
		Geohash:     geohash.Encode(r.Lat, r.Lng, geohashPrecision),
	}
	if it > 0 {
		parent, err := pointcode.Parent(code)
		if err != nil {
			return description{}, err
		}
		dparent, err := pointcode.DirectionalParent(code)
		if err != nil {
			return description{}, err
		}
		d.Parent, d.DirectionalParent = parent.String(), dparent.String()
	}
	children, err := pointcode.Children(code)
	if err != nil {
		return description{}, err
	}
	for _, c := range children {
		d.Children = append(d.Children, c.String())
	}
	faces, err := pointcode.FacesOf(code)
	if err != nil {
		return description{}, err
	}
	for _, f := range faces {
		d.Faces = append(d.Faces, f.Name)
	}
	c, err := peel.FromCode(code)
	if err != nil {
		return description{}, err
	}
	d.Peel = c.String()
	if !icosa.IsPole(c.Start) {
		d.Triangle = distortion.TriangleFromLD(c.L, c.D).String()
		l, dd, err := distortion.Distort(c.L, c.D)
		if err != nil {
			return description{}, err
		}
		d.Distorted = peel.Coordinate{Start: c.Start, L: l, D: dd}.String()
	}
	x, err := pointcode.EncodeExact(code)
	if err != nil {
		return description{}, err
	}
	d.Float = x.String()
	return d, nil
}

func newMeasureCommand(e *env) *cobra.Command {
	var radius float64
	cmd := &cobra.Command{
		Use:   "measure <code> <code> [<code>]",
		Short: "measure the distance between two points or the triangle of three",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if radius <= 0 {
				return errors.Newf("radius %v must be positive", radius)
			}
			codes, err := parseCodes(args)
			if err != nil {
				return err
			}
			pts := make([]s2.Point, len(codes))
			for i, c := range codes {
				if pts[i], err = e.conv.PointCodeToXYZ(c); err != nil {
					return err
				}
			}
			m := measurement{Codes: args}
			if len(pts) == 2 {
				chord := pts[0].Sub(pts[1].Vector).Norm()
				m.Arc = icosa.ChordToArc(chord).Degrees()
				m.Chord = chord * radius
				m.Distance = icosa.Distance(pts[0], pts[1], radius)
			} else {
				for _, a := range icosa.TriangleAngles(pts[0], pts[1], pts[2]) {
					m.Angles = append(m.Angles, a.Degrees())
				}
				m.Area = icosa.TriangleArea(pts[0], pts[1], pts[2], radius)
			}
			return e.writeMeasurement(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", 1, "radius of the sphere")
	return cmd
}

func newPathCommand(e *env) *cobra.Command {
	var direction string
	cmd := &cobra.Command{
		Use:   "path <from> <to> --direction <dir>",
		Short: "print the straight line of points from one code to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseWritten(args)
			if err != nil {
				return err
			}
			dir, err := icosa.ParseDirection(direction)
			if err != nil {
				return err
			}
			path, err := pointcode.Path(codes[0], codes[1], dir)
			if err != nil {
				return err
			}
			e.log.WithFields(logrus.Fields{"code": codes[0]}).Debugf("%d steps %v to %s", len(path)-1, dir, codes[1])
			recs := make([]pointRecord, 0, len(path))
			for _, c := range path {
				r, err := e.point(c)
				if err != nil {
					return err
				}
				recs = append(recs, r)
			}
			return e.writePath(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().StringVarP(&direction, "direction", "d", "L", "direction of the first step: L, DL, D, R, UR or U")
	return cmd
}

func newRandomCommand(e *env) *cobra.Command {
	var count, minIterations int
	var seed int64
	cmd := &cobra.Command{
		Use:   "random",
		Short: "print random point codes",
		Long: `
Print random point codes whose birth iteration is uniform between
--min-iterations and --max-iterations.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minIterations < 0 || minIterations > e.cfg.MaxIterations {
				return errors.Newf("min-iterations %d is not in [0, %d]", minIterations, e.cfg.MaxIterations)
			}
			rng := rand.New(rand.NewSource(seed))
			recs := make([]pointRecord, 0, count)
			for i := 0; i < count; i++ {
				r, err := e.point(pointcode.Random(rng, minIterations, e.cfg.MaxIterations))
				if err != nil {
					return err
				}
				recs = append(recs, r)
			}
			return e.writePoints(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of codes")
	cmd.Flags().IntVar(&minIterations, "min-iterations", 0, "fewest iterations of a code")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
