package conversion

import (
	"math"

	"github.com/Kuhron/icosalattice/icosa"
	"github.com/Kuhron/icosalattice/pointcode"
	"github.com/Kuhron/icosalattice/scalar"
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s2"
)

// ancestry places a point at the normalized midpoint of its parent and
// its directional parent, so every edge of the lattice is bisected on the
// sphere. Points are computed from their ancestors up and cached.
type ancestry struct {
	cache *Cache
}

func newAncestry() *ancestry {
	return &ancestry{cache: NewCache()}
}

func (a *ancestry) Method() Method { return Ancestry }

func (a *ancestry) PointCodeToXYZ(code pointcode.Code) (s2.Point, error) {
	if err := pointcode.Validate(code); err != nil {
		return s2.Point{}, err
	}
	code = code.Strip()
	if p, ok := a.cache.Get(code); ok {
		return p, nil
	}

	// Each pending code waits until both of its parents are cached. Parents
	// are always shorter than their child, so the stack is bounded by the
	// length of code.
	stack := []pointcode.Code{code}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, ok := a.cache.Get(top); ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if len(top) == 1 {
			a.cache.Put(top, icosa.MustStarting(top.Start()).Point)
			stack = stack[:len(stack)-1]
			continue
		}
		parent, err := pointcode.Parent(top)
		if err != nil {
			return s2.Point{}, err
		}
		dparent, err := pointcode.DirectionalParent(top)
		if err != nil {
			return s2.Point{}, err
		}
		p0, ok0 := a.cache.Get(parent)
		p1, ok1 := a.cache.Get(dparent)
		if !ok0 {
			stack = append(stack, parent)
		}
		if !ok1 {
			stack = append(stack, dparent)
		}
		if ok0 && ok1 {
			a.cache.Put(top, s2.Point{Vector: p0.Add(p1.Vector).Normalize()})
			stack = stack[:len(stack)-1]
		}
	}
	p, _ := a.cache.Get(code)
	return p, nil
}

// XYZToPointCode descends the lattice one iteration at a time. At each
// iteration it moves to whichever neighbor is closer to p until none is,
// and stops early once it lands on p.
func (a *ancestry) XYZToPointCode(p s2.Point, maxIterations int) (pointcode.Code, error) {
	if err := checkIterations(maxIterations); err != nil {
		return "", err
	}
	p, err := checkUnit(p)
	if err != nil {
		return "", err
	}

	var best pointcode.Code
	bestDist := math.Inf(1)
	for _, sp := range icosa.StartingPoints() {
		if d := p.Sub(sp.Point.Vector).Norm(); d < bestDist {
			best, bestDist = pointcode.Code(sp.Letter), d
		}
	}

	for it := 1; it <= maxIterations && bestDist > scalar.Epsilon; it++ {
		cur, err := pointcode.Pad(best, it)
		if err != nil {
			return "", err
		}
		for {
			neighbors, err := pointcode.OrderedNeighbors(cur)
			if err != nil {
				return "", err
			}
			improved := false
			for _, nb := range neighbors {
				q, err := a.PointCodeToXYZ(nb)
				if err != nil {
					return "", err
				}
				if d := p.Sub(q.Vector).Norm(); d < bestDist {
					best, bestDist, improved = nb, d, true
				}
			}
			if !improved {
				break
			}
			if cur, err = pointcode.Pad(best, it); err != nil {
				return "", errors.Wrapf(err, "descending toward %v", p)
			}
		}
	}
	return best.Strip(), nil
}
