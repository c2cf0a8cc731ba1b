package pointcode

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidPointCode marks malformed point code text.
	ErrInvalidPointCode = errors.New("invalid point code")
	// ErrDegenerateNeighbor marks a direction that has no neighbor: any
	// direction from a pole, and the sixth direction at a starting point.
	ErrDegenerateNeighbor = errors.New("no neighbor in direction")
	// ErrNoParent is returned for the parent of a starting point.
	ErrNoParent = errors.New("starting points have no parent")
	// ErrInvalidFloatEncoding marks a float that is not the encoding of any
	// point code, or a code too long to encode.
	ErrInvalidFloatEncoding = errors.New("invalid float encoding of point code")
	// ErrUnreachable is returned by Path when walking in the given direction
	// never arrives at the destination.
	ErrUnreachable = errors.New("destination unreachable")
)
