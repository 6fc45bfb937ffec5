package geometry

import (
	"errors"
	"fmt"
)

// ErrZeroVector is matched by every *ZeroVectorError via errors.Is.
var ErrZeroVector = errors.New("geometry: zero-length vector")

// ZeroVectorError reports a vector too short to define a direction or plane.
// Element names the path element the vector was derived from, when known.
type ZeroVectorError struct {
	Element   string
	Operand   string
	Magnitude float64
}

func (e *ZeroVectorError) Error() string {
	switch {
	case e.Element != "":
		return fmt.Sprintf("geometry: element %q has zero length (magnitude=%g), cannot define a bend plane", e.Element, e.Magnitude)
	case e.Operand != "":
		return fmt.Sprintf("geometry: %s vector has zero length (magnitude=%g)", e.Operand, e.Magnitude)
	default:
		return fmt.Sprintf("geometry: vector has zero length (magnitude=%g)", e.Magnitude)
	}
}

// Is makes errors.Is(err, ErrZeroVector) hold.
func (e *ZeroVectorError) Is(target error) bool {
	return target == ErrZeroVector
}
