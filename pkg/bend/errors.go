package bend

import "fmt"

// InsufficientVectorsError reports a path with too few tangent vectors for its
// arcs. Every bend needs one incoming and one outgoing direction.
type InsufficientVectorsError struct {
	Vectors int
	Arcs    int
}

func (e *InsufficientVectorsError) Error() string {
	return fmt.Sprintf("bend: insufficient vectors (%d) for %d arcs, expected at least %d",
		e.Vectors, e.Arcs, e.Arcs+1)
}

// InvalidCLRError reports a path with arcs whose center line radius is unusable
type InvalidCLRError struct {
	CLR  float64
	Arcs int
}

func (e *InvalidCLRError) Error() string {
	return fmt.Sprintf("bend: invalid center line radius %g for %d arcs; check the arc geometry", e.CLR, e.Arcs)
}
