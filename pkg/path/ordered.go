package path

import (
	"fmt"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// OrderedPath is an immutable traversal of elements from one free end to the
// other. Consecutive steps meet within the connectivity tolerance used to
// build the path.
type OrderedPath struct {
	steps []Step
}

// NewOrderedPath validates and wraps an already ordered sequence of steps.
// Order is the usual way to obtain a path; this constructor is for callers
// that already know the traversal.
func NewOrderedPath(steps []Step, tolerance float64) (OrderedPath, error) {
	if len(steps) == 0 {
		return OrderedPath{}, ErrEmptyPath
	}
	if tolerance <= 0 {
		return OrderedPath{}, ErrInvalidTolerance
	}

	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.Element == nil {
			return OrderedPath{}, ErrNilElement
		}
		if seen[s.ID()] {
			return OrderedPath{}, fmt.Errorf("%w: %q", ErrDuplicateElement, s.ID())
		}
		seen[s.ID()] = true

		if i > 0 && !steps[i-1].End().Close(s.Start(), tolerance) {
			return OrderedPath{}, fmt.Errorf("%w: %q ends at %s but %q starts at %s",
				ErrNotContiguous, steps[i-1].ID(), steps[i-1].End(), s.ID(), s.Start())
		}
	}

	return OrderedPath{steps: append([]Step(nil), steps...)}, nil
}

// Len returns the number of steps
func (p OrderedPath) Len() int {
	return len(p.steps)
}

// Step returns the i-th step
func (p OrderedPath) Step(i int) Step {
	return p.steps[i]
}

// Steps returns a copy of the steps in traversal order
func (p OrderedPath) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// First returns the first step
func (p OrderedPath) First() Step {
	return p.steps[0]
}

// Last returns the last step
func (p OrderedPath) Last() Step {
	return p.steps[len(p.steps)-1]
}

// StartPoint returns the free end where traversal begins
func (p OrderedPath) StartPoint() geometry.Vector3 {
	return p.First().Start()
}

// EndPoint returns the free end where traversal finishes
func (p OrderedPath) EndPoint() geometry.Vector3 {
	return p.Last().End()
}

// StartsWithArc reports whether the first step is an arc
func (p OrderedPath) StartsWithArc() bool {
	return len(p.steps) > 0 && p.First().Kind() == Arc
}

// EndsWithArc reports whether the last step is an arc
func (p OrderedPath) EndsWithArc() bool {
	return len(p.steps) > 0 && p.Last().Kind() == Arc
}

// Arcs returns the arc steps in traversal order
func (p OrderedPath) Arcs() []Step {
	return p.filter(Arc)
}

// Lines returns the line steps in traversal order
func (p OrderedPath) Lines() []Step {
	return p.filter(Line)
}

func (p OrderedPath) filter(kind Kind) []Step {
	var out []Step
	for _, s := range p.steps {
		if s.Kind() == kind {
			out = append(out, s)
		}
	}
	return out
}

// Reverse returns the path walked from the other end. Every step is flipped,
// so lines swap endpoints and arcs swap endpoints and negate their sweep.
func (p OrderedPath) Reverse() OrderedPath {
	n := len(p.steps)
	out := make([]Step, n)
	for i, s := range p.steps {
		out[n-1-i] = s.Flip()
	}
	return OrderedPath{steps: out}
}

// IDs returns the element ids in traversal order
func (p OrderedPath) IDs() []string {
	ids := make([]string, len(p.steps))
	for i, s := range p.steps {
		ids[i] = s.ID()
	}
	return ids
}

// ValidateAlternation checks that lines and arcs alternate along the path.
func ValidateAlternation(p OrderedPath) error {
	if p.Len() == 0 {
		return ErrEmptyPath
	}
	first := p.First().Kind()
	for i, s := range p.steps {
		expected := first
		if i%2 == 1 {
			expected = other(first)
		}
		if s.Kind() != expected {
			return &AlternationError{Position: i + 1, Expected: expected, Got: s.Kind()}
		}
	}
	return nil
}

func other(k Kind) Kind {
	if k == Line {
		return Arc
	}
	return Line
}
