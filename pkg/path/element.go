package path

import (
	"github.com/philipparndt/gobend/pkg/geometry"
)

// Kind discriminates the two primitive types of a tube centerline
type Kind int

const (
	Line Kind = iota
	Arc
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Arc:
		return "arc"
	default:
		return "unknown"
	}
}

// Element is one extracted centerline primitive. It is created once at the
// extraction boundary and only referenced afterwards.
//
// For arcs, Sweep is the signed angle in degrees swept from Start to End,
// positive meaning counter-clockwise about Normal.
type Element struct {
	ID     string
	Kind   Kind
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64

	Radius float64
	Center geometry.Vector3
	Normal geometry.Vector3
	Sweep  float64
}

// IsArc reports whether the element is an arc
func (e *Element) IsArc() bool {
	return e.Kind == Arc
}

// Endpoints returns both end points in stored order
func (e *Element) Endpoints() [2]geometry.Vector3 {
	return [2]geometry.Vector3{e.Start, e.End}
}

// Step is an element as traversed by an ordered path. Reversed steps walk the
// element from End to Start; the element itself is never modified.
type Step struct {
	Element  *Element
	Reversed bool
}

// ID returns the element id
func (s Step) ID() string { return s.Element.ID }

// Kind returns the element kind
func (s Step) Kind() Kind { return s.Element.Kind }

// Length returns the element length
func (s Step) Length() float64 { return s.Element.Length }

// Start returns the point where traversal enters the element
func (s Step) Start() geometry.Vector3 {
	if s.Reversed {
		return s.Element.End
	}
	return s.Element.Start
}

// End returns the point where traversal leaves the element
func (s Step) End() geometry.Vector3 {
	if s.Reversed {
		return s.Element.Start
	}
	return s.Element.End
}

// Sweep returns the signed arc sweep in traversal direction
func (s Step) Sweep() float64 {
	if s.Reversed {
		return -s.Element.Sweep
	}
	return s.Element.Sweep
}

// Flip returns the same element traversed the other way
func (s Step) Flip() Step {
	return Step{Element: s.Element, Reversed: !s.Reversed}
}

// StartTangent returns the travel direction where the step begins.
// Lines return their full displacement vector (its magnitude is the line
// length); arcs return a vector of magnitude Radius.
func (s Step) StartTangent() geometry.Vector3 {
	if s.Kind() == Line {
		return s.End().Sub(s.Start())
	}
	return s.arcTangent(s.Start())
}

// EndTangent returns the travel direction where the step ends
func (s Step) EndTangent() geometry.Vector3 {
	if s.Kind() == Line {
		return s.End().Sub(s.Start())
	}
	return s.arcTangent(s.End())
}

func (s Step) arcTangent(p geometry.Vector3) geometry.Vector3 {
	t := s.Element.Normal.Cross(p.Sub(s.Element.Center))
	if s.Sweep() < 0 {
		return t.Neg()
	}
	return t
}
