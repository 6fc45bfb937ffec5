// Package extract converts host geometry handles into immutable path elements.
//
// A handle is anything that can describe one centerline primitive: the sketch
// adapter in pkg/sketch is one implementation, test doubles are another.
package extract

import (
	"fmt"
	"math"

	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/path"
)

// Handle is the narrow capability interface a host geometry entity exposes.
// Radius, Center and PlaneNormal are only consulted for arcs.
type Handle interface {
	ID() string
	Kind() path.Kind
	StartPoint() geometry.Vector3
	EndPoint() geometry.Vector3
	Length() float64
	Radius() float64
	Center() geometry.Vector3
	PlaneNormal() geometry.Vector3
}

// Named is implemented by handles that know which component they belong to
type Named interface {
	ComponentName() string
}

// ExtractionError reports a handle that cannot become a path element
type ExtractionError struct {
	ID     string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("extract: %s", e.Reason)
	}
	return fmt.Sprintf("extract: element %q: %s", e.ID, e.Reason)
}

// Extract converts one handle into an element. It has no side effects.
func Extract(h Handle) (*path.Element, error) {
	if h == nil {
		return nil, &ExtractionError{Reason: "missing geometry handle"}
	}
	id := h.ID()
	fail := func(format string, args ...any) (*path.Element, error) {
		return nil, &ExtractionError{ID: id, Reason: fmt.Sprintf(format, args...)}
	}

	start, end := h.StartPoint(), h.EndPoint()
	if !start.IsFinite() || !end.IsFinite() {
		return fail("endpoint is not finite")
	}
	length := h.Length()
	if math.IsNaN(length) || math.IsInf(length, 0) || length <= 0 {
		return fail("length must be positive, got %g", length)
	}

	e := &path.Element{
		ID:     id,
		Kind:   h.Kind(),
		Start:  start,
		End:    end,
		Length: length,
	}

	switch h.Kind() {
	case path.Line:
		return e, nil
	case path.Arc:
	default:
		return fail("unsupported element kind %s", h.Kind())
	}

	radius := h.Radius()
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return fail("arc radius must be positive, got %g", radius)
	}
	center := h.Center()
	if !center.IsFinite() {
		return fail("arc center is not finite")
	}
	normal, err := h.PlaneNormal().Normalize()
	if err != nil {
		return fail("arc has no plane normal")
	}

	e.Radius = radius
	e.Center = center
	e.Normal = normal
	e.Sweep = orientedSweep(geometry.Degrees(length/radius), geometry.SweepAngle(center, normal, start, end))
	return e, nil
}

// orientedSweep signs the swept angle so that positive means counter-clockwise
// about the plane normal. Hosts report arc length but not always the winding.
func orientedSweep(magnitude, ccw float64) float64 {
	if math.Abs(magnitude-ccw) <= math.Abs(magnitude-(360-ccw)) {
		return magnitude
	}
	return -magnitude
}

// ExtractAll converts every handle, failing on the first bad one
func ExtractAll(handles []Handle) ([]*path.Element, error) {
	out := make([]*path.Element, 0, len(handles))
	for _, h := range handles {
		e, err := Extract(h)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ComponentName returns the owning component of the first handle that knows
// it, or "" when none does.
func ComponentName(handles []Handle) string {
	for _, h := range handles {
		if n, ok := h.(Named); ok {
			if name := n.ComponentName(); name != "" {
				return name
			}
		}
	}
	return ""
}
