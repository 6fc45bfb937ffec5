package sketch

import (
	"fmt"

	"github.com/philipparndt/gobend/pkg/extract"
	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/path"
)

// Sketch is a set of centerline entities read from a file
type Sketch struct {
	Name      string
	Component string
	Entities  []*Entity
}

// NewSketch creates an empty sketch
func NewSketch(name string) *Sketch {
	return &Sketch{
		Name:     name,
		Entities: make([]*Entity, 0),
	}
}

// AddEntity adds an entity to the sketch
func (s *Sketch) AddEntity(e *Entity) {
	e.component = s.Component
	s.Entities = append(s.Entities, e)
}

// EntityCount returns the number of entities in the sketch
func (s *Sketch) EntityCount() int {
	return len(s.Entities)
}

// Handles exposes the entities to the extraction boundary
func (s *Sketch) Handles() []extract.Handle {
	handles := make([]extract.Handle, len(s.Entities))
	for i, e := range s.Entities {
		handles[i] = e
	}
	return handles
}

// BoundingBox calculates the bounding box of all entity endpoints
func (s *Sketch) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, e := range s.Entities {
		bbox.Extend(e.start)
		bbox.Extend(e.end)
	}
	return bbox
}

// Entity is one sketch line or arc. It implements extract.Handle.
type Entity struct {
	id        string
	kind      path.Kind
	start     geometry.Vector3
	end       geometry.Vector3
	center    geometry.Vector3
	normal    geometry.Vector3
	radius    float64
	sweep     float64 // degrees, counter-clockwise about normal
	component string
}

// NewLine creates a line entity
func NewLine(id string, start, end geometry.Vector3) *Entity {
	return &Entity{id: id, kind: path.Line, start: start, end: end}
}

// NewArc creates an arc entity from its center and plane normal. The arc runs
// counter-clockwise about normal from start to end; its radius is the
// distance from center to start.
func NewArc(id string, start, end, center, normal geometry.Vector3) (*Entity, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("arc %s: normal: %w", id, err)
	}
	return &Entity{
		id:     id,
		kind:   path.Arc,
		start:  start,
		end:    end,
		center: center,
		normal: n,
		radius: center.Distance(start),
		sweep:  geometry.SweepAngle(center, n, start, end),
	}, nil
}

// NewArcThroughPoints creates the arc that runs from start through mid to end
func NewArcThroughPoints(id string, start, mid, end geometry.Vector3) (*Entity, error) {
	fit, err := geometry.CircleThroughPoints(start, mid, end)
	if err != nil {
		return nil, fmt.Errorf("arc %s: %w", id, err)
	}
	return &Entity{
		id:     id,
		kind:   path.Arc,
		start:  start,
		end:    end,
		center: fit.Center,
		normal: fit.Normal,
		radius: fit.Radius,
		sweep:  fit.Sweep,
	}, nil
}

func (e *Entity) ID() string                    { return e.id }
func (e *Entity) Kind() path.Kind               { return e.kind }
func (e *Entity) StartPoint() geometry.Vector3  { return e.start }
func (e *Entity) EndPoint() geometry.Vector3    { return e.end }
func (e *Entity) Radius() float64               { return e.radius }
func (e *Entity) Center() geometry.Vector3      { return e.center }
func (e *Entity) PlaneNormal() geometry.Vector3 { return e.normal }
func (e *Entity) ComponentName() string         { return e.component }

// Length returns the line length or the arc length along the circle
func (e *Entity) Length() float64 {
	if e.kind == path.Arc {
		return e.radius * geometry.Radians(e.sweep)
	}
	return e.start.Distance(e.end)
}
