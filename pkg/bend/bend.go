// Package bend turns an ordered tube centerline into straight and bend
// records: bend angles, rotations between bend planes and arc lengths.
package bend

import (
	"math"

	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/path"
)

// StraightRecord is one straight section in path order
type StraightRecord struct {
	Index     int              `json:"index" yaml:"index"`
	Length    float64          `json:"length" yaml:"length"`
	Start     geometry.Vector3 `json:"start" yaml:"start"`
	End       geometry.Vector3 `json:"end" yaml:"end"`
	ElementID string           `json:"element_id" yaml:"element_id"`
}

// BendRecord is one bend in path order. Rotation is nil for the first bend.
type BendRecord struct {
	Index     int      `json:"index" yaml:"index"`
	Angle     float64  `json:"angle" yaml:"angle"`
	Rotation  *float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	ArcLength float64  `json:"arc_length" yaml:"arc_length"`
	Radius    float64  `json:"radius" yaml:"radius"`
	ElementID string   `json:"element_id" yaml:"element_id"`
}

// Result holds the records derived from one path
type Result struct {
	Straights []StraightRecord
	Bends     []BendRecord
}

type tangent struct {
	v  geometry.Vector3
	id string
}

// tangents lists the travel directions around the bends: every line vector,
// plus the arc tangent at a free end when the path starts or ends with an arc.
func tangents(p path.OrderedPath) []tangent {
	var out []tangent
	last := p.Len() - 1
	for i, s := range p.Steps() {
		if s.Kind() == path.Line {
			out = append(out, tangent{v: s.End().Sub(s.Start()), id: s.ID()})
			continue
		}
		if i == 0 {
			out = append(out, tangent{v: s.StartTangent(), id: s.ID()})
		}
		if i == last {
			out = append(out, tangent{v: s.EndTangent(), id: s.ID()})
		}
	}
	return out
}

// Calculate derives straight and bend records from an alternating path.
//
// Each bend angle is the angle between its incoming and outgoing tangent, so
// a nearly straight arc still yields a record. Rotation is the signed angle
// from the previous bend plane to this one about the straight between them,
// in [0, 360). When a bend plane is undefined (bend angle 0 or 180) that
// bend's rotation is 0 and the next bend measures from the last defined plane.
// Arc length uses the detected clr rather than each arc's own radius.
func Calculate(p path.OrderedPath, clr float64) (*Result, error) {
	arcs := p.Arcs()
	if err := CheckCLR(clr, len(arcs)); err != nil {
		return nil, err
	}

	vectors := tangents(p)
	if len(vectors) < len(arcs)+1 {
		return nil, &InsufficientVectorsError{Vectors: len(vectors), Arcs: len(arcs)}
	}
	for _, t := range vectors {
		if m := t.v.Length(); m < geometry.ZeroMagnitudeTolerance {
			return nil, &geometry.ZeroVectorError{Element: t.id, Magnitude: m}
		}
	}

	result := &Result{
		Straights: make([]StraightRecord, 0, len(p.Lines())),
		Bends:     make([]BendRecord, 0, len(arcs)),
	}
	for _, s := range p.Lines() {
		result.Straights = append(result.Straights, StraightRecord{
			Index:     len(result.Straights) + 1,
			Length:    s.Length(),
			Start:     s.Start(),
			End:       s.End(),
			ElementID: s.ID(),
		})
	}

	var plane geometry.Vector3
	havePlane := false
	for i, a := range arcs {
		in, out := vectors[i].v, vectors[i+1].v
		angle, err := geometry.AngleBetween(in, out)
		if err != nil {
			return nil, err
		}

		record := BendRecord{
			Index:     i + 1,
			Angle:     angle,
			ArcLength: clr * geometry.Radians(angle),
			Radius:    a.Element.Radius,
			ElementID: a.ID(),
		}

		normal := in.Cross(out)
		defined := normal.Length() > geometry.ZeroMagnitudeTolerance*in.Length()*out.Length()

		if i > 0 {
			rotation := 0.0
			if defined && havePlane {
				rotation, err = signedRotation(plane, normal, in)
				if err != nil {
					return nil, err
				}
			}
			record.Rotation = &rotation
		}
		if defined {
			plane, havePlane = normal, true
		}

		result.Bends = append(result.Bends, record)
	}

	return result, nil
}

// signedRotation measures the angle from plane normal a to b, counter-clockwise
// about axis, in [0, 360).
func signedRotation(a, b, axis geometry.Vector3) (float64, error) {
	theta, err := geometry.AngleBetween(a, b)
	if err != nil {
		return 0, err
	}
	if a.Cross(b).Dot(axis) < 0 {
		theta = 360 - theta
	}
	return math.Mod(theta, 360), nil
}
