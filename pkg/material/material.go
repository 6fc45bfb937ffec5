// Package material computes the extra tube needed at the grip and tail ends
// of a bend sequence, the resulting cut positions and the effective end
// allowances.
package material

import (
	"math"

	"github.com/philipparndt/gobend/pkg/bend"
	"github.com/philipparndt/gobend/pkg/path"
)

// Inputs describe one bend sequence and the bender limits it must respect.
// A zero MinGrip or MinTail disables that side.
type Inputs struct {
	Straights     []bend.StraightRecord
	Bends         []bend.BendRecord
	StartsWithArc bool
	EndsWithArc   bool

	MinGrip   float64
	MinTail   float64
	DieOffset float64

	StartAllowance                float64
	EndAllowance                  float64
	AddAllowanceWithGripExtension bool
	AddAllowanceWithTailExtension bool
}

// Grip is the start side of a Calculation
type Grip struct {
	ExtraMaterial      float64  `json:"extra_grip_material" yaml:"extra_grip_material"`
	SyntheticMaterial  float64  `json:"synthetic_grip_material" yaml:"synthetic_grip_material"`
	HasSynthetic       bool     `json:"has_synthetic_grip" yaml:"has_synthetic_grip"`
	CutPosition        *float64 `json:"grip_cut_position,omitempty" yaml:"grip_cut_position,omitempty"`
	Violations         []int    `json:"grip_violations" yaml:"grip_violations"`
	EffectiveAllowance float64  `json:"effective_start_allowance" yaml:"effective_start_allowance"`
}

// Extended reports whether any material was added at the start
func (g Grip) Extended() bool {
	return g.HasSynthetic || g.ExtraMaterial > 0
}

// Material returns all material added at the start, allowance excluded
func (g Grip) Material() float64 {
	return g.SyntheticMaterial + g.ExtraMaterial
}

// Tail is the end side of a Calculation
type Tail struct {
	ExtraMaterial      float64  `json:"extra_tail_material" yaml:"extra_tail_material"`
	SyntheticMaterial  float64  `json:"synthetic_tail_material" yaml:"synthetic_tail_material"`
	HasSynthetic       bool     `json:"has_synthetic_tail" yaml:"has_synthetic_tail"`
	HasExtension       bool     `json:"has_tail_extension" yaml:"has_tail_extension"`
	CutPosition        *float64 `json:"tail_cut_position,omitempty" yaml:"tail_cut_position,omitempty"`
	Violation          bool     `json:"tail_violation" yaml:"tail_violation"`
	EffectiveAllowance float64  `json:"effective_end_allowance" yaml:"effective_end_allowance"`
}

// Extended reports whether any material was added at the end
func (t Tail) Extended() bool {
	return t.HasSynthetic || t.HasExtension
}

// Material returns all material added at the end, allowance excluded
func (t Tail) Material() float64 {
	return t.SyntheticMaterial + t.ExtraMaterial
}

// Calculation is the grip and tail outcome for one bend sequence
type Calculation struct {
	Grip Grip `json:"grip" yaml:"grip"`
	Tail Tail `json:"tail" yaml:"tail"`
	// SpringBackWarning is set when the tail was extended but no end allowance
	// is left to absorb spring-back.
	SpringBackWarning bool `json:"spring_back_warning" yaml:"spring_back_warning"`
}

// Calculate computes grip and tail material. It never fails; shortfalls are
// reported as violations.
//
// Grip: a path starting with an arc gets MinGrip of synthetic material; a
// first straight shorter than MinGrip is topped up to MinGrip. A die offset
// adds whatever is still missing once the offset is subtracted from the grip.
//
// Tail: a path ending with an arc gets MinTail of synthetic material; a last
// straight shorter than MinTail is extended to MinTail and the tail cut sits at
// the sum of the straight lengths.
func Calculate(in Inputs) Calculation {
	var c Calculation
	c.Grip = gripSide(in)
	c.Grip.EffectiveAllowance = effectiveAllowance(in.StartAllowance, c.Grip.Extended(), in.AddAllowanceWithGripExtension)

	centerline := bend.CenterlineLength(in.Straights, in.Bends)
	c.Tail = tailSide(in, centerline, c.Grip.EffectiveAllowance+c.Grip.Material())
	c.Tail.EffectiveAllowance = effectiveAllowance(in.EndAllowance, c.Tail.Extended(), in.AddAllowanceWithTailExtension)

	c.SpringBackWarning = c.Tail.HasExtension && c.Tail.EffectiveAllowance == 0

	if len(in.Straights) > 0 {
		pieces := bend.Layout(in.Straights, in.Bends, in.StartsWithArc, 0)
		c.Grip.Violations = gripViolations(pieces, in.MinGrip, in.StartsWithArc)
		c.Tail.Violation = tailViolation(pieces, centerline, in.MinTail, in.EndsWithArc)
	}
	if c.Grip.Violations == nil {
		c.Grip.Violations = []int{}
	}

	return c
}

func gripSide(in Inputs) Grip {
	var g Grip
	if in.MinGrip <= 0 {
		return g
	}

	switch {
	case in.StartsWithArc:
		g.SyntheticMaterial = in.MinGrip
		g.HasSynthetic = true
	case len(in.Straights) > 0:
		grip := in.Straights[0].Length
		if grip < in.MinGrip {
			g.SyntheticMaterial = in.MinGrip - grip
			g.HasSynthetic = true
		}
		topped := math.Max(grip, in.MinGrip)
		g.ExtraMaterial = math.Max(0, in.MinGrip-(topped-in.DieOffset))
	}

	if m := g.Material(); m > 0 {
		g.CutPosition = &m
	}
	return g
}

// tailSide needs the start material so a synthetic tail cut can be placed on
// the final tube layout.
func tailSide(in Inputs, centerline, startMaterial float64) Tail {
	var t Tail
	if in.MinTail <= 0 {
		return t
	}

	switch {
	case in.EndsWithArc:
		t.SyntheticMaterial = in.MinTail
		t.HasSynthetic = true
		cut := startMaterial + centerline
		t.CutPosition = &cut
	case len(in.Straights) > 0:
		last := in.Straights[len(in.Straights)-1].Length
		if last < in.MinTail {
			t.ExtraMaterial = in.MinTail - last
			t.HasExtension = true
			cut := 0.0
			for _, s := range in.Straights {
				cut += s.Length
			}
			t.CutPosition = &cut
		}
	}
	return t
}

func effectiveAllowance(base float64, extended, addWithExtension bool) float64 {
	if extended && !addWithExtension {
		return 0
	}
	return base
}

// gripViolations lists bends that start within the first minGrip of the
// original centerline. A leading arc is gripped on synthetic material and is
// never a violation.
func gripViolations(pieces []bend.Piece, minGrip float64, startsWithArc bool) []int {
	if minGrip <= 0 {
		return nil
	}
	var out []int
	for i, p := range pieces {
		if startsWithArc && i == 0 {
			continue
		}
		if p.Kind == path.Arc && p.StartAt < minGrip {
			out = append(out, p.Index)
		}
	}
	return out
}

// tailViolation reports whether less than minTail of centerline follows the
// final bend. A trailing arc is followed by synthetic tail material.
func tailViolation(pieces []bend.Piece, centerline, minTail float64, endsWithArc bool) bool {
	if minTail <= 0 || endsWithArc {
		return false
	}
	for i := len(pieces) - 1; i >= 0; i-- {
		if pieces[i].Kind == path.Arc {
			return centerline-pieces[i].EndAt < minTail
		}
	}
	return false
}
