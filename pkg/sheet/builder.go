package sheet

import (
	"fmt"

	"github.com/philipparndt/gobend/pkg/bend"
	"github.com/philipparndt/gobend/pkg/material"
	"github.com/philipparndt/gobend/pkg/path"
)

// SegmentBuilder assembles computed records into a Result. It performs no
// validation of its own.
type SegmentBuilder struct {
	Metadata  Metadata
	Records   *bend.Result
	CLR       bend.CLRResult
	Material  material.Calculation
	Advice    material.Advice
	DieOffset float64
}

// Build lays out segments and marks and computes the totals
func (b SegmentBuilder) Build() *Result {
	records := b.Records
	if records == nil {
		records = &bend.Result{}
	}

	start := b.Material.Grip.EffectiveAllowance + b.Material.Grip.Material()
	pieces := bend.Layout(records.Straights, records.Bends, b.Metadata.StartsWithArc, start)

	segments := make([]PathSegment, 0, len(pieces))
	marks := make([]MarkPosition, 0, len(records.Bends))
	for i, p := range pieces {
		switch p.Kind {
		case path.Line:
			s := PathSegment{
				Kind:     SegmentStraight,
				Name:     fmt.Sprintf("Straight %d", p.Index),
				Length:   p.Length,
				StartsAt: p.StartAt,
				EndsAt:   p.EndAt,
			}
			if i+1 < len(pieces) && pieces[i+1].Kind == path.Arc {
				s.Rotation = records.Bends[pieces[i+1].Index-1].Rotation
			}
			segments = append(segments, s)
		case path.Arc:
			bd := records.Bends[p.Index-1]
			angle := bd.Angle
			segments = append(segments, PathSegment{
				Kind:      SegmentBend,
				Name:      fmt.Sprintf("BEND %d", p.Index),
				Length:    p.Length,
				StartsAt:  p.StartAt,
				EndsAt:    p.EndAt,
				BendAngle: &angle,
			})
			marks = append(marks, MarkPosition{
				Bend:     bd.Index,
				Position: p.StartAt - b.DieOffset,
				Angle:    bd.Angle,
				Rotation: bd.Rotation,
			})
		}
	}

	centerline := bend.CenterlineLength(records.Straights, records.Bends)
	m := b.Material
	cut := centerline +
		m.Grip.ExtraMaterial + m.Tail.ExtraMaterial +
		m.Grip.SyntheticMaterial + m.Tail.SyntheticMaterial +
		m.Grip.EffectiveAllowance + m.Tail.EffectiveAllowance

	return &Result{
		Metadata:              b.Metadata,
		Straights:             records.Straights,
		Bends:                 records.Bends,
		CLR:                   b.CLR,
		Material:              b.Material,
		Advice:                b.Advice,
		Segments:              segments,
		Marks:                 marks,
		TotalCenterlineLength: centerline,
		TotalCutLength:        cut,
		Warnings:              []Warning{},
	}
}
