package sheet

import (
	"github.com/philipparndt/gobend/pkg/bend"
	"github.com/philipparndt/gobend/pkg/material"
)

// SegmentKind names a segment type on the sheet
type SegmentKind string

const (
	SegmentStraight SegmentKind = "straight"
	SegmentBend     SegmentKind = "bend"
)

// PathSegment is one straight or bend laid out along the cut tube.
// A straight carries the rotation to apply before the bend that follows it.
type PathSegment struct {
	Kind      SegmentKind `json:"kind" yaml:"kind"`
	Name      string      `json:"name" yaml:"name"`
	Length    float64     `json:"length" yaml:"length"`
	StartsAt  float64     `json:"starts_at" yaml:"starts_at"`
	EndsAt    float64     `json:"ends_at" yaml:"ends_at"`
	BendAngle *float64    `json:"bend_angle,omitempty" yaml:"bend_angle,omitempty"`
	Rotation  *float64    `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// MarkPosition is where to mark the tube for one bend, measured from the
// start of the cut tube.
type MarkPosition struct {
	Bend     int      `json:"bend" yaml:"bend"`
	Position float64  `json:"position" yaml:"position"`
	Angle    float64  `json:"angle" yaml:"angle"`
	Rotation *float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// Metadata describes the path a sheet was generated from
type Metadata struct {
	ComponentName string `json:"component_name" yaml:"component_name"`
	Axis          string `json:"axis" yaml:"axis"`
	Direction     string `json:"direction" yaml:"direction"`
	Opposite      string `json:"opposite" yaml:"opposite"`
	Reversed      bool   `json:"reversed" yaml:"reversed"`
	StartsWithArc bool   `json:"starts_with_arc" yaml:"starts_with_arc"`
	EndsWithArc   bool   `json:"ends_with_arc" yaml:"ends_with_arc"`
	Elements      int    `json:"elements" yaml:"elements"`
	BenderName    string `json:"bender,omitempty" yaml:"bender,omitempty"`
	DieName       string `json:"die,omitempty" yaml:"die,omitempty"`
	DieMatchesCLR *bool  `json:"die_matches_clr,omitempty" yaml:"die_matches_clr,omitempty"`
}

// WarningKind classifies a non-fatal finding
type WarningKind string

const (
	WarnCLRMismatch   WarningKind = "clr_mismatch"
	WarnGripViolation WarningKind = "grip_violation"
	WarnTailViolation WarningKind = "tail_violation"
	WarnSpringBack    WarningKind = "spring_back"
	WarnShortStraight WarningKind = "short_straight"
	WarnDieMismatch   WarningKind = "die_mismatch"
)

// Warning is a finding that does not stop generation
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

// Result is a complete bend sheet. It is not modified after Build returns.
type Result struct {
	RequestID             string                `json:"request_id" yaml:"request_id"`
	Metadata              Metadata              `json:"metadata" yaml:"metadata"`
	Straights             []bend.StraightRecord `json:"straights" yaml:"straights"`
	Bends                 []bend.BendRecord     `json:"bends" yaml:"bends"`
	CLR                   bend.CLRResult        `json:"clr" yaml:"clr"`
	Material              material.Calculation  `json:"material" yaml:"material"`
	Advice                material.Advice       `json:"advice" yaml:"advice"`
	Segments              []PathSegment         `json:"segments" yaml:"segments"`
	Marks                 []MarkPosition        `json:"marks" yaml:"marks"`
	TotalCenterlineLength float64               `json:"total_centerline_length" yaml:"total_centerline_length"`
	TotalCutLength        float64               `json:"total_cut_length" yaml:"total_cut_length"`
	Warnings              []Warning             `json:"warnings" yaml:"warnings"`
}
