package path

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// Axis is a principal coordinate axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	return [...]string{"X", "Y", "Z"}[a]
}

// Labels returns the names of the negative and positive travel directions
func (a Axis) Labels() (negative, positive string) {
	switch a {
	case AxisX:
		return "Left", "Right"
	case AxisY:
		return "Bottom", "Top"
	default:
		return "Front", "Back"
	}
}

// Policy selects how the canonical travel direction is chosen
type Policy string

const (
	// PolicyAuto travels toward the positive end of the axis with the largest
	// start-to-end displacement
	PolicyAuto Policy = "auto"
	// PolicyX, PolicyY and PolicyZ travel toward the positive end of that axis
	PolicyX Policy = "x"
	PolicyY Policy = "y"
	PolicyZ Policy = "z"
	// PolicyLongerStart starts from the free end with the longer straight,
	// giving the bender the most grip before the first bend
	PolicyLongerStart Policy = "longer-start"
)

// ParsePolicy converts a configuration string into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyAuto, nil
	case PolicyAuto, PolicyX, PolicyY, PolicyZ, PolicyLongerStart:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// DirectionOptions carries the direction policy. Reverse flips whatever the
// policy decided, which is how a user picks the opposite travel direction.
type DirectionOptions struct {
	Policy  Policy
	Reverse bool
}

// Direction is a path in its canonical travel direction plus labels
type Direction struct {
	Path     OrderedPath
	Axis     Axis
	Travel   string // e.g. "Right"
	Opposite string // e.g. "Left"
	Reversed bool   // whether Path is the reverse of the input
}

// Normalize orients the path according to the policy, reversing the whole
// sequence when the policy disagrees with the input order.
func Normalize(p OrderedPath, opts DirectionOptions) (Direction, error) {
	if p.Len() == 0 {
		return Direction{}, ErrEmptyPath
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyAuto
	}

	disp := p.EndPoint().Sub(p.StartPoint())
	axis := Axis(geometry.DominantAxis(disp))

	var reverse bool
	switch policy {
	case PolicyAuto:
		reverse = disp.Component(int(axis)) < 0
	case PolicyX, PolicyY, PolicyZ:
		axis = map[Policy]Axis{PolicyX: AxisX, PolicyY: AxisY, PolicyZ: AxisZ}[policy]
		reverse = disp.Component(int(axis)) < 0
	case PolicyLongerStart:
		reverse = freeStraight(p.Last()) > freeStraight(p.First())
	default:
		return Direction{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(policy))
	}
	if opts.Reverse {
		reverse = !reverse
	}

	if reverse {
		p = p.Reverse()
		disp = disp.Neg()
	}

	neg, pos := axis.Labels()
	travel, opposite := neg, pos
	if disp.Component(int(axis)) > 0 {
		travel, opposite = pos, neg
	}

	return Direction{
		Path:     p,
		Axis:     axis,
		Travel:   travel,
		Opposite: opposite,
		Reversed: reverse,
	}, nil
}

func freeStraight(s Step) float64 {
	if s.Kind() != Line {
		return 0
	}
	return s.Length()
}
