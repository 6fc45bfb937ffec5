package material

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gobend/pkg/bend"
)

// Advice reports interior straights too short to grip and whether bending
// from the other end would avoid them.
type Advice struct {
	Violations    []int  `json:"violations" yaml:"violations"`
	CurrentValid  bool   `json:"current_valid" yaml:"current_valid"`
	ReversedValid bool   `json:"reversed_valid" yaml:"reversed_valid"`
	CanFabricate  bool   `json:"can_fabricate" yaml:"can_fabricate"`
	Message       string `json:"message,omitempty" yaml:"message,omitempty"`
	Suggestion    string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// ShortStraights checks that every straight the bender must clamp between two
// bends is at least minGrip long. The free end straights are exempt: the
// grip end can be extended and the tail end is never clamped. opposite is the
// travel label of the reversed direction, used in the suggestion.
func ShortStraights(straights []bend.StraightRecord, minGrip float64, opposite string) Advice {
	current := shortInterior(straights, minGrip)

	reversed := make([]bend.StraightRecord, len(straights))
	for i, s := range straights {
		reversed[len(straights)-1-i] = s
	}
	flipped := shortInterior(reversed, minGrip)

	a := Advice{
		Violations:    current,
		CurrentValid:  len(current) == 0,
		ReversedValid: len(flipped) == 0,
	}
	a.CanFabricate = a.CurrentValid || a.ReversedValid

	switch {
	case a.CurrentValid:
	case a.ReversedValid:
		a.Message = fmt.Sprintf("In current direction: %s shorter than min grip (%.2f)", sections(current), minGrip)
		a.Suggestion = fmt.Sprintf("This path can be fabricated if you reverse the direction to %q.", opposite)
	default:
		a.Message = fmt.Sprintf("%s shorter than minimum grip (%.2f). This bend sequence cannot be fabricated in either direction.",
			sections(current), minGrip)
		a.Suggestion = "Consider redesigning the path with longer straight sections between bends."
	}
	if a.Violations == nil {
		a.Violations = []int{}
	}
	return a
}

func shortInterior(straights []bend.StraightRecord, minGrip float64) []int {
	if minGrip <= 0 || len(straights) <= 2 {
		return nil
	}
	var out []int
	for _, s := range straights[1 : len(straights)-1] {
		if s.Length < minGrip {
			out = append(out, s.Index)
		}
	}
	return out
}

func sections(indices []int) string {
	names := make([]string, len(indices))
	for i, n := range indices {
		names[i] = fmt.Sprintf("Straight %d", n)
	}
	return strings.Join(names, ", ")
}
