// Package profile reads the bender and die catalog. The catalog is read-only:
// it is loaded lazily from a YAML file and never written back.
package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// Die is one bending die
type Die struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	TubeOD  float64 `yaml:"tube_od" json:"tube_od"`
	CLR     float64 `yaml:"clr" json:"clr"`
	Offset  float64 `yaml:"offset" json:"offset"`
	MinTail float64 `yaml:"min_tail" json:"min_tail"`
	Notes   string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// MatchesCLR reports whether the die CLR is within tolerance of clr.
// Invalid input never matches.
func (d Die) MatchesCLR(clr, tolerance float64) bool {
	if math.IsNaN(clr) || math.IsNaN(tolerance) || math.IsNaN(d.CLR) {
		return false
	}
	if clr <= 0 || tolerance < 0 {
		return false
	}
	return math.Abs(d.CLR-clr) <= tolerance
}

func (d Die) String() string {
	return fmt.Sprintf("%s (OD %.3f, CLR %.3f, offset %.3f)", d.Name, d.TubeOD, d.CLR, d.Offset)
}

// Bender is one tube bender with its dies
type Bender struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	MinGrip float64 `yaml:"min_grip" json:"min_grip"`
	Dies    []Die   `yaml:"dies" json:"dies"`
	Notes   string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Die finds a die by id or, failing that, by case-insensitive name
func (b Bender) Die(ref string) (Die, bool) {
	for _, d := range b.Dies {
		if d.ID == ref {
			return d, true
		}
	}
	for _, d := range b.Dies {
		if strings.EqualFold(d.Name, ref) {
			return d, true
		}
	}
	return Die{}, false
}

// FindDieForCLR returns the first die matching clr within tolerance.
// A tolerance of 0 uses geometry.DieCLRMatchTolerance.
func (b Bender) FindDieForCLR(clr, tolerance float64) (Die, bool) {
	if tolerance == 0 {
		tolerance = geometry.DieCLRMatchTolerance
	}
	for _, d := range b.Dies {
		if d.MatchesCLR(clr, tolerance) {
			return d, true
		}
	}
	return Die{}, false
}
