package bend

import (
	"math"

	"github.com/philipparndt/gobend/pkg/path"
)

// CLRResult is the outcome of checking arc radii for consistency.
// Mismatch is a warning; Values keeps every radius in path order.
type CLRResult struct {
	CLR      float64   `json:"clr" yaml:"clr"`
	Mismatch bool      `json:"mismatch" yaml:"mismatch"`
	Values   []float64 `json:"values" yaml:"values"`
}

// ValidateRadii checks that all radii agree with the first one.
//
// A radius mismatches when it differs from the first by more than
// max(ratio*clr, floor). No radii yields a zero CLR without mismatch. An
// unusable first radius (NaN, infinite or not positive) yields a zero CLR
// with mismatch set.
func ValidateRadii(radii []float64, ratio, floor float64) CLRResult {
	if len(radii) == 0 {
		return CLRResult{Values: []float64{}}
	}
	values := append([]float64(nil), radii...)

	clr := values[0]
	if !usable(clr) {
		return CLRResult{CLR: 0, Mismatch: true, Values: values}
	}

	tolerance := math.Max(clr*ratio, floor)
	mismatch := false
	for _, r := range values {
		if math.IsNaN(r) || math.IsInf(r, 0) || math.Abs(r-clr) > tolerance {
			mismatch = true
			break
		}
	}
	return CLRResult{CLR: clr, Mismatch: mismatch, Values: values}
}

// ValidateCLR checks the radii of every arc along the path
func ValidateCLR(p path.OrderedPath, ratio, floor float64) CLRResult {
	arcs := p.Arcs()
	radii := make([]float64, len(arcs))
	for i, a := range arcs {
		radii[i] = a.Element.Radius
	}
	return ValidateRadii(radii, ratio, floor)
}

// CheckCLR fails with *InvalidCLRError when arcs exist but the CLR is unusable
func CheckCLR(clr float64, arcs int) error {
	if arcs > 0 && !usable(clr) {
		return &InvalidCLRError{CLR: clr, Arcs: arcs}
	}
	return nil
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
