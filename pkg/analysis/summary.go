package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/path"
)

// LineInfo contains information about a straight element
type LineInfo struct {
	ID     string
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// PathSummary contains measurements of a set of centerline elements
type PathSummary struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	ElementCount  int
	LineCount     int
	ArcCount      int
	TotalLength   float64
	MinLineLength float64
	MaxLineLength float64
	AvgLineLength float64
	MinRadius     float64
	MaxRadius     float64
	AllLines      []LineInfo

	// Ordering is filled when the elements form a single path; OrderError
	// holds the reason otherwise.
	Ordered    bool
	Order      []string
	FreeEnds   [2]geometry.Vector3
	OrderError error
}

// AnalyzeElements measures elements without any bend math
func AnalyzeElements(elements []*path.Element, tolerance float64) *PathSummary {
	result := &PathSummary{
		BoundingBox:  geometry.NewBoundingBox(),
		ElementCount: len(elements),
		AllLines:     make([]LineInfo, 0),
	}

	minLength, maxLength, lineTotal := math.MaxFloat64, 0.0, 0.0
	minRadius, maxRadius := math.MaxFloat64, 0.0

	for _, e := range elements {
		result.BoundingBox.Extend(e.Start)
		result.BoundingBox.Extend(e.End)
		result.TotalLength += e.Length

		if e.IsArc() {
			result.ArcCount++
			minRadius = math.Min(minRadius, e.Radius)
			maxRadius = math.Max(maxRadius, e.Radius)
			continue
		}

		result.LineCount++
		result.AllLines = append(result.AllLines, LineInfo{ID: e.ID, Start: e.Start, End: e.End, Length: e.Length})
		lineTotal += e.Length
		minLength = math.Min(minLength, e.Length)
		maxLength = math.Max(maxLength, e.Length)
	}

	result.Dimensions = result.BoundingBox.Size()
	if result.LineCount > 0 {
		result.MinLineLength = minLength
		result.MaxLineLength = maxLength
		result.AvgLineLength = lineTotal / float64(result.LineCount)
	}
	if result.ArcCount > 0 {
		result.MinRadius = minRadius
		result.MaxRadius = maxRadius
	}

	ordered, err := path.Order(elements, tolerance)
	if err != nil {
		result.OrderError = err
		return result
	}
	result.Ordered = true
	result.Order = ordered.IDs()
	result.FreeEnds = [2]geometry.Vector3{ordered.StartPoint(), ordered.EndPoint()}
	return result
}

// FindLongestLines returns the N longest straight elements
func FindLongestLines(result *PathSummary, count int) []LineInfo {
	return sortedLines(result, count, func(a, b LineInfo) bool { return a.Length > b.Length })
}

// FindShortestLines returns the N shortest straight elements
func FindShortestLines(result *PathSummary, count int) []LineInfo {
	return sortedLines(result, count, func(a, b LineInfo) bool { return a.Length < b.Length })
}

func sortedLines(result *PathSummary, count int, less func(a, b LineInfo) bool) []LineInfo {
	lines := make([]LineInfo, len(result.AllLines))
	copy(lines, result.AllLines)

	sort.SliceStable(lines, func(i, j int) bool {
		return less(lines[i], lines[j])
	})

	if count > len(lines) {
		count = len(lines)
	}
	if count < 0 {
		count = 0
	}

	return lines[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
