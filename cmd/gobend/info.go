package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/pkg/analysis"
	"github.com/philipparndt/gobend/pkg/extract"
	"github.com/philipparndt/gobend/pkg/sketch"
)

var infoCmd = &cobra.Command{
	Use:   "info [sketch]",
	Short: "Display general information about a sketch",
	Long:  "Show element counts, straight lengths, radii, extents and the traversal order without computing bends.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]
	cfg, logger := loadSettings()
	defer logger.Sync()

	s, result, err := inspectFile(filename, cfg.ConnectivityTolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printInfo(os.Stdout, filename, s, result)
}

func inspectFile(filename string, tolerance float64) (*sketch.Sketch, *analysis.PathSummary, error) {
	s, err := sketch.Parse(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse sketch: %w", err)
	}
	elements, err := extract.ExtractAll(s.Handles())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read geometry: %w", err)
	}
	return s, analysis.AnalyzeElements(elements, tolerance), nil
}

func printInfo(w io.Writer, filename string, s *sketch.Sketch, result *analysis.PathSummary) {
	fmt.Fprintln(w, "Sketch Information")
	fmt.Fprintln(w, "==================")
	if s.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", s.Name)
	}
	if s.Component != "" {
		fmt.Fprintf(w, "Component: %s\n", s.Component)
	}
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintln(w, "Elements:")
	fmt.Fprintf(w, "  Total: %d\n", result.ElementCount)
	fmt.Fprintf(w, "  Lines: %d\n", result.LineCount)
	fmt.Fprintf(w, "  Arcs: %d\n", result.ArcCount)
	fmt.Fprintf(w, "  Centerline length: %.6f units\n\n", result.TotalLength)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(w, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(w, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(w, "  Height (Z): %.6f units\n\n", result.Dimensions.Z)

	if result.LineCount > 0 {
		fmt.Fprintln(w, "Straight Lengths:")
		fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinLineLength)
		fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxLineLength)
		fmt.Fprintf(w, "  Average: %.6f units\n", result.AvgLineLength)
		for _, line := range analysis.FindShortestLines(result, 3) {
			fmt.Fprintf(w, "  Shortest %s: %s\n", line.ID, analysis.FormatMeasurement(line.Length, ""))
		}
		for _, line := range analysis.FindLongestLines(result, 3) {
			fmt.Fprintf(w, "  Longest %s: %s\n", line.ID, analysis.FormatMeasurement(line.Length, ""))
		}
		fmt.Fprintln(w)
	}
	if result.ArcCount > 0 {
		fmt.Fprintln(w, "Arc Radii:")
		fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinRadius)
		fmt.Fprintf(w, "  Maximum: %.6f units\n\n", result.MaxRadius)
	}

	fmt.Fprintln(w, "Path:")
	if !result.Ordered {
		fmt.Fprintf(w, "  Not a single path: %v\n", result.OrderError)
		return
	}
	fmt.Fprintf(w, "  Order: %v\n", result.Order)
	fmt.Fprintf(w, "  Free ends: %s and %s\n",
		analysis.FormatVector(result.FreeEnds[0]), analysis.FormatVector(result.FreeEnds[1]))
}
