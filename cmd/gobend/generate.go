package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/metrics"
	"github.com/philipparndt/gobend/pkg/sheet"
	"github.com/philipparndt/gobend/pkg/sketch"
)

var (
	outputFormat string
	metricsOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate [sketch]",
	Short: "Generate a bend sheet from a sketch",
	Long: `Order the sketch into a single path, compute every bend and straight and print
the bend sheet. Use --format yaml or --format json for the complete result.`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFormat, "format", "f", "summary", "output format: summary, yaml or json")
	generateCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write Prometheus metrics to this text file")
}

func runGenerate(cmd *cobra.Command, args []string) {
	filename := args[0]
	cfg, logger := loadSettings()
	defer logger.Sync()

	recorder := metrics.NewRecorder()
	result, err := generateFile(filename, cfg, logger, recorder)
	if metricsOut != "" {
		if werr := recorder.WriteToTextfile(metricsOut); werr != nil {
			logger.Warn("failed to write metrics", zap.String("file", metricsOut), zap.Error(werr))
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeResult(os.Stdout, result, outputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateFile(filename string, cfg config.Config, logger *zap.Logger, recorder sheet.Recorder) (*sheet.Result, error) {
	s, err := sketch.Parse(filename)
	if err != nil {
		return nil, err
	}
	opts, err := generatorOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed sketch", zap.String("file", filename), zap.Int("entities", s.EntityCount()))
	return sheet.NewGenerator(opts, logger, recorder).Generate(s.Handles())
}

func writeResult(w io.Writer, result *sheet.Result, format string) error {
	switch strings.ToLower(format) {
	case "summary", "":
		printSummary(w, result)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printSummary(w io.Writer, r *sheet.Result) {
	m := r.Metadata
	fmt.Fprintln(w, "Bend Sheet")
	fmt.Fprintln(w, "==========")
	if m.ComponentName != "" {
		fmt.Fprintf(w, "Component: %s\n", m.ComponentName)
	}
	fmt.Fprintf(w, "Direction: %s along %s (reversed: %t)\n", m.Direction, m.Axis, m.Reversed)
	if m.BenderName != "" {
		fmt.Fprintf(w, "Bender: %s\n", m.BenderName)
	}
	if m.DieName != "" {
		fmt.Fprintf(w, "Die: %s\n", m.DieName)
	}
	fmt.Fprintf(w, "CLR: %.3f\n\n", r.CLR.CLR)

	fmt.Fprintln(w, "Segments:")
	for _, s := range r.Segments {
		fmt.Fprintf(w, "  %-4s %10.3f  [%10.3f - %10.3f]", s.Name, s.Length, s.StartsAt, s.EndsAt)
		if s.BendAngle != nil {
			fmt.Fprintf(w, "  angle %7.2f°", *s.BendAngle)
		}
		if s.Rotation != nil {
			fmt.Fprintf(w, "  rotate %7.2f°", *s.Rotation)
		}
		fmt.Fprintln(w)
	}

	if len(r.Marks) > 0 {
		fmt.Fprintln(w, "\nMarks:")
		for _, mark := range r.Marks {
			fmt.Fprintf(w, "  B%-3d at %10.3f  angle %7.2f°", mark.Bend, mark.Position, mark.Angle)
			if mark.Rotation != nil {
				fmt.Fprintf(w, "  rotate %7.2f°", *mark.Rotation)
			}
			fmt.Fprintln(w)
		}
	}

	g, t := r.Material.Grip, r.Material.Tail
	fmt.Fprintln(w, "\nMaterial:")
	fmt.Fprintf(w, "  Start allowance: %.3f\n", g.EffectiveAllowance)
	fmt.Fprintf(w, "  Grip material: %.3f\n", g.Material())
	fmt.Fprintf(w, "  Centerline: %.3f\n", r.TotalCenterlineLength)
	fmt.Fprintf(w, "  Tail material: %.3f\n", t.Material())
	fmt.Fprintf(w, "  End allowance: %.3f\n", t.EffectiveAllowance)
	fmt.Fprintf(w, "  Cut length: %.3f\n", r.TotalCutLength)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", warning.Kind, warning.Message)
		}
	}
	if r.Advice.Suggestion != "" {
		fmt.Fprintf(w, "\nSuggestion: %s\n", r.Advice.Suggestion)
	}
}
