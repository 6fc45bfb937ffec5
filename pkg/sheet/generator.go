// Package sheet runs the bend sheet pipeline: extraction, ordering, direction,
// CLR validation, bend math, grip and tail material and segment layout.
package sheet

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipparndt/gobend/pkg/bend"
	"github.com/philipparndt/gobend/pkg/extract"
	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/material"
	"github.com/philipparndt/gobend/pkg/path"
	"github.com/philipparndt/gobend/pkg/profile"
)

// Options configure one generation
type Options struct {
	ConnectivityTolerance float64
	CLRToleranceRatio     float64
	CLRMinTolerance       float64

	MinGrip   float64
	MinTail   float64
	DieOffset float64

	StartAllowance                float64
	EndAllowance                  float64
	AddAllowanceWithGripExtension bool
	AddAllowanceWithTailExtension bool

	Direction path.DirectionOptions

	// Bender and Die are optional; when Die is set the detected CLR is
	// checked against it.
	Bender *profile.Bender
	Die    *profile.Die
}

// DefaultOptions returns the tolerances used when nothing else is configured
func DefaultOptions() Options {
	return Options{
		ConnectivityTolerance: geometry.ConnectivityTolerance,
		CLRToleranceRatio:     geometry.CLRToleranceRatio,
		CLRMinTolerance:       geometry.CLRMinTolerance,
		Direction:             path.DirectionOptions{Policy: path.PolicyAuto},
	}
}

// Recorder receives generation outcomes, typically for metrics
type Recorder interface {
	RecordGeneration(status string, duration time.Duration)
	RecordWarning(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(string, time.Duration) {}
func (nopRecorder) RecordWarning(string)                   {}

// Generator runs the pipeline. It holds no per-request state and may be
// shared between goroutines.
type Generator struct {
	opts     Options
	logger   *zap.Logger
	recorder Recorder
}

// NewGenerator creates a generator. A nil logger or recorder disables that output.
func NewGenerator(opts Options, logger *zap.Logger, recorder Recorder) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Generator{opts: opts, logger: logger, recorder: recorder}
}

// Generate turns host handles into a bend sheet. It either returns a complete
// result or the first fatal error, unwrapped, so callers can match it with
// errors.As.
func (g *Generator) Generate(handles []extract.Handle) (*Result, error) {
	started := time.Now()
	id := uuid.NewString()
	log := g.logger.With(zap.String("request_id", id))

	result, err := g.generate(handles, log)
	if err != nil {
		g.recorder.RecordGeneration("error", time.Since(started))
		log.Debug("generation failed", zap.Error(err))
		return nil, err
	}
	result.RequestID = id

	for _, w := range result.Warnings {
		g.recorder.RecordWarning(string(w.Kind))
		log.Warn(w.Message, zap.String("kind", string(w.Kind)))
	}
	g.recorder.RecordGeneration("success", time.Since(started))
	log.Info("generated bend sheet",
		zap.Int("bends", len(result.Bends)),
		zap.Int("straights", len(result.Straights)),
		zap.Float64("clr", result.CLR.CLR),
		zap.Float64("total_cut_length", result.TotalCutLength),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

func (g *Generator) generate(handles []extract.Handle, log *zap.Logger) (*Result, error) {
	opts := g.opts

	elements, err := extract.ExtractAll(handles)
	if err != nil {
		return nil, err
	}
	log.Debug("extracted elements", zap.Int("count", len(elements)))

	ordered, err := path.Order(elements, opts.ConnectivityTolerance)
	if err != nil {
		return nil, err
	}
	dir, err := path.Normalize(ordered, opts.Direction)
	if err != nil {
		return nil, err
	}
	p := dir.Path
	log.Debug("ordered path",
		zap.Strings("elements", p.IDs()),
		zap.String("direction", dir.Travel),
		zap.Bool("reversed", dir.Reversed),
	)

	if err := path.ValidateAlternation(p); err != nil {
		return nil, err
	}

	clr := bend.ValidateCLR(p, opts.CLRToleranceRatio, opts.CLRMinTolerance)
	if err := bend.CheckCLR(clr.CLR, len(p.Arcs())); err != nil {
		return nil, err
	}
	records, err := bend.Calculate(p, clr.CLR)
	if err != nil {
		return nil, err
	}
	log.Debug("calculated bends", zap.Int("bends", len(records.Bends)), zap.Float64("clr", clr.CLR))

	calc := material.Calculate(material.Inputs{
		Straights:                     records.Straights,
		Bends:                         records.Bends,
		StartsWithArc:                 p.StartsWithArc(),
		EndsWithArc:                   p.EndsWithArc(),
		MinGrip:                       opts.MinGrip,
		MinTail:                       opts.MinTail,
		DieOffset:                     opts.DieOffset,
		StartAllowance:                opts.StartAllowance,
		EndAllowance:                  opts.EndAllowance,
		AddAllowanceWithGripExtension: opts.AddAllowanceWithGripExtension,
		AddAllowanceWithTailExtension: opts.AddAllowanceWithTailExtension,
	})
	advice := material.ShortStraights(records.Straights, opts.MinGrip, dir.Opposite)

	meta := Metadata{
		ComponentName: extract.ComponentName(handles),
		Axis:          dir.Axis.String(),
		Direction:     dir.Travel,
		Opposite:      dir.Opposite,
		Reversed:      dir.Reversed,
		StartsWithArc: p.StartsWithArc(),
		EndsWithArc:   p.EndsWithArc(),
		Elements:      p.Len(),
	}
	if opts.Bender != nil {
		meta.BenderName = opts.Bender.Name
	}
	var dieMismatch bool
	if opts.Die != nil {
		meta.DieName = opts.Die.Name
		if len(records.Bends) > 0 {
			ok := opts.Die.MatchesCLR(clr.CLR, geometry.DieCLRMatchTolerance)
			meta.DieMatchesCLR = &ok
			dieMismatch = !ok
		}
	}

	result := SegmentBuilder{
		Metadata:  meta,
		Records:   records,
		CLR:       clr,
		Material:  calc,
		Advice:    advice,
		DieOffset: opts.DieOffset,
	}.Build()
	result.Warnings = collectWarnings(result, opts, dieMismatch)
	return result, nil
}

func collectWarnings(r *Result, opts Options, dieMismatch bool) []Warning {
	warnings := []Warning{}
	add := func(kind WarningKind, format string, args ...any) {
		warnings = append(warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
	}

	if r.CLR.Mismatch {
		add(WarnCLRMismatch, "arc radii differ: %v (using %.3f)", r.CLR.Values, r.CLR.CLR)
	}
	if dieMismatch {
		add(WarnDieMismatch, "die %s has CLR %.3f but the path uses %.3f", opts.Die.Name, opts.Die.CLR, r.CLR.CLR)
	}
	if v := r.Material.Grip.Violations; len(v) > 0 {
		add(WarnGripViolation, "bends %v start within the minimum grip of %.2f", v, opts.MinGrip)
	}
	if r.Material.Tail.Violation {
		add(WarnTailViolation, "less than the minimum tail of %.2f follows the last bend", opts.MinTail)
	}
	if r.Material.SpringBackWarning {
		add(WarnSpringBack, "tail was extended but no end allowance is left for spring back")
	}
	if !r.Advice.CurrentValid {
		msg := r.Advice.Message
		if r.Advice.Suggestion != "" {
			msg += " " + r.Advice.Suggestion
		}
		add(WarnShortStraight, "%s", msg)
	}
	return warnings
}
