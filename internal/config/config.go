// Package config assembles the generation settings from defaults, a YAML job
// file, GOBEND_* environment variables and command line flags, in that order
// of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gobend/internal/logging"
	"github.com/philipparndt/gobend/pkg/geometry"
	"github.com/philipparndt/gobend/pkg/path"
	"github.com/philipparndt/gobend/pkg/sheet"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full set of generation settings
type Config struct {
	ConnectivityTolerance float64 `yaml:"connectivity_tolerance"`
	CLRToleranceRatio     float64 `yaml:"clr_tolerance_ratio"`
	CLRMinTolerance       float64 `yaml:"clr_min_tolerance"`

	MinGrip   float64 `yaml:"min_grip"`
	MinTail   float64 `yaml:"min_tail"`
	DieOffset float64 `yaml:"die_offset"`

	StartAllowance                float64 `yaml:"start_allowance"`
	EndAllowance                  float64 `yaml:"end_allowance"`
	AddAllowanceWithGripExtension bool    `yaml:"add_allowance_with_grip_extension"`
	AddAllowanceWithTailExtension bool    `yaml:"add_allowance_with_tail_extension"`

	AxisPreference string `yaml:"axis_preference"`
	Reverse        bool   `yaml:"reverse"`

	Catalog string `yaml:"catalog"`
	Bender  string `yaml:"bender"`
	Die     string `yaml:"die"`

	Logging logging.Config `yaml:"logging"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		ConnectivityTolerance: geometry.ConnectivityTolerance,
		CLRToleranceRatio:     geometry.CLRToleranceRatio,
		CLRMinTolerance:       geometry.CLRMinTolerance,
		AxisPreference:        string(path.PolicyAuto),
		Logging:               logging.DefaultConfig(),
	}
}

// LoadFile overlays a YAML job file on c. Unknown keys are rejected.
func (c *Config) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return fmt.Errorf("failed to parse job file %s: %w", filename, err)
	}
	return nil
}

// Load builds the configuration. jobFile may be empty; flags may be nil.
func Load(jobFile string, flags *Flags, lookup LookupFunc) (Config, error) {
	cfg := Default()
	if jobFile != "" {
		if err := cfg.LoadFile(jobFile); err != nil {
			return Config{}, err
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	if flags != nil {
		flags.Apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot use
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"connectivity_tolerance": c.ConnectivityTolerance,
		"clr_tolerance_ratio":    c.CLRToleranceRatio,
		"clr_min_tolerance":      c.CLRMinTolerance,
		"min_grip":               c.MinGrip,
		"min_tail":               c.MinTail,
		"die_offset":             c.DieOffset,
		"start_allowance":        c.StartAllowance,
		"end_allowance":          c.EndAllowance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %g", ErrInvalid, name, v)
		}
	}
	if c.ConnectivityTolerance <= 0 {
		return fmt.Errorf("%w: connectivity_tolerance must be positive, got %g", ErrInvalid, c.ConnectivityTolerance)
	}
	for name, v := range map[string]float64{
		"clr_tolerance_ratio": c.CLRToleranceRatio,
		"clr_min_tolerance":   c.CLRMinTolerance,
		"min_grip":            c.MinGrip,
		"min_tail":            c.MinTail,
		"die_offset":          c.DieOffset,
		"start_allowance":     c.StartAllowance,
		"end_allowance":       c.EndAllowance,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s cannot be negative, got %g", ErrInvalid, name, v)
		}
	}
	if _, err := path.ParsePolicy(c.AxisPreference); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Die != "" && c.Bender == "" {
		return fmt.Errorf("%w: die %q given without a bender", ErrInvalid, c.Die)
	}
	if c.Bender != "" && c.Catalog == "" {
		return fmt.Errorf("%w: bender %q given without a catalog", ErrInvalid, c.Bender)
	}
	return nil
}

// SheetOptions converts the settings into generator options. Bender and die
// are resolved separately against the catalog.
func (c Config) SheetOptions() (sheet.Options, error) {
	policy, err := path.ParsePolicy(c.AxisPreference)
	if err != nil {
		return sheet.Options{}, err
	}
	return sheet.Options{
		ConnectivityTolerance:         c.ConnectivityTolerance,
		CLRToleranceRatio:             c.CLRToleranceRatio,
		CLRMinTolerance:               c.CLRMinTolerance,
		MinGrip:                       c.MinGrip,
		MinTail:                       c.MinTail,
		DieOffset:                     c.DieOffset,
		StartAllowance:                c.StartAllowance,
		EndAllowance:                  c.EndAllowance,
		AddAllowanceWithGripExtension: c.AddAllowanceWithGripExtension,
		AddAllowanceWithTailExtension: c.AddAllowanceWithTailExtension,
		Direction:                     path.DirectionOptions{Policy: policy, Reverse: c.Reverse},
	}, nil
}
