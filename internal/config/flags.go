package config

import (
	"github.com/spf13/pflag"
)

// Flags binds command line flags to configuration fields. Only flags the user
// actually set override lower-precedence sources.
type Flags struct {
	fs     *pflag.FlagSet
	values Config
	apply  map[string]func(dst, src *Config)
}

// RegisterFlags adds the generation flags to fs
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, values: Default(), apply: make(map[string]func(dst, src *Config))}
	v := &f.values

	f.float(&v.ConnectivityTolerance, "tolerance", "connectivity tolerance between endpoints",
		func(d, s *Config) { d.ConnectivityTolerance = s.ConnectivityTolerance })
	f.float(&v.CLRToleranceRatio, "clr-ratio", "relative CLR tolerance",
		func(d, s *Config) { d.CLRToleranceRatio = s.CLRToleranceRatio })
	f.float(&v.MinGrip, "min-grip", "minimum grip length (0 disables)",
		func(d, s *Config) { d.MinGrip = s.MinGrip })
	f.float(&v.MinTail, "min-tail", "minimum tail length (0 disables)",
		func(d, s *Config) { d.MinTail = s.MinTail })
	f.float(&v.DieOffset, "die-offset", "die offset",
		func(d, s *Config) { d.DieOffset = s.DieOffset })
	f.float(&v.StartAllowance, "start-allowance", "extra material at the start",
		func(d, s *Config) { d.StartAllowance = s.StartAllowance })
	f.float(&v.EndAllowance, "end-allowance", "extra material at the end",
		func(d, s *Config) { d.EndAllowance = s.EndAllowance })

	fs.BoolVar(&v.AddAllowanceWithGripExtension, "grip-allowance-with-extension", false, "keep the start allowance when grip is extended")
	f.apply["grip-allowance-with-extension"] = func(d, s *Config) { d.AddAllowanceWithGripExtension = s.AddAllowanceWithGripExtension }
	fs.BoolVar(&v.AddAllowanceWithTailExtension, "tail-allowance-with-extension", false, "keep the end allowance when tail is extended")
	f.apply["tail-allowance-with-extension"] = func(d, s *Config) { d.AddAllowanceWithTailExtension = s.AddAllowanceWithTailExtension }
	fs.BoolVar(&v.Reverse, "reverse", false, "reverse the travel direction")
	f.apply["reverse"] = func(d, s *Config) { d.Reverse = s.Reverse }

	f.str(&v.AxisPreference, "axis", "direction policy: auto, x, y, z or longer-start",
		func(d, s *Config) { d.AxisPreference = s.AxisPreference })
	f.str(&v.Catalog, "catalog", "bender catalog (YAML)",
		func(d, s *Config) { d.Catalog = s.Catalog })
	f.str(&v.Bender, "bender", "bender id or name from the catalog",
		func(d, s *Config) { d.Bender = s.Bender })
	f.str(&v.Die, "die", "die id or name from the catalog",
		func(d, s *Config) { d.Die = s.Die })
	f.str(&v.Logging.Level, "log-level", "log level",
		func(d, s *Config) { d.Logging.Level = s.Logging.Level })
	f.str(&v.Logging.Format, "log-format", "log format: console or json",
		func(d, s *Config) { d.Logging.Format = s.Logging.Format })

	return f
}

func (f *Flags) float(p *float64, name, usage string, apply func(d, s *Config)) {
	f.fs.Float64Var(p, name, *p, usage)
	f.apply[name] = apply
}

func (f *Flags) str(p *string, name, usage string, apply func(d, s *Config)) {
	f.fs.StringVar(p, name, *p, usage)
	f.apply[name] = apply
}

// Apply copies every explicitly set flag into c
func (f *Flags) Apply(c *Config) {
	f.fs.Visit(func(fl *pflag.Flag) {
		if apply, ok := f.apply[fl.Name]; ok {
			apply(c, &f.values)
		}
	})
}
