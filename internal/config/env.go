package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv
const EnvPrefix = "GOBEND_"

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

type envValues struct {
	values map[string]string
}

func loadEnv(lookup LookupFunc, keys []string) envValues {
	e := envValues{values: make(map[string]string)}
	for _, key := range keys {
		if value, ok := lookup(EnvPrefix + key); ok && value != "" {
			e.values[key] = value
		}
	}
	return e
}

func (e envValues) getString(key string, target *string) {
	if value, exists := e.values[key]; exists {
		*target = value
	}
}

func (e envValues) getFloat(key string, target *float64) error {
	if value, exists := e.values[key]; exists {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a number", ErrInvalid, EnvPrefix, key, value)
		}
		*target = f
	}
	return nil
}

func (e envValues) getBool(key string, target *bool) error {
	if value, exists := e.values[key]; exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalid, EnvPrefix, key, value)
		}
		*target = b
	}
	return nil
}

// ApplyEnv overlays GOBEND_* environment variables on c
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	floats := map[string]*float64{
		"CONNECTIVITY_TOLERANCE": &c.ConnectivityTolerance,
		"CLR_TOLERANCE_RATIO":    &c.CLRToleranceRatio,
		"CLR_MIN_TOLERANCE":      &c.CLRMinTolerance,
		"MIN_GRIP":               &c.MinGrip,
		"MIN_TAIL":               &c.MinTail,
		"DIE_OFFSET":             &c.DieOffset,
		"START_ALLOWANCE":        &c.StartAllowance,
		"END_ALLOWANCE":          &c.EndAllowance,
	}
	bools := map[string]*bool{
		"ADD_ALLOWANCE_WITH_GRIP_EXTENSION": &c.AddAllowanceWithGripExtension,
		"ADD_ALLOWANCE_WITH_TAIL_EXTENSION": &c.AddAllowanceWithTailExtension,
		"REVERSE":                           &c.Reverse,
		"LOG_DEVELOPMENT":                   &c.Logging.Development,
	}
	strings := map[string]*string{
		"AXIS_PREFERENCE": &c.AxisPreference,
		"CATALOG":         &c.Catalog,
		"BENDER":          &c.Bender,
		"DIE":             &c.Die,
		"LOG_LEVEL":       &c.Logging.Level,
		"LOG_FORMAT":      &c.Logging.Format,
		"LOG_OUTPUT":      &c.Logging.OutputPath,
	}

	keys := make([]string, 0, len(floats)+len(bools)+len(strings))
	for k := range floats {
		keys = append(keys, k)
	}
	for k := range bools {
		keys = append(keys, k)
	}
	for k := range strings {
		keys = append(keys, k)
	}
	env := loadEnv(lookup, keys)

	for k, target := range floats {
		if err := env.getFloat(k, target); err != nil {
			return err
		}
	}
	for k, target := range bools {
		if err := env.getBool(k, target); err != nil {
			return err
		}
	}
	for k, target := range strings {
		env.getString(k, target)
	}
	return nil
}
