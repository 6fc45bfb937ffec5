package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/logging"
	"github.com/philipparndt/gobend/pkg/profile"
	"github.com/philipparndt/gobend/pkg/sheet"
)

// loadSettings resolves the configuration and logger, exiting on error
func loadSettings() (config.Config, *zap.Logger) {
	cfg, err := config.Load(jobFile, configFlags, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg, logging.MustLogger(cfg.Logging)
}

// generatorOptions converts cfg into generator options and resolves the
// selected bender and die. Catalog limits fill in minimums left at zero.
func generatorOptions(cfg config.Config, logger *zap.Logger) (sheet.Options, error) {
	opts, err := cfg.SheetOptions()
	if err != nil {
		return sheet.Options{}, err
	}
	if cfg.Bender == "" {
		return opts, nil
	}

	catalog := profile.NewCatalog(cfg.Catalog, logger)
	if cfg.Die == "" {
		b, err := catalog.Bender(cfg.Bender)
		if err != nil {
			return sheet.Options{}, err
		}
		opts.Bender = &b
	} else {
		b, d, err := catalog.Select(cfg.Bender, cfg.Die)
		if err != nil {
			return sheet.Options{}, err
		}
		opts.Bender, opts.Die = &b, &d
		if opts.MinTail == 0 {
			opts.MinTail = d.MinTail
		}
		if opts.DieOffset == 0 {
			opts.DieOffset = d.Offset
		}
	}
	if opts.MinGrip == 0 {
		opts.MinGrip = opts.Bender.MinGrip
	}
	return opts, nil
}
