package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/metrics"
	"github.com/philipparndt/gobend/pkg/sheet"
	"github.com/philipparndt/gobend/pkg/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [sketch]",
	Short: "Regenerate the bend sheet whenever the sketch changes",
	Long: `Generate the bend sheet once, then again every time the sketch or the job file
given with --config is saved. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&outputFormat, "format", "f", "summary", "output format: summary, yaml or json")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "delay before regenerating after a change")
}

// regenerator reruns generation for watch mode. A changed job file is
// reloaded first; a job file that fails to load keeps the previous settings.
type regenerator struct {
	mu       sync.Mutex
	filename string
	jobFile  string
	flags    *config.Flags
	lookup   config.LookupFunc
	cfg      config.Config
	format   string
	logger   *zap.Logger
	recorder sheet.Recorder
	out      io.Writer
	errOut   io.Writer
}

func (r *regenerator) run(changed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.jobFile != "" && changed == r.jobFile {
		reloaded, err := config.Load(r.jobFile, r.flags, r.lookup)
		if err != nil {
			fmt.Fprintf(r.errOut, "Error loading configuration: %v\n", err)
			return err
		}
		r.cfg = reloaded
	}

	result, err := generateFile(r.filename, r.cfg, r.logger, r.recorder)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return err
	}
	if err := writeResult(r.out, result, r.format); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return err
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]
	cfg, logger := loadSettings()
	defer logger.Sync()

	regen := &regenerator{
		filename: filename,
		jobFile:  jobFile,
		flags:    configFlags,
		cfg:      cfg,
		format:   outputFormat,
		logger:   logger,
		recorder: metrics.NewRecorder(),
		out:      os.Stdout,
		errOut:   os.Stderr,
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filename}, func(string) { _ = regen.run(filename) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if jobFile != "" {
		if err := fw.Watch([]string{jobFile}, func(string) { _ = regen.run(jobFile) }); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	fw.Start()

	_ = regen.run(filename)
	logger.Info("watching for changes", zap.String("file", filename), zap.String("config", jobFile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logger.Info("stopped watching", zap.String("file", filename))
}
