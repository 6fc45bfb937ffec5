package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/version"
)

var (
	jobFile     string
	configFlags *config.Flags
)

var rootCmd = &cobra.Command{
	Use:   "gobend",
	Short: "Generate tube bend sheets from centerline sketches",
	Long: `gobend turns the centerline of a bent tube, drawn as connected lines and arcs,
into a bend sheet: straight lengths, bend angles, rotations between bends,
grip and tail material, mark positions and the total cut length.

Sketches may be written in the gobend text format (.sketch), YAML or TOML.`,
	Version: version.GetVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&jobFile, "config", "", "YAML job file with generation settings")
	configFlags = config.RegisterFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
