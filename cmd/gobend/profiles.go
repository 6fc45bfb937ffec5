package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/pkg/profile"
)

var (
	profilesCLR       float64
	profilesTolerance float64
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [catalog]",
	Short: "List the benders and dies in a catalog",
	Long:  "List every bender and die in a YAML catalog. With --clr, show only the dies matching that centerline radius.",
	Args:  cobra.ExactArgs(1),
	Run:   runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)

	profilesCmd.Flags().Float64Var(&profilesCLR, "clr", 0, "show dies matching this centerline radius")
	profilesCmd.Flags().Float64Var(&profilesTolerance, "clr-tolerance", 0, "CLR match tolerance (0 uses the default)")
}

func runProfiles(cmd *cobra.Command, args []string) {
	_, logger := loadSettings()
	defer logger.Sync()

	catalog := profile.NewCatalog(args[0], logger)
	if err := printProfiles(os.Stdout, catalog, profilesCLR, profilesTolerance); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
}

// printProfiles lists the catalog. A positive clr shows only the matching die
// of each bender.
func printProfiles(w io.Writer, catalog *profile.Catalog, clr, tolerance float64) error {
	benders, err := catalog.Benders()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Bender Catalog")
	fmt.Fprintln(w, "==============")
	fmt.Fprintf(w, "File: %s\n", catalog.Path())

	for _, b := range benders {
		fmt.Fprintf(w, "\n%s (min grip %.3f)\n", b.Name, b.MinGrip)
		fmt.Fprintf(w, "  ID: %s\n", b.ID)
		if b.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", b.Notes)
		}

		if clr > 0 {
			if d, ok := b.FindDieForCLR(clr, tolerance); ok {
				fmt.Fprintf(w, "  Matching die: %s\n", d)
			} else {
				fmt.Fprintf(w, "  No die matches CLR %.3f\n", clr)
			}
			continue
		}

		if len(b.Dies) == 0 {
			fmt.Fprintln(w, "  No dies")
		}
		for _, d := range b.Dies {
			fmt.Fprintf(w, "  Die: %s, min tail %.3f\n", d, d.MinTail)
		}
	}
	return nil
}
