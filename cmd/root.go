package cmd

import (
	"fmt"
	"os"

	"github.com/mweissbach/gospring/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gospring",
	Short: "Mechanical Spring Calculation and Optimization Tool",
	Long: `gospring - Go Spring Designer

A CLI tool for parametrizing mechanical springs, verifying their
physical behavior, inverting design targets into geometry, and
searching a bounded design space for Pareto-optimal candidates.

Supported spring families:
  compression, extension, torsion, conical, spiralTorsion,
  disc, wave, arc, shock, die

All calculations are closed-form (EN 13906 / Almen-Laszlo / Smalley)
and fully deterministic: identical inputs yield identical outputs.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gospring v%-46s║\n", version.Version)
		fmt.Println("  ║   Go Spring Designer                                      ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for spring calculation, inverse solving, rule audit")
		fmt.Println("  and Pareto design-space optimization.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • calc       forward calculation of load points")
		fmt.Println("    • solve      invert a design target into geometry")
		fmt.Println("    • audit      rule-based pass/warn/fail design audit")
		fmt.Println("    • optimize   Pareto search over a bounded design space")
		fmt.Println("    • materials  list the built-in material catalog")
		fmt.Println()
		fmt.Println("  Use 'gospring --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
