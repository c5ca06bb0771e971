package cmd

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gospring",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gospring v%s\n", version.Version)
		fmt.Println("Mechanical Spring Calculation and Optimization Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
