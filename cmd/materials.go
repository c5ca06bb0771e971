package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mweissbach/gospring/internal/material"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the built-in material catalog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("MATERIAL CATALOG:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  ID\tG (MPa)\tE (MPa)\tτ_stat\tτ_dyn\tσ_bend\tName\n")
		for _, m := range material.All() {
			fmt.Fprintf(w, "  %s\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
				m.ID, m.ShearModulus, m.ElasticModulus,
				m.AllowableShearStatic, m.AllowableShearDynamic, m.AllowableBending, m.Name)
		}
		w.Flush()
		fmt.Println()
		fmt.Println("  Override any value per call with --shear-modulus, --allow-static, ...")
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}
