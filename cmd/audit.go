package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mweissbach/gospring/internal/audit"
)

var (
	auditInput          springInput
	auditMinSafety      float64
	auditMinBindMargin  float64
	auditMaxStressRatio float64
	auditMinIndex       float64
	auditMaxIndex       float64
	auditMinWireD       float64
	auditMaxWireD       float64
	auditMaxSlenderness float64
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the rule-based design audit",
	Long: `Run the forward calculation and evaluate the result against the
standard rule set: physical validity, travel limits, safety factor,
stress utilisation, spring index window, bind margin and slenderness.

The aggregate verdict is the worst rule status (fail > warn > pass);
deliverability and safety sub-verdicts aggregate the tagged subsets.

Example:
  gospring audit -t compression --wire-d 3 --mean-d 24 -n 10 \
      --free-length 50 --material en10270-1-sh --heights 45,35,25 \
      --min-safety 1.2 --min-bind-margin 2`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditInput.registerFlags(auditCmd)
	auditCmd.Flags().Float64Var(&auditMinSafety, "min-safety", 0, "Minimum safety factor [required]")
	auditCmd.Flags().Float64Var(&auditMinBindMargin, "min-bind-margin", 0, "Minimum travel margin to solid/close-out")
	auditCmd.Flags().Float64Var(&auditMaxStressRatio, "max-stress-ratio", 0, "Maximum stress utilisation (0 = off)")
	auditCmd.Flags().Float64Var(&auditMinIndex, "min-index", 0, "Lower spring index bound (0 = default)")
	auditCmd.Flags().Float64Var(&auditMaxIndex, "max-index", 0, "Upper spring index bound (0 = default)")
	auditCmd.Flags().Float64Var(&auditMinWireD, "min-wire-d", 0, "Lower wire size bound of the tooling (0 = off)")
	auditCmd.Flags().Float64Var(&auditMaxWireD, "max-wire-d", 0, "Upper wire size bound of the tooling (0 = off)")
	auditCmd.Flags().Float64Var(&auditMaxSlenderness, "max-slenderness", 0, "Maximum L0/Dm before buckling guide (0 = off)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	res, err := calculateFromInput(&auditInput)
	if err != nil {
		return err
	}
	mat, err := auditInput.materialProps()
	if err != nil {
		return err
	}

	verdict := audit.NewEngine().Run(audit.Input{
		Geometry: auditInput.geometry(),
		Result:   res,
		Requirements: audit.Requirements{
			MinSafetyFactor:   auditMinSafety,
			MinCoilBindMargin: auditMinBindMargin,
			MaxStressRatio:    auditMaxStressRatio,
			MinIndex:          auditMinIndex,
			MaxIndex:          auditMaxIndex,
			MinWireDiameter:   auditMinWireD,
			MaxWireDiameter:   auditMaxWireD,
			MaxSlenderness:    auditMaxSlenderness,
			Material:          mat,
		},
	})

	printCalcReport(&auditInput, res)

	fmt.Println("DESIGN RULE AUDIT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rule\tCategory\tValue\tStatus\tDetail\n")
	for _, f := range verdict.Findings {
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%s\t%s\n", f.RuleID, f.Category, f.Value, f.Status, f.Message)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("VERDICT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Overall:\t%s\n", verdict.Overall)
	fmt.Fprintf(w, "  Deliverability:\t%s\n", verdict.Deliverability)
	fmt.Fprintf(w, "  Safety:\t%s\n", verdict.SafetyStatus)
	w.Flush()
	fmt.Println()
	return nil
}
