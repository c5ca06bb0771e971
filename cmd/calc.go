package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mweissbach/gospring/internal/diagram"
	"github.com/mweissbach/gospring/internal/spring"
)

var (
	calcInput       springInput
	calcShowDiagram bool
	calcExportFile  string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate load points for a spring geometry",
	Long: `Forward calculation: evaluate a spring geometry and material against
a set of load points, reporting rate, spring index, Wahl factor, and
per-point force/torque, stress and status.

Load points are given in one display mode (--heights, --deflections,
--angles or --torques); internally they are stored as the canonical
physical value of the family (deflection or angle).

Examples:
  # Compression spring, load points by height
  gospring calc -t compression --wire-d 3 --mean-d 24 -n 10 \
      --free-length 50 --material en10270-1-sh --heights 45,35,25

  # Torsion spring by working angle, with chart export
  gospring calc -t torsion --wire-d 2 --mean-d 16 -n 6 \
      --material en10270-1-sh --angles 30,60,90 -o torsion.png`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcInput.registerFlags(calcCmd)
	calcCmd.Flags().BoolVar(&calcShowDiagram, "diagram", false, "Show ASCII characteristic curve")
	calcCmd.Flags().StringVarP(&calcExportFile, "output", "o", "", "Export characteristic chart to file (png, svg, pdf)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	res, err := calculateFromInput(&calcInput)
	if err != nil {
		return err
	}

	printCalcReport(&calcInput, res)

	if calcShowDiagram {
		fmt.Println("CHARACTERISTIC:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawASCIICharacteristic(diagram.CharacteristicData{
			Result:     res,
			Rotational: calcInput.rotational(),
		}))
	}
	if calcExportFile != "" {
		if err := diagram.ExportCharacteristicDiagram(diagram.CharacteristicData{
			Result:     res,
			Rotational: calcInput.rotational(),
		}, calcExportFile); err != nil {
			return fmt.Errorf("export diagram: %w", err)
		}
		fmt.Printf("Chart exported to %s\n\n", calcExportFile)
	}
	return nil
}

// calculateFromInput runs the two-pass evaluation shared by calc and
// audit: a no-load pass to obtain the rate (needed to canonicalize
// torque inputs), then the real pass with the load case.
func calculateFromInput(in *springInput) (spring.Result, error) {
	engine, err := spring.Default().Lookup(spring.SpringType(in.springType))
	if err != nil {
		return spring.Result{}, err
	}
	mat, err := in.materialProps()
	if err != nil {
		return spring.Result{}, err
	}
	geo := in.geometry()
	flags := in.moduleFlags()

	pre := engine.Calculate(geo, mat, spring.LoadCase{}, flags)
	loads, err := in.loadCase(pre.Rate)
	if err != nil {
		return spring.Result{}, err
	}
	return engine.Calculate(geo, mat, loads, flags), nil
}

func printCalcReport(in *springInput, res spring.Result) {
	unitX, unitY := "mm", "N"
	rateUnit := "N/mm"
	if in.rotational() {
		unitX, unitY = "deg", "N-mm"
		rateUnit = "N-mm/deg"
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     SPRING CALCULATION - %s\n", res.Type)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("CHARACTERISTIC VALUES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Spring Rate (k):\t%.4f %s\n", res.Rate, rateUnit)
	if res.Index > 0 {
		fmt.Fprintf(w, "  Spring Index (C):\t%.3f\n", res.Index)
		fmt.Fprintf(w, "  Correction Factor (K):\t%.4f\n", res.WahlFactor)
	}
	if res.FreeLength > 0 {
		fmt.Fprintf(w, "  Free Length (L0):\t%.2f mm\n", res.FreeLength)
	}
	if res.SolidLength > 0 {
		fmt.Fprintf(w, "  Solid Length (Lc):\t%.2f mm\n", res.SolidLength)
	}
	if res.CloseOutAngle > 0 {
		fmt.Fprintf(w, "  Close-out Angle:\t%.2f deg\n", res.CloseOutAngle)
	}
	if res.NaturalFrequency > 0 {
		fmt.Fprintf(w, "  Surge Frequency:\t%.1f Hz\n", res.NaturalFrequency)
	}
	if res.Mass > 0 {
		fmt.Fprintf(w, "  Mass:\t%.2f g\n", res.Mass)
	}
	fmt.Fprintf(w, "  Valid:\t%v\n", res.Valid)
	w.Flush()
	fmt.Println()

	if len(res.Points) > 0 {
		fmt.Println("LOAD POINTS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tTravel (%s)\tPosition\tLoad (%s)\tStress (MPa)\tStatus\n", unitX, unitY)
		for i, p := range res.Points {
			fmt.Fprintf(w, "  %d\t%.2f\t%.2f\t%.2f\t%.1f\t%s\n", i+1, p.Deflection, p.Position, p.Load, p.Stress, p.Status)
		}
		w.Flush()
		for _, p := range res.Points {
			if p.Message != "" {
				fmt.Printf("    - %s\n", p.Message)
			}
		}
		fmt.Println()
	}

	if len(res.Messages) > 0 {
		fmt.Println("MESSAGES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, m := range res.Messages {
			fmt.Printf("  • %s\n", m)
		}
		fmt.Println()
	}
}
