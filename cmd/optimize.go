package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mweissbach/gospring/internal/optimize"
	"github.com/mweissbach/gospring/internal/spring"
)

var (
	optInput      springInput
	optParams     []string
	optTargetRate float64
	optSamples    int
	optSeed       int64
	optVerbose    bool
	optPickSafety float64
	optPickMass   float64
	optPickMatch  float64
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search a bounded design space for Pareto-optimal springs",
	Long: `Enumerate geometry candidates inside per-parameter bounds, evaluate
each through the family engine, and keep the Pareto front over three
objectives: safety factor (up), mass (down) and stiffness-match error
against --target-rate (down).

Parameters are given as name=min:max:step (grid) or name=min:max
(random sampling, see --samples and --seed). Unbound geometry fields
come from the regular geometry flags.

Picking one candidate from the front is an explicit policy: supply at
least one of --pick-safety, --pick-mass, --pick-match as weights.

Example:
  gospring optimize -t compression --free-length 50 \
      --material en10270-1-sh --deflections 25 --target-rate 3.2 \
      -p wireDiameter=2.5:3.5:0.25 -p meanDiameter=20:28:2 \
      -p activeCoils=8:12:1 --pick-safety 2 --pick-mass 1`,
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optInput.registerFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVarP(&optParams, "param", "p", nil, "Design parameter bound: name=min:max[:step]")
	optimizeCmd.Flags().Float64Var(&optTargetRate, "target-rate", 0, "Target spring rate for the stiffness objective [required]")
	optimizeCmd.Flags().IntVar(&optSamples, "samples", 32, "Random samples per grid point for unstepped parameters")
	optimizeCmd.Flags().Int64Var(&optSeed, "seed", 1, "Seed for random sampling (reproducible runs)")
	optimizeCmd.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Log generation progress")
	optimizeCmd.Flags().Float64Var(&optPickSafety, "pick-safety", 0, "Pick-policy weight: safety factor")
	optimizeCmd.Flags().Float64Var(&optPickMass, "pick-mass", 0, "Pick-policy weight: mass")
	optimizeCmd.Flags().Float64Var(&optPickMatch, "pick-match", 0, "Pick-policy weight: stiffness match")
	optimizeCmd.MarkFlagRequired("target-rate")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.Kitchen,
	}))
	if optVerbose {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}

	params, err := parseParamBounds(optParams)
	if err != nil {
		return err
	}
	mat, err := optInput.materialProps()
	if err != nil {
		return err
	}
	loads, err := optInput.loadCase(optTargetRate)
	if err != nil {
		return err
	}

	space := optimize.DesignSpace{
		Base:       optInput.geometry(),
		Parameters: params,
		Material:   mat,
		Loads:      loads,
		Flags:      optInput.moduleFlags(),
		TargetRate: optTargetRate,
		Samples:    optSamples,
		Seed:       optSeed,
	}

	logger.Debug("generating candidates",
		"type", optInput.springType,
		"parameters", len(params),
		"seed", optSeed)
	start := time.Now()

	candidates, err := optimize.Generate(spring.Default(), space)
	if err != nil {
		return err
	}
	logger.Debug("generation done",
		"candidates", len(candidates),
		"elapsed", time.Since(start))

	front := optimize.ParetoFront(candidates)
	logger.Debug("pareto front computed",
		"front", len(front),
		"dominated", len(candidates)-len(front))

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     PARETO OPTIMIZATION - %s\n", optInput.springType)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Candidates evaluated: %d (valid), front size: %d\n\n", len(candidates), len(front))

	if len(front) == 0 {
		fmt.Println("  No feasible candidate in the design space.")
		fmt.Println()
		return nil
	}

	fmt.Println("PARETO FRONT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tRate\tSafety\tMass (g)\tMatch Err\tParameters\n")
	for i, c := range front {
		fmt.Fprintf(w, "  %d\t%.3f\t%.2f\t%.2f\t%.3f\t%s\n",
			i+1, c.Result.Rate, c.Objectives.Safety, c.Objectives.Mass,
			c.Objectives.StiffnessError, formatParams(c.Params, params))
	}
	w.Flush()
	fmt.Println()

	if optPickSafety != 0 || optPickMass != 0 || optPickMatch != 0 {
		idx, err := optimize.SelectBest(front, optimize.Weights{
			Safety:         optPickSafety,
			Mass:           optPickMass,
			StiffnessMatch: optPickMatch,
		})
		if err != nil {
			return err
		}
		fmt.Printf("RECOMMENDED (weights safety=%.1f mass=%.1f match=%.1f): candidate #%d\n\n",
			optPickSafety, optPickMass, optPickMatch, idx+1)
	}
	return nil
}

// parseParamBounds parses name=min:max[:step] specs.
func parseParamBounds(specs []string) ([]optimize.Parameter, error) {
	var out []optimize.Parameter
	for _, s := range specs {
		name, bounds, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q (want name=min:max[:step])", s)
		}
		parts := strings.Split(bounds, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("invalid bounds in %q (want min:max[:step])", s)
		}
		vals := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q in %q", p, s)
			}
			vals[i] = v
		}
		param := optimize.Parameter{Name: strings.TrimSpace(name), Min: vals[0], Max: vals[1]}
		if len(vals) == 3 {
			param.Step = vals[2]
		}
		out = append(out, param)
	}
	return out, nil
}

// formatParams renders the varied parameters in a stable order.
func formatParams(values map[string]float64, params []optimize.Parameter) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%.3g", p.Name, values[p.Name])
	}
	return sb.String()
}
