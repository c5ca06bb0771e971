package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mweissbach/gospring/internal/material"
	"github.com/mweissbach/gospring/internal/spring"
)

// springInput collects the geometry, material and load flags shared by
// calc, solve, audit and optimize. Each command owns one instance so
// flag state never leaks between commands.
type springInput struct {
	springType string

	// Geometry
	wireD      float64
	meanD      float64
	meanDSmall float64
	coils      float64
	totalCoils float64
	freeLength float64
	initTens   float64
	hookLength float64
	legLength  float64
	closeOut   float64
	stripW     float64
	stripT     float64
	stripL     float64
	outerD     float64
	innerD     float64
	thickness  float64
	coneHeight float64
	series     int
	parallel   int
	waves      float64
	turns      float64
	arcRadius  float64
	preload    float64
	stroke     float64

	// Material
	materialID    string
	shearMod      float64
	elasticMod    float64
	density       float64
	allowStatic   float64
	allowDynamic  float64
	allowBending  float64

	// Load points (comma-separated lists; at most one may be set)
	heights     string
	deflections string
	angles      string
	torques     string

	// Module flags
	stressCheck  bool
	fatigueCheck bool
	dynamics     bool
}

// registerFlags wires the shared flag set onto a command.
func (in *springInput) registerFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringVarP(&in.springType, "type", "t", "compression", "Spring type tag")

	f.Float64Var(&in.wireD, "wire-d", 0, "Wire diameter d (mm)")
	f.Float64Var(&in.meanD, "mean-d", 0, "Mean coil diameter Dm (mm, large end for conical)")
	f.Float64Var(&in.meanDSmall, "mean-d-small", 0, "Mean coil diameter at small end (mm, conical)")
	f.Float64VarP(&in.coils, "coils", "n", 0, "Active coil count")
	f.Float64Var(&in.totalCoils, "total-coils", 0, "Total coil count (0 = family default)")
	f.Float64Var(&in.freeLength, "free-length", 0, "Free length/height L0 (mm)")
	f.Float64Var(&in.initTens, "init-tension", 0, "Initial tension F0 (N, extension)")
	f.Float64Var(&in.hookLength, "hook-length", 0, "Hook allowance per end (mm, extension)")
	f.Float64Var(&in.legLength, "leg-length", 0, "Leg length (mm, torsion)")
	f.Float64Var(&in.closeOut, "closeout-angle", 0, "Close-out angle limit (deg, rotational)")
	f.Float64Var(&in.stripW, "strip-width", 0, "Strip width b (mm)")
	f.Float64Var(&in.stripT, "strip-thickness", 0, "Strip thickness t (mm)")
	f.Float64Var(&in.stripL, "strip-length", 0, "Active strip length (mm, spiral)")
	f.Float64Var(&in.outerD, "outer-d", 0, "Outer diameter De (mm, disc)")
	f.Float64Var(&in.innerD, "inner-d", 0, "Inner diameter Di (mm, disc)")
	f.Float64Var(&in.thickness, "thickness", 0, "Disc thickness t (mm)")
	f.Float64Var(&in.coneHeight, "cone-height", 0, "Disc cone height h0 (mm)")
	f.IntVar(&in.series, "stack-series", 1, "Discs in series")
	f.IntVar(&in.parallel, "stack-parallel", 1, "Discs in parallel")
	f.Float64Var(&in.waves, "waves", 0, "Waves per turn (wave)")
	f.Float64Var(&in.turns, "turns", 0, "Turn count (wave)")
	f.Float64Var(&in.arcRadius, "arc-radius", 0, "Working radius R (mm, arc)")
	f.Float64Var(&in.preload, "preload", 0, "Installed preload (N, shock)")
	f.Float64Var(&in.stroke, "stroke", 0, "Rated stroke (mm, shock)")

	f.StringVarP(&in.materialID, "material", "m", "", "Material catalog ID (see 'gospring materials')")
	f.Float64Var(&in.shearMod, "shear-modulus", 0, "Shear modulus G (MPa), overrides catalog")
	f.Float64Var(&in.elasticMod, "elastic-modulus", 0, "Elastic modulus E (MPa), overrides catalog")
	f.Float64Var(&in.density, "density", 0, "Density (kg/m³), overrides catalog")
	f.Float64Var(&in.allowStatic, "allow-static", 0, "Allowable static shear stress (MPa)")
	f.Float64Var(&in.allowDynamic, "allow-dynamic", 0, "Allowable dynamic shear stress (MPa)")
	f.Float64Var(&in.allowBending, "allow-bending", 0, "Allowable bending stress (MPa)")

	f.StringVar(&in.heights, "heights", "", "Loaded heights (mm, comma-separated)")
	f.StringVar(&in.deflections, "deflections", "", "Deflections (mm, comma-separated)")
	f.StringVar(&in.angles, "angles", "", "Working angles (deg, comma-separated)")
	f.StringVar(&in.torques, "torques", "", "Torques (N-mm, comma-separated)")

	f.BoolVar(&in.stressCheck, "stress", true, "Enable the static stress check module")
	f.BoolVar(&in.fatigueCheck, "fatigue", false, "Enable the fatigue (dynamic stress) module")
	f.BoolVar(&in.dynamics, "dynamics", false, "Enable the dynamics (surge frequency) module")
}

// geometry assembles the tagged geometry record from the flags.
func (in *springInput) geometry() spring.Geometry {
	return spring.Geometry{
		Type:              spring.SpringType(in.springType),
		WireDiameter:      in.wireD,
		MeanDiameter:      in.meanD,
		MeanDiameterSmall: in.meanDSmall,
		ActiveCoils:       in.coils,
		TotalCoils:        in.totalCoils,
		FreeLength:        in.freeLength,
		InitialTension:    in.initTens,
		HookLength:        in.hookLength,
		LegLength:         in.legLength,
		CloseOutAngle:     in.closeOut,
		StripWidth:        in.stripW,
		StripThickness:    in.stripT,
		StripLength:       in.stripL,
		OuterDiameter:     in.outerD,
		InnerDiameter:     in.innerD,
		Thickness:         in.thickness,
		ConeHeight:        in.coneHeight,
		StackSeries:       in.series,
		StackParallel:     in.parallel,
		WavesPerTurn:      in.waves,
		Turns:             in.turns,
		ArcRadius:         in.arcRadius,
		Preload:           in.preload,
		Stroke:            in.stroke,
	}
}

// materialProps resolves the catalog entry with flag overrides.
func (in *springInput) materialProps() (material.Properties, error) {
	return material.Resolve(in.materialID, material.Properties{
		ShearModulus:          in.shearMod,
		ElasticModulus:        in.elasticMod,
		Density:               in.density,
		AllowableShearStatic:  in.allowStatic,
		AllowableShearDynamic: in.allowDynamic,
		AllowableBending:      in.allowBending,
	})
}

// moduleFlags maps the module switches.
func (in *springInput) moduleFlags() spring.ModuleFlags {
	return spring.ModuleFlags{
		StressCheck:  in.stressCheck,
		FatigueCheck: in.fatigueCheck,
		Dynamics:     in.dynamics,
	}
}

// loadCase converts the load flags to the canonical load case. The rate
// is needed to canonicalize torque inputs; callers pass the rate of a
// preliminary no-load calculation.
func (in *springInput) loadCase(rate float64) (spring.LoadCase, error) {
	set := 0
	for _, s := range []string{in.heights, in.deflections, in.angles, in.torques} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return spring.LoadCase{}, fmt.Errorf("only one of --heights, --deflections, --angles, --torques may be given")
	}
	switch {
	case in.heights != "":
		vals, err := parseFloatList(in.heights)
		if err != nil {
			return spring.LoadCase{}, err
		}
		return spring.HeightCase(in.freeLength, vals...), nil
	case in.deflections != "":
		vals, err := parseFloatList(in.deflections)
		if err != nil {
			return spring.LoadCase{}, err
		}
		return spring.DeflectionCase(vals...), nil
	case in.angles != "":
		vals, err := parseFloatList(in.angles)
		if err != nil {
			return spring.LoadCase{}, err
		}
		return spring.AngleCase(vals...), nil
	case in.torques != "":
		vals, err := parseFloatList(in.torques)
		if err != nil {
			return spring.LoadCase{}, err
		}
		return spring.TorqueCase(rate, vals...), nil
	default:
		return spring.LoadCase{Mode: spring.ModeDeflection}, nil
	}
}

// rotational reports whether the family's canonical value is an angle.
func (in *springInput) rotational() bool {
	switch spring.SpringType(in.springType) {
	case spring.Torsion, spring.Spiral, spring.Arc:
		return true
	}
	return false
}

func parseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in list", p)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
