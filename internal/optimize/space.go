// Package optimize searches a bounded spring design space for
// Pareto-optimal candidates: enumerate geometry samples, evaluate each
// through the family engine, score objectives, and keep the
// non-dominated front. The pipeline is immutable end to end, so a run
// is reproducible from (space, seed) alone.
package optimize

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mweissbach/gospring/internal/material"
	"github.com/mweissbach/gospring/internal/spring"
)

// Parameter bounds one geometry dimension of the search. Step > 0 walks
// a grid inclusive of both ends; Step == 0 leaves the parameter to
// random sampling within [Min, Max].
type Parameter struct {
	Name string
	Min  float64
	Max  float64
	Step float64
}

// DesignSpace scopes one generation run. Base supplies the fixed
// geometry fields; Parameters override the named fields per sample.
type DesignSpace struct {
	Base       spring.Geometry
	Parameters []Parameter
	Material   material.Properties
	Loads      spring.LoadCase
	Flags      spring.ModuleFlags
	// TargetRate anchors the stiffness-match objective.
	TargetRate float64
	// Samples is the random sample count used when any parameter has
	// no step; ignored for pure grid walks.
	Samples int
	// Seed makes random sampling reproducible.
	Seed int64
}

// Objectives is the score vector of a candidate. Raw orientation:
// Safety higher is better, Mass lower, StiffnessError lower,
// StressRatio lower.
type Objectives struct {
	// Safety is allowable stress over computed stress at the most
	// loaded point.
	Safety float64
	// Mass is the wire/strip mass estimate in grams, or a volume proxy
	// when the material carries no density.
	Mass float64
	// StiffnessError is |achieved − target| / target rate.
	StiffnessError float64
	// StressRatio is the inverse of Safety, kept for display.
	StressRatio float64
}

// Candidate is one evaluated design. Immutable once generated.
type Candidate struct {
	Params     map[string]float64
	Geometry   spring.Geometry
	Result     spring.Result
	Objectives Objectives
}

// ApplyParameter writes a named search parameter into a geometry copy.
// Unknown names are a configuration error, reported loudly.
func ApplyParameter(geo *spring.Geometry, name string, v float64) error {
	switch name {
	case "wireDiameter":
		geo.WireDiameter = v
	case "meanDiameter":
		geo.MeanDiameter = v
	case "meanDiameterSmall":
		geo.MeanDiameterSmall = v
	case "activeCoils":
		geo.ActiveCoils = v
	case "totalCoils":
		geo.TotalCoils = v
	case "freeLength":
		geo.FreeLength = v
	case "stripWidth":
		geo.StripWidth = v
	case "stripThickness":
		geo.StripThickness = v
	case "stripLength":
		geo.StripLength = v
	case "thickness":
		geo.Thickness = v
	case "coneHeight":
		geo.ConeHeight = v
	case "outerDiameter":
		geo.OuterDiameter = v
	case "innerDiameter":
		geo.InnerDiameter = v
	case "wavesPerTurn":
		geo.WavesPerTurn = v
	case "turns":
		geo.Turns = v
	case "arcRadius":
		geo.ArcRadius = v
	default:
		return fmt.Errorf("unknown design parameter %q", name)
	}
	return nil
}

// gridValues expands a stepped parameter into its inclusive value list.
func gridValues(p Parameter) []float64 {
	if p.Step <= 0 || p.Max < p.Min {
		return []float64{p.Min}
	}
	var vals []float64
	// Half-step tolerance keeps Max itself in the grid despite
	// floating-point accumulation.
	for v := p.Min; v <= p.Max+p.Step/2; v += p.Step {
		vals = append(vals, math.Min(v, p.Max))
	}
	return vals
}

// sampleSets enumerates the parameter assignments of the space: the
// cross product of all stepped parameters, with unstepped parameters
// drawn from the seeded source per sample.
func sampleSets(space DesignSpace) ([]map[string]float64, error) {
	var grid, free []Parameter
	for _, p := range space.Parameters {
		if p.Max < p.Min {
			return nil, fmt.Errorf("parameter %q: max %.3f < min %.3f", p.Name, p.Max, p.Min)
		}
		if p.Step > 0 {
			grid = append(grid, p)
		} else {
			free = append(free, p)
		}
	}

	sets := []map[string]float64{{}}
	for _, p := range grid {
		var next []map[string]float64
		for _, base := range sets {
			for _, v := range gridValues(p) {
				m := make(map[string]float64, len(base)+1)
				for k, val := range base {
					m[k] = val
				}
				m[p.Name] = v
				next = append(next, m)
			}
		}
		sets = next
	}

	if len(free) == 0 {
		return sets, nil
	}

	samples := space.Samples
	if samples <= 0 {
		samples = 32
	}
	rng := rand.New(rand.NewSource(space.Seed))
	var out []map[string]float64
	for _, base := range sets {
		for i := 0; i < samples; i++ {
			m := make(map[string]float64, len(base)+len(free))
			for k, val := range base {
				m[k] = val
			}
			for _, p := range free {
				m[p.Name] = p.Min + rng.Float64()*(p.Max-p.Min)
			}
			out = append(out, m)
		}
	}
	return out, nil
}
