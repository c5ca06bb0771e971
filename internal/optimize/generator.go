package optimize

import (
	"fmt"
	"math"

	"github.com/mweissbach/gospring/internal/spring"
)

// Generate enumerates the design space, evaluates every sample through
// the engine registered for the base geometry's family, and returns the
// candidates whose results are physically valid. Invalid results and
// results with an error load point are discarded before ranking ever
// sees them. The returned order is the deterministic enumeration order.
func Generate(reg *spring.Registry, space DesignSpace) ([]Candidate, error) {
	engine, err := reg.Lookup(space.Base.Type)
	if err != nil {
		return nil, err
	}
	if space.TargetRate <= 0 {
		return nil, fmt.Errorf("target rate %.3f must be > 0", space.TargetRate)
	}
	sets, err := sampleSets(space)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	for _, params := range sets {
		geo := space.Base
		for name, v := range params {
			if err := ApplyParameter(&geo, name, v); err != nil {
				return nil, err
			}
		}
		res := engine.Calculate(geo, space.Material, space.Loads, space.Flags)
		if !res.Valid || res.WorstPointStatus() == spring.StatusError {
			continue
		}
		out = append(out, Candidate{
			Params:     params,
			Geometry:   geo,
			Result:     res,
			Objectives: score(res, space),
		})
	}
	return out, nil
}

// score derives the objective vector from an evaluated result.
func score(res spring.Result, space DesignSpace) Objectives {
	var obj Objectives

	maxStress := 0.0
	for _, p := range res.Points {
		if p.Stress > maxStress {
			maxStress = p.Stress
		}
	}
	allow := allowableFor(res.Type, space)
	if allow > 0 && maxStress > 0 {
		obj.Safety = allow / maxStress
		obj.StressRatio = maxStress / allow
	}

	obj.Mass = res.Mass
	if obj.Mass <= 0 {
		// Without density the wire volume still ranks mass
		// monotonically; fold it to comparable magnitude.
		obj.Mass = volumeProxy(res)
	}

	obj.StiffnessError = math.Abs(res.Rate-space.TargetRate) / space.TargetRate
	return obj
}

func allowableFor(t spring.SpringType, space DesignSpace) float64 {
	switch t {
	case spring.Torsion, spring.Spiral, spring.Disc, spring.Wave:
		return space.Material.AllowableBending
	default:
		return space.Material.AllowableShearStatic
	}
}

// volumeProxy is a defined stand-in when Mass is unknown: solid length
// proxies body volume well enough for relative ranking.
func volumeProxy(res spring.Result) float64 {
	if res.SolidLength > 0 {
		return res.SolidLength
	}
	return res.FreeLength
}
