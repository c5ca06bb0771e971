package spring

import (
	"fmt"
	"math"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// DiscEngine computes Belleville disc springs and stacks. Canonical load
// value: stack deflection in mm. Series stacking divides the per-disc
// deflection, parallel stacking multiplies the load.
type DiscEngine struct{}

func (DiscEngine) Type() SpringType { return Disc }

// Recommended per-disc travel limit; past 75% of the cone height the
// Almen–László model diverges noticeably from measurement.
const discTravelWarnFraction = 0.75

func (DiscEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Disc, Valid: true, WahlFactor: 1}

	ok := requirePositive(&res, "outerDiameter", geo.OuterDiameter)
	ok = requirePositive(&res, "innerDiameter", geo.InnerDiameter) && ok
	ok = requirePositive(&res, "thickness", geo.Thickness) && ok
	ok = requirePositive(&res, "coneHeight", geo.ConeHeight) && ok
	if geo.InnerDiameter >= geo.OuterDiameter {
		res.invalidate("inner diameter %.2f mm must be < outer diameter %.2f mm", geo.InnerDiameter, geo.OuterDiameter)
		ok = false
	}
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}
	_ = ok

	series := stackCount(geo.StackSeries)
	parallel := stackCount(geo.StackParallel)

	// Disc springs have no meaningful wire index; Index stays 0.
	res.FreeLength = float64(series) * (geo.ConeHeight + geo.Thickness)
	res.SolidLength = float64(series) * geo.Thickness

	// Initial stack rate from a small-deflection secant of the
	// Almen–László curve.
	eps := 0.001 * geo.Thickness
	if eps > 0 {
		f := formula.DiscLoad(mat.ElasticModulus, mat.PoissonRatio, geo.Thickness, geo.ConeHeight, geo.OuterDiameter, geo.InnerDiameter, eps)
		res.Rate = f / eps * float64(parallel) / float64(series)
	}

	if mat.Density > 0 {
		ring := (geo.OuterDiameter*geo.OuterDiameter - geo.InnerDiameter*geo.InnerDiameter) * (math.Pi / 4) * geo.Thickness
		res.Mass = ring * float64(series*parallel) * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		perDisc := defl / float64(series)
		p := LoadPointResult{
			Deflection: defl,
			Position:   res.FreeLength - defl,
			Status:     StatusOK,
		}
		p.Load = float64(parallel) * formula.DiscLoad(mat.ElasticModulus, mat.PoissonRatio, geo.Thickness, geo.ConeHeight, geo.OuterDiameter, geo.InnerDiameter, perDisc)
		p.Stress = formula.DiscStress(mat.ElasticModulus, mat.PoissonRatio, geo.Thickness, geo.OuterDiameter, geo.InnerDiameter, perDisc)
		switch {
		case defl < 0:
			p.Status = StatusError
			p.Message = fmt.Sprintf("negative deflection %.3f mm", defl)
		case perDisc >= geo.ConeHeight:
			p.Status = StatusError
			p.Message = fmt.Sprintf("disc pressed flat: per-disc travel %.3f mm >= cone height %.3f mm", perDisc, geo.ConeHeight)
		case perDisc > discTravelWarnFraction*geo.ConeHeight:
			p.Status = StatusWarning
			p.Message = fmt.Sprintf("per-disc travel %.3f mm exceeds %.0f%% of cone height", perDisc, discTravelWarnFraction*100)
		default:
			if st, msg := bendingStatus(p.Stress, mat, flags); st != StatusOK {
				p.Status, p.Message = st, msg
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}

func stackCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
