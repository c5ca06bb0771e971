package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// DieEngine computes die springs: heavy-duty compression springs coiled
// from rectangular wire (strip thickness t axial, width b radial).
// Canonical load value: deflection in mm. Die springs are rated for a
// fraction of their travel to solid; exceeding it is reported as a
// warning rather than an error.
type DieEngine struct{}

func (DieEngine) Type() SpringType { return Die }

// Rated travel fraction for medium-duty die springs (fraction of free
// travel to solid usable in continuous service).
const dieRatedTravelFraction = 0.5

func (DieEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Die, Valid: true, WahlFactor: 1, FreeLength: geo.FreeLength}

	ok := requirePositive(&res, "stripWidth", geo.StripWidth)
	ok = requirePositive(&res, "stripThickness", geo.StripThickness) && ok
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	ok = requirePositive(&res, "freeLength", geo.FreeLength) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}

	nt := geo.TotalCoils
	if nt <= 0 {
		nt = geo.ActiveCoils + 1.5
	}
	res.Rate = formula.RectWireRate(mat.ShearModulus, geo.StripWidth, geo.StripThickness, geo.MeanDiameter, geo.ActiveCoils)
	res.Index = formula.SpringIndex(geo.MeanDiameter, geo.StripThickness)
	res.SolidLength = nt * geo.StripThickness

	if ok && res.SolidLength >= geo.FreeLength {
		res.invalidate("solid length %.2f mm >= free length %.2f mm", res.SolidLength, geo.FreeLength)
	}

	if mat.Density > 0 {
		vol := geo.StripWidth * geo.StripThickness * formula.WireLength(geo.MeanDiameter, nt)
		res.Mass = vol * mat.Density * 1e-6
	}

	ratedTravel := dieRatedTravelFraction * (geo.FreeLength - res.SolidLength)

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		p := LoadPointResult{
			Deflection: defl,
			Position:   DeflectionToHeight(geo.FreeLength, defl),
			Status:     StatusOK,
		}
		p.Load = res.Rate * defl
		p.Stress = formula.RectWireStress(p.Load, geo.StripWidth, geo.StripThickness, geo.MeanDiameter)
		switch {
		case defl < 0:
			p.Status = StatusError
			p.Message = fmt.Sprintf("height %.2f mm exceeds free length %.2f mm", p.Position, geo.FreeLength)
		case formula.CoilBound(p.Position, res.SolidLength):
			p.Status = StatusError
			p.Message = fmt.Sprintf("coil bind: height %.2f mm <= solid length %.2f mm", p.Position, res.SolidLength)
		case ratedTravel > 0 && defl > ratedTravel:
			p.Status = StatusWarning
			p.Message = fmt.Sprintf("deflection %.2f mm exceeds rated travel %.2f mm (%.0f%% of free travel)", defl, ratedTravel, dieRatedTravelFraction*100)
		default:
			if st, msg := shearStatus(p.Stress, mat, flags); st != StatusOK {
				p.Status, p.Message = st, msg
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// SolveForTarget recovers the active coil count from a target rate,
// n = K2·G·b·t³ / (D³·k*).
func (DieEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	const param = "activeCoils"
	if target.Kind != TargetRate {
		return invalidInverse(param, fmt.Sprintf("unsupported target kind %q for die springs", target.Kind))
	}
	if target.Rate <= 0 {
		return invalidInverse(param, fmt.Sprintf("target rate %.3f N/mm must be > 0", target.Rate))
	}
	oneCoil := formula.RectWireRate(mat.ShearModulus, geo.StripWidth, geo.StripThickness, geo.MeanDiameter, 1)
	if oneCoil <= 0 {
		return invalidInverse(param, "geometry yields no usable rate (check b, t, Dm, G)")
	}
	n := oneCoil / target.Rate
	if n < minSolvedCoils || n > maxSolvedCoils {
		return invalidInverse(param, fmt.Sprintf("solved coil count %.2f outside [%g, %g]", n, minSolvedCoils, maxSolvedCoils))
	}
	return InverseResult{Parameter: param, Value: n, Valid: true, Message: fmt.Sprintf("n = %.3f reaches %.3f N/mm", n, target.Rate)}
}
