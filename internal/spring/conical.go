package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// ConicalEngine computes conical compression springs over their initial
// linear range (before coils begin to seat). Non-telescoping build:
// solid length nt·d, like a cylindrical spring.
type ConicalEngine struct{}

func (ConicalEngine) Type() SpringType { return Conical }

func (ConicalEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Conical, Valid: true, FreeLength: geo.FreeLength, WahlFactor: 1}

	ok := requirePositive(&res, "wireDiameter", geo.WireDiameter)
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "meanDiameterSmall", geo.MeanDiameterSmall) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	ok = requirePositive(&res, "freeLength", geo.FreeLength) && ok
	if geo.MeanDiameterSmall > geo.MeanDiameter {
		res.invalidate("small-end diameter %.2f mm exceeds large-end diameter %.2f mm", geo.MeanDiameterSmall, geo.MeanDiameter)
		ok = false
	}
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}

	nt := geo.TotalCoils
	if nt <= 0 {
		nt = geo.ActiveCoils + 2
	}
	res.Rate = formula.ConicalRate(mat.ShearModulus, geo.WireDiameter, geo.MeanDiameter, geo.MeanDiameterSmall, geo.ActiveCoils)
	// The curvature correction is governed by the large end, where the
	// index is highest and stress under load greatest per unit force at
	// the small end; stress is checked at the large end conservatively.
	res.Index = formula.SpringIndex(geo.MeanDiameter, geo.WireDiameter)
	res.WahlFactor = formula.WahlFactor(res.Index)
	res.SolidLength = formula.SolidLength(nt, geo.WireDiameter)

	if ok && res.Index <= formula.MinSpringIndex {
		res.invalidate("spring index C=%.2f is not coilable (need C > 1)", res.Index)
	}
	if ok && res.SolidLength >= geo.FreeLength {
		res.invalidate("solid length %.2f mm >= free length %.2f mm", res.SolidLength, geo.FreeLength)
	}

	if mat.Density > 0 {
		meanDm := (geo.MeanDiameter + geo.MeanDiameterSmall) / 2
		vol := formula.WireVolume(geo.WireDiameter, formula.WireLength(meanDm, nt))
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		p := compressionPoint(geo.FreeLength, res.SolidLength, res.Rate, geo.MeanDiameter, geo.WireDiameter, res.WahlFactor, defl, mat, flags)
		// Beyond roughly 80% of free travel the largest coil starts to
		// seat and the true characteristic turns progressive.
		if p.Status == StatusOK && defl > 0.8*(geo.FreeLength-res.SolidLength) {
			p.Status = StatusWarning
			p.Message = fmt.Sprintf("deflection %.2f mm is in the progressive range; linear rate underestimates load", defl)
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// SolveForTarget recovers the active coil count from a target initial
// rate: n = G·d⁴ / (2·k*·(D1+D2)·(D1²+D2²)).
func (ConicalEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	const param = "activeCoils"
	if target.Kind != TargetRate {
		return invalidInverse(param, fmt.Sprintf("unsupported target kind %q for conical springs", target.Kind))
	}
	if target.Rate <= 0 {
		return invalidInverse(param, fmt.Sprintf("target rate %.3f N/mm must be > 0", target.Rate))
	}
	d1, d2 := geo.MeanDiameter, geo.MeanDiameterSmall
	if geo.WireDiameter <= 0 || d1 <= 0 || d2 <= 0 || mat.ShearModulus <= 0 {
		return invalidInverse(param, "wire diameter, both mean diameters and shear modulus must be > 0")
	}
	n := mat.ShearModulus * pow4(geo.WireDiameter) / (2 * target.Rate * (d1 + d2) * (d1*d1 + d2*d2))
	if n < minSolvedCoils || n > maxSolvedCoils {
		return invalidInverse(param, fmt.Sprintf("solved coil count %.2f outside [%g, %g]", n, minSolvedCoils, maxSolvedCoils))
	}
	return InverseResult{Parameter: param, Value: n, Valid: true, Message: fmt.Sprintf("n = %.3f reaches %.3f N/mm", n, target.Rate)}
}
