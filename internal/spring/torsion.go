package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// TorsionEngine computes helical torsion springs loaded in the winding
// direction. The canonical load value is the working angle in degrees;
// torque follows from the angular rate E·d⁴/(64·D·n)·π/180.
type TorsionEngine struct{}

func (TorsionEngine) Type() SpringType { return Torsion }

func (TorsionEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Torsion, Valid: true, WahlFactor: 1}

	ok := requirePositive(&res, "wireDiameter", geo.WireDiameter)
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}

	res.Rate = formula.TorsionRate(mat.ElasticModulus, geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils)
	res.Index = formula.SpringIndex(geo.MeanDiameter, geo.WireDiameter)
	res.WahlFactor = formula.BendingCorrectionFactor(res.Index)
	res.CloseOutAngle = geo.CloseOutAngle
	res.FreeLength = geo.FreeLength

	if ok && res.Index <= formula.MinSpringIndex {
		res.invalidate("spring index C=%.2f is not coilable (need C > 1)", res.Index)
	}
	if mat.Density > 0 {
		vol := formula.WireVolume(geo.WireDiameter, formula.WireLength(geo.MeanDiameter, geo.ActiveCoils)+2*geo.LegLength)
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, angle := range loads.Values {
		res.Points = append(res.Points, rotationalPoint(res, angle, geo.WireDiameter, mat, flags))
	}
	return res
}

// rotationalPoint evaluates one angular load point for round-wire
// rotational families (torsion, and arc via its converted rate).
func rotationalPoint(res Result, angle, d float64, mat material.Properties, flags ModuleFlags) LoadPointResult {
	p := LoadPointResult{
		Deflection: angle,
		Position:   angle,
		Status:     StatusOK,
	}
	p.Load = AngleToTorque(res.Rate, angle)
	p.Stress = formula.BendingStress(p.Load, d, res.WahlFactor)

	if angle < 0 {
		p.Status = StatusError
		p.Message = fmt.Sprintf("working angle %.2f° loads against the winding direction", angle)
		return p
	}
	if formula.AngleClosedOut(angle, res.CloseOutAngle) {
		p.Status = StatusError
		p.Message = fmt.Sprintf("close-out: angle %.2f° >= limit %.2f°", angle, res.CloseOutAngle)
		return p
	}
	if st, msg := bendingStatus(p.Stress, mat, flags); st != StatusOK {
		p.Status, p.Message = st, msg
	}
	return p
}

// SolveForTarget recovers the active coil count, either from a target
// angular rate or from a target torque at a target angle (which is the
// same inversion through k* = M/θ).
func (TorsionEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	const param = "activeCoils"
	rate := target.Rate
	if target.Kind == TargetLoadAtPosition {
		if target.Position <= 0 {
			return invalidInverse(param, fmt.Sprintf("target angle %.2f° must be > 0", target.Position))
		}
		if target.Load <= 0 {
			return invalidInverse(param, fmt.Sprintf("target torque %.2f N-mm must be > 0", target.Load))
		}
		rate = target.Load / target.Position
	}
	if rate <= 0 {
		return invalidInverse(param, fmt.Sprintf("target rate %.4f N-mm/deg must be > 0", rate))
	}
	if geo.WireDiameter <= 0 || geo.MeanDiameter <= 0 || mat.ElasticModulus <= 0 {
		return invalidInverse(param, "wire diameter, mean diameter and elastic modulus must be > 0")
	}
	// Invert k = E·d⁴/(64·D·n·(180/π)).
	n := mat.ElasticModulus * pow4(geo.WireDiameter) / (64 * geo.MeanDiameter * rate * formula.DegPerRad)
	if n < minSolvedCoils || n > maxSolvedCoils {
		return invalidInverse(param, fmt.Sprintf("solved coil count %.2f outside [%g, %g]", n, minSolvedCoils, maxSolvedCoils))
	}
	return InverseResult{Parameter: param, Value: n, Valid: true, Message: fmt.Sprintf("n = %.3f reaches %.4f N-mm/deg", n, rate)}
}
