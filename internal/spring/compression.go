package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// CompressionEngine computes cylindrical helical compression springs
// with closed and ground ends (nt = n + 2 unless TotalCoils is given).
type CompressionEngine struct{}

func (CompressionEngine) Type() SpringType { return Compression }

// Calculate evaluates the requested load points against the linear
// characteristic k = G·d⁴/(8·D³·n). A point whose compressed height
// reaches the solid length is an error; stress above the allowable is a
// warning when the stress module is active.
func (CompressionEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Compression, Valid: true, FreeLength: geo.FreeLength, WahlFactor: 1}

	ok := requirePositive(&res, "wireDiameter", geo.WireDiameter)
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	ok = requirePositive(&res, "freeLength", geo.FreeLength) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}

	nt := geo.TotalCoils
	if nt <= 0 {
		nt = geo.ActiveCoils + 2
	}

	res.Rate = formula.SpringRate(mat.ShearModulus, geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils)
	res.Index = formula.SpringIndex(geo.MeanDiameter, geo.WireDiameter)
	res.WahlFactor = formula.WahlFactor(res.Index)
	res.SolidLength = formula.SolidLength(nt, geo.WireDiameter)

	if ok && res.Index <= formula.MinSpringIndex {
		res.invalidate("spring index C=%.2f is not coilable (need C > 1)", res.Index)
	}
	if ok && res.SolidLength >= geo.FreeLength {
		res.invalidate("solid length %.2f mm >= free length %.2f mm", res.SolidLength, geo.FreeLength)
	}

	if flags.Dynamics {
		res.NaturalFrequency = formula.NaturalFrequency(geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils, mat.ShearModulus, mat.Density)
	}
	if mat.Density > 0 {
		vol := formula.WireVolume(geo.WireDiameter, formula.WireLength(geo.MeanDiameter, nt))
		res.Mass = vol * mat.Density * 1e-6 // mm³ · kg/m³ → g
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		res.Points = append(res.Points, compressionPoint(geo.FreeLength, res.SolidLength, res.Rate, geo.MeanDiameter, geo.WireDiameter, res.WahlFactor, defl, mat, flags))
	}
	return res
}

// compressionPoint evaluates one axial load point; shared with the
// shock engine which differs only in preload handling.
func compressionPoint(freeLength, solid, rate, dm, d, wahl, defl float64, mat material.Properties, flags ModuleFlags) LoadPointResult {
	p := LoadPointResult{
		Deflection: defl,
		Position:   DeflectionToHeight(freeLength, defl),
		Status:     StatusOK,
	}
	p.Load = rate * defl
	p.Stress = formula.ShearStress(p.Load, dm, d, wahl)

	if defl < 0 {
		p.Status = StatusError
		p.Message = fmt.Sprintf("height %.2f mm exceeds free length %.2f mm", p.Position, freeLength)
		return p
	}
	if formula.CoilBound(p.Position, solid) {
		p.Status = StatusError
		p.Message = fmt.Sprintf("coil bind: height %.2f mm <= solid length %.2f mm", p.Position, solid)
		return p
	}
	if st, msg := shearStatus(p.Stress, mat, flags); st != StatusOK {
		p.Status, p.Message = st, msg
	}
	return p
}

// SolveForTarget inverts the rate formula. TargetRate recovers the
// active coil count; TargetLoadAtPosition recovers the free length that
// puts the target load at the target height.
func (CompressionEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	switch target.Kind {
	case TargetRate:
		return solveCoilsFromRate(geo, mat, target.Rate)
	case TargetLoadAtPosition:
		return solveFreeLengthFromLoad(geo, mat, target)
	default:
		return invalidInverse("", fmt.Sprintf("unsupported target kind %q", target.Kind))
	}
}

// solveCoilsFromRate solves n = G·d⁴ / (8·D³·k*).
func solveCoilsFromRate(geo Geometry, mat material.Properties, rate float64) InverseResult {
	const param = "activeCoils"
	if rate <= 0 {
		return invalidInverse(param, fmt.Sprintf("target rate %.3f N/mm must be > 0", rate))
	}
	if geo.WireDiameter <= 0 || geo.MeanDiameter <= 0 || mat.ShearModulus <= 0 {
		return invalidInverse(param, "wire diameter, mean diameter and shear modulus must be > 0")
	}
	n := mat.ShearModulus * pow4(geo.WireDiameter) / (8 * pow3(geo.MeanDiameter) * rate)
	if n < minSolvedCoils || n > maxSolvedCoils {
		return invalidInverse(param, fmt.Sprintf("solved coil count %.2f outside [%g, %g]", n, minSolvedCoils, maxSolvedCoils))
	}
	return InverseResult{Parameter: param, Value: n, Valid: true, Message: fmt.Sprintf("n = %.3f reaches %.3f N/mm", n, rate)}
}

// solveFreeLengthFromLoad solves L0 = H + P/k for a target load P at
// height H, then checks the result clears the solid length.
func solveFreeLengthFromLoad(geo Geometry, mat material.Properties, target Target) InverseResult {
	const param = "freeLength"
	if target.Load <= 0 {
		return invalidInverse(param, fmt.Sprintf("target load %.2f N must be > 0", target.Load))
	}
	if target.Position <= 0 {
		return invalidInverse(param, fmt.Sprintf("target height %.2f mm must be > 0", target.Position))
	}
	rate := formula.SpringRate(mat.ShearModulus, geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils)
	if rate <= 0 {
		return invalidInverse(param, "geometry yields no usable rate (check d, Dm, n, G)")
	}
	defl := target.Load / rate
	if defl <= 0 {
		return invalidInverse(param, "target implies non-positive deflection")
	}
	nt := geo.TotalCoils
	if nt <= 0 {
		nt = geo.ActiveCoils + 2
	}
	solid := formula.SolidLength(nt, geo.WireDiameter)
	if target.Position <= solid {
		return invalidInverse(param, fmt.Sprintf("target height %.2f mm is at or below solid length %.2f mm", target.Position, solid))
	}
	l0 := target.Position + defl
	return InverseResult{Parameter: param, Value: l0, Valid: true, Message: fmt.Sprintf("L0 = %.3f mm gives %.2f N at %.2f mm", l0, target.Load, target.Position)}
}

func pow3(x float64) float64 { return x * x * x }
func pow4(x float64) float64 { return x * x * x * x }
