package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// SpiralEngine computes flat spiral torsion springs (clock springs) with
// a clamped outer end. Canonical load value: winding angle in degrees.
type SpiralEngine struct{}

func (SpiralEngine) Type() SpringType { return Spiral }

func (SpiralEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Spiral, Valid: true, WahlFactor: 1}

	ok := requirePositive(&res, "stripWidth", geo.StripWidth)
	ok = requirePositive(&res, "stripThickness", geo.StripThickness) && ok
	ok = requirePositive(&res, "stripLength", geo.StripLength) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}
	_ = ok

	res.Rate = formula.SpiralRate(mat.ElasticModulus, geo.StripWidth, geo.StripThickness, geo.StripLength)
	res.CloseOutAngle = geo.CloseOutAngle

	if mat.Density > 0 {
		vol := geo.StripWidth * geo.StripThickness * geo.StripLength
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, angle := range loads.Values {
		p := LoadPointResult{Deflection: angle, Position: angle, Status: StatusOK}
		p.Load = formula.SpiralTorque(mat.ElasticModulus, geo.StripWidth, geo.StripThickness, geo.StripLength, angle)
		p.Stress = formula.SpiralBendingStress(p.Load, geo.StripWidth, geo.StripThickness)
		switch {
		case angle < 0:
			p.Status = StatusError
			p.Message = fmt.Sprintf("winding angle %.2f° unwinds the spiral", angle)
		case formula.AngleClosedOut(angle, res.CloseOutAngle):
			p.Status = StatusError
			p.Message = fmt.Sprintf("close-out: angle %.2f° >= limit %.2f°", angle, res.CloseOutAngle)
		default:
			if st, msg := bendingStatus(p.Stress, mat, flags); st != StatusOK {
				p.Status, p.Message = st, msg
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// SolveForTarget recovers the active strip length from a target angular
// rate: L = π·E·b·t³ / (6·180·k*).
func (SpiralEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	const param = "stripLength"
	rate := target.Rate
	if target.Kind == TargetLoadAtPosition {
		if target.Position <= 0 || target.Load <= 0 {
			return invalidInverse(param, "target torque and angle must both be > 0")
		}
		rate = target.Load / target.Position
	}
	if rate <= 0 {
		return invalidInverse(param, fmt.Sprintf("target rate %.4f N-mm/deg must be > 0", rate))
	}
	if geo.StripWidth <= 0 || geo.StripThickness <= 0 || mat.ElasticModulus <= 0 {
		return invalidInverse(param, "strip width, strip thickness and elastic modulus must be > 0")
	}
	l := formula.SpiralRate(mat.ElasticModulus, geo.StripWidth, geo.StripThickness, 1) / rate
	if l <= 0 {
		return invalidInverse(param, "solved strip length is not positive")
	}
	return InverseResult{Parameter: param, Value: l, Valid: true, Message: fmt.Sprintf("L = %.2f mm reaches %.4f N-mm/deg", l, rate)}
}
