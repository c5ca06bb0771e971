package spring

import (
	"fmt"
	"math"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// WaveEngine computes multi-turn crest-to-crest wave springs from flat
// strip. Canonical load value: axial deflection in mm.
type WaveEngine struct{}

func (WaveEngine) Type() SpringType { return Wave }

func (WaveEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Wave, Valid: true, WahlFactor: 1, FreeLength: geo.FreeLength}

	ok := requirePositive(&res, "stripWidth", geo.StripWidth)
	ok = requirePositive(&res, "stripThickness", geo.StripThickness) && ok
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "wavesPerTurn", geo.WavesPerTurn) && ok
	ok = requirePositive(&res, "turns", geo.Turns) && ok
	ok = requirePositive(&res, "freeLength", geo.FreeLength) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}

	res.Rate = formula.WaveRate(mat.ElasticModulus, geo.StripWidth, geo.StripThickness, geo.MeanDiameter, geo.WavesPerTurn, geo.Turns)
	res.SolidLength = geo.Turns * geo.StripThickness
	if ok && res.SolidLength >= geo.FreeLength {
		res.invalidate("stack height %.2f mm >= free height %.2f mm", res.SolidLength, geo.FreeLength)
	}

	if mat.Density > 0 {
		vol := geo.StripWidth * geo.StripThickness * math.Pi * geo.MeanDiameter * geo.Turns
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		p := LoadPointResult{
			Deflection: defl,
			Position:   DeflectionToHeight(geo.FreeLength, defl),
			Status:     StatusOK,
		}
		p.Load = res.Rate * defl
		p.Stress = formula.WaveStress(p.Load, geo.MeanDiameter, geo.StripWidth, geo.StripThickness, geo.WavesPerTurn)
		switch {
		case defl < 0:
			p.Status = StatusError
			p.Message = fmt.Sprintf("height %.2f mm exceeds free height %.2f mm", p.Position, geo.FreeLength)
		case formula.CoilBound(p.Position, res.SolidLength):
			p.Status = StatusError
			p.Message = fmt.Sprintf("wave stack solid: height %.2f mm <= stack height %.2f mm", p.Position, res.SolidLength)
		default:
			if st, msg := bendingStatus(p.Stress, mat, flags); st != StatusOK {
				p.Status, p.Message = st, msg
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// SolveForTarget recovers the turn count from a target rate:
// Nt = E·b·t³·Nw⁴ / (K·Dm³·k*).
func (WaveEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	const param = "turns"
	if target.Kind != TargetRate {
		return invalidInverse(param, fmt.Sprintf("unsupported target kind %q for wave springs", target.Kind))
	}
	if target.Rate <= 0 {
		return invalidInverse(param, fmt.Sprintf("target rate %.3f N/mm must be > 0", target.Rate))
	}
	oneTurn := formula.WaveRate(mat.ElasticModulus, geo.StripWidth, geo.StripThickness, geo.MeanDiameter, geo.WavesPerTurn, 1)
	if oneTurn <= 0 {
		return invalidInverse(param, "geometry yields no usable rate (check b, t, Dm, Nw, E)")
	}
	nt := oneTurn / target.Rate
	if nt < minSolvedCoils || nt > maxSolvedCoils {
		return invalidInverse(param, fmt.Sprintf("solved turn count %.2f outside [%g, %g]", nt, minSolvedCoils, maxSolvedCoils))
	}
	return InverseResult{Parameter: param, Value: nt, Valid: true, Message: fmt.Sprintf("Nt = %.3f reaches %.3f N/mm", nt, target.Rate)}
}
