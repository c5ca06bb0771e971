package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// ExtensionEngine computes helical extension springs with initial
// tension and hook allowances. Body length Lk = (n+1)·d; the free length
// adds the hook allowance at both ends when FreeLength is not supplied.
type ExtensionEngine struct{}

func (ExtensionEngine) Type() SpringType { return Extension }

func (ExtensionEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Extension, Valid: true, WahlFactor: 1}

	ok := requirePositive(&res, "wireDiameter", geo.WireDiameter)
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}
	if geo.InitialTension < 0 {
		res.invalidate("initial tension %.2f N must be >= 0", geo.InitialTension)
	}

	res.Rate = formula.SpringRate(mat.ShearModulus, geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils)
	res.Index = formula.SpringIndex(geo.MeanDiameter, geo.WireDiameter)
	res.WahlFactor = formula.WahlFactor(res.Index)

	bodyLength := (geo.ActiveCoils + 1) * geo.WireDiameter
	res.FreeLength = geo.FreeLength
	if res.FreeLength <= 0 {
		res.FreeLength = bodyLength + 2*geo.HookLength
	}
	if ok && res.Index <= formula.MinSpringIndex {
		res.invalidate("spring index C=%.2f is not coilable (need C > 1)", res.Index)
	}

	if mat.Density > 0 {
		vol := formula.WireVolume(geo.WireDiameter, formula.WireLength(geo.MeanDiameter, geo.ActiveCoils+1))
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		p := LoadPointResult{
			Deflection: defl,
			Position:   res.FreeLength + defl,
			Status:     StatusOK,
		}
		p.Load = geo.InitialTension + res.Rate*defl
		p.Stress = formula.ShearStress(p.Load, geo.MeanDiameter, geo.WireDiameter, res.WahlFactor)
		switch {
		case defl < 0:
			// An extension spring body is wound solid; it cannot be
			// compressed below its free length.
			p.Status = StatusError
			p.Message = fmt.Sprintf("negative extension %.2f mm: body is already solid at free length", defl)
		case p.Load < geo.InitialTension:
			p.Status = StatusError
			p.Message = "load below initial tension: coils have not separated"
		default:
			if st, msg := shearStatus(p.Stress, mat, flags); st != StatusOK {
				p.Status, p.Message = st, msg
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// SolveForTarget supports the same two inversions as compression; the
// load inversion accounts for initial tension, L0 = H − (P − F0)/k.
func (ExtensionEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	switch target.Kind {
	case TargetRate:
		return solveCoilsFromRate(geo, mat, target.Rate)
	case TargetLoadAtPosition:
		const param = "freeLength"
		if target.Load <= geo.InitialTension {
			return invalidInverse(param, fmt.Sprintf("target load %.2f N must exceed initial tension %.2f N", target.Load, geo.InitialTension))
		}
		rate := formula.SpringRate(mat.ShearModulus, geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils)
		if rate <= 0 {
			return invalidInverse(param, "geometry yields no usable rate (check d, Dm, n, G)")
		}
		defl := (target.Load - geo.InitialTension) / rate
		l0 := target.Position - defl
		if l0 <= 0 {
			return invalidInverse(param, fmt.Sprintf("solved free length %.2f mm is not positive", l0))
		}
		return InverseResult{Parameter: param, Value: l0, Valid: true, Message: fmt.Sprintf("L0 = %.3f mm gives %.2f N at %.2f mm", l0, target.Load, target.Position)}
	default:
		return invalidInverse("", fmt.Sprintf("unsupported target kind %q", target.Kind))
	}
}
