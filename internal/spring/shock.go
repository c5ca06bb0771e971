package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// ShockEngine computes suspension (shock absorber) coil springs: a
// compression body installed under preload and cycled over a rated
// stroke. Canonical load value: deflection from the installed position.
// Stress checks run against the dynamic allowable regardless of the
// fatigue flag, since the duty is cyclic by definition.
type ShockEngine struct{}

func (ShockEngine) Type() SpringType { return Shock }

func (ShockEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	flags.FatigueCheck = flags.FatigueCheck || flags.StressCheck

	res := Result{Type: Shock, Valid: true, WahlFactor: 1, FreeLength: geo.FreeLength}

	ok := requirePositive(&res, "wireDiameter", geo.WireDiameter)
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	ok = requirePositive(&res, "freeLength", geo.FreeLength) && ok
	if geo.Preload < 0 {
		res.invalidate("preload %.2f N must be >= 0", geo.Preload)
	}
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

	// Installed position under preload.
	preloadDefl := 0.0
	if res.Rate > 0 {
		preloadDefl = geo.Preload / res.Rate
	}
	installedHeight := geo.FreeLength - preloadDefl
	if ok && installedHeight <= res.SolidLength {
		res.invalidate("preload %.2f N compresses to %.2f mm, at or below solid length %.2f mm", geo.Preload, installedHeight, res.SolidLength)
	}
	if ok && geo.Stroke > 0 && installedHeight-geo.Stroke <= res.SolidLength {
		res.Messages = append(res.Messages, fmt.Sprintf("rated stroke %.2f mm runs into solid length from installed height %.2f mm", geo.Stroke, installedHeight))
	}

	if flags.Dynamics {
		res.NaturalFrequency = formula.NaturalFrequency(geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils, mat.ShearModulus, mat.Density)
	}
	if mat.Density > 0 {
		vol := formula.WireVolume(geo.WireDiameter, formula.WireLength(geo.MeanDiameter, nt))
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, defl := range loads.Values {
		total := preloadDefl + defl
		p := compressionPoint(geo.FreeLength, res.SolidLength, res.Rate, geo.MeanDiameter, geo.WireDiameter, res.WahlFactor, total, mat, flags)
		// Report travel relative to the installed position.
		p.Deflection = defl
		if p.Status == StatusOK && geo.Stroke > 0 && defl > geo.Stroke {
			p.Status = StatusWarning
			p.Message = fmt.Sprintf("deflection %.2f mm exceeds rated stroke %.2f mm", defl, geo.Stroke)
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// SolveForTarget shares the compression inversions: the absolute
// load-height relation of the body is unchanged by how it is installed.
func (ShockEngine) SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult {
	return CompressionEngine{}.SolveForTarget(geo, mat, target)
}
