package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/formula"
	"github.com/mweissbach/gospring/internal/material"
)

// ArcEngine computes arc (bow) springs: a helical compression body bent
// along a circular guide of radius R and loaded in rotation, as used in
// dual-mass flywheel dampers. Canonical load value: rotation angle in
// degrees. Torque follows from the linear body rate through the arm,
// M = k·R²·θrad, and the close-out angle from the travel left before
// the body goes solid along the arc.
type ArcEngine struct{}

func (ArcEngine) Type() SpringType { return Arc }

func (ArcEngine) Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result {
	res := Result{Type: Arc, Valid: true, WahlFactor: 1, FreeLength: geo.FreeLength}

	ok := requirePositive(&res, "wireDiameter", geo.WireDiameter)
	ok = requirePositive(&res, "meanDiameter", geo.MeanDiameter) && ok
	ok = requirePositive(&res, "activeCoils", geo.ActiveCoils) && ok
	ok = requirePositive(&res, "arcRadius", geo.ArcRadius) && ok
	ok = requirePositive(&res, "freeLength", geo.FreeLength) && ok
	if !mat.Valid() {
		res.invalidate("invalid material: G=%.0f, E=%.0f", mat.ShearModulus, mat.ElasticModulus)
		ok = false
	}

	nt := geo.TotalCoils
	if nt <= 0 {
		nt = geo.ActiveCoils + 2
	}
	linearRate := formula.SpringRate(mat.ShearModulus, geo.WireDiameter, geo.MeanDiameter, geo.ActiveCoils)
	res.Rate = linearRate * geo.ArcRadius * geo.ArcRadius / formula.DegPerRad // N-mm per degree
	res.Index = formula.SpringIndex(geo.MeanDiameter, geo.WireDiameter)
	res.WahlFactor = formula.WahlFactor(res.Index)
	res.SolidLength = formula.SolidLength(nt, geo.WireDiameter)

	if ok && res.Index <= formula.MinSpringIndex {
		res.invalidate("spring index C=%.2f is not coilable (need C > 1)", res.Index)
	}
	if ok && res.SolidLength >= geo.FreeLength {
		res.invalidate("solid length %.2f mm >= free arc length %.2f mm", res.SolidLength, geo.FreeLength)
	}
	if ok && geo.ArcRadius > 0 {
		res.CloseOutAngle = (geo.FreeLength - res.SolidLength) / geo.ArcRadius * formula.DegPerRad
	}

	if mat.Density > 0 {
		vol := formula.WireVolume(geo.WireDiameter, formula.WireLength(geo.MeanDiameter, nt))
		res.Mass = vol * mat.Density * 1e-6
	}

	res.Points = make([]LoadPointResult, 0, len(loads.Values))
	for _, angle := range loads.Values {
		p := LoadPointResult{Deflection: angle, Position: angle, Status: StatusOK}
		p.Load = AngleToTorque(res.Rate, angle)
		// Stress is governed by the equivalent axial force on the body.
		axial := 0.0
		if geo.ArcRadius > 0 {
			axial = p.Load / geo.ArcRadius
		}
		p.Stress = formula.ShearStress(axial, geo.MeanDiameter, geo.WireDiameter, res.WahlFactor)
		switch {
		case angle < 0:
			p.Status = StatusError
			p.Message = fmt.Sprintf("rotation %.2f° unloads the arc spring", angle)
		case formula.AngleClosedOut(angle, res.CloseOutAngle):
			p.Status = StatusError
			p.Message = fmt.Sprintf("close-out: angle %.2f° >= limit %.2f°", angle, res.CloseOutAngle)
		default:
			if st, msg := shearStatus(p.Stress, mat, flags); st != StatusOK {
				p.Status, p.Message = st, msg
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}
