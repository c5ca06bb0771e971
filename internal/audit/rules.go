package audit

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/spring"
)

// StandardRules returns the built-in rule set. Rules read only their
// Input; adding a rule never touches the aggregation in Engine.Run.
func StandardRules() []Rule {
	return []Rule{
		{
			ID:       "PHY-VALID",
			Label:    "Result validity",
			Category: Physics,
			Evaluate: ruleResultValid,
		},
		{
			ID:       "PHY-TRAVEL",
			Label:    "Load points within physical travel",
			Category: Physics,
			Evaluate: ruleTravel,
		},
		{
			ID:       "SAF-FACTOR",
			Label:    "Safety factor at maximum load",
			Category: Safety,
			Evaluate: ruleSafetyFactor,
		},
		{
			ID:       "SAF-STRESS-RATIO",
			Label:    "Stress utilisation",
			Category: Safety,
			Evaluate: ruleStressRatio,
		},
		{
			ID:       "DLV-INDEX",
			Label:    "Spring index coilable window",
			Category: Deliverability,
			Evaluate: ruleIndexWindow,
		},
		{
			ID:       "DLV-WIRE-RANGE",
			Label:    "Wire size within tooling range",
			Category: Deliverability,
			Evaluate: ruleWireRange,
		},
		{
			ID:       "DLV-BIND-MARGIN",
			Label:    "Margin to solid / close-out",
			Category: Deliverability,
			Evaluate: ruleBindMargin,
		},
		{
			ID:       "DLV-SLENDERNESS",
			Label:    "Buckling slenderness",
			Category: Deliverability,
			Evaluate: ruleSlenderness,
		},
	}
}

// ruleResultValid fails closed on any invalid calculation result.
func ruleResultValid(in Input) Finding {
	f := Finding{Threshold: "Result.Valid == true", Status: Pass, Message: "calculation valid"}
	if !in.Result.Valid {
		f.Status = Fail
		f.Message = "calculation flagged invalid"
		if len(in.Result.Messages) > 0 {
			f.Message = in.Result.Messages[0]
		}
	}
	return f
}

// ruleTravel mirrors the per-point statuses: any error point fails,
// any warning point warns.
func ruleTravel(in Input) Finding {
	f := Finding{Threshold: "no load point in error", Status: Pass, Message: "all load points within travel"}
	errs, warns := 0, 0
	for _, p := range in.Result.Points {
		switch p.Status {
		case spring.StatusError:
			errs++
		case spring.StatusWarning:
			warns++
		}
	}
	f.Value = float64(errs)
	switch {
	case errs > 0:
		f.Status = Fail
		f.Message = fmt.Sprintf("%d of %d load points exceed the physical limit", errs, len(in.Result.Points))
	case warns > 0:
		f.Status = Warn
		f.Message = fmt.Sprintf("%d of %d load points carry warnings", warns, len(in.Result.Points))
	}
	return f
}

// maxPointStress returns the largest stress across the load points.
func maxPointStress(r spring.Result) float64 {
	max := 0.0
	for _, p := range r.Points {
		if p.Stress > max {
			max = p.Stress
		}
	}
	return max
}

// allowableFor picks the allowable stress for the family: shear for
// wire-in-torsion families, bending for strip/torsion families.
func allowableFor(in Input) float64 {
	switch in.Result.Type {
	case spring.Torsion, spring.Spiral, spring.Disc, spring.Wave:
		return in.Requirements.Material.AllowableBending
	default:
		return in.Requirements.Material.AllowableShearStatic
	}
}

// ruleSafetyFactor computes allowable/computed stress at the most
// loaded point. MinSafetyFactor is a mandatory requirement; a missing
// value fails the rule with an explanation instead of aborting.
func ruleSafetyFactor(in Input) Finding {
	f := Finding{}
	if in.Requirements.MinSafetyFactor <= 0 {
		f.Status = Fail
		f.Message = "requirement MinSafetyFactor not set"
		return f
	}
	f.Threshold = fmt.Sprintf(">= %.2f", in.Requirements.MinSafetyFactor)
	allow := allowableFor(in)
	stress := maxPointStress(in.Result)
	if allow <= 0 {
		f.Status = Fail
		f.Message = "material allowable stress not supplied"
		return f
	}
	if stress <= 0 {
		f.Status = Warn
		f.Message = "no stressed load point to judge"
		return f
	}
	f.Value = allow / stress
	if f.Value < in.Requirements.MinSafetyFactor {
		f.Status = Fail
		f.Message = fmt.Sprintf("safety factor %.2f below required %.2f", f.Value, in.Requirements.MinSafetyFactor)
		return f
	}
	f.Status = Pass
	f.Message = fmt.Sprintf("safety factor %.2f", f.Value)
	return f
}

// ruleStressRatio caps computed/allowable utilisation; optional.
func ruleStressRatio(in Input) Finding {
	f := Finding{}
	if in.Requirements.MaxStressRatio <= 0 {
		f.Status = Pass
		f.Message = "no utilisation cap configured"
		return f
	}
	f.Threshold = fmt.Sprintf("<= %.2f", in.Requirements.MaxStressRatio)
	allow := allowableFor(in)
	if allow <= 0 {
		f.Status = Fail
		f.Message = "material allowable stress not supplied"
		return f
	}
	f.Value = maxPointStress(in.Result) / allow
	switch {
	case f.Value > in.Requirements.MaxStressRatio:
		f.Status = Fail
		f.Message = fmt.Sprintf("utilisation %.2f exceeds cap %.2f", f.Value, in.Requirements.MaxStressRatio)
	case f.Value > 0.9*in.Requirements.MaxStressRatio:
		f.Status = Warn
		f.Message = fmt.Sprintf("utilisation %.2f close to cap %.2f", f.Value, in.Requirements.MaxStressRatio)
	default:
		f.Status = Pass
		f.Message = fmt.Sprintf("utilisation %.2f", f.Value)
	}
	return f
}

// Default coilability window used when the requirements leave the
// index bounds unset. Below C=4 the coiler tooling marks the wire,
// above C=20 the body is too floppy to handle.
const (
	defaultMinIndex = 4.0
	defaultMaxIndex = 20.0
)

// ruleIndexWindow checks C against the coilable window for families
// where the index applies (Index > 0).
func ruleIndexWindow(in Input) Finding {
	f := Finding{Value: in.Result.Index}
	if in.Result.Index <= 0 {
		f.Status = Pass
		f.Message = "spring index not applicable to this family"
		return f
	}
	lo, hi := in.Requirements.MinIndex, in.Requirements.MaxIndex
	if lo <= 0 {
		lo = defaultMinIndex
	}
	if hi <= 0 {
		hi = defaultMaxIndex
	}
	f.Threshold = fmt.Sprintf("%.1f <= C <= %.1f", lo, hi)
	switch {
	case in.Result.Index <= 1:
		f.Status = Fail
		f.Message = fmt.Sprintf("index C=%.2f is not coilable", in.Result.Index)
	case in.Result.Index < lo || in.Result.Index > hi:
		f.Status = Warn
		f.Message = fmt.Sprintf("index C=%.2f outside preferred window", in.Result.Index)
	default:
		f.Status = Pass
		f.Message = fmt.Sprintf("index C=%.2f", in.Result.Index)
	}
	return f
}

// ruleWireRange checks the wire diameter (strip thickness for strip
// families) against the tooling window; optional per bound.
func ruleWireRange(in Input) Finding {
	f := Finding{}
	lo, hi := in.Requirements.MinWireDiameter, in.Requirements.MaxWireDiameter
	if lo <= 0 && hi <= 0 {
		f.Status = Pass
		f.Message = "no wire size window configured"
		return f
	}
	size := in.Geometry.WireDiameter
	if size <= 0 {
		size = in.Geometry.StripThickness
	}
	if size <= 0 {
		size = in.Geometry.Thickness
	}
	if size <= 0 {
		f.Status = Warn
		f.Message = "no wire or strip size in the geometry to judge"
		return f
	}
	f.Value = size
	switch {
	case lo > 0 && hi > 0:
		f.Threshold = fmt.Sprintf("%.2f <= d <= %.2f", lo, hi)
	case lo > 0:
		f.Threshold = fmt.Sprintf("d >= %.2f", lo)
	default:
		f.Threshold = fmt.Sprintf("d <= %.2f", hi)
	}
	if (lo > 0 && size < lo) || (hi > 0 && size > hi) {
		f.Status = Fail
		f.Message = fmt.Sprintf("wire size %.2f mm outside tooling range", size)
		return f
	}
	f.Status = Pass
	f.Message = fmt.Sprintf("wire size %.2f mm", size)
	return f
}

// ruleBindMargin checks the remaining travel at the most loaded point
// against MinCoilBindMargin (mm for axial, degrees for rotational).
func ruleBindMargin(in Input) Finding {
	f := Finding{}
	if in.Requirements.MinCoilBindMargin <= 0 {
		f.Status = Pass
		f.Message = "no bind margin configured"
		return f
	}
	f.Threshold = fmt.Sprintf(">= %.2f", in.Requirements.MinCoilBindMargin)

	margin, ok := minTravelMargin(in.Result)
	if !ok {
		f.Status = Warn
		f.Message = "no load points to judge"
		return f
	}
	f.Value = margin
	switch {
	case margin <= 0:
		f.Status = Fail
		f.Message = "travel limit reached at a load point"
	case margin < in.Requirements.MinCoilBindMargin:
		f.Status = Fail
		f.Message = fmt.Sprintf("margin %.2f below required %.2f", margin, in.Requirements.MinCoilBindMargin)
	default:
		f.Status = Pass
		f.Message = fmt.Sprintf("margin %.2f", margin)
	}
	return f
}

// minTravelMargin returns the smallest remaining travel over all points.
func minTravelMargin(r spring.Result) (float64, bool) {
	if len(r.Points) == 0 {
		return 0, false
	}
	min := 0.0
	first := true
	for _, p := range r.Points {
		var m float64
		if r.CloseOutAngle > 0 {
			m = r.CloseOutAngle - p.Position
		} else if r.SolidLength > 0 {
			m = p.Position - r.SolidLength
		} else {
			continue
		}
		if first || m < min {
			min, first = m, false
		}
	}
	if first {
		return 0, false
	}
	return min, true
}

// ruleSlenderness warns on compression bodies that need a buckling
// guide; optional.
func ruleSlenderness(in Input) Finding {
	f := Finding{}
	if in.Requirements.MaxSlenderness <= 0 {
		f.Status = Pass
		f.Message = "no slenderness cap configured"
		return f
	}
	if in.Geometry.MeanDiameter <= 0 || in.Result.FreeLength <= 0 {
		f.Status = Pass
		f.Message = "slenderness not applicable"
		return f
	}
	f.Threshold = fmt.Sprintf("<= %.2f", in.Requirements.MaxSlenderness)
	f.Value = in.Result.FreeLength / in.Geometry.MeanDiameter
	if f.Value > in.Requirements.MaxSlenderness {
		f.Status = Warn
		f.Message = fmt.Sprintf("L0/Dm = %.2f requires a buckling guide", f.Value)
		return f
	}
	f.Status = Pass
	f.Message = fmt.Sprintf("L0/Dm = %.2f", f.Value)
	return f
}
