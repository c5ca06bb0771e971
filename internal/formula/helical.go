package formula

import "math"

// Closed-form helical spring mechanics following EN 13906-1 (compression),
// EN 13906-2 (extension) and EN 13906-3 (torsion). All lengths in mm,
// forces in N, moduli and stresses in MPa, moments in N-mm, angles in
// degrees unless noted.

const (
	// DegPerRad converts radians to degrees.
	DegPerRad = 180.0 / math.Pi

	// MinSpringIndex below which the Wahl correction is undefined and the
	// wire cannot be coiled anyway.
	MinSpringIndex = 1.0
)

// SpringRate returns the linear rate k = G·d⁴ / (8·D³·n) in N/mm.
// Returns 0 for any non-positive dimension instead of dividing by zero;
// callers must treat a zero rate as invalid geometry.
func SpringRate(g, d, dm, n float64) float64 {
	if g <= 0 || d <= 0 || dm <= 0 || n <= 0 {
		return 0
	}
	return g * math.Pow(d, 4) / (8 * math.Pow(dm, 3) * n)
}

// TorsionRate returns the angular rate of a helical torsion spring in
// N-mm per degree: k = E·d⁴ / (64·D·n) per radian, scaled by π/180.
func TorsionRate(e, d, dm, n float64) float64 {
	if e <= 0 || d <= 0 || dm <= 0 || n <= 0 {
		return 0
	}
	perRad := e * math.Pow(d, 4) / (64 * dm * n)
	return perRad / DegPerRad
}

// SpringIndex returns C = D/d, or 0 when either dimension is non-positive.
func SpringIndex(dm, d float64) float64 {
	if dm <= 0 || d <= 0 {
		return 0
	}
	return dm / d
}

// WahlFactor returns the stress correction factor
// K = (4C−1)/(4C−4) + 0.615/C. For C ≤ 1 the factor is undefined; by
// convention 1 is returned so downstream stress values stay finite while
// the geometry is flagged invalid elsewhere.
func WahlFactor(c float64) float64 {
	if c <= MinSpringIndex {
		return 1
	}
	return (4*c-1)/(4*c-4) + 0.615/c
}

// BendingCorrectionFactor returns the inner-fibre correction for torsion
// springs, Kb = (4C² − C − 1) / (4C·(C − 1)). Degenerates to 1 for C ≤ 1.
func BendingCorrectionFactor(c float64) float64 {
	if c <= MinSpringIndex {
		return 1
	}
	return (4*c*c - c - 1) / (4 * c * (c - 1))
}

// ShearStress returns the curvature-corrected torsional shear stress
// τ = 8·P·D·K / (π·d³) for a load P on a helical spring.
func ShearStress(p, dm, d, k float64) float64 {
	if d <= 0 {
		return 0
	}
	return 8 * p * dm * k / (math.Pi * math.Pow(d, 3))
}

// BendingStress returns the corrected bending stress at the wire surface
// of a torsion spring under moment m: σ = 32·M·Kb / (π·d³).
func BendingStress(m, d, kb float64) float64 {
	if d <= 0 {
		return 0
	}
	return 32 * m * kb / (math.Pi * math.Pow(d, 3))
}

// SolidLength returns the block length of a helical compression spring
// with closed and ground ends: Lc = nt·d, where nt counts total coils.
func SolidLength(nt, d float64) float64 {
	if nt <= 0 || d <= 0 {
		return 0
	}
	return nt * d
}

// CoilBound reports whether a compressed height has reached or passed the
// solid length. Contact at exactly the solid length already counts as
// bound: there is no remaining travel.
func CoilBound(height, solid float64) bool {
	return height <= solid
}

// AngleClosedOut is the rotational analog of CoilBound: the working angle
// has reached or passed the close-out angle.
func AngleClosedOut(angle, closeOut float64) bool {
	if closeOut <= 0 {
		return false
	}
	return angle >= closeOut
}

// WireLength returns the developed wire length π·D·nt of a helical body,
// ignoring end hooks and legs.
func WireLength(dm, nt float64) float64 {
	if dm <= 0 || nt <= 0 {
		return 0
	}
	return math.Pi * dm * nt
}

// WireVolume returns the wire volume of round wire of diameter d along a
// developed length l.
func WireVolume(d, l float64) float64 {
	if d <= 0 || l <= 0 {
		return 0
	}
	return math.Pi / 4 * d * d * l
}

// NaturalFrequency returns the first surge frequency in Hz of an axially
// loaded helical spring: f = d / (2·π·n·D²) · √(G/(2·ρ)), with ρ in
// kg/m³ converted to the mm-MPa unit system internally.
func NaturalFrequency(d, dm, n, g, density float64) float64 {
	if d <= 0 || dm <= 0 || n <= 0 || g <= 0 || density <= 0 {
		return 0
	}
	// density kg/m³ → t/mm³ so that √(G/ρ) comes out in mm/s.
	rho := density * 1e-12
	return d / (2 * math.Pi * n * dm * dm) * math.Sqrt(g/(2*rho))
}

// Slenderness returns the buckling slenderness ratio L0/D of a
// compression spring. Springs with L0/D above roughly 2.6 (guided ends)
// need a buckling check.
func Slenderness(freeLength, dm float64) float64 {
	if dm <= 0 {
		return 0
	}
	return freeLength / dm
}
