package formula

import "math"

// Closed forms for the non-cylindrical families: conical helices,
// Belleville (disc) washers, spiral torsion strips, multi-wave washers
// and rectangular-wire (die) springs.

// ConicalRate returns the initial linear rate of a conical compression
// spring before any coil telescopes onto its seat:
//
//	k = G·d⁴ / (2·n·(D1+D2)·(D1²+D2²))
//
// D1 and D2 are the mean diameters at the large and small end. The form
// is the Σ D³ integral of the cylindrical rate over a linearly tapering
// coil. Returns 0 on non-positive input.
func ConicalRate(g, d, d1, d2, n float64) float64 {
	if g <= 0 || d <= 0 || d1 <= 0 || d2 <= 0 || n <= 0 {
		return 0
	}
	return g * math.Pow(d, 4) / (2 * n * (d1 + d2) * (d1*d1 + d2*d2))
}

// DiscShapeFactor returns the Almen–László K1 coefficient for a disc
// spring with diameter ratio δ = De/Di:
//
//	K1 = (1/π) · ((δ−1)/δ)² / ((δ+1)/(δ−1) − 2/ln δ)
//
// Undefined for δ ≤ 1 (inner diameter at least the outer); returns 0.
func DiscShapeFactor(de, di float64) float64 {
	if di <= 0 || de <= di {
		return 0
	}
	delta := de / di
	num := math.Pow((delta-1)/delta, 2)
	den := (delta+1)/(delta-1) - 2/math.Log(delta)
	if den <= 0 {
		return 0
	}
	return num / (math.Pi * den)
}

// DiscLoad returns the Almen–László load of a single disc spring at
// deflection s:
//
//	F(s) = 4E/(1−μ²) · t⁴/(K1·De²) · s/t · ((h0/t − s/t)·(h0/t − s/(2t)) + 1)
//
// with thickness t, cone height h0, outer diameter De and Poisson ratio μ.
func DiscLoad(e, mu, t, h0, de, di, s float64) float64 {
	k1 := DiscShapeFactor(de, di)
	if k1 <= 0 || e <= 0 || t <= 0 || de <= 0 {
		return 0
	}
	st := s / t
	ht := h0 / t
	return 4 * e / (1 - mu*mu) * math.Pow(t, 4) / (k1 * de * de) * st * ((ht-st)*(ht-st/2) + 1)
}

// DiscStress returns the compressive stress at the upper inner edge (point
// OM in the Almen–László model), the governing location for static load:
//
//	σ = 4E/(1−μ²) · t²/(K1·De²) · s/t · 3/π
//
// A simplified edge coefficient of 3/π is used in place of the full
// K2/K3 pair; adequate for pass/warn/fail screening.
func DiscStress(e, mu, t, de, di, s float64) float64 {
	k1 := DiscShapeFactor(de, di)
	if k1 <= 0 || e <= 0 || t <= 0 || de <= 0 {
		return 0
	}
	return 4 * e / (1 - mu*mu) * t * t / (k1 * de * de) * (s / t) * (3 / math.Pi)
}

// SpiralTorque returns the moment of a flat spiral torsion spring wound
// through θ degrees: M = π·E·b·t³·θdeg / (6·L·180), for strip width b,
// thickness t and active strip length L.
func SpiralTorque(e, b, t, l, thetaDeg float64) float64 {
	if e <= 0 || b <= 0 || t <= 0 || l <= 0 {
		return 0
	}
	return math.Pi * e * b * math.Pow(t, 3) * thetaDeg / (6 * l * 180)
}

// SpiralRate returns the angular rate of a spiral torsion spring in
// N-mm per degree.
func SpiralRate(e, b, t, l float64) float64 {
	return SpiralTorque(e, b, t, l, 1)
}

// SpiralBendingStress returns the strip bending stress σ = 6M/(b·t²).
func SpiralBendingStress(m, b, t float64) float64 {
	if b <= 0 || t <= 0 {
		return 0
	}
	return 6 * m / (b * t * t)
}

// WaveRate returns the axial rate of a multi-turn wave spring,
// Smalley form:
//
//	k = E·b·t³·Nw⁴ / (K·Dm³·Nt)
//
// with strip width b, thickness t, waves per turn Nw, turns Nt and the
// multi-turn factor K ≈ 3.88.
func WaveRate(e, b, t, dm, wavesPerTurn, turns float64) float64 {
	const kFactor = 3.88
	if e <= 0 || b <= 0 || t <= 0 || dm <= 0 || wavesPerTurn <= 0 || turns <= 0 {
		return 0
	}
	return e * b * math.Pow(t, 3) * math.Pow(wavesPerTurn, 4) / (kFactor * math.Pow(dm, 3) * turns)
}

// WaveStress returns the wave-spring operating bending stress
// σ = 3·π·P·Dm / (4·b·t²·Nw²).
func WaveStress(p, dm, b, t, wavesPerTurn float64) float64 {
	if b <= 0 || t <= 0 || wavesPerTurn <= 0 {
		return 0
	}
	return 3 * math.Pi * p * dm / (4 * b * t * t * wavesPerTurn * wavesPerTurn)
}

// rectFactors interpolates the Bergsträsser shape factors for
// rectangular-wire helical springs over the side ratio b/t. K2 feeds the
// rate, K1 the corner stress.
var rectFactors = []struct {
	ratio, k1, k2 float64
}{
	{1.0, 2.41, 0.180},
	{1.5, 2.16, 0.250},
	{2.0, 2.09, 0.286},
	{3.0, 2.02, 0.312},
	{4.0, 1.99, 0.322},
	{6.0, 1.97, 0.330},
	{10.0, 1.95, 0.336},
}

// RectWireFactors returns (K1, K2) for side ratio b/t, clamping outside
// the tabulated range.
func RectWireFactors(ratio float64) (float64, float64) {
	rf := rectFactors
	if ratio <= rf[0].ratio {
		return rf[0].k1, rf[0].k2
	}
	last := rf[len(rf)-1]
	if ratio >= last.ratio {
		return last.k1, last.k2
	}
	for i := 1; i < len(rf); i++ {
		if ratio <= rf[i].ratio {
			f := (ratio - rf[i-1].ratio) / (rf[i].ratio - rf[i-1].ratio)
			k1 := rf[i-1].k1 + f*(rf[i].k1-rf[i-1].k1)
			k2 := rf[i-1].k2 + f*(rf[i].k2-rf[i-1].k2)
			return k1, k2
		}
	}
	return last.k1, last.k2
}

// RectWireRate returns the rate of a rectangular-wire helical spring,
// k = K2·G·b·t³ / (n·D³), wide side b axial.
func RectWireRate(g, b, t, dm, n float64) float64 {
	if g <= 0 || b <= 0 || t <= 0 || dm <= 0 || n <= 0 {
		return 0
	}
	_, k2 := RectWireFactors(b / t)
	return k2 * g * b * math.Pow(t, 3) / (n * math.Pow(dm, 3))
}

// RectWireStress returns the corrected corner shear stress of a
// rectangular-wire spring under load p: τ = K1·P·D / (b·t²).
func RectWireStress(p, b, t, dm float64) float64 {
	if b <= 0 || t <= 0 {
		return 0
	}
	k1, _ := RectWireFactors(b / t)
	return k1 * p * dm / (b * t * t)
}
