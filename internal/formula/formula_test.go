package formula_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mweissbach/gospring/internal/formula"
)

// ------------------------------------------------------------------------
// Spring rate
// ------------------------------------------------------------------------

func TestSpringRate_ReferenceValue(t *testing.T) {
	// d=3, Dm=24, n=10, G=79000: k = 79000·3⁴/(8·24³·10)
	want := 79000.0 * math.Pow(3, 4) / (8 * math.Pow(24, 3) * 10)
	got := formula.SpringRate(79000, 3, 24, 10)
	assert.InDelta(t, want, got, 0.01)
	assert.InDelta(t, 5.786, got, 0.01)
}

func TestSpringRate_NonPositiveInputsReturnZero(t *testing.T) {
	assert.Zero(t, formula.SpringRate(0, 3, 24, 10))
	assert.Zero(t, formula.SpringRate(79000, 0, 24, 10))
	assert.Zero(t, formula.SpringRate(79000, 3, 0, 10))
	assert.Zero(t, formula.SpringRate(79000, 3, 24, 0))
	assert.Zero(t, formula.SpringRate(79000, -3, 24, 10))
}

func TestTorsionRate_UsesElasticModulusAndDegrees(t *testing.T) {
	// One full coil of 2 mm wire on Dm=16: k_rad = E·d⁴/(64·D·n).
	perRad := 206000.0 * 16 / (64 * 16 * 4)
	want := perRad * math.Pi / 180
	assert.InDelta(t, want, formula.TorsionRate(206000, 2, 16, 4), 1e-9)
	assert.Zero(t, formula.TorsionRate(206000, 2, 0, 4))
}

// ------------------------------------------------------------------------
// Spring index and correction factors
// ------------------------------------------------------------------------

func TestWahlFactor_AsymptoteAndDegenerate(t *testing.T) {
	// K → 1 as C → ∞.
	assert.InDelta(t, 1.0, formula.WahlFactor(1e9), 1e-6)

	// C = 1 is degenerate: defined, no division by zero, returns 1.
	assert.Equal(t, 1.0, formula.WahlFactor(1))
	assert.Equal(t, 1.0, formula.WahlFactor(0.5))

	// A typical index yields the handbook value.
	// C=8: K = 31/28 + 0.615/8 = 1.1839...
	assert.InDelta(t, 1.184, formula.WahlFactor(8), 0.001)
}

func TestWahlFactor_MonotonicDecreasing(t *testing.T) {
	prev := formula.WahlFactor(2)
	for c := 3.0; c <= 20; c++ {
		k := formula.WahlFactor(c)
		require.Less(t, k, prev, "K must decrease with C (C=%v)", c)
		prev = k
	}
}

func TestBendingCorrectionFactor(t *testing.T) {
	// C=6: Kb = (144−6−1)/(4·6·5) = 137/120
	assert.InDelta(t, 137.0/120.0, formula.BendingCorrectionFactor(6), 1e-9)
	assert.Equal(t, 1.0, formula.BendingCorrectionFactor(1))
}

// ------------------------------------------------------------------------
// Stress
// ------------------------------------------------------------------------

func TestShearStress_MonotonicInLoad(t *testing.T) {
	k := formula.WahlFactor(8)
	prev := -1.0
	for p := 0.0; p <= 200; p += 10 {
		tau := formula.ShearStress(p, 24, 3, k)
		require.Greater(t, tau, prev, "stress must grow with load")
		prev = tau
	}
}

func TestShearStress_ReferenceValue(t *testing.T) {
	// τ = 8·P·D·K/(π·d³) with P=100, D=24, d=3, K=1.
	want := 8.0 * 100 * 24 / (math.Pi * 27)
	assert.InDelta(t, want, formula.ShearStress(100, 24, 3, 1), 1e-9)
}

// ------------------------------------------------------------------------
// Solid limit
// ------------------------------------------------------------------------

func TestCoilBound_BoundaryExactAndEpsilon(t *testing.T) {
	solid := 36.0
	assert.True(t, formula.CoilBound(solid, solid), "contact at exactly solid is bound")
	assert.True(t, formula.CoilBound(solid-0.1, solid))
	assert.False(t, formula.CoilBound(solid+1e-9, solid), "solid + ε is not bound")
}

func TestAngleClosedOut(t *testing.T) {
	assert.True(t, formula.AngleClosedOut(90, 90))
	assert.True(t, formula.AngleClosedOut(91, 90))
	assert.False(t, formula.AngleClosedOut(89.999, 90))
	assert.False(t, formula.AngleClosedOut(500, 0), "no limit configured")
}

// ------------------------------------------------------------------------
// Variant forms
// ------------------------------------------------------------------------

func TestConicalRate_ReducesToCylindrical(t *testing.T) {
	// D1 = D2 = D collapses the conical form to G·d⁴/(8·D³·n).
	cyl := formula.SpringRate(79000, 3, 24, 10)
	con := formula.ConicalRate(79000, 3, 24, 24, 10)
	assert.InDelta(t, cyl, con, 1e-9)
}

func TestConicalRate_SofterThanSmallEndCylinder(t *testing.T) {
	// A taper is stiffer than a cylinder at the large end and softer
	// than one at the small end.
	con := formula.ConicalRate(79000, 3, 30, 18, 10)
	large := formula.SpringRate(79000, 3, 30, 10)
	small := formula.SpringRate(79000, 3, 18, 10)
	assert.Greater(t, con, large)
	assert.Less(t, con, small)
}

func TestDiscShapeFactor_InvalidRatios(t *testing.T) {
	assert.Zero(t, formula.DiscShapeFactor(20, 20))
	assert.Zero(t, formula.DiscShapeFactor(20, 25))
	assert.Zero(t, formula.DiscShapeFactor(20, 0))
	// De/Di = 2 gives the handbook K1 ≈ 0.69.
	assert.InDelta(t, 0.69, formula.DiscShapeFactor(40, 20), 0.01)
}

func TestDiscLoad_ZeroAtZeroDeflectionAndGrowing(t *testing.T) {
	assert.Zero(t, formula.DiscLoad(206000, 0.3, 2, 1, 40, 20, 0))
	f1 := formula.DiscLoad(206000, 0.3, 2, 1, 40, 20, 0.2)
	f2 := formula.DiscLoad(206000, 0.3, 2, 1, 40, 20, 0.4)
	require.Positive(t, f1)
	assert.Greater(t, f2, f1)
}

func TestSpiralRate_LinearInAngle(t *testing.T) {
	rate := formula.SpiralRate(206000, 10, 0.5, 400)
	m90 := formula.SpiralTorque(206000, 10, 0.5, 400, 90)
	assert.InDelta(t, rate*90, m90, 1e-9)
}

func TestWaveRate_PositiveAndWaveCountDominates(t *testing.T) {
	k3 := formula.WaveRate(206000, 8, 0.4, 40, 3, 5)
	k4 := formula.WaveRate(206000, 8, 0.4, 40, 4, 5)
	require.Positive(t, k3)
	// Nw⁴ scaling: 4 waves vs 3 waves differ by (4/3)⁴.
	assert.InDelta(t, math.Pow(4.0/3.0, 4), k4/k3, 1e-9)
}

func TestRectWireFactors_InterpolationAndClamping(t *testing.T) {
	k1Low, k2Low := formula.RectWireFactors(0.5)
	k1One, k2One := formula.RectWireFactors(1.0)
	assert.Equal(t, k1One, k1Low)
	assert.Equal(t, k2One, k2Low)

	k1Mid, k2Mid := formula.RectWireFactors(1.25)
	assert.InDelta(t, (2.41+2.16)/2, k1Mid, 1e-9)
	assert.InDelta(t, (0.180+0.250)/2, k2Mid, 1e-9)

	k1Hi, _ := formula.RectWireFactors(100)
	assert.Equal(t, 1.95, k1Hi)
}

func TestNaturalFrequency_ReasonableForValveSpring(t *testing.T) {
	// Steel valve spring: low hundreds of Hz expected.
	f := formula.NaturalFrequency(4, 25, 6, 81500, 7850)
	assert.Greater(t, f, 100.0)
	assert.Less(t, f, 2000.0)
}
