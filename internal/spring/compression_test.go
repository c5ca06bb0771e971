package spring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mweissbach/gospring/internal/material"
	"github.com/mweissbach/gospring/internal/spring"
)

// Reference compression spring used across the tests: d=3, Dm=24, n=10,
// G=79000, closed-ground ends (nt=12, solid 36 mm), L0=50 mm.
func refGeometry() spring.Geometry {
	return spring.Geometry{
		Type:         spring.Compression,
		WireDiameter: 3,
		MeanDiameter: 24,
		ActiveCoils:  10,
		FreeLength:   50,
	}
}

func refMaterial() material.Properties {
	return material.Properties{
		Name:                 "test steel",
		ShearModulus:         79000,
		ElasticModulus:       206000,
		AllowableShearStatic: 860,
	}
}

const refRate = 79000.0 * 81 / (8 * 13824 * 10) // 5.786 N/mm

func TestCompression_EndToEndScenario(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	flags := spring.ModuleFlags{StressCheck: true}

	// Three points above solid (36 mm), one below it.
	loads := spring.HeightCase(geo.FreeLength, 45, 40, 38, 30)
	res := eng.Calculate(geo, refMaterial(), loads, flags)

	require.True(t, res.Valid, "messages: %v", res.Messages)
	assert.InDelta(t, refRate, res.Rate, 0.01)
	assert.InDelta(t, 8.0, res.Index, 1e-9)
	assert.InDelta(t, 36.0, res.SolidLength, 1e-9)
	require.Len(t, res.Points, 4)

	// F = k·δ for the in-travel points.
	for i, wantDefl := range []float64{5, 10, 12} {
		p := res.Points[i]
		assert.Equal(t, spring.StatusOK, p.Status, "point %d: %s", i, p.Message)
		assert.InDelta(t, wantDefl, p.Deflection, 1e-9)
		assert.InDelta(t, refRate*wantDefl, p.Load, 0.05)
	}

	// The fourth point (H=30 < solid 36) must be an error, and must not
	// suppress the others.
	assert.Equal(t, spring.StatusError, res.Points[3].Status)
	assert.Contains(t, res.Points[3].Message, "coil bind")
}

func TestCompression_CoilBindBoundary(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()

	// Height exactly equal to solid is an error.
	exact := eng.Calculate(geo, mat, spring.HeightCase(geo.FreeLength, 36), spring.ModuleFlags{})
	require.Len(t, exact.Points, 1)
	assert.Equal(t, spring.StatusError, exact.Points[0].Status)

	// Solid + ε is not.
	eps := eng.Calculate(geo, mat, spring.HeightCase(geo.FreeLength, 36.001), spring.ModuleFlags{})
	require.Len(t, eps.Points, 1)
	assert.Equal(t, spring.StatusOK, eps.Points[0].Status)
}

func TestCompression_MonotonicStress(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	res := eng.Calculate(geo, refMaterial(), spring.DeflectionCase(1, 3, 5, 8, 11, 13.9), spring.ModuleFlags{StressCheck: true})

	require.True(t, res.Valid)
	prev := -1.0
	for i, p := range res.Points {
		require.GreaterOrEqual(t, p.Stress, prev, "stress must never decrease (point %d)", i)
		prev = p.Stress
	}
}

func TestCompression_StressWarning(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()
	mat.AllowableShearStatic = 50 // force an exceedance

	res := eng.Calculate(geo, mat, spring.DeflectionCase(10), spring.ModuleFlags{StressCheck: true})
	require.Len(t, res.Points, 1)
	assert.Equal(t, spring.StatusWarning, res.Points[0].Status)
	assert.Contains(t, res.Points[0].Message, "exceeds allowable")

	// Without the stress module the same point is ok.
	res = eng.Calculate(geo, mat, spring.DeflectionCase(10), spring.ModuleFlags{})
	assert.Equal(t, spring.StatusOK, res.Points[0].Status)
}

func TestCompression_InvalidGeometryFailsClosed(t *testing.T) {
	eng := spring.CompressionEngine{}
	mat := refMaterial()

	for name, geo := range map[string]spring.Geometry{
		"zero wire":        {Type: spring.Compression, MeanDiameter: 24, ActiveCoils: 10, FreeLength: 50},
		"zero coils":       {Type: spring.Compression, WireDiameter: 3, MeanDiameter: 24, FreeLength: 50},
		"index <= 1":       {Type: spring.Compression, WireDiameter: 10, MeanDiameter: 9, ActiveCoils: 5, FreeLength: 200},
		"solid over free":  {Type: spring.Compression, WireDiameter: 3, MeanDiameter: 24, ActiveCoils: 10, FreeLength: 30},
	} {
		res := eng.Calculate(geo, mat, spring.LoadCase{}, spring.ModuleFlags{})
		assert.False(t, res.Valid, "%s must invalidate the result", name)
		assert.NotEmpty(t, res.Messages, "%s must explain itself", name)
	}
}

func TestCompression_PureFunction(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()
	loads := spring.HeightCase(geo.FreeLength, 45, 40, 30)
	flags := spring.ModuleFlags{StressCheck: true, Dynamics: true}

	a := eng.Calculate(geo, mat, loads, flags)
	b := eng.Calculate(geo, mat, loads, flags)
	assert.Equal(t, a, b, "identical inputs must produce identical results")
}

func TestCompression_DynamicsModule(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()
	mat.Density = 7850

	off := eng.Calculate(geo, mat, spring.LoadCase{}, spring.ModuleFlags{})
	on := eng.Calculate(geo, mat, spring.LoadCase{}, spring.ModuleFlags{Dynamics: true})
	assert.Zero(t, off.NaturalFrequency)
	assert.Positive(t, on.NaturalFrequency)
	assert.Positive(t, on.Mass, "mass follows from density")
}

// ------------------------------------------------------------------------
// Inverse solving
// ------------------------------------------------------------------------

func TestCompression_SolveCoilsRoundTrip(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()

	for _, target := range []float64{2.0, 3.21, 5.786, 12.5} {
		inv := eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetRate, Rate: target})
		require.True(t, inv.Valid, "target %.3f: %s", target, inv.Message)
		require.Equal(t, "activeCoils", inv.Parameter)

		geo2 := geo
		geo2.ActiveCoils = inv.Value
		res := eng.Calculate(geo2, mat, spring.LoadCase{}, spring.ModuleFlags{})
		assert.InDelta(t, target, res.Rate, 1e-9, "round trip must reproduce the target rate")
	}
}

func TestCompression_SolveCoilsInfeasible(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()

	// Absurdly stiff target drives n below 1.
	inv := eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetRate, Rate: 1e6})
	assert.False(t, inv.Valid)
	assert.Contains(t, inv.Message, "outside")

	// Absurdly soft target drives n past 50.
	inv = eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetRate, Rate: 0.001})
	assert.False(t, inv.Valid)

	// Non-positive target.
	inv = eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetRate, Rate: 0})
	assert.False(t, inv.Valid)
	assert.NotEmpty(t, inv.Message)
}

func TestCompression_SolveFreeLength(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()

	// 50 N at 40 mm: L0 = 40 + 50/k.
	inv := eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetLoadAtPosition, Load: 50, Position: 40})
	require.True(t, inv.Valid, inv.Message)
	assert.Equal(t, "freeLength", inv.Parameter)
	assert.InDelta(t, 40+50/refRate, inv.Value, 1e-6)

	// Verification: feed back and check the load at 40 mm.
	geo2 := geo
	geo2.FreeLength = inv.Value
	res := eng.Calculate(geo2, mat, spring.HeightCase(geo2.FreeLength, 40), spring.ModuleFlags{})
	require.Len(t, res.Points, 1)
	assert.InDelta(t, 50, res.Points[0].Load, 1e-6)
}

func TestCompression_SolveFreeLengthInfeasible(t *testing.T) {
	eng := spring.CompressionEngine{}
	geo := refGeometry()
	mat := refMaterial()

	// Target height at the solid length cannot carry travel.
	inv := eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetLoadAtPosition, Load: 50, Position: 36})
	assert.False(t, inv.Valid)
	assert.Contains(t, inv.Message, "solid")

	inv = eng.SolveForTarget(geo, mat, spring.Target{Kind: spring.TargetLoadAtPosition, Load: -5, Position: 40})
	assert.False(t, inv.Valid)
}
