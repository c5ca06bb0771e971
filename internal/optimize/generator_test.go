package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mweissbach/gospring/internal/material"
	"github.com/mweissbach/gospring/internal/spring"
)

func testSpace() DesignSpace {
	return DesignSpace{
		Base: spring.Geometry{
			Type:         spring.Compression,
			WireDiameter: 3,
			MeanDiameter: 24,
			ActiveCoils:  10,
			FreeLength:   50,
		},
		Material: material.Properties{
			Name:                 "test steel",
			ShearModulus:         79000,
			ElasticModulus:       206000,
			AllowableShearStatic: 860,
		},
		Loads:      spring.DeflectionCase(10),
		Flags:      spring.ModuleFlags{StressCheck: true},
		TargetRate: 5.0,
	}
}

func TestGridValues_InclusiveOfBothEnds(t *testing.T) {
	vals := gridValues(Parameter{Name: "wireDiameter", Min: 2, Max: 4, Step: 0.5})
	assert.Equal(t, []float64{2, 2.5, 3, 3.5, 4}, vals)

	// A step that does not divide the range still ends at Max.
	vals = gridValues(Parameter{Name: "wireDiameter", Min: 2, Max: 3, Step: 0.4})
	require.NotEmpty(t, vals)
	assert.InDelta(t, 3.0, vals[len(vals)-1], 1e-12)
}

func TestGenerate_GridCrossProduct(t *testing.T) {
	space := testSpace()
	// Long enough that even the heaviest grid corner stays off solid.
	space.Base.FreeLength = 60
	space.Parameters = []Parameter{
		{Name: "wireDiameter", Min: 2.5, Max: 3.5, Step: 0.5}, // 3 values
		{Name: "activeCoils", Min: 8, Max: 12, Step: 2},       // 3 values
	}

	cands, err := Generate(spring.Default(), space)
	require.NoError(t, err)
	require.Len(t, cands, 9)

	for _, c := range cands {
		assert.True(t, c.Result.Valid)
		assert.Equal(t, c.Params["wireDiameter"], c.Geometry.WireDiameter)
		assert.Equal(t, c.Params["activeCoils"], c.Geometry.ActiveCoils)
		assert.Positive(t, c.Objectives.Safety)
		assert.Positive(t, c.Objectives.Mass, "volume proxy stands in when density is unknown")
	}
}

func TestGenerate_DiscardsInvalidAndBoundDesigns(t *testing.T) {
	space := testSpace()
	// Free lengths at and below the 36 mm solid length are unbuildable;
	// 30 mm of travel then binds anything shorter than 66 mm.
	space.Loads = spring.DeflectionCase(30)
	space.Parameters = []Parameter{
		{Name: "freeLength", Min: 20, Max: 80, Step: 10}, // 20..80
	}

	cands, err := Generate(spring.Default(), space)
	require.NoError(t, err)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		assert.True(t, c.Result.Valid)
		assert.NotEqual(t, spring.StatusError, c.Result.WorstPointStatus())
		assert.Greater(t, c.Geometry.FreeLength, 66.0)
	}
}

func TestGenerate_SeedDeterminism(t *testing.T) {
	space := testSpace()
	space.Parameters = []Parameter{
		{Name: "wireDiameter", Min: 2.5, Max: 3.5}, // unstepped: sampled
	}
	space.Samples = 16
	space.Seed = 42

	a, err := Generate(spring.Default(), space)
	require.NoError(t, err)
	b, err := Generate(spring.Default(), space)
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Geometry, b[i].Geometry)
		assert.Equal(t, a[i].Objectives, b[i].Objectives)
	}

	space.Seed = 7
	c, err := Generate(spring.Default(), space)
	require.NoError(t, err)
	different := false
	for i := range c {
		if i < len(a) && c[i].Geometry.WireDiameter != a[i].Geometry.WireDiameter {
			different = true
		}
	}
	assert.True(t, different, "a different seed draws different samples")
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	space := testSpace()
	space.TargetRate = 0
	_, err := Generate(spring.Default(), space)
	assert.Error(t, err)

	space = testSpace()
	space.Parameters = []Parameter{{Name: "boreDiameter", Min: 1, Max: 2, Step: 1}}
	_, err = Generate(spring.Default(), space)
	assert.Error(t, err, "unknown parameter names fail the run, not the sample")

	space = testSpace()
	space.Parameters = []Parameter{{Name: "wireDiameter", Min: 5, Max: 2, Step: 1}}
	_, err = Generate(spring.Default(), space)
	assert.Error(t, err)

	space = testSpace()
	space.Base.Type = "leaf"
	_, err = Generate(spring.Default(), space)
	assert.ErrorIs(t, err, spring.ErrUnknownType)
}

func TestScore_StiffnessErrorIsRelative(t *testing.T) {
	space := testSpace()
	res := spring.Result{Type: spring.Compression, Rate: 6.0, SolidLength: 36}
	obj := score(res, space)
	assert.InDelta(t, 0.2, obj.StiffnessError, 1e-12)
	assert.InDelta(t, 36, obj.Mass, 1e-12, "solid length proxies mass without density")
}
