package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	m, err := Lookup("en10270-1-sh")
	require.NoError(t, err)
	assert.InDelta(t, 81500, m.ShearModulus, 1e-9)
	assert.True(t, m.Valid())

	// Case and surrounding whitespace are forgiven.
	again, err := Lookup("  EN10270-1-SH ")
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestLookup_UnknownIDIsAnError(t *testing.T) {
	_, err := Lookup("unobtainium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unobtainium")
}

func TestResolve_OverlaysNonZeroFields(t *testing.T) {
	got, err := Resolve("en10270-1-sh", Properties{AllowableShearStatic: 800, Density: 7800})
	require.NoError(t, err)

	base, _ := Lookup("en10270-1-sh")
	assert.InDelta(t, 800, got.AllowableShearStatic, 1e-9)
	assert.InDelta(t, 7800, got.Density, 1e-9)
	// Untouched fields keep their catalog values.
	assert.Equal(t, base.ShearModulus, got.ShearModulus)
	assert.Equal(t, base.ElasticModulus, got.ElasticModulus)
	assert.Equal(t, base.Name, got.Name)
}

func TestResolve_EmptyIDPassesOverrideThrough(t *testing.T) {
	custom := Properties{Name: "supplier alloy", ShearModulus: 70000, ElasticModulus: 180000}
	got, err := Resolve("", custom)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestResolve_UnknownIDStillErrors(t *testing.T) {
	_, err := Resolve("unobtainium", Properties{ShearModulus: 70000})
	assert.Error(t, err)
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
	for _, m := range all {
		assert.True(t, m.Valid(), m.ID)
		assert.NotEmpty(t, m.Name, m.ID)
		assert.Positive(t, m.Density, m.ID)
	}
}

func TestValid(t *testing.T) {
	assert.False(t, Properties{}.Valid())
	assert.False(t, Properties{ShearModulus: 79000}.Valid())
	assert.True(t, Properties{ShearModulus: 79000, ElasticModulus: 206000}.Valid())
}
