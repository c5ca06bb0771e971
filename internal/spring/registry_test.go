package spring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mweissbach/gospring/internal/spring"
)

func TestRegistry_DefaultCoversAllFamilies(t *testing.T) {
	reg := spring.Default()
	want := []spring.SpringType{
		spring.Compression, spring.Extension, spring.Torsion, spring.Conical,
		spring.Spiral, spring.Disc, spring.Wave, spring.Arc, spring.Shock, spring.Die,
	}
	assert.Len(t, reg.Types(), len(want))
	for _, st := range want {
		eng, err := reg.Lookup(st)
		require.NoError(t, err, st)
		assert.Equal(t, st, eng.Type())
	}
}

func TestRegistry_UnknownTypeFailsLoudly(t *testing.T) {
	reg := spring.Default()
	eng, err := reg.Lookup("leaf")
	assert.Nil(t, eng, "no default engine may stand in for an unknown tag")
	require.Error(t, err)
	assert.ErrorIs(t, err, spring.ErrUnknownType)
	assert.Contains(t, err.Error(), "leaf")
}

func TestRegistry_DuplicateRegistrationRejected(t *testing.T) {
	reg := spring.NewRegistry()
	require.NoError(t, reg.Register(spring.CompressionEngine{}))
	assert.Error(t, reg.Register(spring.CompressionEngine{}))
}

func TestLoadCase_ConversionsRoundTrip(t *testing.T) {
	// Height <-> deflection about a 50 mm free length.
	for _, h := range []float64{50, 42.5, 36, 0} {
		d := spring.HeightToDeflection(50, h)
		assert.InDelta(t, h, spring.DeflectionToHeight(50, d), 1e-12)
	}
	// Torque <-> angle through a 3.2 N-mm/deg rate.
	for _, m := range []float64{0, 12.8, 640} {
		a := spring.TorqueToAngle(3.2, m)
		assert.InDelta(t, m, spring.AngleToTorque(3.2, a), 1e-9)
	}
	// A dead rate cannot produce an angle.
	assert.Zero(t, spring.TorqueToAngle(0, 100))
}

func TestLoadCase_HeightCaseCanonicalizes(t *testing.T) {
	lc := spring.HeightCase(50, 45, 40, 36)
	assert.Equal(t, spring.ModeHeight, lc.Mode)
	assert.Equal(t, []float64{5, 10, 14}, lc.Values)
}
