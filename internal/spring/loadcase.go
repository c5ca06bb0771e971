package spring

// Mode records how the caller expressed the load points. Whatever the
// mode, LoadCase.Values always holds the canonical quantity for the
// family: travel in mm for axial springs, rotation in degrees for
// rotational ones. Display modes are derived through the pure
// conversions below, so toggling the mode never accumulates rounding.
type Mode string

const (
	ModeHeight     Mode = "height"
	ModeDeflection Mode = "deflection"
	ModeAngle      Mode = "angle"
	ModeTorque     Mode = "torque"
)

// LoadCase carries the requested load points in canonical form.
type LoadCase struct {
	Mode   Mode
	Values []float64
}

// DeflectionCase builds a load case directly from canonical deflections.
func DeflectionCase(deflections ...float64) LoadCase {
	return LoadCase{Mode: ModeDeflection, Values: append([]float64(nil), deflections...)}
}

// HeightCase converts loaded heights to canonical deflections measured
// from the free length.
func HeightCase(freeLength float64, heights ...float64) LoadCase {
	vals := make([]float64, len(heights))
	for i, h := range heights {
		vals[i] = HeightToDeflection(freeLength, h)
	}
	return LoadCase{Mode: ModeHeight, Values: vals}
}

// AngleCase builds a rotational load case from working angles in degrees.
func AngleCase(angles ...float64) LoadCase {
	return LoadCase{Mode: ModeAngle, Values: append([]float64(nil), angles...)}
}

// TorqueCase converts requested torques to canonical angles through the
// angular rate. A non-positive rate yields zero angles; the engine will
// flag the geometry invalid on its own.
func TorqueCase(rate float64, torques ...float64) LoadCase {
	vals := make([]float64, len(torques))
	for i, m := range torques {
		vals[i] = TorqueToAngle(rate, m)
	}
	return LoadCase{Mode: ModeTorque, Values: vals}
}

// HeightToDeflection converts a loaded height to travel from free length.
func HeightToDeflection(freeLength, height float64) float64 {
	return freeLength - height
}

// DeflectionToHeight is the inverse of HeightToDeflection.
func DeflectionToHeight(freeLength, deflection float64) float64 {
	return freeLength - deflection
}

// TorqueToAngle converts a torque to a working angle through the rate in
// N-mm per degree.
func TorqueToAngle(rate, torque float64) float64 {
	if rate <= 0 {
		return 0
	}
	return torque / rate
}

// AngleToTorque is the inverse of TorqueToAngle.
func AngleToTorque(rate, angle float64) float64 {
	return rate * angle
}
