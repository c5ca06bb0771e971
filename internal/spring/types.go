// Package spring implements the per-family calculation engines: forward
// calculation of load points from geometry and material, and closed-form
// inverse solving of a geometry parameter from a design target.
package spring

// SpringType tags a geometry record and selects the engine that owns its
// physics.
type SpringType string

const (
	Compression SpringType = "compression"
	Extension   SpringType = "extension"
	Torsion     SpringType = "torsion"
	Conical     SpringType = "conical"
	Spiral      SpringType = "spiralTorsion"
	Disc        SpringType = "disc"
	Wave        SpringType = "wave"
	Arc         SpringType = "arc"
	Shock       SpringType = "shock"
	Die         SpringType = "die"
)

// Geometry is the spring-type-tagged dimensional record. Only the fields
// a family uses are read by its engine; everything is in mm and degrees.
// The field set mirrors the design object of the surrounding system
// (wireDiameter, meanDiameter, activeCoils, ...).
type Geometry struct {
	Type SpringType

	// Helical wire families
	WireDiameter      float64 // d
	MeanDiameter      float64 // Dm (large end for conical)
	MeanDiameterSmall float64 // Dm at the small end (conical only)
	ActiveCoils       float64 // n
	TotalCoils        float64 // nt; 0 derives the family default
	FreeLength        float64 // L0, free height (arc: developed body length)

	// Extension
	InitialTension float64 // F0, preload wound into the body
	HookLength     float64 // loop allowance per end

	// Torsion / arc / spiral
	LegLength     float64 // moment arm of the loading leg
	CloseOutAngle float64 // working angle limit in degrees, 0 = none

	// Strip families (spiral, wave, die)
	StripWidth     float64 // b
	StripThickness float64 // t
	StripLength    float64 // active strip length (spiral)

	// Disc (Belleville)
	OuterDiameter float64 // De
	InnerDiameter float64 // Di
	Thickness     float64 // t
	ConeHeight    float64 // h0, cone height of the unloaded disc
	StackSeries   int     // discs in series, 0/1 = single
	StackParallel int     // discs in parallel, 0/1 = single

	// Wave
	WavesPerTurn float64
	Turns        float64

	// Arc
	ArcRadius float64 // working radius of the arc centerline

	// Shock (suspension duty)
	Preload float64 // installed preload force in N
	Stroke  float64 // rated stroke in mm
}

// ModuleFlags switches the optional check modules of a calculation.
type ModuleFlags struct {
	StressCheck  bool // compare point stress against the static allowable
	FatigueCheck bool // compare against the dynamic allowable as well
	Dynamics     bool // compute surge frequency and mass estimate
}

// Status classifies a load point or a whole result.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// LoadPointResult is the outcome for one requested load point.
type LoadPointResult struct {
	// Position after loading: remaining height in mm for axial families,
	// working angle in degrees for rotational ones.
	Position float64
	// Deflection is the canonical value the point was computed from
	// (mm of travel, or degrees of rotation).
	Deflection float64
	// Load is the resulting force in N, or torque in N-mm for
	// rotational families.
	Load float64
	// Stress is the corrected wire/strip stress in MPa.
	Stress  float64
	Status  Status
	Message string
}

// Result is the complete outcome of one Calculate call. It is created
// fresh per call and never mutated afterwards.
type Result struct {
	Type SpringType

	Rate       float64 // N/mm, or N-mm/deg for rotational families
	Index      float64 // C = Dm/d (0 where the notion does not apply)
	WahlFactor float64 // stress correction in effect (1 where n/a)

	SolidLength   float64 // block length in mm (axial families)
	CloseOutAngle float64 // rotational travel limit in degrees
	FreeLength    float64 // free length/height, derived when solved

	NaturalFrequency float64 // Hz, only with ModuleFlags.Dynamics
	Mass             float64 // grams, only when density is known

	Points   []LoadPointResult
	Valid    bool
	Messages []string
}

// worst folds a point status into the result-level bookkeeping.
func worst(a, b Status) Status {
	rank := map[Status]int{StatusOK: 0, StatusWarning: 1, StatusError: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// WorstPointStatus returns the most severe status across all points.
func (r Result) WorstPointStatus() Status {
	s := StatusOK
	for _, p := range r.Points {
		s = worst(s, p.Status)
	}
	return s
}

// TargetKind selects what an inverse solve should hit.
type TargetKind string

const (
	// TargetRate solves a geometry parameter so the spring reaches a
	// given rate (N/mm, or N-mm/deg for rotational families).
	TargetRate TargetKind = "rate"
	// TargetLoadAtPosition solves for a given load at a given position
	// (height in mm, or angle in degrees).
	TargetLoadAtPosition TargetKind = "loadAtPosition"
)

// Target is the input to SolveForTarget.
type Target struct {
	Kind     TargetKind
	Rate     float64
	Load     float64 // force N or torque N-mm
	Position float64 // height mm or angle deg
}

// InverseResult reports one recovered geometry parameter. When Valid is
// false, Value must be ignored and Message explains the infeasibility.
type InverseResult struct {
	Parameter string // geometry field the solve recovered
	Value     float64
	Valid     bool
	Message   string
}

// invalidInverse is the shared failure constructor.
func invalidInverse(param, msg string) InverseResult {
	return InverseResult{Parameter: param, Valid: false, Message: msg}
}

// Sane bounds for recovered coil counts; outside this window the solve
// is reported infeasible rather than returning an unmanufacturable value.
const (
	minSolvedCoils = 1.0
	maxSolvedCoils = 50.0
)
