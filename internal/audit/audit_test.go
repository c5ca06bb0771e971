package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mweissbach/gospring/internal/material"
	"github.com/mweissbach/gospring/internal/spring"
)

func passingInput() Input {
	return Input{
		Geometry: spring.Geometry{
			Type:         spring.Compression,
			WireDiameter: 3,
			MeanDiameter: 24,
			ActiveCoils:  10,
			FreeLength:   50,
		},
		Result: spring.Result{
			Type:        spring.Compression,
			Valid:       true,
			Rate:        5.79,
			Index:       8,
			SolidLength: 36,
			FreeLength:  50,
			Points: []spring.LoadPointResult{
				{Position: 45, Deflection: 5, Load: 28.9, Stress: 115, Status: spring.StatusOK},
				{Position: 40, Deflection: 10, Load: 57.9, Stress: 230, Status: spring.StatusOK},
			},
		},
		Requirements: Requirements{
			MinSafetyFactor: 1.5,
			Material:        material.Properties{ShearModulus: 79000, ElasticModulus: 206000, AllowableShearStatic: 860},
		},
	}
}

func findingByID(t *testing.T, v Verdict, id string) Finding {
	t.Helper()
	for _, f := range v.Findings {
		if f.RuleID == id {
			return f
		}
	}
	t.Fatalf("no finding %q in verdict", id)
	return Finding{}
}

func TestRun_CleanDesignPasses(t *testing.T) {
	v := NewEngine().Run(passingInput())

	assert.Equal(t, Pass, v.Overall)
	assert.Equal(t, Pass, v.Deliverability)
	assert.Equal(t, Pass, v.SafetyStatus)
	require.Len(t, v.Findings, len(StandardRules()))

	sf := findingByID(t, v, "SAF-FACTOR")
	assert.Equal(t, Pass, sf.Status)
	assert.InDelta(t, 860.0/230.0, sf.Value, 1e-9)
}

func TestRun_OneFailDrivesOverallFail(t *testing.T) {
	in := passingInput()
	in.Requirements.MinSafetyFactor = 10 // 860/230 = 3.7 cannot reach it

	v := NewEngine().Run(in)
	assert.Equal(t, Fail, v.Overall)
	assert.Equal(t, Fail, v.SafetyStatus)
	assert.Equal(t, Pass, v.Deliverability, "a safety fail does not taint deliverability")
	assert.Equal(t, Fail, findingByID(t, v, "SAF-FACTOR").Status)
}

func TestRun_WarnDoesNotEscalateToFail(t *testing.T) {
	in := passingInput()
	in.Result.Index = 25 // above the preferred coilable window

	v := NewEngine().Run(in)
	assert.Equal(t, Warn, v.Overall)
	assert.Equal(t, Warn, v.Deliverability)
	assert.Equal(t, Pass, v.SafetyStatus)
}

func TestRun_MissingMandatoryRequirementFailsOnlyThatRule(t *testing.T) {
	in := passingInput()
	in.Requirements.MinSafetyFactor = 0

	v := NewEngine().Run(in)
	sf := findingByID(t, v, "SAF-FACTOR")
	assert.Equal(t, Fail, sf.Status)
	assert.Contains(t, sf.Message, "MinSafetyFactor")

	// The rest of the report still evaluated normally.
	require.Len(t, v.Findings, len(StandardRules()))
	assert.Equal(t, Pass, findingByID(t, v, "PHY-VALID").Status)
	assert.Equal(t, Pass, findingByID(t, v, "DLV-INDEX").Status)
	assert.Equal(t, Pass, v.Deliverability)
}

func TestRun_InvalidResultFailsClosed(t *testing.T) {
	in := passingInput()
	in.Result.Valid = false
	in.Result.Messages = []string{"solid length 55.00 mm >= free length 50.00 mm"}

	v := NewEngine().Run(in)
	assert.Equal(t, Fail, v.Overall)
	pv := findingByID(t, v, "PHY-VALID")
	assert.Equal(t, Fail, pv.Status)
	assert.Equal(t, in.Result.Messages[0], pv.Message)
}

func TestRun_ErrorPointFailsTravelRule(t *testing.T) {
	in := passingInput()
	in.Result.Points[1].Status = spring.StatusError

	v := NewEngine().Run(in)
	assert.Equal(t, Fail, v.Overall)
	tr := findingByID(t, v, "PHY-TRAVEL")
	assert.Equal(t, Fail, tr.Status)
	assert.InDelta(t, 1, tr.Value, 1e-12)
}

func TestRun_BindMargin(t *testing.T) {
	in := passingInput()
	in.Requirements.MinCoilBindMargin = 3

	// Smallest margin is 40 − 36 = 4 mm: passes.
	v := NewEngine().Run(in)
	bm := findingByID(t, v, "DLV-BIND-MARGIN")
	assert.Equal(t, Pass, bm.Status)
	assert.InDelta(t, 4, bm.Value, 1e-9)

	in.Requirements.MinCoilBindMargin = 6
	v = NewEngine().Run(in)
	assert.Equal(t, Fail, findingByID(t, v, "DLV-BIND-MARGIN").Status)
	assert.Equal(t, Fail, v.Deliverability)
}

func TestRun_BindMarginUsesCloseOutForRotational(t *testing.T) {
	in := passingInput()
	in.Result = spring.Result{
		Type:          spring.Torsion,
		Valid:         true,
		Index:         8,
		CloseOutAngle: 120,
		Points: []spring.LoadPointResult{
			{Position: 90, Deflection: 90, Status: spring.StatusOK},
		},
	}
	in.Requirements.MinCoilBindMargin = 20
	in.Requirements.MinSafetyFactor = 0
	in.Requirements.Material.AllowableBending = 1000

	v := NewEngine().Run(in)
	bm := findingByID(t, v, "DLV-BIND-MARGIN")
	assert.Equal(t, Pass, bm.Status)
	assert.InDelta(t, 30, bm.Value, 1e-9)
}

func TestRun_WireRangeWindow(t *testing.T) {
	in := passingInput()

	// No window configured: passes by default.
	v := NewEngine().Run(in)
	assert.Equal(t, Pass, findingByID(t, v, "DLV-WIRE-RANGE").Status)

	in.Requirements.MinWireDiameter = 1
	in.Requirements.MaxWireDiameter = 5
	v = NewEngine().Run(in)
	wr := findingByID(t, v, "DLV-WIRE-RANGE")
	assert.Equal(t, Pass, wr.Status)
	assert.InDelta(t, 3, wr.Value, 1e-12)

	in.Requirements.MaxWireDiameter = 2.5
	v = NewEngine().Run(in)
	assert.Equal(t, Fail, findingByID(t, v, "DLV-WIRE-RANGE").Status)
	assert.Equal(t, Fail, v.Deliverability)

	// Strip families are judged on strip thickness.
	in = passingInput()
	in.Geometry = spring.Geometry{Type: spring.Die, StripWidth: 6, StripThickness: 4}
	in.Requirements.MinWireDiameter = 5
	v = NewEngine().Run(in)
	wr = findingByID(t, v, "DLV-WIRE-RANGE")
	assert.Equal(t, Fail, wr.Status)
	assert.InDelta(t, 4, wr.Value, 1e-12)
}

func TestRun_StressRatioCap(t *testing.T) {
	in := passingInput()
	in.Requirements.MaxStressRatio = 0.25 // 230/860 = 0.267 exceeds it

	v := NewEngine().Run(in)
	assert.Equal(t, Fail, findingByID(t, v, "SAF-STRESS-RATIO").Status)

	in.Requirements.MaxStressRatio = 0.28 // 0.267 > 0.9·0.28: warn band
	v = NewEngine().Run(in)
	assert.Equal(t, Warn, findingByID(t, v, "SAF-STRESS-RATIO").Status)

	in.Requirements.MaxStressRatio = 0.5
	v = NewEngine().Run(in)
	assert.Equal(t, Pass, findingByID(t, v, "SAF-STRESS-RATIO").Status)
}

func TestRun_SlendernessWarnsOnly(t *testing.T) {
	in := passingInput()
	in.Requirements.MaxSlenderness = 1.5 // 50/24 = 2.08 exceeds it

	v := NewEngine().Run(in)
	sl := findingByID(t, v, "DLV-SLENDERNESS")
	assert.Equal(t, Warn, sl.Status)
	assert.Equal(t, Warn, v.Overall, "slenderness never fails a design outright")
}

func TestRun_Deterministic(t *testing.T) {
	in := passingInput()
	in.Requirements.MaxStressRatio = 0.5
	in.Requirements.MinCoilBindMargin = 2
	in.Requirements.MaxSlenderness = 4

	eng := NewEngine()
	a := eng.Run(in)
	b := eng.Run(in)
	assert.Equal(t, a, b)
}

func TestRun_PanickingRuleBecomesFailFinding(t *testing.T) {
	rules := []Rule{
		{
			ID:       "BAD-RULE",
			Label:    "panics",
			Category: Safety,
			Evaluate: func(Input) Finding { panic("boom") },
		},
		{
			ID:       "GOOD-RULE",
			Label:    "passes",
			Category: Physics,
			Evaluate: func(Input) Finding { return Finding{Status: Pass, Message: "ok"} },
		},
	}
	v := NewEngineWithRules(rules).Run(passingInput())

	require.Len(t, v.Findings, 2)
	assert.Equal(t, Fail, v.Findings[0].Status)
	assert.Contains(t, v.Findings[0].Message, "boom")
	assert.Equal(t, Pass, v.Findings[1].Status)
	assert.Equal(t, Fail, v.Overall)
}

func TestWorse(t *testing.T) {
	assert.Equal(t, Warn, Worse(Pass, Warn))
	assert.Equal(t, Fail, Worse(Warn, Fail))
	assert.Equal(t, Fail, Worse(Fail, Pass))
	assert.Equal(t, Pass, Worse(Pass, Pass))
}
