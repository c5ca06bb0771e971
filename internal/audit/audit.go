// Package audit turns a calculation result into an explainable
// pass/warn/fail verdict by evaluating a declarative rule set against
// caller-supplied requirements. Evaluation is deterministic and
// stateless: identical inputs always yield the identical verdict.
package audit

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/material"
	"github.com/mweissbach/gospring/internal/spring"
)

// Status of a single rule or an aggregate. Fail dominates warn, warn
// dominates pass.
type Status string

const (
	Pass Status = "pass"
	Warn Status = "warn"
	Fail Status = "fail"
)

var statusRank = map[Status]int{Pass: 0, Warn: 1, Fail: 2}

// Worse returns the more severe of two statuses.
func Worse(a, b Status) Status {
	if statusRank[b] > statusRank[a] {
		return b
	}
	return a
}

// Category tags what a rule speaks to.
type Category string

const (
	// Deliverability rules judge manufacturing feasibility.
	Deliverability Category = "deliverability"
	// Safety rules judge stress and margin against material limits.
	Safety Category = "safety"
	// Physics rules judge basic physical validity.
	Physics Category = "physics"
)

// Requirements is the explicit threshold configuration for an audit.
// Zero values disable the corresponding optional checks; rules that
// need a mandatory field fail with an explanatory message when it is
// missing.
type Requirements struct {
	// MinSafetyFactor is the minimum allowable-to-computed stress ratio
	// at the most loaded point. Mandatory for the safety-factor rule.
	MinSafetyFactor float64
	// MinCoilBindMargin is the minimum remaining travel in mm (or
	// degrees for rotational families) at the most loaded point.
	MinCoilBindMargin float64
	// MaxStressRatio caps computed/allowable stress (0 disables).
	MaxStressRatio float64
	// Spring index window for coilabilty on a standard coiler.
	MinIndex float64
	MaxIndex float64
	// Wire/strip thickness window of the coiler tooling (0 disables
	// either bound).
	MinWireDiameter float64
	MaxWireDiameter float64
	// MaxSlenderness caps FreeLength/MeanDiameter before a buckling
	// guide is required (0 disables).
	MaxSlenderness float64
	// Material supplies the allowable stresses the safety rules
	// compare against.
	Material material.Properties
}

// Input bundles everything a rule may inspect. Rules must not mutate it.
type Input struct {
	Geometry     spring.Geometry
	Result       spring.Result
	Requirements Requirements
}

// Finding is the outcome of one rule.
type Finding struct {
	RuleID string
	Label  string
	// Value is the computed quantity the rule judged.
	Value float64
	// Threshold describes the comparison that produced the status.
	Threshold string
	Status    Status
	Category  Category
	Message   string
}

// Rule is one declarative audit check.
type Rule struct {
	ID       string
	Label    string
	Category Category
	Evaluate func(Input) Finding
}

// Verdict is the aggregate outcome of an audit run.
type Verdict struct {
	Overall Status
	// Deliverability aggregates only the deliverability-tagged rules.
	Deliverability Status
	// SafetyStatus aggregates only the safety-tagged (stress) rules.
	SafetyStatus Status
	Findings     []Finding
}

// Engine evaluates a fixed rule list. The zero value is unusable; use
// NewEngine for the standard rule set or supply a custom one.
type Engine struct {
	rules []Rule
}

// NewEngine returns an audit engine with the standard rule set.
func NewEngine() *Engine {
	return &Engine{rules: StandardRules()}
}

// NewEngineWithRules returns an engine over a caller-supplied rule set.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// Rules returns the rule list in evaluation order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Run evaluates every rule and aggregates worst-of per scope. A rule
// whose Evaluate panics is converted into a fail finding so one bad
// rule cannot suppress the rest of the report.
func (e *Engine) Run(in Input) Verdict {
	v := Verdict{Overall: Pass, Deliverability: Pass, SafetyStatus: Pass}
	for _, r := range e.rules {
		f := evaluateSafely(r, in)
		v.Findings = append(v.Findings, f)
		v.Overall = Worse(v.Overall, f.Status)
		if f.Category == Deliverability {
			v.Deliverability = Worse(v.Deliverability, f.Status)
		}
		if f.Category == Safety {
			v.SafetyStatus = Worse(v.SafetyStatus, f.Status)
		}
	}
	return v
}

func evaluateSafely(r Rule, in Input) (f Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			f = Finding{
				RuleID:   r.ID,
				Label:    r.Label,
				Category: r.Category,
				Status:   Fail,
				Message:  fmt.Sprintf("rule evaluation error: %v", rec),
			}
		}
	}()
	f = r.Evaluate(in)
	f.RuleID = r.ID
	f.Label = r.Label
	f.Category = r.Category
	return f
}
