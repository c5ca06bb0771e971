package optimize

import "fmt"

// vector maps objectives to a uniform higher-is-better orientation for
// domination checks: safety up, mass down, stiffness error down.
func (o Objectives) vector() [3]float64 {
	return [3]float64{o.Safety, -o.Mass, -o.StiffnessError}
}

// Dominates reports whether a is at least as good as b on every
// objective and strictly better on at least one.
func Dominates(a, b Objectives) bool {
	av, bv := a.vector(), b.vector()
	strictly := false
	for i := range av {
		if av[i] < bv[i] {
			return false
		}
		if av[i] > bv[i] {
			strictly = true
		}
	}
	return strictly
}

// ParetoFront returns the non-dominated subset of candidates.
// Candidates with identical objective vectors are all kept. Order
// within the front follows the input order, so a fixed candidate set
// always produces the identical front. No secondary ranking is applied;
// picking a single candidate is caller policy (see SelectBest).
func ParetoFront(candidates []Candidate) []Candidate {
	var front []Candidate
	for i, c := range candidates {
		dominated := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			if Dominates(other.Objectives, c.Objectives) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, c)
		}
	}
	return front
}

// Weights is the caller-supplied policy for collapsing a front to a
// single recommendation. Each weight scales a min-max normalized
// objective; all zero is rejected rather than defaulted.
type Weights struct {
	Safety         float64
	Mass           float64
	StiffnessMatch float64
}

// SelectBest scores every front member with the weight policy over
// min-max normalized, higher-is-better objectives and returns the index
// of the best. Ties resolve to the earliest index so the pick is stable.
func SelectBest(front []Candidate, w Weights) (int, error) {
	if len(front) == 0 {
		return -1, fmt.Errorf("empty front")
	}
	if w.Safety == 0 && w.Mass == 0 && w.StiffnessMatch == 0 {
		return -1, fmt.Errorf("all weights zero: the pick policy must be explicit")
	}

	var lo, hi [3]float64
	for i, c := range front {
		v := c.Objectives.vector()
		for k := 0; k < 3; k++ {
			if i == 0 || v[k] < lo[k] {
				lo[k] = v[k]
			}
			if i == 0 || v[k] > hi[k] {
				hi[k] = v[k]
			}
		}
	}

	weights := [3]float64{w.Safety, w.Mass, w.StiffnessMatch}
	best, bestScore := 0, -1.0
	for i, c := range front {
		v := c.Objectives.vector()
		score := 0.0
		for k := 0; k < 3; k++ {
			span := hi[k] - lo[k]
			norm := 1.0
			if span > 0 {
				norm = (v[k] - lo[k]) / span
			}
			score += weights[k] * norm
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, nil
}
