package spring

import (
	"fmt"

	"github.com/mweissbach/gospring/internal/material"
)

// invalidate marks a result failed-closed with an explanation. Formula
// outputs stay at their degenerate values (0 or 1) so callers can still
// print the record.
func (r *Result) invalidate(format string, args ...any) {
	r.Valid = false
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// shearStatus classifies a computed shear stress against the material
// allowables under the active module flags. Missing allowables skip the
// check rather than failing it.
func shearStatus(tau float64, mat material.Properties, flags ModuleFlags) (Status, string) {
	if flags.FatigueCheck && mat.AllowableShearDynamic > 0 && tau > mat.AllowableShearDynamic {
		return StatusWarning, fmt.Sprintf("stress %.1f MPa exceeds dynamic allowable %.1f MPa", tau, mat.AllowableShearDynamic)
	}
	if flags.StressCheck && mat.AllowableShearStatic > 0 && tau > mat.AllowableShearStatic {
		return StatusWarning, fmt.Sprintf("stress %.1f MPa exceeds allowable %.1f MPa", tau, mat.AllowableShearStatic)
	}
	return StatusOK, ""
}

// bendingStatus is the strip/torsion counterpart of shearStatus.
func bendingStatus(sigma float64, mat material.Properties, flags ModuleFlags) (Status, string) {
	if flags.StressCheck && mat.AllowableBending > 0 && sigma > mat.AllowableBending {
		return StatusWarning, fmt.Sprintf("bending stress %.1f MPa exceeds allowable %.1f MPa", sigma, mat.AllowableBending)
	}
	return StatusOK, ""
}

// requirePositive validates a named dimension, invalidating the result
// with a uniform message when it is not strictly positive.
func requirePositive(r *Result, name string, v float64) bool {
	if v <= 0 {
		r.invalidate("invalid geometry: %s=%.3f must be > 0", name, v)
		return false
	}
	return true
}
