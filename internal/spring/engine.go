package spring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mweissbach/gospring/internal/material"
)

// Engine is the per-family calculation contract. Calculate must be a
// pure function: identical inputs produce identical Results, no state is
// carried between calls.
type Engine interface {
	Type() SpringType
	Calculate(geo Geometry, mat material.Properties, loads LoadCase, flags ModuleFlags) Result
}

// TargetSolver is the optional inverse-solving side of an engine:
// closed-form recovery of one geometry parameter from a design target.
type TargetSolver interface {
	SolveForTarget(geo Geometry, mat material.Properties, target Target) InverseResult
}

// ErrUnknownType is returned by Registry.Lookup for unregistered tags.
// There is deliberately no default engine: a silent substitute would
// report the physics of a different topology.
var ErrUnknownType = errors.New("unknown spring type")

// Registry maps spring-type tags to engine instances.
type Registry struct {
	engines map[SpringType]Engine
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[SpringType]Engine)}
}

// Register adds an engine; registering the same tag twice is a
// programming error and is rejected.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return errors.New("nil engine")
	}
	if _, dup := r.engines[e.Type()]; dup {
		return fmt.Errorf("engine for %q already registered", e.Type())
	}
	r.engines[e.Type()] = e
	return nil
}

// Lookup returns the engine for tag, or an ErrUnknownType-wrapped error.
func (r *Registry) Lookup(tag SpringType) (Engine, error) {
	e, ok := r.engines[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return e, nil
}

// Types returns the registered tags in stable order.
func (r *Registry) Types() []SpringType {
	out := make([]SpringType, 0, len(r.engines))
	for t := range r.engines {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Default returns a registry with every built-in family registered.
func Default() *Registry {
	r := NewRegistry()
	for _, e := range []Engine{
		CompressionEngine{},
		ExtensionEngine{},
		TorsionEngine{},
		ConicalEngine{},
		SpiralEngine{},
		DiscEngine{},
		WaveEngine{},
		ArcEngine{},
		ShockEngine{},
		DieEngine{},
	} {
		// Built-in tags are distinct; Register cannot fail here.
		_ = r.Register(e)
	}
	return r
}
