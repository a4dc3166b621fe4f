// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/ahrav/go-ballot/internal/domain"
)

// Unit represents a single voting method in the tally pipeline.
// Each Unit reads the election from the simulation State, computes its
// outcome, and writes the method's result back into a new State.
// Units must be stateless and thread-safe for concurrent execution.
type Unit interface {
	// Name returns a unique identifier for this unit.
	// The name is used for logging, metrics, and configuration.
	Name() string

	// Execute performs the unit's tally on the provided State.
	// It returns a new State containing the method's result.
	// The original State must not be modified (immutability principle).
	// Any errors during execution should be returned rather than panicking.
	//
	// The context parameter allows for cancellation propagation. Tallies
	// are short, CPU-bound computations, so units only need to honor
	// cancellation between coarse steps, if at all.
	//
	// Example:
	//
	//	newState, err := unit.Execute(ctx, state)
	//	if err != nil {
	//	    return nil, fmt.Errorf("unit %s failed: %w", unit.Name(), err)
	//	}
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate checks if the unit is properly configured and ready for
	// execution. It is typically called during simulator construction.
	// Return nil if validation passes, or an error describing what is
	// invalid.
	Validate() error
}

// UnitFactory creates a Unit instance from an identifier and a flexible
// configuration map. Factories are registered with a UnitRegistry keyed
// by method type.
type UnitFactory func(id string, config map[string]any) (Unit, error)

// UnitRegistry provides dynamic creation of tally units by method type.
// Implementations come pre-registered with the built-in voting methods
// and accept additional factories at runtime.
type UnitRegistry interface {
	// CreateUnit creates a new unit of the given method type.
	// The config map carries method-specific parameters and may be nil.
	CreateUnit(methodType, id string, config map[string]any) (Unit, error)

	// RegisterUnitFactory registers a factory for a method type,
	// replacing any existing registration.
	RegisterUnitFactory(methodType string, factory UnitFactory) error

	// GetSupportedTypes returns all registered method types.
	GetSupportedTypes() []string
}
