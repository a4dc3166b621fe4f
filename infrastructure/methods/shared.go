// Package methods provides the voting-method units that implement the
// ports.Unit interface for the go-ballot tally engine.
package methods

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Common errors returned by tally units.
// These errors provide consistent error handling across all method
// implementations.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with
	// an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrNilElection is returned when a tally is invoked without an
	// election in the simulation state.
	ErrNilElection = errors.New("election not found in state")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
