package application

import (
	"fmt"
	"sync"

	"github.com/ahrav/go-ballot/infrastructure/methods"
	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.UnitRegistry = (*DefaultUnitRegistry)(nil)

// DefaultUnitRegistry implements the UnitRegistry interface providing a
// factory for creating tally units based on method type and configuration.
// It comes with the built-in voting methods pre-registered and supports
// dynamic registration of additional factories.
type DefaultUnitRegistry struct {
	// factories maps method type strings to their factory functions.
	factories map[string]ports.UnitFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultUnitRegistry creates a new unit registry with the standard
// voting methods pre-registered: irv, borda, and condorcet.
func NewDefaultUnitRegistry() *DefaultUnitRegistry {
	registry := &DefaultUnitRegistry{
		factories: make(map[string]ports.UnitFactory),
	}

	registry.registerBuiltinFactories()

	return registry
}

// registerBuiltinFactories registers the standard voting methods provided
// by the tally engine.
func (r *DefaultUnitRegistry) registerBuiltinFactories() {
	r.factories[domain.MethodIRV] = func(id string, config map[string]any) (ports.Unit, error) {
		return methods.CreateIRVUnit(id, config)
	}

	r.factories[domain.MethodBorda] = func(id string, config map[string]any) (ports.Unit, error) {
		return methods.CreateBordaUnit(id, config)
	}

	r.factories[domain.MethodCondorcet] = func(id string, config map[string]any) (ports.Unit, error) {
		return methods.CreateCondorcetUnit(id, config)
	}
}

// CreateUnit creates a new unit instance based on the provided method
// type, identifier, and configuration.
// It looks up the appropriate factory function and delegates unit
// creation.
func (r *DefaultUnitRegistry) CreateUnit(
	methodType string,
	id string,
	config map[string]any,
) (ports.Unit, error) {
	r.mu.RLock()
	factory, exists := r.factories[methodType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported method type: %s", methodType)
	}

	if id == "" {
		return nil, fmt.Errorf("unit ID cannot be empty")
	}

	if config == nil {
		config = make(map[string]any)
	}

	unit, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit %s of type %s: %w", id, methodType, err)
	}

	return unit, nil
}

// RegisterUnitFactory registers a new factory function for a specific
// method type. This allows extending the registry with custom voting
// methods at runtime.
func (r *DefaultUnitRegistry) RegisterUnitFactory(
	methodType string,
	factory ports.UnitFactory,
) error {
	if methodType == "" {
		return fmt.Errorf("method type cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[methodType] = factory
	return nil
}

// GetSupportedTypes returns a list of all registered method types.
// This is useful for validation, documentation, and introspection.
func (r *DefaultUnitRegistry) GetSupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for methodType := range r.factories {
		types = append(types, methodType)
	}

	return types
}
