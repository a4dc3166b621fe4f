package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

func TestDefaultUnitRegistry_CreateUnit(t *testing.T) {
	registry := NewDefaultUnitRegistry()

	tests := []struct {
		name       string
		methodType string
		id         string
		config     map[string]any
		wantErr    bool
	}{
		{
			name:       "irv with nil config",
			methodType: domain.MethodIRV,
			id:         "irv",
		},
		{
			name:       "borda with nil config",
			methodType: domain.MethodBorda,
			id:         "borda",
		},
		{
			name:       "condorcet with nil config",
			methodType: domain.MethodCondorcet,
			id:         "condorcet",
		},
		{
			name:       "irv with explicit parameters",
			methodType: domain.MethodIRV,
			id:         "irv1",
			config:     map[string]any{"elimination_rule": "lowest_cohort"},
		},
		{
			name:       "unsupported method type",
			methodType: "approval",
			id:         "approval",
			wantErr:    true,
		},
		{
			name:       "empty unit ID",
			methodType: domain.MethodIRV,
			id:         "",
			wantErr:    true,
		},
		{
			name:       "invalid parameters surface factory error",
			methodType: domain.MethodBorda,
			id:         "borda1",
			config:     map[string]any{"scoring": "dowdall"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := registry.CreateUnit(tt.methodType, tt.id, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, unit.Name())
			assert.NoError(t, unit.Validate())
		})
	}
}

func TestDefaultUnitRegistry_GetSupportedTypes(t *testing.T) {
	registry := NewDefaultUnitRegistry()

	types := registry.GetSupportedTypes()
	assert.ElementsMatch(t,
		[]string{domain.MethodIRV, domain.MethodBorda, domain.MethodCondorcet},
		types,
	)
}

func TestDefaultUnitRegistry_RegisterUnitFactory(t *testing.T) {
	registry := NewDefaultUnitRegistry()

	t.Run("custom factory", func(t *testing.T) {
		err := registry.RegisterUnitFactory("custom", func(id string, _ map[string]any) (ports.Unit, error) {
			return stubUnit{name: id}, nil
		})
		require.NoError(t, err)

		unit, err := registry.CreateUnit("custom", "mine", nil)
		require.NoError(t, err)
		assert.Equal(t, "mine", unit.Name())
		assert.Contains(t, registry.GetSupportedTypes(), "custom")
	})

	t.Run("empty method type rejected", func(t *testing.T) {
		err := registry.RegisterUnitFactory("", func(id string, _ map[string]any) (ports.Unit, error) {
			return stubUnit{name: id}, nil
		})
		assert.Error(t, err)
	})

	t.Run("nil factory rejected", func(t *testing.T) {
		assert.Error(t, registry.RegisterUnitFactory("custom", nil))
	})
}

func TestDefaultUnitRegistry_FactoryErrorsAreWrapped(t *testing.T) {
	registry := NewDefaultUnitRegistry()

	boom := fmt.Errorf("boom")
	require.NoError(t, registry.RegisterUnitFactory("failing", func(string, map[string]any) (ports.Unit, error) {
		return nil, boom
	}))

	_, err := registry.CreateUnit("failing", "f1", nil)
	assert.ErrorIs(t, err, boom)
}

// stubUnit is a minimal Unit for registry tests.
type stubUnit struct{ name string }

func (s stubUnit) Name() string { return s.name }

func (s stubUnit) Execute(_ context.Context, state domain.State) (domain.State, error) {
	return state, nil
}

func (s stubUnit) Validate() error { return nil }
