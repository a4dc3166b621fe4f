package application

import (
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
)

// ElectionConfig is the declarative YAML specification for a simulation
// run and serves as the file-based configuration entry point for the
// engine. It carries the same raw candidate and ballot text a caller
// would pass to Simulator.Run, plus the methods to run and their
// parameters.
type ElectionConfig struct {
	// Version specifies the configuration schema version using semantic
	// versioning to ensure compatibility across updates.
	Version string `yaml:"version" validate:"required,semver"`
	// Metadata contains descriptive information about the election,
	// including its name and organizational labels.
	Metadata Metadata `yaml:"metadata" validate:"required"`
	// Candidates is the comma-separated candidate list, parsed with the
	// same rules as interactive input.
	Candidates string `yaml:"candidates" validate:"required"`
	// Ballots is the multi-line "count: ranking" ballot text, parsed
	// with the same rules as interactive input.
	Ballots string `yaml:"ballots" validate:"required"`
	// Methods lists the voting methods to run, each with its own
	// configuration parameters. Methods execute in list order.
	Methods []MethodConfig `yaml:"methods" validate:"required,min=1,dive"`
}

// Metadata provides descriptive information about an election to support
// organization, discovery, and observability labeling.
type Metadata struct {
	// Name is the human-readable identifier for this election.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Description provides a detailed explanation of the election's
	// purpose for documentation and discovery.
	Description string `yaml:"description" validate:"max=1000"`
	// Tags are categorical labels that enable filtering and grouping.
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
	// Labels are arbitrary key-value pairs for integration with
	// external systems.
	Labels map[string]string `yaml:"labels" validate:"max=50"`
}

// MethodConfig defines one voting method within an election file,
// including its identifier and method-specific parameters.
type MethodConfig struct {
	// ID is the unique identifier for this method instance within the
	// election and must be alphanumeric for safe referencing.
	ID string `yaml:"id" validate:"required,alphanum,min=1,max=100"`
	// Type specifies the voting method implementation to instantiate.
	Type string `yaml:"type" validate:"required,oneof=irv borda condorcet"`
	// Parameters contains method-specific configuration as flexible
	// YAML that is validated by the method's factory.
	Parameters yaml.Node `yaml:"parameters"`
}

// MethodsSelection derives the method selection flags from the
// configured method list.
func (c *ElectionConfig) MethodsSelection() Methods {
	var m Methods
	for _, method := range c.Methods {
		switch method.Type {
		case domain.MethodIRV:
			m.IRV = true
		case domain.MethodBorda:
			m.Borda = true
		case domain.MethodCondorcet:
			m.Condorcet = true
		}
	}
	return m
}
