package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-ballot/internal/domain"
	"github.com/ahrav/go-ballot/internal/ports"
)

// LoadedElection is the compiled form of an election file: the parsed
// configuration, the validated election, and the configured tally units
// in execution order. Loaded elections are cached and shared; treat them
// as read-only.
type LoadedElection struct {
	// Config is the parsed and validated election configuration.
	Config ElectionConfig

	// Election is the validated election built from the configured
	// candidate and ballot text.
	Election *domain.Election

	// Units holds the configured tally units in the order the
	// configuration listed them.
	Units []ports.Unit
}

// ElectionLoader provides YAML parsing, validation, and caching for
// election files, transforming declarative specifications into runnable
// simulations.
// Use ElectionLoader to load elections from files or readers while
// benefiting from SHA256-based caching and comprehensive validation.
type ElectionLoader struct {
	// validator performs struct field validation for election
	// configurations and their nested components.
	validator *validator.Validate
	// registry provides factory methods for creating tally units based
	// on their method type and configuration parameters.
	registry ports.UnitRegistry
	// cache stores loaded elections indexed by SHA256 hash of the
	// source YAML to avoid revalidating identical files.
	cache map[string]*LoadedElection
	// cacheMu provides thread-safe access to the cache map.
	cacheMu sync.RWMutex
	// sf prevents duplicate compilation when multiple goroutines
	// request the same election simultaneously.
	sf singleflight.Group
}

// NewElectionLoader creates a new election loader backed by the given
// unit registry, with an empty cache, ready to load election files.
func NewElectionLoader(registry ports.UnitRegistry) (*ElectionLoader, error) {
	if registry == nil {
		return nil, fmt.Errorf("unit registry cannot be nil")
	}

	return &ElectionLoader{
		validator: validator.New(),
		registry:  registry,
		cache:     make(map[string]*LoadedElection),
	}, nil
}

// LoadFromFile loads and compiles an election from a YAML file,
// utilizing SHA256-based caching to avoid recompiling identical files.
// The returned election is a pointer to a cached instance and must not
// be mutated.
func (el *ElectionLoader) LoadFromFile(ctx context.Context, path string) (*LoadedElection, error) {
	// Clean the path to prevent directory traversal attacks.
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return el.load(ctx, data)
}

// LoadFromReader loads and compiles an election from an io.Reader,
// supporting any source that implements the Reader interface.
func (el *ElectionLoader) LoadFromReader(ctx context.Context, r io.Reader) (*LoadedElection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	return el.load(ctx, data)
}

// LoadFromBytes loads and compiles an election from raw YAML bytes.
func (el *ElectionLoader) LoadFromBytes(ctx context.Context, data []byte) (*LoadedElection, error) {
	return el.load(ctx, data)
}

// load is the common implementation for loading elections from byte
// data, utilizing singleflight to prevent duplicate compilation and
// SHA256-based caching for efficiency.
func (el *ElectionLoader) load(ctx context.Context, data []byte) (*LoadedElection, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	v, err, _ := el.sf.Do(hash, func() (any, error) {
		// Check cache inside singleflight to handle the race between
		// the cache check and singleflight group execution.
		if loaded, ok := el.getCached(hash); ok {
			return loaded, nil
		}

		config, err := el.parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}

		if err := el.validateConfig(config); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		loaded, err := el.build(config)
		if err != nil {
			return nil, err
		}

		el.putCached(hash, loaded)

		return loaded, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*LoadedElection), nil
}

// parseYAML unmarshals YAML byte data into an ElectionConfig.
// It uses strict decoding to detect unknown fields, preventing
// configuration typos from being silently ignored.
func (el *ElectionLoader) parseYAML(data []byte) (*ElectionConfig, error) {
	var config ElectionConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Strict mode - fail on unknown fields.

	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &config, nil
}

// validateConfig performs struct field validation followed by the
// semantic rules that cannot be expressed through struct tags.
func (el *ElectionLoader) validateConfig(config *ElectionConfig) error {
	if err := el.validator.Struct(config); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}

	if err := el.validateSemantics(config); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}

	return nil
}

// validateSemantics enforces uniqueness of method IDs and types.
// Each voting method may appear at most once per election because
// results are keyed by method.
func (el *ElectionLoader) validateSemantics(config *ElectionConfig) error {
	ids := make(map[string]struct{}, len(config.Methods))
	types := make(map[string]struct{}, len(config.Methods))

	for _, method := range config.Methods {
		if _, exists := ids[method.ID]; exists {
			return fmt.Errorf("duplicate method ID %q", method.ID)
		}
		ids[method.ID] = struct{}{}

		if _, exists := types[method.Type]; exists {
			return fmt.Errorf("method type %q configured more than once", method.Type)
		}
		types[method.Type] = struct{}{}
	}

	return nil
}

// build parses the configured candidate and ballot text with the same
// rules as interactive input and creates the configured units through
// the registry.
func (el *ElectionLoader) build(config *ElectionConfig) (*LoadedElection, error) {
	candidates, err := ParseCandidates(config.Candidates)
	if err != nil {
		return nil, fmt.Errorf("invalid candidates: %w", err)
	}

	ballots, err := ParseBallots(config.Ballots, candidates)
	if err != nil {
		return nil, fmt.Errorf("invalid ballots: %w", err)
	}

	election, err := domain.NewElection(candidates, ballots)
	if err != nil {
		return nil, fmt.Errorf("invalid election: %w", err)
	}

	units := make([]ports.Unit, 0, len(config.Methods))
	for _, method := range config.Methods {
		params, err := decodeParameters(method.Parameters)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", method.ID, err)
		}

		unit, err := el.registry.CreateUnit(method.Type, method.ID, params)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return &LoadedElection{
		Config:   *config,
		Election: election,
		Units:    units,
	}, nil
}

// decodeParameters converts a method's flexible YAML parameters into the
// map form consumed by unit factories. A zero node means no parameters.
func decodeParameters(node yaml.Node) (map[string]any, error) {
	if node.IsZero() {
		return nil, nil
	}

	var params map[string]any
	if err := node.Decode(&params); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return params, nil
}

// getCached retrieves a loaded election from the cache.
func (el *ElectionLoader) getCached(hash string) (*LoadedElection, bool) {
	el.cacheMu.RLock()
	defer el.cacheMu.RUnlock()

	loaded, ok := el.cache[hash]
	return loaded, ok
}

// putCached stores a loaded election in the cache.
func (el *ElectionLoader) putCached(hash string, loaded *LoadedElection) {
	el.cacheMu.Lock()
	defer el.cacheMu.Unlock()

	el.cache[hash] = loaded
}
