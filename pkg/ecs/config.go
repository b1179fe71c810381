package ecs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/aecs/internal/core/observability/log"
	"github.com/zeusync/aecs/pkg/component"
	"github.com/zeusync/aecs/pkg/events"
)

// Config holds registry construction settings. The tagged fields can be loaded
// from YAML or JSON; the rest are injected through options.
type Config struct {
	Name            string `json:"name" yaml:"name"`                         // Name used in logs and event sources
	InitialCapacity int    `json:"initial_capacity" yaml:"initial_capacity"` // Entity slots allocated up front, 0 defers to first use
	LogLevel        string `json:"log_level" yaml:"log_level"`               // debug, info, warn, error or empty for silent
	SharedTypes     bool   `json:"shared_types" yaml:"shared_types"`         // Use the process-wide component.Default id space
	Events          bool   `json:"events" yaml:"events"`                     // Attach a fresh event bus

	Types  *component.Types `json:"-" yaml:"-"` // Explicit id space, overrides SharedTypes
	Logger log.Log          `json:"-" yaml:"-"` // Explicit logger, overrides LogLevel
	Bus    *events.Bus      `json:"-" yaml:"-"` // Explicit bus, overrides Events
}

// Option is a function that configures a registry.
type Option func(*Config)

func DefaultConfig() Config {
	return Config{Name: "registry"}
}

// Validate checks the serializable settings.
func (c Config) Validate() error {
	if c.InitialCapacity < 0 {
		return fmt.Errorf("%w: initial_capacity %d is negative", ErrInvalidConfig, c.InitialCapacity)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadYAML loads config from YAML reader. Missing keys keep their defaults.
func LoadYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, err
	}
	return c, c.Validate()
}

// LoadJSON loads config from JSON reader. Missing keys keep their defaults.
func LoadJSON(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config file %q", ErrInvalidConfig, path)
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithName sets the registry name.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithInitialCapacity preallocates entity slots.
func WithInitialCapacity(n int) Option {
	return func(c *Config) { c.InitialCapacity = n }
}

// WithLogLevel enables a stderr logger at the given level.
func WithLogLevel(level string) Option {
	return func(c *Config) { c.LogLevel = level }
}

// WithTypes injects the component id space. Registries sharing a Types agree
// on component IDs and masks.
func WithTypes(types *component.Types) Option {
	return func(c *Config) { c.Types = types }
}

// WithSharedTypes selects the process-wide id space.
func WithSharedTypes() Option {
	return func(c *Config) { c.SharedTypes = true }
}

// WithLogger injects a logger.
func WithLogger(logger log.Log) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithEvents attaches bus, or a new bus when bus is nil.
func WithEvents(bus *events.Bus) Option {
	return func(c *Config) {
		c.Events = true
		c.Bus = bus
	}
}
