// Package config loads a YAML snapshot of a container context: the
// environment, registered scopes and types, and the resource loader.
package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/env"
)

// Environment types.
const (
	EnvironmentStandard = "standard"
	EnvironmentServlet  = "servlet"
)

// Resource loader types.
const (
	LoaderDefault = "default"
	LoaderWeb     = "web"
)

// Config is a container context snapshot.
type Config struct {
	Environment    EnvironmentConfig    `yaml:"environment"`
	Scopes         []string             `yaml:"scopes"`
	Types          []string             `yaml:"types"`
	ResourceLoader ResourceLoaderConfig `yaml:"resource_loader"`
}

// EnvironmentConfig selects and populates the environment.
type EnvironmentConfig struct {
	Type       string            `yaml:"type"` // standard, servlet
	Profiles   []string          `yaml:"profiles"`
	Properties map[string]string `yaml:"properties"`
	InitParams map[string]string `yaml:"init_params"` // servlet only
}

// ResourceLoaderConfig selects the resource loader.
type ResourceLoaderConfig struct {
	Type string `yaml:"type"` // default, web
	Root string `yaml:"root"`
}

// DefaultConfig returns the snapshot of a plain, non-web process.
func DefaultConfig() *Config {
	return &Config{
		Environment:    EnvironmentConfig{Type: EnvironmentStandard},
		ResourceLoader: ResourceLoaderConfig{Type: LoaderDefault},
	}
}

// Load reads and validates the snapshot at path on the OS filesystem.
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs reads and validates the snapshot at path on fs.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a snapshot. Unset fields keep DefaultConfig values.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the environment and resource loader types.
func (c *Config) Validate() error {
	switch c.Environment.Type {
	case EnvironmentStandard, EnvironmentServlet:
	default:
		return fmt.Errorf("unknown environment type %q", c.Environment.Type)
	}
	if c.Environment.Type != EnvironmentServlet && len(c.Environment.InitParams) > 0 {
		return fmt.Errorf("init_params require a %s environment", EnvironmentServlet)
	}
	switch c.ResourceLoader.Type {
	case LoaderDefault, LoaderWeb:
	default:
		return fmt.Errorf("unknown resource loader type %q", c.ResourceLoader.Type)
	}
	for _, s := range c.Scopes {
		if s == "" {
			return fmt.Errorf("empty scope name")
		}
	}
	return nil
}

// BuildEnvironment creates the environment described by the snapshot.
func (c *Config) BuildEnvironment() env.Environment {
	if c.Environment.Type == EnvironmentServlet {
		e := env.NewStandardServletEnvironment(c.Environment.Profiles...)
		for k, v := range c.Environment.Properties {
			e.SetProperty(k, v)
		}
		for k, v := range c.Environment.InitParams {
			e.SetInitParam(k, v)
		}
		return e
	}
	e := env.NewStandardEnvironment(c.Environment.Profiles...)
	for k, v := range c.Environment.Properties {
		e.SetProperty(k, v)
	}
	return e
}

// BuildResourceLoader creates the resource loader described by the snapshot,
// reading from fs.
func (c *Config) BuildResourceLoader(fs afero.Fs) env.ResourceLoader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if c.ResourceLoader.Root != "" {
		fs = afero.NewBasePathFs(fs, c.ResourceLoader.Root)
	}
	if c.ResourceLoader.Type == LoaderWeb {
		return env.NewGenericWebApplicationContext(fs)
	}
	return env.NewDefaultResourceLoader(fs)
}

// Apply installs the snapshot into the container.
func (c *Config) Apply(fs afero.Fs) error {
	for _, s := range c.Scopes {
		if err := digo.RegisterScope(digo.Scope(s)); err != nil {
			return fmt.Errorf("failed to register scope: %w", err)
		}
	}
	for _, t := range c.Types {
		digo.RegisterTypeName(t)
	}
	digo.SetEnvironment(c.BuildEnvironment())
	digo.SetResourceLoader(c.BuildResourceLoader(fs))
	return nil
}
