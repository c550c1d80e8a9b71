// Package env describes the runtime environment a container is started in:
// its property sources, active profiles and the resource loader used to read
// configuration files.
package env

import (
	"reflect"
	"sort"
)

// Environment exposes the properties and profiles a container runs with.
type Environment interface {
	// Property returns the value for key and whether it was set.
	Property(key string) (string, bool)

	// ActiveProfiles returns the profiles the container was started with.
	ActiveProfiles() []string
}

// StandardEnvironment is a map-backed Environment for non-web processes.
// It is populated before boot and is not safe for concurrent mutation.
type StandardEnvironment struct {
	properties map[string]string
	profiles   []string
}

// NewStandardEnvironment creates an environment with the given active profiles.
func NewStandardEnvironment(profiles ...string) *StandardEnvironment {
	return &StandardEnvironment{
		properties: make(map[string]string),
		profiles:   append([]string(nil), profiles...),
	}
}

// SetProperty stores value under key, replacing any earlier value.
func (e *StandardEnvironment) SetProperty(key, value string) {
	e.properties[key] = value
}

func (e *StandardEnvironment) Property(key string) (string, bool) {
	v, ok := e.properties[key]
	return v, ok
}

func (e *StandardEnvironment) ActiveProfiles() []string {
	return append([]string(nil), e.profiles...)
}

// PropertyNames returns the configured property keys in sorted order.
func (e *StandardEnvironment) PropertyNames() []string {
	names := make([]string, 0, len(e.properties))
	for k := range e.properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// StandardServletEnvironment is the environment of a process serving HTTP.
// Servlet init parameters take precedence over plain properties.
type StandardServletEnvironment struct {
	StandardEnvironment
	initParams map[string]string
}

// NewStandardServletEnvironment creates a servlet environment with the given active profiles.
func NewStandardServletEnvironment(profiles ...string) *StandardServletEnvironment {
	return &StandardServletEnvironment{
		StandardEnvironment: *NewStandardEnvironment(profiles...),
		initParams:          make(map[string]string),
	}
}

// SetInitParam stores a servlet init parameter.
func (e *StandardServletEnvironment) SetInitParam(key, value string) {
	e.initParams[key] = value
}

func (e *StandardServletEnvironment) Property(key string) (string, bool) {
	if v, ok := e.initParams[key]; ok {
		return v, true
	}
	return e.StandardEnvironment.Property(key)
}

// TypeName returns the fully-qualified name of t, e.g.
// "*github.com/centraunit/digo/env.GenericWebApplicationContext".
// Unnamed and predeclared types fall back to their reflect string.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	prefix := ""
	for t.Kind() == reflect.Pointer {
		prefix += "*"
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return prefix + t.String()
	}
	return prefix + t.PkgPath() + "." + t.Name()
}
