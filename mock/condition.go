package mock

import (
	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/env"
)

// ClassLoader is a condition.ClassLoader backed by a set of type names.
// It counts lookups so tests can check short-circuiting.
type ClassLoader struct {
	Names   map[string]bool
	Lookups int
}

func NewClassLoader(names ...string) *ClassLoader {
	l := &ClassLoader{Names: make(map[string]bool, len(names))}
	for _, n := range names {
		l.Names[n] = true
	}
	return l
}

func (l *ClassLoader) IsPresent(name string) bool {
	l.Lookups++
	return l.Names[name]
}

// ScopeRegistry is a condition.ScopeRegistry with a fixed scope list.
type ScopeRegistry struct {
	Scopes  []string
	Lookups int
}

func (r *ScopeRegistry) RegisteredScopeNames() []string {
	r.Lookups++
	return append([]string(nil), r.Scopes...)
}

// ConditionContext is a condition.Context assembled from its fields.
// A nil Registry is reported as "no bean factory".
type ConditionContext struct {
	Loader   *ClassLoader
	Registry *ScopeRegistry
	Env      env.Environment
	Resource env.ResourceLoader
}

// WebReadyContext returns a context whose class loader has the web marker
// type and which carries no other web signal.
func WebReadyContext() *ConditionContext {
	return &ConditionContext{
		Loader:   NewClassLoader(env.WebContextClass),
		Registry: &ScopeRegistry{Scopes: []string{"singleton", "transient"}},
		Env:      env.NewStandardEnvironment(),
		Resource: env.NewDefaultResourceLoader(nil),
	}
}

func (c *ConditionContext) ClassLoader() condition.ClassLoader {
	return c.Loader
}

func (c *ConditionContext) BeanFactory() condition.ScopeRegistry {
	if c.Registry == nil {
		return nil
	}
	return c.Registry
}

func (c *ConditionContext) Environment() env.Environment {
	return c.Env
}

func (c *ConditionContext) ResourceLoader() env.ResourceLoader {
	return c.Resource
}
