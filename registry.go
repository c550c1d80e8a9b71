package digo

import (
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/env"
)

// RegisterScope makes scope available to BindScoped. Registering a scope
// twice is a no-op.
func RegisterScope(scope Scope) error {
	if scope == "" {
		return &InvalidScopeError{Scope: string(scope)}
	}
	c := GetContainer()
	c.mu.Lock()
	c.scopes[scope] = struct{}{}
	c.mu.Unlock()
	Logger().Debug("scope registered", zap.String("scope", string(scope)))
	return nil
}

// RegisteredScopeNames returns the registered scope names in sorted order.
func RegisteredScopeNames() []string {
	return GetContainer().RegisteredScopeNames()
}

func (c *container) RegisteredScopeNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.scopes))
	for s := range c.scopes {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

// RegisterType records T as available to conditions, the way linking a
// package makes its types available to a program.
func RegisterType[T any]() {
	RegisterTypeName(env.TypeName(reflect.TypeOf((*T)(nil)).Elem()))
}

// RegisterTypeName records a fully-qualified type name as available.
func RegisterTypeName(name string) {
	if name == "" {
		return
	}
	c := GetContainer()
	c.mu.Lock()
	c.types[name] = struct{}{}
	c.mu.Unlock()
}

// IsTypePresent reports whether name was registered.
func IsTypePresent(name string) bool {
	return GetContainer().IsPresent(name)
}

func (c *container) IsPresent(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[name]
	return ok
}

// SetEnvironment replaces the environment conditions and configurations see.
func SetEnvironment(e env.Environment) {
	c := GetContainer()
	c.mu.Lock()
	c.environment = e
	c.mu.Unlock()
}

// Environment returns the container environment.
func Environment() env.Environment {
	c := GetContainer()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.environment
}

// SetResourceLoader replaces the container resource loader.
func SetResourceLoader(l env.ResourceLoader) {
	c := GetContainer()
	c.mu.Lock()
	c.resourceLoader = l
	c.mu.Unlock()
}

// ResourceLoader returns the container resource loader.
func ResourceLoader() env.ResourceLoader {
	c := GetContainer()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resourceLoader
}

// ConditionContext returns the container as seen by conditions.
func ConditionContext() condition.Context {
	return &conditionContext{c: GetContainer()}
}

// ConditionReport returns the outcomes recorded by the last Boot.
func ConditionReport() *condition.Report {
	c := GetContainer()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report
}

type conditionContext struct {
	c *container
}

func (cc *conditionContext) ClassLoader() condition.ClassLoader {
	return cc.c
}

func (cc *conditionContext) BeanFactory() condition.ScopeRegistry {
	return cc.c
}

func (cc *conditionContext) Environment() env.Environment {
	cc.c.mu.RLock()
	defer cc.c.mu.RUnlock()
	return cc.c.environment
}

func (cc *conditionContext) ResourceLoader() env.ResourceLoader {
	cc.c.mu.RLock()
	defer cc.c.mu.RUnlock()
	return cc.c.resourceLoader
}
