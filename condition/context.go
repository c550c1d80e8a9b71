package condition

import (
	"slices"

	"github.com/centraunit/digo/env"
)

// Annotation names a configuration unit can carry.
const (
	ConditionalOnWebApplication    = "digo.ConditionalOnWebApplication"
	ConditionalOnNotWebApplication = "digo.ConditionalOnNotWebApplication"
)

// ClassLoader reports whether a type is available to the container, keyed by
// its fully-qualified name (see env.TypeName).
type ClassLoader interface {
	IsPresent(name string) bool
}

// ScopeRegistry lists the scope names registered with a container.
type ScopeRegistry interface {
	RegisteredScopeNames() []string
}

// Context is the view of the container a condition may consult.
// BeanFactory may return nil when no registry is available.
type Context interface {
	ClassLoader() ClassLoader
	BeanFactory() ScopeRegistry
	Environment() env.Environment
	ResourceLoader() env.ResourceLoader
}

// Metadata describes the configuration unit under evaluation.
type Metadata interface {
	IsAnnotated(annotation string) bool
}

// Annotations is a Metadata backed by a list of annotation names.
type Annotations []string

func (a Annotations) IsAnnotated(annotation string) bool {
	return slices.Contains(a, annotation)
}
