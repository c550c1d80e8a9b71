package digo

import (
	"context"
	"sync"

	"github.com/centraunit/digo/env"
)

// RequestIDKey is the context key request-scoped resolution requires.
const RequestIDKey = "request_id"

type contextKey string

const environmentKey contextKey = "environment"

// ContainerContext extends context.Context with values owned by the container.
// Values set on a ContainerContext shadow those of the wrapped context.
type ContainerContext struct {
	context.Context
	values sync.Map
}

// NewContainerContext wraps parent, or context.Background when parent is nil.
func NewContainerContext(parent context.Context) *ContainerContext {
	if parent == nil {
		parent = context.Background()
	}
	return &ContainerContext{Context: parent}
}

func (c *ContainerContext) copyInto(dst *ContainerContext) {
	c.values.Range(func(k, v interface{}) bool {
		dst.values.Store(k, v)
		return true
	})
}

// WithValue returns a copy of c that also holds key.
func (c *ContainerContext) WithValue(key, val interface{}) *ContainerContext {
	next := &ContainerContext{Context: c.Context}
	c.copyInto(next)
	next.values.Store(key, val)
	return next
}

// WithEnvironment returns a copy of c carrying e.
func (c *ContainerContext) WithEnvironment(e env.Environment) *ContainerContext {
	return c.WithValue(environmentKey, e)
}

// Environment returns the environment attached with WithEnvironment, or nil.
func (c *ContainerContext) Environment() env.Environment {
	e, _ := c.Value(environmentKey).(env.Environment)
	return e
}

// RequestID returns the request id bound under RequestIDKey.
func (c *ContainerContext) RequestID() (interface{}, bool) {
	id := c.Value(RequestIDKey)
	return id, id != nil
}

func (c *ContainerContext) Parent() context.Context {
	return c.Context
}

func (c *ContainerContext) Value(key interface{}) interface{} {
	if c == nil {
		return nil
	}
	if val, ok := c.values.Load(key); ok {
		return val
	}
	if c.Context != nil {
		return c.Context.Value(key)
	}
	return nil
}

// Values returns the values stored directly on c.
func (c *ContainerContext) Values() *sync.Map {
	return &c.values
}

// MergeWith returns a new context holding the values of c overridden by those
// of other. The wrapped context of c is kept.
func (c *ContainerContext) MergeWith(other *ContainerContext) *ContainerContext {
	merged := NewContainerContext(c.Context)
	c.copyInto(merged)
	if other != nil {
		other.copyInto(merged)
	}
	return merged
}
