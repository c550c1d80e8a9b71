// Package digo provides a dependency injection container whose configuration
// units are activated at boot only when their conditions match.
package digo

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/env"
)

// bindingDefinition represents a service binding in the container.
// It holds the concrete implementation, scope, and associated context.
type bindingDefinition struct {
	scope       Scope
	concrete    Lifecycle
	abstract    reflect.Type
	initialized bool
	ctx         *ContainerContext
	predicate   ContextPredicate
}

type resolutionState struct {
	chain    map[string]bool
	mu       sync.Mutex
	keyCache []string
}

// container manages bindings, the registries conditions read from and the
// configuration units activated at boot.
type container struct {
	bindings       map[string]bindingDefinition
	scopes         map[Scope]struct{}
	types          map[string]struct{}
	configurations []Configuration
	environment    env.Environment
	resourceLoader env.ResourceLoader
	report         *condition.Report

	ctx             *ContainerContext
	mu              sync.RWMutex
	booted          bool
	bootOnce        sync.Once
	resolutionState sync.Map
	resolutionMu    sync.RWMutex
	statePool       sync.Pool
	goidCache       sync.Map
}

var builtinScopes = []Scope{ScopeTransient, ScopeRequest, ScopeSingleton}

var (
	once             sync.Once
	defaultContainer *container
	typeStringCache  sync.Map
)

func makeBindingKey(scope Scope, serviceType reflect.Type) string {
	if cached, ok := typeStringCache.Load(serviceType); ok {
		return string(scope) + ":" + cached.(string)
	}
	typeStr := serviceType.String()
	typeStringCache.Store(serviceType, typeStr)
	return string(scope) + ":" + typeStr
}

// GetContainer returns the singleton container instance.
func GetContainer() *container {
	once.Do(func() {
		defaultContainer = &container{
			ctx: NewContainerContext(context.Background()),
			statePool: sync.Pool{
				New: func() interface{} {
					return &resolutionState{
						chain:    make(map[string]bool, 8),
						keyCache: make([]string, 0, 8),
					}
				},
			},
		}
		defaultContainer.resetLocked()
	})
	return defaultContainer
}

// resetLocked restores every registry to its initial state. Callers hold mu
// and resolutionMu, or own the container exclusively.
func (c *container) resetLocked() {
	c.bindings = make(map[string]bindingDefinition, 32)
	c.scopes = make(map[Scope]struct{}, len(builtinScopes)+1)
	for _, s := range builtinScopes {
		c.scopes[s] = struct{}{}
	}
	c.types = make(map[string]struct{})
	c.configurations = nil
	c.environment = env.NewStandardEnvironment()
	c.resourceLoader = env.NewDefaultResourceLoader(nil)
	c.report = condition.NewReport()
	c.resolutionState = sync.Map{}
	c.booted = false
	c.bootOnce = sync.Once{}
}

// Boot activates the registered configuration units whose conditions match,
// then initializes singleton and request bindings.
// Only the first successful call after Reset or Shutdown(true) does any work;
// a failed Boot may be retried.
func Boot() error {
	instance := GetContainer()
	var bootErr error

	instance.bootOnce.Do(func() {
		if err := instance.activateConfigurations(); err != nil {
			bootErr = err
			return
		}
		bootErr = instance.bootBindings()
	})

	if bootErr != nil {
		instance.mu.Lock()
		instance.bootOnce = sync.Once{}
		instance.mu.Unlock()
	}
	return bootErr
}

func (c *container) activateConfigurations() error {
	c.mu.Lock()
	configs := append([]Configuration(nil), c.configurations...)
	c.report = condition.NewReport()
	report := c.report
	c.mu.Unlock()

	log := Logger()
	evaluator := condition.NewEvaluator(report, log)
	condCtx := &conditionContext{c: c}

	for _, cfg := range configs {
		if evaluator.ShouldSkip(cfg.Name, condCtx, cfg.Annotations, cfg.Conditions...) {
			log.Debug("configuration skipped", zap.String("configuration", cfg.Name))
			continue
		}
		log.Info("configuration activated", zap.String("configuration", cfg.Name))
		if cfg.Configure == nil {
			continue
		}
		c.mu.RLock()
		configureCtx := c.ctx.WithEnvironment(c.environment)
		c.mu.RUnlock()
		if err := cfg.Configure(configureCtx); err != nil {
			return &ConfigurationError{Name: cfg.Name, Err: err}
		}
	}
	return nil
}

func (c *container) bootBindings() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.booted {
		return nil
	}
	for key, binding := range c.bindings {
		switch {
		case binding.scope == ScopeSingleton && !binding.initialized,
			binding.scope == ScopeRequest:
		default:
			continue
		}
		if err := binding.concrete.OnBoot(binding.ctx); err != nil {
			return &BootError{Type: binding.abstract.String(), Err: err}
		}
		binding.initialized = true
		c.bindings[key] = binding
	}
	c.booted = true
	return nil
}

// Shutdown shuts down transient and request services, and every other binding
// too when clearSingletons is true. Every service is asked to shut down even
// when an earlier one fails; failures are combined into the returned error and
// the bindings are left in place.
func Shutdown(clearSingletons bool) error {
	instance := GetContainer()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	toShutdown := make([]bindingDefinition, 0, len(instance.bindings))
	for _, binding := range instance.bindings {
		if clearSingletons || binding.scope.endsWithRequest() {
			toShutdown = append(toShutdown, binding)
		}
	}

	var errs error
	for _, binding := range toShutdown {
		if err := binding.concrete.OnShutdown(binding.ctx); err != nil {
			Logger().Warn("service shutdown failed",
				zap.String("type", binding.abstract.String()),
				zap.Error(err))
			errs = multierr.Append(errs, &ShutdownError{
				Type: reflect.TypeOf(binding.concrete).String(),
				Err:  err,
			})
		}
	}
	if errs != nil {
		return errs
	}

	if clearSingletons {
		instance.resolutionMu.Lock()
		instance.bindings = make(map[string]bindingDefinition)
		instance.booted = false
		instance.bootOnce = sync.Once{}
		instance.resolutionState = sync.Map{}
		instance.report = condition.NewReport()
		instance.resolutionMu.Unlock()
	} else {
		for key, binding := range instance.bindings {
			if binding.scope.endsWithRequest() {
				delete(instance.bindings, key)
			}
		}
	}

	return nil
}

// BindTransient registers a service with transient scope.
// Each resolution creates a new instance of the service.
// Returns NilServiceError if the service is nil.
func BindTransient[T Lifecycle](service T, ctx *ContainerContext, predicate ...ContextPredicate) error {
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	return GetContainer().bind(service, serviceType, ScopeTransient, ctx, predicate...)
}

// BindRequest registers a service with request scope.
// Service instance is shared within a single request context.
// Returns NilServiceError if the service is nil.
func BindRequest[T Lifecycle](service T, ctx *ContainerContext, predicate ...ContextPredicate) error {
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	return GetContainer().bind(service, serviceType, ScopeRequest, ctx, predicate...)
}

// BindSingleton registers a service with singleton scope.
// Service instance is shared across the entire application.
// Returns NilServiceError if the service is nil.
func BindSingleton[T Lifecycle](service T, ctx ...*ContainerContext) error {
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	var bindingCtx *ContainerContext
	if len(ctx) > 0 && ctx[0] != nil {
		bindingCtx = ctx[0]
	}
	return GetContainer().bind(service, serviceType, ScopeSingleton, bindingCtx)
}

// BindScoped registers a service with a registered custom scope such as
// ScopeSession. One instance is shared until Shutdown(true).
// Returns InvalidScopeError if scope was never registered.
func BindScoped[T Lifecycle](scope Scope, service T, ctx *ContainerContext) error {
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	return GetContainer().bind(service, serviceType, scope, ctx)
}

// ResolveTransient resolves a service with transient scope.
// Returns a new instance on each resolution.
// Returns BindingNotFoundError if service is not registered.
// Returns InitializationError if service fails to initialize.
func ResolveTransient[T Lifecycle]() (T, error) {
	instance := GetContainer()
	var zero T
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	key := makeBindingKey(ScopeTransient, serviceType)

	if err := instance.startResolving(key); err != nil {
		return zero, err
	}
	defer instance.finishResolving(key)

	instance.mu.Lock()
	binding, ok := instance.bindings[key]
	if !ok {
		instance.mu.Unlock()
		return zero, &BindingNotFoundError{Type: serviceType.String()}
	}

	// A transient instance is shut down before it is booted again.
	if binding.initialized {
		if err := binding.concrete.OnShutdown(binding.ctx); err != nil {
			instance.mu.Unlock()
			return zero, &ShutdownError{Type: serviceType.String(), Err: err}
		}
		binding.initialized = false
		instance.bindings[key] = binding
	}

	if binding.predicate != nil {
		instance.mu.Unlock()
		result, err := binding.predicate(binding.ctx)
		if err != nil {
			return zero, &PredicateError{Type: serviceType.String(), Err: err}
		}
		if typed, ok := result.(T); ok {
			if err := typed.OnBoot(binding.ctx); err != nil {
				return zero, &InitializationError{Type: serviceType.String(), Err: err}
			}
			return typed, nil
		}
		return zero, &PredicateError{Type: serviceType.String(), Err: fmt.Errorf("predicate returned invalid type")}
	}

	concrete := binding.concrete
	instance.mu.Unlock()

	typed, ok := concrete.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: serviceType.String(), Got: reflect.TypeOf(concrete).String()}
	}
	if err := typed.OnBoot(binding.ctx); err != nil {
		return zero, &InitializationError{Type: serviceType.String(), Err: err}
	}

	instance.mu.Lock()
	if current, ok := instance.bindings[key]; ok {
		current.initialized = true
		instance.bindings[key] = current
	}
	instance.mu.Unlock()

	return typed, nil
}

// ResolveRequest resolves a service with request scope.
// Returns the same instance within a request context.
// Returns MissingContextValueError if request_id is not in context.
// Returns BindingNotFoundError if service is not registered.
func ResolveRequest[T Lifecycle]() (T, error) {
	instance := GetContainer()
	var zero T
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	key := makeBindingKey(ScopeRequest, serviceType)

	if err := instance.startResolving(key); err != nil {
		return zero, err
	}
	defer instance.finishResolving(key)

	instance.mu.RLock()
	binding, ok := instance.bindings[key]
	instance.mu.RUnlock()
	if !ok {
		return zero, &BindingNotFoundError{Type: serviceType.String()}
	}
	if _, ok := binding.ctx.RequestID(); !ok {
		return zero, &MissingContextValueError{Key: RequestIDKey}
	}

	if binding.initialized {
		if typed, ok := binding.concrete.(T); ok {
			return typed, nil
		}
		return zero, &TypeMismatchError{Expected: serviceType.String(), Got: reflect.TypeOf(binding.concrete).String()}
	}

	if binding.predicate != nil {
		result, err := binding.predicate(binding.ctx)
		if err != nil {
			return zero, &PredicateError{Type: serviceType.String(), Err: err}
		}
		typed, ok := result.(T)
		if !ok {
			return zero, &PredicateError{Type: serviceType.String(), Err: fmt.Errorf("predicate returned invalid type")}
		}
		binding.concrete = typed
	}
	if err := binding.concrete.OnBoot(binding.ctx); err != nil {
		return zero, &InitializationError{Type: serviceType.String(), Err: err}
	}

	instance.mu.Lock()
	binding.initialized = true
	instance.bindings[key] = binding
	instance.mu.Unlock()

	return binding.concrete.(T), nil
}

// ResolveSingleton resolves a service with singleton scope.
// Returns the same instance for the entire application.
// Returns BindingNotFoundError if service is not registered.
// Returns InitializationError if service fails to initialize.
func ResolveSingleton[T Lifecycle]() (T, error) {
	return resolveShared[T](ScopeSingleton)
}

// ResolveScoped resolves a service bound with BindScoped.
// Returns the same instance until Shutdown(true).
func ResolveScoped[T Lifecycle](scope Scope) (T, error) {
	return resolveShared[T](scope)
}

func resolveShared[T Lifecycle](scope Scope) (T, error) {
	var zero T
	instance := GetContainer()
	serviceType := reflect.TypeOf((*T)(nil)).Elem()
	key := makeBindingKey(scope, serviceType)

	instance.mu.RLock()
	binding, ok := instance.bindings[key]
	instance.mu.RUnlock()
	if !ok {
		return zero, &BindingNotFoundError{Type: serviceType.String()}
	}

	if err := instance.startResolving(key); err != nil {
		return zero, err
	}
	defer instance.finishResolving(key)

	typed, ok := binding.concrete.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: serviceType.String(), Got: reflect.TypeOf(binding.concrete).String()}
	}
	if binding.initialized {
		return typed, nil
	}

	if err := typed.OnBoot(binding.ctx); err != nil {
		return zero, &InitializationError{Type: serviceType.String(), Err: err}
	}

	instance.mu.Lock()
	binding.initialized = true
	instance.bindings[key] = binding
	instance.mu.Unlock()

	return typed, nil
}

// Reset clears all container state: bindings, registered scopes and types,
// configuration units, the condition report, and the environment.
// This function is intended for testing purposes only.
func Reset() {
	instance := GetContainer()
	instance.mu.Lock()
	instance.resolutionMu.Lock()

	instance.resetLocked()

	instance.resolutionMu.Unlock()
	instance.mu.Unlock()
}

func (c *container) bind(service Lifecycle, serviceType reflect.Type, scope Scope, ctx *ContainerContext, predicate ...ContextPredicate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := reflect.ValueOf(service); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return &NilServiceError{Type: serviceType.String()}
	}
	if _, ok := c.scopes[scope]; !ok {
		return &InvalidScopeError{Type: serviceType.String(), Scope: string(scope)}
	}

	bindingCtx := ctx
	if bindingCtx == nil {
		bindingCtx = c.ctx
	}
	bindingCtx = bindingCtx.MergeWith(c.ctx)

	var pred ContextPredicate
	if len(predicate) > 0 {
		pred = predicate[0]
	}

	key := makeBindingKey(scope, serviceType)
	c.bindings[key] = bindingDefinition{
		scope:     scope,
		concrete:  service,
		abstract:  serviceType,
		ctx:       bindingCtx,
		predicate: pred,
	}
	Logger().Debug("service bound",
		zap.String("type", serviceType.String()),
		zap.String("scope", string(scope)))
	return nil
}

func (c *container) getResolutionState() *resolutionState {
	id := c.getGoroutineID()

	c.resolutionMu.RLock()
	state, ok := c.resolutionState.Load(id)
	c.resolutionMu.RUnlock()
	if ok {
		return state.(*resolutionState)
	}

	c.resolutionMu.Lock()
	defer c.resolutionMu.Unlock()

	if state, ok := c.resolutionState.Load(id); ok {
		return state.(*resolutionState)
	}

	state = c.statePool.Get()
	c.resolutionState.Store(id, state)
	return state.(*resolutionState)
}

func (c *container) startResolving(key string) error {
	state := c.getResolutionState()
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.chain[key] {
		return &CircularDependencyError{Type: key}
	}
	state.chain[key] = true
	state.keyCache = append(state.keyCache, key)
	return nil
}

func (c *container) finishResolving(key string) {
	state := c.getResolutionState()
	state.mu.Lock()
	delete(state.chain, key)
	isEmpty := len(state.chain) == 0
	state.mu.Unlock()

	if !isEmpty {
		return
	}

	c.resolutionMu.Lock()
	defer c.resolutionMu.Unlock()
	id := c.getGoroutineID()
	if s, ok := c.resolutionState.Load(id); ok {
		c.resolutionState.Delete(id)
		rs := s.(*resolutionState)
		for _, k := range rs.keyCache {
			delete(rs.chain, k)
		}
		rs.keyCache = rs.keyCache[:0]
		c.statePool.Put(rs)
	}
}

func (c *container) getGoroutineID() string {
	id := goid()
	if cached, ok := c.goidCache.Load(id); ok {
		return cached.(string)
	}
	strID := strconv.FormatInt(id, 10)
	c.goidCache.Store(id, strID)
	return strID
}
