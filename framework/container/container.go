package container

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) (any, error)

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool
}

// ── Errors ────────────────────────────────────────────────────────────────────

// ErrResolution is matched by every *ResolutionError.
var ErrResolution = errors.New("container: resolution failed")

// ResolutionError reports that a service could not be constructed.
type ResolutionError struct {
	Key string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("container: cannot resolve [%s]: %v", e.Key, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrResolution) hold for any ResolutionError.
func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the service registry behind the facade.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Resolve (generic)
//   - memoised construction failures, cleared with Retry
//   - resolved event callbacks
//
// The mutex guards the internal maps only. Two goroutines resolving the same
// singleton for the first time may both run its factory; boot the container
// before sharing it.
type Container struct {
	mu sync.RWMutex
	id string

	// abstract → binding
	bindings map[string]*binding

	// abstract → resolved singleton instance
	instances map[string]any

	// abstract → memoised construction failure
	failures map[string]*ResolutionError

	// alias → abstract (canonical key)
	aliases map[string]string

	// resolved callbacks: []func(abstract, instance)
	afterResolving []func(string, any)
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		id:        uuid.NewString(),
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		failures:  make(map[string]*ResolutionError),
		aliases:   make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ID identifies this container instance in logs.
func (c *Container) ID() string { return c.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) factory.
//
//	c.Bind("response", func(c *container.Container) (any, error) {
//	    return gohttp.NewResponseManager(), nil
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton(container.KeyConfig, func(c *container.Container) (any, error) {
//	    return config.NewStore(), nil
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.failures, key)
	c.instances[key] = instance
}

// bind is the internal registration helper (must hold mu.Lock).
func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	key := c.canonical(abstract)

	// Drop any cached instance or failure so the new factory is used.
	delete(c.instances, key)
	delete(c.failures, key)

	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container. Failures are returned as
// *ResolutionError and remembered: later calls return the same error until
// Retry is called for the key.
func (c *Container) Make(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	if failure, ok := c.failures[key]; ok {
		c.mu.RUnlock()
		return nil, failure
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, &ResolutionError{Key: abstract, Err: errors.New("no binding registered")}
	}
	return c.runFactory(key, b)
}

// Retry clears a memoised failure for abstract and attempts construction again.
func (c *Container) Retry(abstract string) (any, error) {
	c.mu.Lock()
	delete(c.failures, c.canonical(abstract))
	c.mu.Unlock()
	return c.Make(abstract)
}

// runFactory executes a factory, caching the result or the failure.
func (c *Container) runFactory(key string, b *binding) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance, err = nil, fmt.Errorf("factory panicked: %v", r)
			err = c.fail(key, err)
		}
	}()

	instance, err = b.factory(c)
	if err != nil {
		return nil, c.fail(key, err)
	}
	if instance == nil {
		return nil, c.fail(key, errors.New("factory returned nil"))
	}

	if b.singleton {
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	}

	c.fireAfterResolving(key, instance)
	return instance, nil
}

func (c *Container) fail(key string, err error) *ResolutionError {
	var re *ResolutionError
	if !errors.As(err, &re) || re.Key != key {
		re = &ResolutionError{Key: key, Err: err}
	}
	c.mu.Lock()
	c.failures[key] = re
	c.mu.Unlock()
	return re
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract has been resolved as a shared instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Forget removes all registrations for an abstract (binding, instance, failure).
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
	delete(c.failures, key)
}

// Keys returns all registered abstract keys, sorted.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical key (must hold mu).
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any factory builds an instance.
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	store, err := container.Resolve[*config.Store](c, container.KeyConfig)
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &ResolutionError{
			Key: abstract,
			Err: fmt.Errorf("resolved to %T, want %T", instance, zero),
		}
	}
	return typed, nil
}
