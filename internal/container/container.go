// Package container is a small registry that maps an interface type to a
// constructor. The GraphQL resolvers resolve their collaborators from it on
// every call; everything it builds can also be composed by hand.
package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotRegistered is returned by Resolve when no provider exists for a type.
var ErrNotRegistered = errors.New("no provider registered")

// Container holds providers keyed by the type they produce.
type Container struct {
	mu        sync.RWMutex
	providers map[reflect.Type]*provider
}

type provider struct {
	build     func(*Container) (any, error)
	singleton bool

	once     sync.Once
	instance any
	err      error
}

// New returns an empty container.
func New() *Container {
	return &Container{providers: make(map[reflect.Type]*provider)}
}

// Provide registers fn as the constructor for T. fn runs on every Resolve.
// A later registration for the same T replaces the earlier one.
func Provide[T any](c *Container, fn func(*Container) (T, error)) {
	c.register(reflect.TypeFor[T](), &provider{
		build: func(c *Container) (any, error) { return fn(c) },
	})
}

// ProvideSingleton registers fn as the constructor for T and caches the first
// result, error included.
func ProvideSingleton[T any](c *Container, fn func(*Container) (T, error)) {
	c.register(reflect.TypeFor[T](), &provider{
		build:     func(c *Container) (any, error) { return fn(c) },
		singleton: true,
	})
}

// ProvideValue registers an already built instance for T.
func ProvideValue[T any](c *Container, v T) {
	p := &provider{singleton: true, instance: v}
	p.once.Do(func() {})
	c.register(reflect.TypeFor[T](), p)
}

// Resolve builds or returns the instance registered for T.
// Provider cycles are not detected.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	key := reflect.TypeFor[T]()

	c.mu.RLock()
	p, ok := c.providers[key]
	c.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("resolve %s: %w", key, ErrNotRegistered)
	}

	instance, err := p.get(c)
	if err != nil {
		return zero, fmt.Errorf("resolve %s: %w", key, err)
	}

	v, ok := instance.(T)
	if !ok {
		// Only reachable when a nil interface value was registered.
		return zero, fmt.Errorf("resolve %s: provider returned %T", key, instance)
	}
	return v, nil
}

// MustResolve is Resolve for wiring code where a missing provider is a
// programming error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether a provider is registered for T.
func Has[T any](c *Container) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.providers[reflect.TypeFor[T]()]
	return ok
}

func (c *Container) register(key reflect.Type, p *provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[key] = p
}

func (p *provider) get(c *Container) (any, error) {
	if !p.singleton {
		return p.build(c)
	}
	p.once.Do(func() {
		p.instance, p.err = p.build(c)
	})
	return p.instance, p.err
}
