package simulator

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// BackendFactory creates a fresh Backend sized for numQubits. The executor
// calls it once per shot so implementations never share state across runs.
type BackendFactory func(numQubits int) Backend

// BackendRegistry manages the registration and creation of quantum backends.
type BackendRegistry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

// Global registry instance
var defaultRegistry = NewBackendRegistry()

// NewBackendRegistry creates a new backend registry.
func NewBackendRegistry() *BackendRegistry {
	return &BackendRegistry{
		factories: make(map[string]BackendFactory),
	}
}

// Register registers a backend factory with the given name.
// This function is thread-safe and can be called from init() functions.
func (r *BackendRegistry) Register(name string, factory BackendFactory) error {
	if name == "" {
		return fmt.Errorf("backend name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("backend factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("backend %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics if the registration fails.
// This is typically used in init() functions where registration failures
// should be fatal.
func (r *BackendRegistry) MustRegister(name string, factory BackendFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register backend %q: %v", name, err))
	}
}

// Create creates a new backend instance sized for numQubits using the
// factory registered under the given name.
func (r *BackendRegistry) Create(name string, numQubits int) (Backend, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown backend: %q", name)
	}

	backend := factory(numQubits)
	if backend == nil {
		return nil, fmt.Errorf("backend factory for %q returned nil", name)
	}

	return backend, nil
}

// ListBackends returns every registered backend name, sorted for stable
// CLI/help-text output.
func (r *BackendRegistry) ListBackends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing.
func (r *BackendRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.factories[name]
	if exists {
		delete(r.factories, name)
	}
	return exists
}

// Package-level convenience functions that operate on the default registry

// RegisterBackend registers a backend factory with the default registry.
func RegisterBackend(name string, factory BackendFactory) error {
	return defaultRegistry.Register(name, factory)
}

// MustRegisterBackend is like RegisterBackend but panics on failure.
func MustRegisterBackend(name string, factory BackendFactory) {
	defaultRegistry.MustRegister(name, factory)
}

// CreateBackend creates a backend using the default registry.
func CreateBackend(name string, numQubits int) (Backend, error) {
	return defaultRegistry.Create(name, numQubits)
}

// ListBackends returns all registered backend names from the default registry.
func ListBackends() []string {
	return defaultRegistry.ListBackends()
}

// GetDefaultRegistry returns the default backend registry.
// This is useful for advanced use cases or testing.
func GetDefaultRegistry() *BackendRegistry {
	return defaultRegistry
}
