/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe collection of named handlers. A process serving
// several tables registers one handler per table and routes by name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]*Handler),
	}
}

// Register stores the handler under the given name.
func (r *Registry) Register(name string, h *Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler with name %q already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// Get retrieves the handler registered under the given name.
func (r *Registry) Get(name string) (*Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.handlers[name]
	if !exists {
		return nil, fmt.Errorf("handler with name %q not found", name)
	}
	return h, nil
}

// Remove deletes the handler registered under the given name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; !exists {
		return fmt.Errorf("handler with name %q not found", name)
	}
	delete(r.handlers, name)
	return nil
}

// List returns all registered handler names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
