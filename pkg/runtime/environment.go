package runtime

import (
	"fmt"
	"sort"
)

// Environment provides lexical scoping for Lox runtime values. A child only
// navigates to its parent; closures keep their defining environment alive.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return undefined(name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, undefined(name)
}

// Ancestor walks distance parents up the chain.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the scope exactly distance hops away, as computed by
// the resolver.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	if env := e.Ancestor(distance); env != nil {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, undefined(name)
}

// AssignAt writes name in the scope exactly distance hops away.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	env := e.Ancestor(distance)
	if env == nil {
		return undefined(name)
	}
	if _, ok := env.values[name]; !ok {
		return undefined(name)
	}
	env.values[name] = value
	return nil
}

// Keys returns the names bound directly in this environment, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func undefined(name string) error {
	return fmt.Errorf("Undefined variable '%s'.", name)
}
