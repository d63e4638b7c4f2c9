// Package resolve bridges host reflective class descriptions to the ast
// type model: it resolves classes by name, parses generic signatures and
// reconstructs parameterized types, type variables and wildcards.
package resolve

import "fmt"

// LoadError reports a missing dependent class during resolution. It names
// the class that could not be loaded; resolution of the enclosing
// declaration is aborted.
type LoadError struct {
	Class string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to load class %s: %v", e.Class, e.Err)
	}
	return fmt.Sprintf("unable to load class %s", e.Class)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConfigError reports a malformed description or signature while
// configuring a class node, wrapping the underlying cause.
type ConfigError struct {
	Class string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unable to configure class node for %s: %v", e.Class, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InternalError reports an internal-consistency violation, such as a
// parameter annotation count that no known synthetic-parameter pattern
// explains.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal consistency error: " + e.Msg
}
