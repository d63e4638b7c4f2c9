// Package mirror defines the host-facing reflective class descriptions the
// resolver consumes: superclass, interfaces, declared members with their
// descriptors, generic signatures, modifiers and annotations. The exact
// binary origin of a description is the host's concern; this package only
// fixes the shape and ships a JSON-backed catalog as one host
// implementation.
package mirror

import "fmt"

// Host is the capability surface the resolver depends on: a live catalog of
// type descriptions queryable by qualified name.
type Host interface {
	LookupClass(name string) (*ClassDescription, error)
}

// ErrNotFound is returned by hosts for unknown class names. Hosts wrap it
// with the missing name.
var ErrNotFound = fmt.Errorf("class not found")

// ClassDescription describes one class as the host sees it.
type ClassDescription struct {
	Name       string   `json:"name"`
	Modifiers  int      `json:"modifiers,omitempty"`
	SuperName  string   `json:"superName,omitempty"`
	Interfaces []string `json:"interfaces,omitempty"`

	// Signature is the generic class signature (formal type parameters,
	// generic superclass and interfaces), empty for non-generic classes.
	Signature string `json:"signature,omitempty"`

	Fields       []FieldDescription  `json:"fields,omitempty"`
	Methods      []MethodDescription `json:"methods,omitempty"`
	Constructors []MethodDescription `json:"constructors,omitempty"`

	// Properties names the fields that form the public property view. When
	// empty, public instance fields are treated as properties.
	Properties []string `json:"properties,omitempty"`

	Annotations []AnnotationDescription `json:"annotations,omitempty"`
}

func (c *ClassDescription) IsEnum() bool      { return c.Modifiers&accEnum != 0 }
func (c *ClassDescription) IsInterface() bool { return c.Modifiers&accInterface != 0 }

// IsInner reports whether the class name designates a nested class.
func (c *ClassDescription) IsInner() bool {
	for i := 0; i < len(c.Name); i++ {
		if c.Name[i] == '$' {
			return true
		}
	}
	return false
}

const (
	accInterface = 0x0200
	accEnum      = 0x4000
)

// FieldDescription describes one declared field.
type FieldDescription struct {
	Name       string `json:"name"`
	Modifiers  int    `json:"modifiers,omitempty"`
	Descriptor string `json:"descriptor"`
	// Signature is the generic type signature, empty when the descriptor is
	// the whole story.
	Signature   string                  `json:"signature,omitempty"`
	Annotations []AnnotationDescription `json:"annotations,omitempty"`
}

// MethodDescription describes one declared method or constructor.
type MethodDescription struct {
	Name       string   `json:"name"`
	Modifiers  int      `json:"modifiers,omitempty"`
	Descriptor string   `json:"descriptor"`
	Signature  string   `json:"signature,omitempty"`
	Exceptions []string `json:"exceptions,omitempty"`

	ParameterNames []string `json:"parameterNames,omitempty"`

	Annotations []AnnotationDescription `json:"annotations,omitempty"`
	// ParameterAnnotations may be shorter than the parameter list when the
	// host omits entries for synthetic parameters; the resolver left-pads
	// it per the host's synthetic-parameter conventions.
	ParameterAnnotations [][]AnnotationDescription `json:"parameterAnnotations,omitempty"`

	// DefaultValue carries an annotation member's default, if any.
	DefaultValue any `json:"defaultValue,omitempty"`
}

// AnnotationDescription is an annotation occurrence with its member values.
// Values hold JSON-shaped data: strings, numbers, bools, nested
// descriptions and lists thereof.
type AnnotationDescription struct {
	Type   string         `json:"type"`
	Values map[string]any `json:"values,omitempty"`
}

// SyntheticParams captures a host platform's synthetic constructor
// parameter conventions: how many leading parameters may be unaccounted for
// in parameter annotation arrays.
type SyntheticParams struct {
	// OuterRef is the allowance for inner-class outer references.
	OuterRef int
	// EnumExtra is the allowance for enum name/ordinal parameters.
	EnumExtra int
}

// DefaultSyntheticParams matches the JVM convention: one synthetic outer
// reference for inner classes, name plus ordinal for enums.
var DefaultSyntheticParams = SyntheticParams{OuterRef: 1, EnumExtra: 2}
