package ast

import (
	"strings"
	"sync"
)

// Canonical shared nodes. These have identity: every Make call for the same
// qualified name returns the same node, so non-generic type references can
// be compared by pointer.
var (
	ObjectType = newCanonical("java.lang.Object", AccPublic)
	StringType = newCanonical("java.lang.String", AccPublic|AccFinal)

	VoidType    = newPrimitive("void")
	BooleanType = newPrimitive("boolean")
	ByteType    = newPrimitive("byte")
	CharType    = newPrimitive("char")
	ShortType   = newPrimitive("short")
	IntType     = newPrimitive("int")
	LongType    = newPrimitive("long")
	FloatType   = newPrimitive("float")
	DoubleType  = newPrimitive("double")
)

var primitivesByName = map[string]*ClassNode{
	"void": VoidType, "boolean": BooleanType, "byte": ByteType,
	"char": CharType, "short": ShortType, "int": IntType,
	"long": LongType, "float": FloatType, "double": DoubleType,
}

// PrimitiveByDescriptor maps a single-character field descriptor to the
// canonical primitive node, or nil for non-primitive descriptors.
func PrimitiveByDescriptor(c byte) *ClassNode {
	switch c {
	case 'V':
		return VoidType
	case 'Z':
		return BooleanType
	case 'B':
		return ByteType
	case 'C':
		return CharType
	case 'S':
		return ShortType
	case 'I':
		return IntType
	case 'J':
		return LongType
	case 'F':
		return FloatType
	case 'D':
		return DoubleType
	}
	return nil
}

// PrimitiveByName returns the canonical primitive node for a source-level
// primitive name, or nil.
func PrimitiveByName(name string) *ClassNode { return primitivesByName[name] }

var (
	cacheMu   sync.Mutex
	typeCache = map[string]*ClassNode{}
)

func init() {
	typeCache[ObjectType.name] = ObjectType
	typeCache[StringType.name] = StringType
	for name, node := range primitivesByName {
		typeCache[name] = node
	}
}

func newCanonical(name string, modifiers int) *ClassNode {
	n := NewClassNode(name, modifiers)
	n.resolved = true
	return n
}

func newPrimitive(name string) *ClassNode {
	n := newCanonical(name, AccPublic|AccFinal)
	n.primitive = true
	return n
}

// Make returns the shared canonical node for the qualified name, creating it
// on first use. Callers that attach generic arguments must take a
// PlainNodeReference first; the cached node itself is shared.
func Make(name string) *ClassNode {
	if strings.HasSuffix(name, "[]") {
		return Make(name[:len(name)-2]).MakeArray()
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if n, ok := typeCache[name]; ok {
		return n
	}
	n := newCanonical(name, AccPublic)
	typeCache[name] = n
	return n
}

// MakeWithoutCaching returns a fresh node for every call. Reference sites
// that need private redirect or generics state use these.
func MakeWithoutCaching(name string) *ClassNode {
	if strings.HasSuffix(name, "[]") {
		return MakeWithoutCaching(name[:len(name)-2]).MakeArray()
	}
	if p := primitivesByName[name]; p != nil {
		return p
	}
	return NewClassNode(name, AccPublic)
}

// IsObjectType reports whether the node resolves to the universal top type.
func IsObjectType(n *ClassNode) bool {
	return n != nil && n.Redirect().Name() == ObjectType.Name()
}

// IsPrimitiveVoid reports whether the node is the canonical void type.
func IsPrimitiveVoid(n *ClassNode) bool {
	return n != nil && n.Redirect() == VoidType
}
