package ast

import "strings"

// ClassNode represents a class, interface, array or primitive type in the
// type model. A node is either canonical (one shared instance per qualified
// name, from the helper cache) or a fresh per-reference-site node created
// with MakeWithoutCaching.
//
// A node with a redirect is transparent: equality, member lookup and erasure
// all resolve through the redirect chain. Redirect chains are kept acyclic
// by SetRedirect.
type ClassNode struct {
	BaseNode

	name      string
	modifiers int

	redirect      *ClassNode
	componentType *ClassNode
	genericsTypes []*GenericsType

	placeholder bool // generics placeholder (type variable reference)
	primitive   bool
	resolved    bool

	superClass *ClassNode
	interfaces []*ClassNode

	fields       []*FieldNode
	properties   []*PropertyNode
	methods      []*MethodNode
	constructors []*ConstructorNode
	annotations  []*AnnotationNode
}

// NewClassNode creates a plain class node with the given name and modifiers.
func NewClassNode(name string, modifiers int) *ClassNode {
	return &ClassNode{name: name, modifiers: modifiers}
}

// Name returns the qualified name of the type this node was created with.
// For arrays the name is the component name followed by "[]".
func (c *ClassNode) Name() string { return c.name }

// NameWithoutPackage returns the simple name, keeping inner-class segments.
func (c *ClassNode) NameWithoutPackage() string {
	name := c.name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// PackageName returns the package portion of the qualified name, or "".
func (c *ClassNode) PackageName() string {
	if i := strings.LastIndexByte(c.name, '.'); i >= 0 {
		return c.name[:i]
	}
	return ""
}

func (c *ClassNode) Modifiers() int           { return c.modifiers }
func (c *ClassNode) SetModifiers(m int)       { c.modifiers = m }
func (c *ClassNode) IsInterface() bool        { return c.Redirect().modifiers&AccInterface != 0 }
func (c *ClassNode) IsEnum() bool             { return c.Redirect().modifiers&AccEnum != 0 }
func (c *ClassNode) IsAbstract() bool         { return c.Redirect().modifiers&AccAbstract != 0 }
func (c *ClassNode) IsPrimitive() bool        { return c.Redirect().primitive }
func (c *ClassNode) IsArray() bool            { return c.componentType != nil }
func (c *ClassNode) ComponentType() *ClassNode { return c.componentType }

// IsGenericsPlaceHolder reports whether this node stands in for a type
// variable rather than a real class.
func (c *ClassNode) IsGenericsPlaceHolder() bool { return c.placeholder }

func (c *ClassNode) SetGenericsPlaceHolder(b bool) { c.placeholder = b }

// IsResolved reports whether member information has been attached.
func (c *ClassNode) IsResolved() bool  { return c.Redirect().resolved }
func (c *ClassNode) SetResolved(b bool) { c.resolved = b }

// Redirect follows the redirect chain to its end. A cycle in the chain
// terminates at the node where the cycle closes rather than looping.
func (c *ClassNode) Redirect() *ClassNode {
	if c.redirect == nil {
		return c
	}
	seen := map[*ClassNode]bool{c: true}
	node := c.redirect
	for node.redirect != nil && !seen[node] {
		seen[node] = true
		node = node.redirect
	}
	return node
}

// SetRedirect makes this node transparently delegate to target. Setting a
// redirect that would close a cycle is ignored, keeping chains acyclic.
func (c *ClassNode) SetRedirect(target *ClassNode) {
	if target == nil {
		c.redirect = nil
		return
	}
	for node := target; node != nil; node = node.redirect {
		if node == c {
			return
		}
	}
	c.redirect = target
}

// HasRedirect reports whether this node delegates to another node.
func (c *ClassNode) HasRedirect() bool { return c.redirect != nil }

// Equals is redirect-transparent: two nodes are equal when their redirect
// targets agree on identity or qualified name.
func (c *ClassNode) Equals(other *ClassNode) bool {
	if other == nil {
		return false
	}
	a, b := c.Redirect(), other.Redirect()
	if a == b {
		return true
	}
	return a.name == b.name
}

// GenericsTypes returns the generic arguments or parameters attached to this
// reference. They live on the reference node itself, not on the redirect
// target, so distinct reference sites can carry distinct instantiations.
func (c *ClassNode) GenericsTypes() []*GenericsType { return c.genericsTypes }

func (c *ClassNode) SetGenericsTypes(gts []*GenericsType) { c.genericsTypes = gts }

// UsesGenerics reports whether this reference or its erasure declares
// generic parameters.
func (c *ClassNode) UsesGenerics() bool {
	if c.genericsTypes != nil {
		return true
	}
	if r := c.Redirect(); r != c {
		return r.genericsTypes != nil
	}
	return false
}

// MakeArray wraps this node as its array type.
func (c *ClassNode) MakeArray() *ClassNode {
	arr := &ClassNode{name: c.name + "[]", componentType: c}
	if c.redirect != nil {
		arr.SetRedirect(c.Redirect().MakeArray())
	}
	return arr
}

// PlainNodeReference produces a fresh reference node redirecting to this
// node's erasure, with no generic arguments of its own. Parameterized
// references are built by attaching arguments to a plain reference.
func (c *ClassNode) PlainNodeReference() *ClassNode {
	n := &ClassNode{name: c.name, modifiers: c.modifiers, primitive: c.primitive}
	n.SetRedirect(c.Redirect())
	return n
}

// SuperClass returns the superclass reference, following the redirect.
func (c *ClassNode) SuperClass() *ClassNode        { return c.Redirect().superClass }
func (c *ClassNode) SetSuperClass(sc *ClassNode)   { c.Redirect().superClass = sc }
func (c *ClassNode) Interfaces() []*ClassNode      { return c.Redirect().interfaces }
func (c *ClassNode) SetInterfaces(is []*ClassNode) { c.Redirect().interfaces = is }

// Fields returns the declared fields, following the redirect.
func (c *ClassNode) Fields() []*FieldNode { return c.Redirect().fields }

// AddField appends a declared field and claims ownership of it.
func (c *ClassNode) AddField(f *FieldNode) {
	r := c.Redirect()
	f.declaringClass = r
	r.fields = append(r.fields, f)
}

// NewFieldFor creates, attaches and returns a field on this class.
func (c *ClassNode) NewFieldFor(name string, modifiers int, typ *ClassNode, initial Expression) *FieldNode {
	f := NewFieldNode(name, modifiers, typ, initial)
	c.AddField(f)
	return f
}

// DeclaredField returns the field with the given name, or nil.
func (c *ClassNode) DeclaredField(name string) *FieldNode {
	for _, f := range c.Redirect().fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Properties returns the declared properties, following the redirect.
func (c *ClassNode) Properties() []*PropertyNode { return c.Redirect().properties }

// AddProperty appends a property backed by the given field.
func (c *ClassNode) AddProperty(p *PropertyNode) {
	r := c.Redirect()
	if p.field != nil && p.field.declaringClass == nil {
		p.field.declaringClass = r
	}
	r.properties = append(r.properties, p)
}

// HasProperty reports whether a property with the given name is declared.
func (c *ClassNode) HasProperty(name string) bool {
	for _, p := range c.Redirect().properties {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// Methods returns the declared methods, following the redirect.
func (c *ClassNode) Methods() []*MethodNode { return c.Redirect().methods }

// AddMethod appends a declared method and sets its declaring class.
func (c *ClassNode) AddMethod(m *MethodNode) {
	r := c.Redirect()
	m.declaringClass = r
	r.methods = append(r.methods, m)
}

// DeclaredMethod returns the declared method with the given name and
// parameter count, or nil.
func (c *ClassNode) DeclaredMethod(name string, paramCount int) *MethodNode {
	for _, m := range c.Redirect().methods {
		if m.Name() == name && len(m.Parameters()) == paramCount {
			return m
		}
	}
	return nil
}

// DeclaredMethods returns all declared methods with the given name.
func (c *ClassNode) DeclaredMethods(name string) []*MethodNode {
	var out []*MethodNode
	for _, m := range c.Redirect().methods {
		if m.Name() == name {
			out = append(out, m)
		}
	}
	return out
}

// Constructors returns the declared constructors, following the redirect.
func (c *ClassNode) Constructors() []*ConstructorNode { return c.Redirect().constructors }

// AddConstructor appends a declared constructor.
func (c *ClassNode) AddConstructor(cn *ConstructorNode) {
	r := c.Redirect()
	cn.declaringClass = r
	r.constructors = append(r.constructors, cn)
}

// Annotations returns the annotations attached to this class.
func (c *ClassNode) Annotations() []*AnnotationNode { return c.Redirect().annotations }

// AddAnnotation attaches an annotation node.
func (c *ClassNode) AddAnnotation(a *AnnotationNode) {
	r := c.Redirect()
	r.annotations = append(r.annotations, a)
}

// IsDerivedFrom reports whether this type equals other or has other in its
// superclass chain or interface set. The walk is guarded against cyclic
// type graphs.
func (c *ClassNode) IsDerivedFrom(other *ClassNode) bool {
	seen := make(map[*ClassNode]bool)
	var walk func(n *ClassNode) bool
	walk = func(n *ClassNode) bool {
		if n == nil {
			return false
		}
		n = n.Redirect()
		if seen[n] {
			return false
		}
		seen[n] = true
		if n.Equals(other) {
			return true
		}
		for _, iface := range n.interfaces {
			if walk(iface) {
				return true
			}
		}
		return walk(n.superClass)
	}
	return walk(c)
}

// String renders the type for diagnostics, including generic arguments.
func (c *ClassNode) String() string {
	var sb strings.Builder
	sb.WriteString(c.name)
	if len(c.genericsTypes) > 0 {
		sb.WriteByte('<')
		for i, gt := range c.genericsTypes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(gt.String())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}
