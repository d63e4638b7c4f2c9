package ast

import "strings"

// GenericsType is one generic type argument or type-variable binding. A
// wildcard binding carries only its bounds; a type-variable binding has a
// name and redirects through a placeholder node.
type GenericsType struct {
	BaseNode

	name        string
	typ         *ClassNode
	upperBounds []*ClassNode
	lowerBound  *ClassNode
	placeholder bool
	wildcard    bool
	resolved    bool
}

// NewGenericsType wraps a concrete type as an exact (non-wildcard) binding.
func NewGenericsType(typ *ClassNode) *GenericsType {
	gt := &GenericsType{typ: typ}
	if typ != nil {
		gt.name = typ.Name()
		gt.placeholder = typ.IsGenericsPlaceHolder()
		gt.resolved = true
	}
	if gt.placeholder {
		gt.name = strings.TrimSuffix(gt.name, "[]")
	}
	return gt
}

// NewBoundedGenericsType creates a binding with explicit bounds, as used for
// wildcards and type-variable definitions.
func NewBoundedGenericsType(typ *ClassNode, upperBounds []*ClassNode, lowerBound *ClassNode) *GenericsType {
	gt := NewGenericsType(typ)
	gt.upperBounds = upperBounds
	gt.lowerBound = lowerBound
	return gt
}

func (g *GenericsType) Name() string        { return g.name }
func (g *GenericsType) SetName(name string) { g.name = name }

func (g *GenericsType) Type() *ClassNode       { return g.typ }
func (g *GenericsType) SetType(typ *ClassNode) { g.typ = typ; g.resolved = typ != nil }

func (g *GenericsType) UpperBounds() []*ClassNode     { return g.upperBounds }
func (g *GenericsType) SetUpperBounds(ub []*ClassNode) { g.upperBounds = ub }
func (g *GenericsType) LowerBound() *ClassNode        { return g.lowerBound }
func (g *GenericsType) SetLowerBound(lb *ClassNode)   { g.lowerBound = lb }

func (g *GenericsType) IsWildcard() bool     { return g.wildcard }
func (g *GenericsType) SetWildcard(b bool)   { g.wildcard = b }
func (g *GenericsType) IsPlaceholder() bool  { return g.placeholder }
func (g *GenericsType) SetPlaceholder(b bool) {
	g.placeholder = b
	if g.typ != nil {
		g.typ.SetGenericsPlaceHolder(b)
	}
}

func (g *GenericsType) IsResolved() bool { return g.resolved }

// String renders the binding the way it would appear in a declaration.
func (g *GenericsType) String() string {
	var sb strings.Builder
	switch {
	case g.wildcard:
		sb.WriteByte('?')
		if len(g.upperBounds) > 0 {
			sb.WriteString(" extends ")
			for i, ub := range g.upperBounds {
				if i > 0 {
					sb.WriteString(" & ")
				}
				sb.WriteString(ub.String())
			}
		} else if g.lowerBound != nil {
			sb.WriteString(" super ")
			sb.WriteString(g.lowerBound.String())
		}
	case g.placeholder:
		sb.WriteString(g.name)
		if len(g.upperBounds) > 0 {
			sb.WriteString(" extends ")
			for i, ub := range g.upperBounds {
				if i > 0 {
					sb.WriteString(" & ")
				}
				sb.WriteString(ub.String())
			}
		}
	default:
		if g.typ != nil {
			sb.WriteString(g.typ.String())
		} else {
			sb.WriteString(g.name)
		}
	}
	return sb.String()
}
