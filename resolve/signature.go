package resolve

import (
	"fmt"
	"strings"

	"github.com/miru-lang/miru/ast"
)

// maxImplicitBoundDepth bounds recursion while inheriting implicit wildcard
// bounds from declared type parameters. Self-referential parameters such as
// `T extends Comparable<T>` can otherwise expand without end; on hitting
// the limit the wildcard is left unbounded.
const maxImplicitBoundDepth = 64

// ClassSignature is the parsed form of a generic class signature.
type ClassSignature struct {
	TypeParameters []*ast.GenericsType
	SuperClass     *ast.ClassNode
	Interfaces     []*ast.ClassNode
}

// MethodSignature is the parsed form of a generic method signature.
type MethodSignature struct {
	TypeParameters []*ast.GenericsType
	Parameters     []*ast.ClassNode
	ReturnType     *ast.ClassNode
	Exceptions     []*ast.ClassNode
}

// ParseTypeSignature parses a single type signature such as
// "Ljava/util/List<+Ljava/lang/Number;>;" into a type node.
func (r *Resolver) ParseTypeSignature(sig string) (*ast.ClassNode, error) {
	p := &signatureParser{r: r, sig: sig}
	node, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(sig) {
		return nil, fmt.Errorf("malformed type signature %q: trailing input at offset %d", sig, p.pos)
	}
	return node, nil
}

// ParseClassSignature parses formal type parameters, the generic superclass
// and generic interfaces of a class signature.
func (r *Resolver) ParseClassSignature(sig string) (*ClassSignature, error) {
	p := &signatureParser{r: r, sig: sig}
	formals, err := p.parseFormalTypeParameters()
	if err != nil {
		return nil, err
	}
	super, err := p.parseType()
	if err != nil {
		return nil, err
	}
	cs := &ClassSignature{TypeParameters: formals, SuperClass: super}
	for p.pos < len(sig) {
		iface, err := p.parseType()
		if err != nil {
			return nil, err
		}
		cs.Interfaces = append(cs.Interfaces, iface)
	}
	return cs, nil
}

// ParseMethodSignature parses formal type parameters, parameter types,
// return type and throws types of a method signature.
func (r *Resolver) ParseMethodSignature(sig string) (*MethodSignature, error) {
	p := &signatureParser{r: r, sig: sig}
	formals, err := p.parseFormalTypeParameters()
	if err != nil {
		return nil, err
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	ms := &MethodSignature{TypeParameters: formals}
	for p.pos < len(sig) && sig[p.pos] != ')' {
		param, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ms.Parameters = append(ms.Parameters, param)
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	ms.ReturnType = ret
	for p.pos < len(sig) && sig[p.pos] == '^' {
		p.pos++
		ex, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ms.Exceptions = append(ms.Exceptions, ex)
	}
	if p.pos != len(sig) {
		return nil, fmt.Errorf("malformed method signature %q: trailing input at offset %d", sig, p.pos)
	}
	return ms, nil
}

// signatureParser is a recursive-descent parser over the host's generic
// signature grammar. Nested type arguments are parsed by recursive calls,
// mirroring the per-argument sub-parser of the grammar.
type signatureParser struct {
	r   *Resolver
	sig string
	pos int
}

func (p *signatureParser) expect(c byte) error {
	if p.pos >= len(p.sig) || p.sig[p.pos] != c {
		return fmt.Errorf("malformed signature %q: expected %q at offset %d", p.sig, string(c), p.pos)
	}
	p.pos++
	return nil
}

// parseType parses one type signature at the current position.
func (p *signatureParser) parseType() (*ast.ClassNode, error) {
	if p.pos >= len(p.sig) {
		return nil, fmt.Errorf("malformed signature %q: unexpected end of input", p.sig)
	}
	c := p.sig[p.pos]
	if prim := ast.PrimitiveByDescriptor(c); prim != nil {
		p.pos++
		return prim, nil
	}
	switch c {
	case '[':
		p.pos++
		component, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return component.MakeArray(), nil
	case 'T':
		p.pos++
		semi := strings.IndexByte(p.sig[p.pos:], ';')
		if semi < 0 {
			return nil, fmt.Errorf("malformed signature %q: unterminated type variable", p.sig)
		}
		name := p.sig[p.pos : p.pos+semi]
		p.pos += semi + 1
		return ConfigureTypeVariableReference(name), nil
	case 'L':
		return p.parseClassType()
	default:
		return nil, fmt.Errorf("malformed signature %q: unexpected %q at offset %d", p.sig, string(c), p.pos)
	}
}

// parseClassType parses "L...;" with optional type arguments and
// inner-class segments. Inner segments append to the base name with the
// nesting separator and clear any type arguments accumulated for the outer
// level, because only the innermost argument list parameterizes the result.
func (p *signatureParser) parseClassType() (*ast.ClassNode, error) {
	if err := p.expect('L'); err != nil {
		return nil, err
	}
	var baseName strings.Builder
	var arguments []*ast.GenericsType
	for {
		start := p.pos
		for p.pos < len(p.sig) {
			c := p.sig[p.pos]
			if c == '<' || c == ';' || c == '.' {
				break
			}
			p.pos++
		}
		if p.pos >= len(p.sig) {
			return nil, fmt.Errorf("malformed signature %q: unterminated class type", p.sig)
		}
		baseName.WriteString(fromInternalName(p.sig[start:p.pos]))

		if p.sig[p.pos] == '<' {
			p.pos++
			args, err := p.parseTypeArguments()
			if err != nil {
				return nil, err
			}
			arguments = args
			if err := p.expect('>'); err != nil {
				return nil, err
			}
		}

		switch p.sig[p.pos] {
		case '.':
			p.pos++
			baseName.WriteByte('$')
			arguments = nil
		case ';':
			p.pos++
			return p.finishClassType(baseName.String(), arguments)
		default:
			return nil, fmt.Errorf("malformed signature %q: unexpected %q at offset %d", p.sig, string(p.sig[p.pos]), p.pos)
		}
	}
}

func (p *signatureParser) parseTypeArguments() ([]*ast.GenericsType, error) {
	var args []*ast.GenericsType
	for p.pos < len(p.sig) && p.sig[p.pos] != '>' {
		switch p.sig[p.pos] {
		case '*':
			p.pos++
			args = append(args, createWildcard(nil, nil))
		case '+':
			p.pos++
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, createWildcard([]*ast.ClassNode{bound}, nil))
		case '-':
			p.pos++
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, createWildcard(nil, bound))
		default:
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, ast.NewGenericsType(typ))
		}
	}
	return args, nil
}

// finishClassType resolves the accumulated base name and attaches type
// arguments. Without arguments an unparameterized base resolves to the raw
// type directly; otherwise a plain reference is parameterized, inheriting
// implicit upper bounds for wildcards that supplied none.
func (p *signatureParser) finishClassType(baseName string, arguments []*ast.GenericsType) (*ast.ClassNode, error) {
	baseType, err := p.r.ResolveClass(baseName)
	if err != nil {
		return nil, err
	}
	if len(arguments) == 0 && baseType.GenericsTypes() == nil {
		return baseType, nil
	}
	parameterized := baseType.PlainNodeReference()
	if len(arguments) > 0 {
		p.r.inheritImplicitBounds(baseType, arguments)
		parameterized.SetGenericsTypes(arguments)
	}
	return parameterized, nil
}

// inheritImplicitBounds copies declared upper bounds onto wildcard
// arguments that have none of their own, skipping the vacuous Object bound.
// Recursion through self-referential type parameters is cut off by the
// depth guard, leaving the wildcard unbounded instead of faulting.
func (r *Resolver) inheritImplicitBounds(baseType *ast.ClassNode, arguments []*ast.GenericsType) {
	if r.boundDepth >= maxImplicitBoundDepth {
		return
	}
	r.boundDepth++
	defer func() { r.boundDepth-- }()

	declared := baseType.GenericsTypes()
	for i, argument := range arguments {
		if !argument.IsWildcard() || argument.UpperBounds() != nil {
			continue
		}
		if i >= len(declared) {
			continue
		}
		implicit := declared[i].UpperBounds()
		if len(implicit) > 0 && !ast.IsObjectType(implicit[0]) {
			argument.Type().SetRedirect(implicit[0])
		}
	}
}

// parseFormalTypeParameters parses "<T:bound:...>" declarations, returning
// nil when the signature declares none.
func (p *signatureParser) parseFormalTypeParameters() ([]*ast.GenericsType, error) {
	if p.pos >= len(p.sig) || p.sig[p.pos] != '<' {
		return nil, nil
	}
	p.pos++
	var formals []*ast.GenericsType
	for p.pos < len(p.sig) && p.sig[p.pos] != '>' {
		colon := strings.IndexByte(p.sig[p.pos:], ':')
		if colon < 0 {
			return nil, fmt.Errorf("malformed signature %q: formal parameter without bound at offset %d", p.sig, p.pos)
		}
		name := p.sig[p.pos : p.pos+colon]
		p.pos += colon + 1

		var bounds []*ast.ClassNode
		// class bound may be empty (interface-only bounds)
		if p.pos < len(p.sig) && p.sig[p.pos] != ':' {
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bound)
		}
		for p.pos < len(p.sig) && p.sig[p.pos] == ':' {
			p.pos++
			bound, err := p.parseType()
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, bound)
		}
		formals = append(formals, ConfigureTypeVariableDefinition(ConfigureTypeVariableReference(name), bounds))
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return formals, nil
}

// ConfigureTypeVariableReference builds the placeholder node standing in
// for a type variable. The placeholder has identity and redirects to the
// top type; its bound is attached after creation, which is what lets
// recursive bounds such as `T extends Comparable<T>` terminate.
func ConfigureTypeVariableReference(name string) *ast.ClassNode {
	cn := ast.MakeWithoutCaching(name)
	cn.SetGenericsPlaceHolder(true)
	cn2 := ast.MakeWithoutCaching(name)
	cn2.SetGenericsPlaceHolder(true)
	cn.SetGenericsTypes([]*ast.GenericsType{ast.NewGenericsType(cn2)})
	cn.SetRedirect(ast.ObjectType)
	return cn
}

// ConfigureTypeVariableDefinition wraps a type-variable placeholder and its
// bounds into the binding used for a declared type parameter.
func ConfigureTypeVariableDefinition(base *ast.ClassNode, bounds []*ast.ClassNode) *ast.GenericsType {
	if len(bounds) == 0 {
		return ast.NewGenericsType(base)
	}
	gt := ast.NewBoundedGenericsType(base, bounds, nil)
	gt.SetName(base.Name())
	gt.SetPlaceholder(true)
	return gt
}

func createWildcard(upper []*ast.ClassNode, lower *ast.ClassNode) *ast.GenericsType {
	base := ast.MakeWithoutCaching("?")
	base.SetRedirect(ast.ObjectType)
	t := ast.NewBoundedGenericsType(base, upper, lower)
	t.SetWildcard(true)
	return t
}
