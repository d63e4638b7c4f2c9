package resolve

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/miru-lang/miru/ast"
	"github.com/miru-lang/miru/mirror"
)

// Resolver turns host class descriptions into ast.ClassNode graphs. It is
// scoped to one compilation unit: resolved classes are cached per resolver,
// and resolution runs on a single control thread.
type Resolver struct {
	host      mirror.Host
	synthetic mirror.SyntheticParams
	cache     map[string]*ast.ClassNode
	log       commonlog.Logger

	// boundDepth guards implicit wildcard-bound inheritance against
	// self-referential type parameters.
	boundDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSyntheticParams overrides the host's synthetic constructor parameter
// conventions used when padding parameter annotation arrays.
func WithSyntheticParams(sp mirror.SyntheticParams) Option {
	return func(r *Resolver) { r.synthetic = sp }
}

func NewResolver(host mirror.Host, opts ...Option) *Resolver {
	r := &Resolver{
		host:      host,
		synthetic: mirror.DefaultSyntheticParams,
		cache:     make(map[string]*ast.ClassNode),
		log:       commonlog.GetLogger("miru.resolve"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveClass resolves a qualified class name to its type node. The node
// is cached before its members are configured so that self-referential
// descriptions terminate.
func (r *Resolver) ResolveClass(name string) (*ast.ClassNode, error) {
	if strings.HasSuffix(name, "[]") {
		component, err := r.ResolveClass(name[:len(name)-2])
		if err != nil {
			return nil, err
		}
		return component.MakeArray(), nil
	}
	if p := ast.PrimitiveByName(name); p != nil {
		return p, nil
	}
	if node, ok := r.cache[name]; ok {
		return node, nil
	}

	desc, err := r.host.LookupClass(name)
	if err != nil {
		r.log.Errorf("load failure for %s: %v", name, err)
		return nil, &LoadError{Class: name, Err: err}
	}

	node := ast.NewClassNode(name, desc.Modifiers)
	r.cache[name] = node
	if err := r.configureClass(node, desc); err != nil {
		delete(r.cache, name)
		if _, ok := err.(*LoadError); ok {
			return nil, err
		}
		return nil, &ConfigError{Class: name, Err: err}
	}
	node.SetResolved(true)
	return node, nil
}

// ResolveType resolves a field descriptor or source-level type name,
// including array forms, to a type node.
func (r *Resolver) ResolveType(descriptor string) (*ast.ClassNode, error) {
	if descriptor == "" {
		return nil, fmt.Errorf("empty type descriptor")
	}
	depth := 0
	for depth < len(descriptor) && descriptor[depth] == '[' {
		depth++
	}
	rest := descriptor[depth:]

	var node *ast.ClassNode
	var err error
	switch {
	case len(rest) == 1 && ast.PrimitiveByDescriptor(rest[0]) != nil:
		node = ast.PrimitiveByDescriptor(rest[0])
	case len(rest) > 2 && rest[0] == 'L' && rest[len(rest)-1] == ';':
		node, err = r.ResolveClass(fromInternalName(rest[1 : len(rest)-1]))
	default:
		node, err = r.ResolveClass(rest)
	}
	if err != nil {
		return nil, err
	}
	for i := 0; i < depth; i++ {
		node = node.MakeArray()
	}
	return node, nil
}

func fromInternalName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func (r *Resolver) configureClass(node *ast.ClassNode, desc *mirror.ClassDescription) error {
	if desc.Signature != "" {
		cs, err := r.ParseClassSignature(desc.Signature)
		if err != nil {
			return err
		}
		node.SetGenericsTypes(cs.TypeParameters)
		if cs.SuperClass != nil {
			node.SetSuperClass(cs.SuperClass)
		}
		node.SetInterfaces(cs.Interfaces)
	} else {
		if desc.SuperName != "" && desc.Name != ast.ObjectType.Name() {
			super, err := r.ResolveClass(desc.SuperName)
			if err != nil {
				return err
			}
			node.SetSuperClass(super.PlainNodeReference())
		}
		if n := len(desc.Interfaces); n > 0 {
			ifaces := make([]*ast.ClassNode, n)
			for i, name := range desc.Interfaces {
				iface, err := r.ResolveClass(name)
				if err != nil {
					return err
				}
				ifaces[i] = iface.PlainNodeReference()
			}
			node.SetInterfaces(ifaces)
		}
	}

	propertyNames := make(map[string]bool, len(desc.Properties))
	for _, name := range desc.Properties {
		propertyNames[name] = true
	}

	for i := range desc.Fields {
		fd := &desc.Fields[i]
		typ, err := r.memberType(fd.Descriptor, fd.Signature)
		if err != nil {
			return fmt.Errorf("field %s: %w", fd.Name, err)
		}
		fn := ast.NewFieldNode(fd.Name, fd.Modifiers, typ, nil)
		if err := r.attachAnnotations(fd.Annotations, fn.AddAnnotation); err != nil {
			return err
		}
		node.AddField(fn)
		isProperty := propertyNames[fd.Name]
		if len(desc.Properties) == 0 {
			isProperty = fd.Modifiers&ast.AccPublic != 0 && fd.Modifiers&ast.AccStatic == 0
		}
		if isProperty {
			node.AddProperty(ast.NewPropertyNode(fn, fd.Modifiers|ast.AccPublic))
		}
	}

	for i := range desc.Methods {
		md := &desc.Methods[i]
		mn, err := r.configureMethod(md)
		if err != nil {
			return fmt.Errorf("method %s: %w", md.Name, err)
		}
		node.AddMethod(mn)
	}

	for i := range desc.Constructors {
		md := &desc.Constructors[i]
		cn, err := r.configureConstructor(desc, md)
		if err != nil {
			return fmt.Errorf("constructor of %s: %w", desc.Name, err)
		}
		node.AddConstructor(cn)
	}

	return r.attachAnnotations(desc.Annotations, node.AddAnnotation)
}

// memberType resolves a member's type: the descriptor supplies the erasure
// and, when present, the generic signature supplies the front type that
// redirects to it.
func (r *Resolver) memberType(descriptor, signature string) (*ast.ClassNode, error) {
	erasure, err := r.ResolveType(descriptor)
	if err != nil {
		return nil, err
	}
	if signature == "" {
		return erasure, nil
	}
	generic, err := r.ParseTypeSignature(signature)
	if err != nil {
		return nil, err
	}
	return applyErasure(generic, erasure), nil
}

// applyErasure redirects a placeholder-bearing generic type to its erasure,
// implementing the lazy erasure substitution of the type model.
func applyErasure(genericType, erasure *ast.ClassNode) *ast.ClassNode {
	if genericType.IsArray() && erasure.IsArray() && genericType.ComponentType().IsGenericsPlaceHolder() {
		genericType.SetRedirect(erasure)
		genericType.ComponentType().SetRedirect(erasure.ComponentType())
	} else if genericType.IsGenericsPlaceHolder() {
		genericType.SetRedirect(erasure)
	}
	return genericType
}

func (r *Resolver) configureMethod(md *mirror.MethodDescription) (*ast.MethodNode, error) {
	returnType, params, err := r.methodTypes(md)
	if err != nil {
		return nil, err
	}
	exceptions, err := r.resolveNames(md.Exceptions)
	if err != nil {
		return nil, err
	}
	mn := ast.NewMethodNode(md.Name, md.Modifiers, returnType, params, exceptions, nil)
	if md.Signature != "" {
		ms, err := r.ParseMethodSignature(md.Signature)
		if err != nil {
			return nil, err
		}
		mn.SetGenericsTypes(ms.TypeParameters)
	}
	if md.DefaultValue != nil {
		mn.SetCode(ast.BlockS(ast.ReturnS(ast.ConstX(md.DefaultValue))))
	}
	if err := r.attachAnnotations(md.Annotations, mn.AddAnnotation); err != nil {
		return nil, err
	}
	if err := r.attachParameterAnnotations(params, md.ParameterAnnotations); err != nil {
		return nil, err
	}
	return mn, nil
}

func (r *Resolver) configureConstructor(desc *mirror.ClassDescription, md *mirror.MethodDescription) (*ast.ConstructorNode, error) {
	_, params, err := r.methodTypes(md)
	if err != nil {
		return nil, err
	}
	exceptions, err := r.resolveNames(md.Exceptions)
	if err != nil {
		return nil, err
	}
	cn := ast.NewConstructorNode(md.Modifiers, params, exceptions, nil)
	if err := r.attachAnnotations(md.Annotations, cn.AddAnnotation); err != nil {
		return nil, err
	}
	paramAnnotations, err := r.adjustConstructorAnnotations(desc, len(params), md.ParameterAnnotations)
	if err != nil {
		return nil, err
	}
	if err := r.attachParameterAnnotations(params, paramAnnotations); err != nil {
		return nil, err
	}
	return cn, nil
}

// adjustConstructorAnnotations normalizes a parameter annotation array that
// the host reported shorter than the parameter list. The allowance is the
// host's synthetic-parameter convention: an outer reference for inner
// classes, name and ordinal for enums. Anything beyond that is an
// internal-consistency error.
func (r *Resolver) adjustConstructorAnnotations(desc *mirror.ClassDescription, paramCount int, annotations [][]mirror.AnnotationDescription) ([][]mirror.AnnotationDescription, error) {
	if annotations == nil {
		return nil, nil
	}
	diff := paramCount - len(annotations)
	if diff <= 0 {
		return annotations, nil
	}
	allowed := 0
	switch {
	case desc.IsEnum():
		allowed = r.synthetic.EnumExtra
	case desc.IsInner():
		allowed = r.synthetic.OuterRef
	}
	if diff > allowed {
		return nil, &InternalError{Msg: fmt.Sprintf(
			"constructor parameter annotations length [%d] does not match the parameter length [%d] for %s",
			len(annotations), paramCount, desc.Name)}
	}
	adjusted := make([][]mirror.AnnotationDescription, paramCount)
	copy(adjusted[diff:], annotations)
	return adjusted, nil
}

// methodTypes resolves the return and parameter types of a member, pairing
// the descriptor's erasures with the generic signature when present.
func (r *Resolver) methodTypes(md *mirror.MethodDescription) (*ast.ClassNode, []*ast.Parameter, error) {
	paramErasures, returnErasure, err := r.parseMethodDescriptor(md.Descriptor)
	if err != nil {
		return nil, nil, err
	}
	returnType := returnErasure
	paramTypes := paramErasures
	if md.Signature != "" {
		ms, err := r.ParseMethodSignature(md.Signature)
		if err != nil {
			return nil, nil, err
		}
		if len(ms.Parameters) == len(paramErasures) {
			for i, generic := range ms.Parameters {
				paramTypes[i] = applyErasure(generic, paramErasures[i])
			}
		}
		if ms.ReturnType != nil {
			returnType = applyErasure(ms.ReturnType, returnErasure)
		}
	}
	params := make([]*ast.Parameter, len(paramTypes))
	for i, typ := range paramTypes {
		name := fmt.Sprintf("param%d", i)
		if i < len(md.ParameterNames) && md.ParameterNames[i] != "" {
			name = md.ParameterNames[i]
		}
		params[i] = ast.NewParameter(typ, name)
	}
	return returnType, params, nil
}

// parseMethodDescriptor splits "(...)R" into parameter and return erasures.
func (r *Resolver) parseMethodDescriptor(descriptor string) ([]*ast.ClassNode, *ast.ClassNode, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return nil, nil, fmt.Errorf("malformed method descriptor %q", descriptor)
	}
	var params []*ast.ClassNode
	i := 1
	for i < len(descriptor) && descriptor[i] != ')' {
		start := i
		for i < len(descriptor) && descriptor[i] == '[' {
			i++
		}
		if i >= len(descriptor) {
			return nil, nil, fmt.Errorf("malformed method descriptor %q", descriptor)
		}
		if descriptor[i] == 'L' {
			semi := strings.IndexByte(descriptor[i:], ';')
			if semi < 0 {
				return nil, nil, fmt.Errorf("malformed method descriptor %q", descriptor)
			}
			i += semi + 1
		} else {
			i++
		}
		node, err := r.ResolveType(descriptor[start:i])
		if err != nil {
			return nil, nil, err
		}
		params = append(params, node)
	}
	if i >= len(descriptor) || descriptor[i] != ')' {
		return nil, nil, fmt.Errorf("malformed method descriptor %q", descriptor)
	}
	returnType, err := r.ResolveType(descriptor[i+1:])
	if err != nil {
		return nil, nil, err
	}
	return params, returnType, nil
}

func (r *Resolver) resolveNames(names []string) ([]*ast.ClassNode, error) {
	if len(names) == 0 {
		return nil, nil
	}
	nodes := make([]*ast.ClassNode, len(names))
	for i, name := range names {
		node, err := r.ResolveClass(name)
		if err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return nodes, nil
}

func (r *Resolver) attachParameterAnnotations(params []*ast.Parameter, annotations [][]mirror.AnnotationDescription) error {
	for i, p := range params {
		if i >= len(annotations) {
			break
		}
		if err := r.attachAnnotations(annotations[i], p.AddAnnotation); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) attachAnnotations(descs []mirror.AnnotationDescription, add func(*ast.AnnotationNode)) error {
	for i := range descs {
		node, err := r.toAnnotationNode(&descs[i])
		if err != nil {
			return err
		}
		add(node)
	}
	return nil
}

func (r *Resolver) toAnnotationNode(desc *mirror.AnnotationDescription) (*ast.AnnotationNode, error) {
	node := ast.NewAnnotationNode(ast.Make(desc.Type))
	if desc.Type == "java.lang.annotation.Retention" {
		if policy, ok := desc.Values["value"].(string); ok {
			switch policy {
			case "RUNTIME":
				node.SetRuntimeRetention(true)
			case "SOURCE":
				node.SetSourceRetention(true)
			case "CLASS":
				node.SetClassRetention(true)
			}
		}
	}
	for name, value := range desc.Values {
		expr, err := r.toAnnotationValueExpression(value)
		if err != nil {
			return nil, err
		}
		if expr != nil {
			node.SetMember(name, expr)
		}
	}
	return node, nil
}

func (r *Resolver) toAnnotationValueExpression(value any) (ast.Expression, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return ast.ConstX(v), nil
	case []any:
		list := &ast.ListExpression{}
		for _, elem := range v {
			expr, err := r.toAnnotationValueExpression(elem)
			if err != nil {
				return nil, err
			}
			if expr != nil {
				list.AddExpression(expr)
			}
		}
		return list, nil
	case map[string]any:
		// nested annotation shape: {"type": ..., "values": {...}}
		typ, _ := v["type"].(string)
		if typ == "" {
			return ast.ConstX(v), nil
		}
		values, _ := v["values"].(map[string]any)
		nested, err := r.toAnnotationNode(&mirror.AnnotationDescription{Type: typ, Values: values})
		if err != nil {
			return nil, err
		}
		return &ast.AnnotationConstantExpression{Annotation: nested}, nil
	default:
		return ast.ConstX(v), nil
	}
}
