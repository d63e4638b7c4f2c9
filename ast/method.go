package ast

import "strings"

// Reserved method names identifying constructors and static initializers.
const (
	ConstructorName       = "<init>"
	StaticInitializerName = "<clinit>"
)

// MethodNode is a method declaration. The type descriptor is derived data,
// cached until modifiers, return type or parameters change; the variable
// scope is rebuilt whenever the parameter list is replaced.
type MethodNode struct {
	BaseNode

	name            string
	modifiers       int
	returnType      *ClassNode
	parameters      []*Parameter
	exceptions      []*ClassNode
	genericsTypes   []*GenericsType
	code            Statement
	variableScope   *VariableScope
	declaringClass  *ClassNode
	annotations     []*AnnotationNode
	hasDefaultValue bool
	syntheticPublic bool

	typeDescriptor string // cached, invalidated on write
}

func NewMethodNode(name string, modifiers int, returnType *ClassNode, parameters []*Parameter, exceptions []*ClassNode, code Statement) *MethodNode {
	m := &MethodNode{name: name, exceptions: exceptions, code: code}
	m.modifiers = modifiers
	m.SetReturnType(returnType)
	m.SetParameters(parameters)
	return m
}

func (m *MethodNode) Name() string { return m.name }

func (m *MethodNode) Modifiers() int { return m.modifiers }

func (m *MethodNode) SetModifiers(modifiers int) {
	m.invalidateCachedData()
	m.modifiers = modifiers
	if m.variableScope != nil {
		m.variableScope.SetInStaticContext(m.IsStatic())
	}
}

func (m *MethodNode) ReturnType() *ClassNode { return m.returnType }

func (m *MethodNode) SetReturnType(returnType *ClassNode) {
	m.invalidateCachedData()
	if returnType == nil {
		returnType = ObjectType
	}
	m.returnType = returnType
}

func (m *MethodNode) Parameters() []*Parameter { return m.parameters }

// SetParameters replaces the parameter list and rebuilds the variable scope
// from it, keeping scope and parameters consistent.
func (m *MethodNode) SetParameters(parameters []*Parameter) {
	m.invalidateCachedData()
	scope := NewVariableScope()
	m.hasDefaultValue = false
	m.parameters = parameters
	for _, p := range parameters {
		if p.HasInitialExpression() {
			m.hasDefaultValue = true
		}
		p.SetInStaticContext(m.IsStatic())
		scope.PutDeclaredVariable(p)
	}
	m.SetVariableScope(scope)
}

func (m *MethodNode) HasDefaultValue() bool { return m.hasDefaultValue }

func (m *MethodNode) Code() Statement        { return m.code }
func (m *MethodNode) SetCode(code Statement) { m.code = code }

func (m *MethodNode) VariableScope() *VariableScope { return m.variableScope }

func (m *MethodNode) SetVariableScope(scope *VariableScope) {
	m.variableScope = scope
	scope.SetInStaticContext(m.IsStatic())
}

func (m *MethodNode) Exceptions() []*ClassNode { return m.exceptions }

func (m *MethodNode) GenericsTypes() []*GenericsType { return m.genericsTypes }

func (m *MethodNode) SetGenericsTypes(gts []*GenericsType) {
	m.invalidateCachedData()
	m.genericsTypes = gts
}

func (m *MethodNode) DeclaringClass() *ClassNode { return m.declaringClass }

func (m *MethodNode) Annotations() []*AnnotationNode { return m.annotations }
func (m *MethodNode) AddAnnotation(a *AnnotationNode) {
	m.annotations = append(m.annotations, a)
}

func (m *MethodNode) IsAbstract() bool     { return m.modifiers&AccAbstract != 0 }
func (m *MethodNode) IsStatic() bool       { return m.modifiers&AccStatic != 0 }
func (m *MethodNode) IsPublic() bool       { return m.modifiers&AccPublic != 0 }
func (m *MethodNode) IsPrivate() bool      { return m.modifiers&AccPrivate != 0 }
func (m *MethodNode) IsProtected() bool    { return m.modifiers&AccProtected != 0 }
func (m *MethodNode) IsFinal() bool        { return m.modifiers&AccFinal != 0 }
func (m *MethodNode) IsSynthetic() bool    { return m.modifiers&AccSynthetic != 0 }
func (m *MethodNode) IsVoidMethod() bool   { return IsPrimitiveVoid(m.returnType) }
func (m *MethodNode) IsPackageScope() bool {
	return m.modifiers&(AccPublic|AccPrivate|AccProtected) == 0
}

func (m *MethodNode) IsConstructor() bool        { return m.name == ConstructorName }
func (m *MethodNode) IsStaticInitializer() bool  { return m.name == StaticInitializerName }

// IsSyntheticPublic records that the public modifier was applied by the
// compiler's default-visibility rule rather than written in source.
func (m *MethodNode) IsSyntheticPublic() bool     { return m.syntheticPublic }
func (m *MethodNode) SetSyntheticPublic(b bool)   { m.syntheticPublic = b }

// FirstStatement descends through block statements to the first concrete
// statement of the body, or nil for an empty body.
func (m *MethodNode) FirstStatement() Statement {
	if m.code == nil {
		return nil
	}
	first := m.code
	for {
		block, ok := first.(*BlockStatement)
		if !ok {
			return first
		}
		if len(block.Statements) == 0 {
			return nil
		}
		first = block.Statements[0]
	}
}

func (m *MethodNode) invalidateCachedData() { m.typeDescriptor = "" }

// TypeDescriptor returns the method's canonical descriptor string: return
// type, name and parameter types without names or generics. The value is
// cached and recomputed after any write to modifiers, return type or
// parameters.
func (m *MethodNode) TypeDescriptor() string {
	if m.typeDescriptor == "" {
		var sb strings.Builder
		sb.WriteString(m.returnType.Name())
		sb.WriteByte(' ')
		sb.WriteString(m.name)
		sb.WriteByte('(')
		for i, p := range m.parameters {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Type().Name())
		}
		sb.WriteByte(')')
		m.typeDescriptor = sb.String()
	}
	return m.typeDescriptor
}

func (m *MethodNode) String() string {
	desc := m.TypeDescriptor()
	if m.declaringClass != nil {
		return desc + " from " + m.declaringClass.Name()
	}
	return desc
}
