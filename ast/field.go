package ast

// FieldNode is a field declaration.
type FieldNode struct {
	BaseNode

	name           string
	modifiers      int
	typ            *ClassNode
	declaringClass *ClassNode
	initialValue   Expression
	annotations    []*AnnotationNode
}

func NewFieldNode(name string, modifiers int, typ *ClassNode, initialValue Expression) *FieldNode {
	if typ == nil {
		typ = ObjectType
	}
	return &FieldNode{name: name, modifiers: modifiers, typ: typ, initialValue: initialValue}
}

func (f *FieldNode) Name() string     { return f.name }
func (f *FieldNode) Type() *ClassNode { return f.typ }

func (f *FieldNode) SetType(typ *ClassNode) { f.typ = typ }

func (f *FieldNode) Modifiers() int     { return f.modifiers }
func (f *FieldNode) SetModifiers(m int) { f.modifiers = m }

func (f *FieldNode) IsStatic() bool  { return f.modifiers&AccStatic != 0 }
func (f *FieldNode) IsPublic() bool  { return f.modifiers&AccPublic != 0 }
func (f *FieldNode) IsPrivate() bool { return f.modifiers&AccPrivate != 0 }
func (f *FieldNode) IsFinal() bool   { return f.modifiers&AccFinal != 0 }

func (f *FieldNode) DeclaringClass() *ClassNode { return f.declaringClass }

func (f *FieldNode) InitialExpression() Expression { return f.initialValue }

func (f *FieldNode) Annotations() []*AnnotationNode { return f.annotations }
func (f *FieldNode) AddAnnotation(a *AnnotationNode) {
	f.annotations = append(f.annotations, a)
}

// PropertyNode is the public-property view over a backing field, optionally
// with explicit accessor bodies.
type PropertyNode struct {
	BaseNode

	field       *FieldNode
	modifiers   int
	getterBlock Statement
	setterBlock Statement
}

func NewPropertyNode(field *FieldNode, modifiers int) *PropertyNode {
	return &PropertyNode{field: field, modifiers: modifiers}
}

func (p *PropertyNode) Name() string      { return p.field.Name() }
func (p *PropertyNode) Type() *ClassNode  { return p.field.Type() }
func (p *PropertyNode) Field() *FieldNode { return p.field }

func (p *PropertyNode) Modifiers() int { return p.modifiers }

func (p *PropertyNode) IsStatic() bool { return p.modifiers&AccStatic != 0 }

func (p *PropertyNode) GetterBlock() Statement     { return p.getterBlock }
func (p *PropertyNode) SetGetterBlock(s Statement) { p.getterBlock = s }
func (p *PropertyNode) SetterBlock() Statement     { return p.setterBlock }
func (p *PropertyNode) SetSetterBlock(s Statement) { p.setterBlock = s }
