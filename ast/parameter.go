package ast

// Parameter is a single method, constructor or closure parameter.
type Parameter struct {
	BaseNode

	name            string
	typ             *ClassNode
	modifiers       int
	initialValue    Expression
	inStaticContext bool
	annotations     []*AnnotationNode
}

func NewParameter(typ *ClassNode, name string) *Parameter {
	if typ == nil {
		typ = ObjectType
	}
	return &Parameter{name: name, typ: typ}
}

func (p *Parameter) Name() string     { return p.name }
func (p *Parameter) Type() *ClassNode { return p.typ }

func (p *Parameter) SetType(typ *ClassNode) { p.typ = typ }

func (p *Parameter) Modifiers() int     { return p.modifiers }
func (p *Parameter) SetModifiers(m int) { p.modifiers = m }

// InitialExpression is the default value expression, if any.
func (p *Parameter) InitialExpression() Expression     { return p.initialValue }
func (p *Parameter) SetInitialExpression(e Expression) { p.initialValue = e }
func (p *Parameter) HasInitialExpression() bool        { return p.initialValue != nil }

func (p *Parameter) InStaticContext() bool     { return p.inStaticContext }
func (p *Parameter) SetInStaticContext(b bool) { p.inStaticContext = b }

func (p *Parameter) Annotations() []*AnnotationNode { return p.annotations }
func (p *Parameter) AddAnnotation(a *AnnotationNode) {
	p.annotations = append(p.annotations, a)
}
