package ast

// Expression is a value-producing node.
type Expression interface {
	Base() *BaseNode
	isExpression()
}

// ConstantExpression wraps a literal value. A nil Value is the null literal.
type ConstantExpression struct {
	BaseNode
	Value any
}

// VariableExpression references a variable by name.
type VariableExpression struct {
	BaseNode
	VarName  string
	Accessed Variable // what the name resolved to, when known
}

func NewVariableExpression(name string) *VariableExpression {
	return &VariableExpression{VarName: name}
}

func (v *VariableExpression) Name() string { return v.VarName }

func (v *VariableExpression) Type() *ClassNode {
	if v.Accessed != nil {
		return v.Accessed.Type()
	}
	return ObjectType
}

// IsThisExpression reports whether this references the receiver.
func (v *VariableExpression) IsThisExpression() bool { return v.VarName == "this" }

// FieldExpression references a field directly, bypassing property access.
type FieldExpression struct {
	BaseNode
	Field *FieldNode
}

// ClassExpression references a type as a value.
type ClassExpression struct {
	BaseNode
	Type *ClassNode
}

// PropertyExpression accesses a named property on an object expression.
type PropertyExpression struct {
	BaseNode
	Object   Expression
	Property string
}

// MethodCallExpression calls a method on an object expression.
type MethodCallExpression struct {
	BaseNode
	Object    Expression
	Method    string
	Arguments []Expression
	// CallsOriginal bypasses dynamic dispatch and targets the declared
	// method directly, as super calls must.
	CallsOriginal bool
}

// StaticMethodCallExpression calls a static method on a type.
type StaticMethodCallExpression struct {
	BaseNode
	OwnerType *ClassNode
	Method    string
	Arguments []Expression
}

// ConstructorCallExpression instantiates a type.
type ConstructorCallExpression struct {
	BaseNode
	Type      *ClassNode
	Arguments []Expression
}

// BinaryExpression combines two operands with an operator token. The token
// set used by generated code is "=", "==", "!=", "===" and "instanceof".
type BinaryExpression struct {
	BaseNode
	Left      Expression
	Operation string
	Right     Expression
}

// BooleanExpression adapts any expression into a condition slot.
type BooleanExpression struct {
	BaseNode
	Expression Expression
}

// NotExpression negates a condition.
type NotExpression struct {
	BaseNode
	Expression Expression
}

// DeclarationExpression declares a local variable with an initializer.
type DeclarationExpression struct {
	BaseNode
	Left  *VariableExpression
	Right Expression
}

// ClosureExpression is an anonymous function value capturing its lexical
// scope. Statements inside its code belong to the closure, not to the
// enclosing method body.
type ClosureExpression struct {
	BaseNode
	Parameters []*Parameter
	Code       Statement
}

// ListExpression is an ordered literal list, used for annotation values.
type ListExpression struct {
	BaseNode
	Expressions []Expression
}

func (l *ListExpression) AddExpression(e Expression) {
	l.Expressions = append(l.Expressions, e)
}

// AnnotationConstantExpression wraps a nested annotation used as a value.
type AnnotationConstantExpression struct {
	BaseNode
	Annotation *AnnotationNode
}

func (*ConstantExpression) isExpression()           {}
func (*VariableExpression) isExpression()           {}
func (*FieldExpression) isExpression()              {}
func (*ClassExpression) isExpression()              {}
func (*PropertyExpression) isExpression()           {}
func (*MethodCallExpression) isExpression()         {}
func (*StaticMethodCallExpression) isExpression()   {}
func (*ConstructorCallExpression) isExpression()    {}
func (*BinaryExpression) isExpression()             {}
func (*BooleanExpression) isExpression()            {}
func (*NotExpression) isExpression()                {}
func (*DeclarationExpression) isExpression()        {}
func (*ClosureExpression) isExpression()            {}
func (*ListExpression) isExpression()               {}
func (*AnnotationConstantExpression) isExpression() {}
