package ast

// Builder shorthands for synthesizing code. The X suffix builds an
// expression, the S suffix a statement.

// ConstX wraps a literal value.
func ConstX(value any) *ConstantExpression {
	return &ConstantExpression{Value: value}
}

// NullX is the null literal.
func NullX() *ConstantExpression { return ConstX(nil) }

// VarX references a variable by name.
func VarX(name string) *VariableExpression { return NewVariableExpression(name) }

// LocalVarX references a local variable, remembering its declaration so
// later references resolve to the same variable.
func LocalVarX(name string) *VariableExpression {
	v := NewVariableExpression(name)
	v.Accessed = v
	return v
}

// ThisX references the receiver.
func ThisX() *VariableExpression { return VarX("this") }

// FieldX references a field directly.
func FieldX(field *FieldNode) *FieldExpression {
	return &FieldExpression{Field: field}
}

// PropX accesses a property on an object.
func PropX(object Expression, property string) *PropertyExpression {
	return &PropertyExpression{Object: object, Property: property}
}

// CallX calls a method on an object.
func CallX(object Expression, method string, args ...Expression) *MethodCallExpression {
	return &MethodCallExpression{Object: object, Method: method, Arguments: args}
}

// CallSuperX calls the superclass implementation directly, bypassing
// dynamic dispatch.
func CallSuperX(method string, args ...Expression) *MethodCallExpression {
	return &MethodCallExpression{Object: VarX("super"), Method: method, Arguments: args, CallsOriginal: true}
}

// StaticCallX calls a static method on a type.
func StaticCallX(owner *ClassNode, method string, args ...Expression) *StaticMethodCallExpression {
	return &StaticMethodCallExpression{OwnerType: owner, Method: method, Arguments: args}
}

// CtorX instantiates a type.
func CtorX(typ *ClassNode, args ...Expression) *ConstructorCallExpression {
	return &ConstructorCallExpression{Type: typ, Arguments: args}
}

// GetterThisX accesses a property on the receiver through its getter.
func GetterThisX(p *PropertyNode) *MethodCallExpression {
	name := p.Name()
	getter := "get" + name
	if name != "" && name[0] >= 'a' && name[0] <= 'z' {
		getter = "get" + string(name[0]-'a'+'A') + name[1:]
	}
	return CallX(ThisX(), getter)
}

// BoolX adapts an expression into a condition.
func BoolX(e Expression) *BooleanExpression {
	return &BooleanExpression{Expression: e}
}

// EqualsNullX tests an expression for null.
func EqualsNullX(e Expression) *BooleanExpression {
	return BoolX(&BinaryExpression{Left: e, Operation: "==", Right: NullX()})
}

// NotNullX tests an expression for non-null.
func NotNullX(e Expression) *BooleanExpression {
	return BoolX(&BinaryExpression{Left: e, Operation: "!=", Right: NullX()})
}

// SameX tests two expressions for reference identity.
func SameX(a, b Expression) *BooleanExpression {
	return BoolX(&BinaryExpression{Left: a, Operation: "===", Right: b})
}

// AssignS assigns an expression to a target.
func AssignS(target, value Expression) Statement {
	return StmtS(&BinaryExpression{Left: target, Operation: "=", Right: value})
}

// DeclS declares a local variable with an initializer.
func DeclS(target *VariableExpression, init Expression) Statement {
	return StmtS(&DeclarationExpression{Left: target, Right: init})
}

// ReturnS returns the value of an expression.
func ReturnS(e Expression) *ReturnStatement {
	return &ReturnStatement{Expression: e}
}

// StmtS wraps an expression as a statement.
func StmtS(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: e}
}

// IfS builds an if statement with no else branch.
func IfS(cond Expression, then Statement) *IfStatement {
	return &IfStatement{Condition: cond, IfBlock: then, ElseBlock: &EmptyStatement{}}
}

// IfElseS builds an if/else statement.
func IfElseS(cond Expression, then, els Statement) *IfStatement {
	return &IfStatement{Condition: cond, IfBlock: then, ElseBlock: els}
}

// BlockS builds a block from statements.
func BlockS(stmts ...Statement) *BlockStatement {
	b := NewBlockStatement()
	for _, s := range stmts {
		b.AddStatement(s)
	}
	return b
}

// AddGeneratedMethod synthesizes a method on the class and tags it as
// compiler-generated so later transformation runs can recognize it.
func AddGeneratedMethod(cn *ClassNode, name string, modifiers int, returnType *ClassNode, parameters []*Parameter, exceptions []*ClassNode, code Statement) *MethodNode {
	m := NewMethodNode(name, modifiers|AccSynthetic, returnType, parameters, exceptions, code)
	MarkGenerated(&m.BaseNode)
	cn.AddMethod(m)
	return m
}
