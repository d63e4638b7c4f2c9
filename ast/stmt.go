package ast

// Statement is a node in a method body. Child statements are owned
// exclusively by their parent; replacing a child must carry over the
// original's source position and metadata.
type Statement interface {
	Base() *BaseNode
	isStatement()
}

// BlockStatement is an ordered sequence of statements with its own scope.
type BlockStatement struct {
	BaseNode
	Statements []Statement
	Scope      *VariableScope
}

func NewBlockStatement() *BlockStatement {
	return &BlockStatement{Scope: NewVariableScope()}
}

func (b *BlockStatement) AddStatement(s Statement) {
	b.Statements = append(b.Statements, s)
}

func (b *BlockStatement) IsEmpty() bool { return len(b.Statements) == 0 }

// IfStatement holds a condition with then and optional else branches.
type IfStatement struct {
	BaseNode
	Condition Expression
	IfBlock   Statement
	ElseBlock Statement // nil or EmptyStatement when absent
}

// ForStatement is a for-each style loop over a collection expression.
type ForStatement struct {
	BaseNode
	Variable   *Parameter
	Collection Expression
	LoopBlock  Statement
}

// WhileStatement loops while the condition holds.
type WhileStatement struct {
	BaseNode
	Condition Expression
	LoopBlock Statement
}

// DoWhileStatement runs the body once before testing the condition.
type DoWhileStatement struct {
	BaseNode
	Condition Expression
	LoopBlock Statement
}

// ReturnStatement returns the value of its expression.
type ReturnStatement struct {
	BaseNode
	Expression Expression
}

// ExpressionStatement evaluates an expression for its effect.
type ExpressionStatement struct {
	BaseNode
	Expression Expression
}

// ContinueStatement jumps to the next iteration of the labeled loop.
type ContinueStatement struct {
	BaseNode
	Label string
}

// LabeledStatement attaches a label to a statement, usually a loop.
type LabeledStatement struct {
	BaseNode
	Label     string
	Statement Statement
}

// EmptyStatement is a placeholder where a branch is absent.
type EmptyStatement struct {
	BaseNode
}

func (*BlockStatement) isStatement()      {}
func (*IfStatement) isStatement()         {}
func (*ForStatement) isStatement()        {}
func (*WhileStatement) isStatement()      {}
func (*DoWhileStatement) isStatement()    {}
func (*ReturnStatement) isStatement()     {}
func (*ExpressionStatement) isStatement() {}
func (*ContinueStatement) isStatement()   {}
func (*LabeledStatement) isStatement()    {}
func (*EmptyStatement) isStatement()      {}
