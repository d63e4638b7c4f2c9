package transform

import "github.com/miru-lang/miru/ast"

// StatementReplacer walks a statement tree depth-first and splices a
// replacement into every structural slot whose statement satisfies the
// predicate. Exactly one of When or WhenInClosure must be set; the latter
// additionally receives whether the statement sits inside a closure body,
// which rewrites such as tail-call elimination use to leave captured
// returns alone.
type StatementReplacer struct {
	When          func(ast.Statement) bool
	WhenInClosure func(ast.Statement, bool) bool
	ReplaceWith   func(ast.Statement) ast.Statement

	closureLevel int
}

// ReplaceIn walks root, replacing matching statements in place.
func (r *StatementReplacer) ReplaceIn(root ast.Statement) {
	r.visitStatement(root)
}

func (r *StatementReplacer) applicable(s ast.Statement) bool {
	switch {
	case r.WhenInClosure != nil:
		return r.WhenInClosure(s, r.closureLevel > 0)
	case r.When != nil:
		return r.When(s)
	}
	return false
}

// replaceIfNecessary produces the replacement and hands it to splice, which
// writes it into the slot the original occupied. Source position and
// metadata carry over to the replacement.
func (r *StatementReplacer) replaceIfNecessary(s ast.Statement, splice func(ast.Statement)) {
	if s == nil || !r.applicable(s) {
		return
	}
	replacement := r.ReplaceWith(s)
	replacement.Base().SetSourcePosition(s.Base())
	replacement.Base().CopyNodeMetaData(s.Base())
	splice(replacement)
}

func (r *StatementReplacer) visitStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		// Snapshot the list so splicing cannot perturb the iteration.
		snapshot := make([]ast.Statement, len(n.Statements))
		copy(snapshot, n.Statements)
		for _, stmt := range snapshot {
			stmt := stmt
			r.replaceIfNecessary(stmt, func(replacement ast.Statement) {
				for i, cur := range n.Statements {
					if cur == stmt {
						n.Statements[i] = replacement
						break
					}
				}
			})
		}
		for _, stmt := range n.Statements {
			r.visitStatement(stmt)
		}
	case *ast.IfStatement:
		r.replaceIfNecessary(n.IfBlock, func(replacement ast.Statement) { n.IfBlock = replacement })
		r.replaceIfNecessary(n.ElseBlock, func(replacement ast.Statement) { n.ElseBlock = replacement })
		r.visitExpression(n.Condition)
		r.visitStatement(n.IfBlock)
		if n.ElseBlock != nil {
			r.visitStatement(n.ElseBlock)
		}
	case *ast.ForStatement:
		r.replaceIfNecessary(n.LoopBlock, func(replacement ast.Statement) { n.LoopBlock = replacement })
		r.visitExpression(n.Collection)
		r.visitStatement(n.LoopBlock)
	case *ast.WhileStatement:
		r.replaceIfNecessary(n.LoopBlock, func(replacement ast.Statement) { n.LoopBlock = replacement })
		r.visitExpression(n.Condition)
		r.visitStatement(n.LoopBlock)
	case *ast.DoWhileStatement:
		r.replaceIfNecessary(n.LoopBlock, func(replacement ast.Statement) { n.LoopBlock = replacement })
		r.visitExpression(n.Condition)
		r.visitStatement(n.LoopBlock)
	case *ast.LabeledStatement:
		r.replaceIfNecessary(n.Statement, func(replacement ast.Statement) { n.Statement = replacement })
		r.visitStatement(n.Statement)
	case *ast.ReturnStatement:
		r.visitExpression(n.Expression)
	case *ast.ExpressionStatement:
		r.visitExpression(n.Expression)
	}
}

// visitExpression descends into expressions only to find closure bodies.
// The nesting counter is restored on every exit path.
func (r *StatementReplacer) visitExpression(e ast.Expression) {
	switch n := e.(type) {
	case nil:
	case *ast.ClosureExpression:
		r.closureLevel++
		defer func() { r.closureLevel-- }()
		r.visitStatement(n.Code)
	case *ast.BinaryExpression:
		r.visitExpression(n.Left)
		r.visitExpression(n.Right)
	case *ast.BooleanExpression:
		r.visitExpression(n.Expression)
	case *ast.NotExpression:
		r.visitExpression(n.Expression)
	case *ast.DeclarationExpression:
		r.visitExpression(n.Right)
	case *ast.PropertyExpression:
		r.visitExpression(n.Object)
	case *ast.MethodCallExpression:
		r.visitExpression(n.Object)
		for _, arg := range n.Arguments {
			r.visitExpression(arg)
		}
	case *ast.StaticMethodCallExpression:
		for _, arg := range n.Arguments {
			r.visitExpression(arg)
		}
	case *ast.ConstructorCallExpression:
		for _, arg := range n.Arguments {
			r.visitExpression(arg)
		}
	case *ast.ListExpression:
		for _, elem := range n.Expressions {
			r.visitExpression(elem)
		}
	}
}
