package transform

import (
	"fmt"

	"github.com/miru-lang/miru/ast"
)

// RewriteTailReturns rewrites every direct tail-recursive return in the
// method body into an argument-reassign-and-continue block targeting
// loopLabel, then wraps the body in a labeled endless loop when anything
// was rewritten. Returns captured inside closures stay untouched; they do
// not loop back to the enclosing method. Reports the number of rewritten
// return sites.
func RewriteTailReturns(method *ast.MethodNode, loopLabel string) int {
	code := method.Code()
	if code == nil {
		return 0
	}
	params := method.Parameters()
	rewritten := 0

	replacer := &StatementReplacer{
		WhenInClosure: func(s ast.Statement, inClosure bool) bool {
			if inClosure {
				return false
			}
			ret, ok := s.(*ast.ReturnStatement)
			return ok && isRecursiveTailCall(method, ret.Expression)
		},
		ReplaceWith: func(s ast.Statement) ast.Statement {
			rewritten++
			return reassignAndContinue(params, callArguments(s.(*ast.ReturnStatement).Expression), loopLabel)
		},
	}
	replacer.ReplaceIn(code)

	if rewritten > 0 {
		method.SetCode(&ast.LabeledStatement{
			Label: loopLabel,
			Statement: &ast.WhileStatement{
				Condition: ast.BoolX(ast.ConstX(true)),
				LoopBlock: code,
			},
		})
	}
	return rewritten
}

func isRecursiveTailCall(method *ast.MethodNode, e ast.Expression) bool {
	switch call := e.(type) {
	case *ast.MethodCallExpression:
		if call.CallsOriginal || call.Method != method.Name() {
			return false
		}
		if call.Object != nil {
			v, ok := call.Object.(*ast.VariableExpression)
			if !ok || !v.IsThisExpression() {
				return false
			}
		}
		return len(call.Arguments) == len(method.Parameters())
	case *ast.StaticMethodCallExpression:
		if !method.IsStatic() || call.Method != method.Name() {
			return false
		}
		if method.DeclaringClass() != nil && call.OwnerType != nil && !call.OwnerType.Equals(method.DeclaringClass()) {
			return false
		}
		return len(call.Arguments) == len(method.Parameters())
	}
	return false
}

func callArguments(e ast.Expression) []ast.Expression {
	switch call := e.(type) {
	case *ast.MethodCallExpression:
		return call.Arguments
	case *ast.StaticMethodCallExpression:
		return call.Arguments
	}
	return nil
}

// reassignAndContinue evaluates all arguments into temporaries before any
// parameter is overwritten, so later arguments still see the old values.
func reassignAndContinue(params []*ast.Parameter, args []ast.Expression, loopLabel string) ast.Statement {
	block := ast.NewBlockStatement()
	temps := make([]*ast.VariableExpression, len(args))
	for i, arg := range args {
		temps[i] = ast.LocalVarX(fmt.Sprintf("_%s_", params[i].Name()))
		block.AddStatement(ast.DeclS(temps[i], arg))
	}
	for i, p := range params {
		block.AddStatement(ast.AssignS(ast.VarX(p.Name()), temps[i]))
	}
	block.AddStatement(&ast.ContinueStatement{Label: loopLabel})
	return block
}
