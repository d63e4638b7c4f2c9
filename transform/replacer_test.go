package transform

import (
	"testing"

	"github.com/miru-lang/miru/ast"
)

func isReturn(s ast.Statement) bool {
	_, ok := s.(*ast.ReturnStatement)
	return ok
}

func TestStatementReplacer(t *testing.T) {
	t.Run("replaces block slots", func(t *testing.T) {
		ret := ast.ReturnS(ast.ConstX(1))
		block := ast.BlockS(ast.StmtS(ast.ConstX(0)), ret)

		r := &StatementReplacer{
			When:        isReturn,
			ReplaceWith: func(ast.Statement) ast.Statement { return &ast.ContinueStatement{} },
		}
		r.ReplaceIn(block)

		if _, ok := block.Statements[1].(*ast.ContinueStatement); !ok {
			t.Fatalf("slot not replaced: %T", block.Statements[1])
		}
		if _, ok := block.Statements[0].(*ast.ExpressionStatement); !ok {
			t.Error("unrelated slot must stay untouched")
		}
	})

	t.Run("replacement carries position and metadata", func(t *testing.T) {
		ret := ast.ReturnS(ast.ConstX(1))
		ret.Base().Pos = ast.Position{Line: 7, Column: 3}
		ret.Base().PutNodeMetaData("origin", "loop-body")
		ifStmt := ast.IfS(ast.BoolX(ast.ConstX(true)), ret)

		r := &StatementReplacer{
			When:        isReturn,
			ReplaceWith: func(ast.Statement) ast.Statement { return &ast.ContinueStatement{} },
		}
		r.ReplaceIn(ast.BlockS(ifStmt))

		replaced, ok := ifStmt.IfBlock.(*ast.ContinueStatement)
		if !ok {
			t.Fatalf("if branch not replaced: %T", ifStmt.IfBlock)
		}
		if replaced.Base().Pos != (ast.Position{Line: 7, Column: 3}) {
			t.Errorf("position = %+v", replaced.Base().Pos)
		}
		if replaced.Base().NodeMetaData("origin") != "loop-body" {
			t.Error("metadata not copied")
		}
	})

	t.Run("reaches loop bodies", func(t *testing.T) {
		forLoop := &ast.ForStatement{Collection: ast.VarX("xs"), LoopBlock: ast.ReturnS(ast.ConstX(1))}
		while := &ast.WhileStatement{Condition: ast.BoolX(ast.ConstX(true)), LoopBlock: ast.ReturnS(ast.ConstX(2))}
		doWhile := &ast.DoWhileStatement{Condition: ast.BoolX(ast.ConstX(false)), LoopBlock: ast.ReturnS(ast.ConstX(3))}

		r := &StatementReplacer{
			When:        isReturn,
			ReplaceWith: func(ast.Statement) ast.Statement { return &ast.ContinueStatement{} },
		}
		r.ReplaceIn(ast.BlockS(forLoop, while, doWhile))

		for i, body := range []ast.Statement{forLoop.LoopBlock, while.LoopBlock, doWhile.LoopBlock} {
			if _, ok := body.(*ast.ContinueStatement); !ok {
				t.Errorf("loop %d body not replaced: %T", i, body)
			}
		}
	})

	t.Run("closure bodies are flagged", func(t *testing.T) {
		inner := ast.ReturnS(ast.ConstX(1))
		closure := &ast.ClosureExpression{Code: ast.BlockS(inner)}
		outer := ast.ReturnS(ast.ConstX(2))
		block := ast.BlockS(ast.StmtS(closure), outer)

		r := &StatementReplacer{
			WhenInClosure: func(s ast.Statement, inClosure bool) bool {
				return !inClosure && isReturn(s)
			},
			ReplaceWith: func(ast.Statement) ast.Statement { return &ast.ContinueStatement{} },
		}
		r.ReplaceIn(block)

		if _, ok := block.Statements[1].(*ast.ContinueStatement); !ok {
			t.Error("direct return must be replaced")
		}
		closureBody := closure.Code.(*ast.BlockStatement)
		if closureBody.Statements[0] != inner {
			t.Error("captured return must stay untouched")
		}
	})

	t.Run("nesting counter restored after closure exit", func(t *testing.T) {
		closure := &ast.ClosureExpression{Code: ast.BlockS(ast.ReturnS(ast.ConstX(1)))}
		after := ast.ReturnS(ast.ConstX(2))
		block := ast.BlockS(ast.BlockS(ast.StmtS(closure)), after)

		var sawDirect bool
		r := &StatementReplacer{
			WhenInClosure: func(s ast.Statement, inClosure bool) bool {
				if s == after && !inClosure {
					sawDirect = true
				}
				return false
			},
			ReplaceWith: func(s ast.Statement) ast.Statement { return s },
		}
		r.ReplaceIn(block)

		if !sawDirect {
			t.Error("statement after a closure must not count as inside it")
		}
	})

	t.Run("splice into grown block does not disturb walk", func(t *testing.T) {
		first := ast.ReturnS(ast.ConstX(1))
		second := ast.ReturnS(ast.ConstX(2))
		block := ast.BlockS(first, second)

		r := &StatementReplacer{
			When: isReturn,
			ReplaceWith: func(s ast.Statement) ast.Statement {
				return ast.BlockS(ast.StmtS(ast.ConstX(0)), &ast.ContinueStatement{})
			},
		}
		r.ReplaceIn(block)

		for i, s := range block.Statements {
			if _, ok := s.(*ast.BlockStatement); !ok {
				t.Errorf("slot %d = %T, want replacement block", i, s)
			}
		}
	})
}
