package format

import (
	"strings"
	"testing"

	"github.com/miru-lang/miru/ast"
)

func TestPrintMethod(t *testing.T) {
	body := ast.BlockS(
		ast.IfS(ast.EqualsNullX(ast.VarX("s")), ast.ReturnS(ast.ConstX("empty"))),
		ast.ReturnS(ast.VarX("s")),
	)
	m := ast.NewMethodNode("orEmpty", ast.AccPublic|ast.AccStatic, ast.StringType,
		[]*ast.Parameter{ast.NewParameter(ast.StringType, "s")}, nil, body)

	got := MethodString(m)
	for _, want := range []string{
		"public static java.lang.String orEmpty(java.lang.String s) {",
		"if (s == null)",
		`return "empty";`,
		"return s;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestStatementRendering(t *testing.T) {
	t.Run("labeled loop with continue", func(t *testing.T) {
		loop := &ast.LabeledStatement{
			Label: "_loop",
			Statement: &ast.WhileStatement{
				Condition: ast.BoolX(ast.ConstX(true)),
				LoopBlock: ast.BlockS(&ast.ContinueStatement{Label: "_loop"}),
			},
		}
		got := StatementString(loop)
		for _, want := range []string{"_loop:", "while (true) {", "continue _loop;"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("declaration and call chain", func(t *testing.T) {
		stmt := ast.DeclS(ast.LocalVarX("_result"), ast.CtorX(ast.Make("java.lang.StringBuilder")))
		if got := StatementString(stmt); !strings.Contains(got, "var _result = new StringBuilder()") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("static call and identity comparison", func(t *testing.T) {
		expr := ast.SameX(ast.CallX(ast.ThisX(), "getNext"), ast.ThisX())
		if got := ExpressionString(expr); got != "this.getNext() === this" {
			t.Errorf("got %q", got)
		}
	})
}
