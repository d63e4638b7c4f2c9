package format

import (
	"fmt"

	"github.com/miru-lang/miru/ast"
)

// PrintExpression writes one expression inline.
func (p *Printer) PrintExpression(e ast.Expression) {
	switch n := e.(type) {
	case nil:
	case *ast.ConstantExpression:
		p.write(literal(n.Value))
	case *ast.VariableExpression:
		p.write(n.VarName)
	case *ast.FieldExpression:
		if n.Field.IsStatic() {
			if dc := n.Field.DeclaringClass(); dc != nil {
				p.write(dc.NameWithoutPackage() + "." + n.Field.Name())
				return
			}
		}
		p.write("this." + n.Field.Name())
	case *ast.ClassExpression:
		p.write(n.Type.String())
	case *ast.PropertyExpression:
		p.PrintExpression(n.Object)
		p.write("." + n.Property)
	case *ast.MethodCallExpression:
		if n.Object != nil {
			p.PrintExpression(n.Object)
			p.write(".")
		}
		p.write(n.Method)
		p.printArguments(n.Arguments)
	case *ast.StaticMethodCallExpression:
		p.write(n.OwnerType.NameWithoutPackage() + "." + n.Method)
		p.printArguments(n.Arguments)
	case *ast.ConstructorCallExpression:
		p.write("new " + n.Type.NameWithoutPackage())
		p.printArguments(n.Arguments)
	case *ast.BinaryExpression:
		p.PrintExpression(n.Left)
		p.write(" " + n.Operation + " ")
		p.PrintExpression(n.Right)
	case *ast.BooleanExpression:
		p.PrintExpression(n.Expression)
	case *ast.NotExpression:
		p.write("!(")
		p.PrintExpression(n.Expression)
		p.write(")")
	case *ast.DeclarationExpression:
		p.write("var " + n.Left.VarName + " = ")
		p.PrintExpression(n.Right)
	case *ast.ClosureExpression:
		p.write("{ ")
		for i, param := range n.Parameters {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Name())
		}
		if len(n.Parameters) > 0 {
			p.write(" -> ")
		}
		p.write("... }")
	case *ast.ListExpression:
		p.write("[")
		for i, elem := range n.Expressions {
			if i > 0 {
				p.write(", ")
			}
			p.PrintExpression(elem)
		}
		p.write("]")
	case *ast.AnnotationConstantExpression:
		p.write("@" + n.Annotation.ClassNode().NameWithoutPackage())
	default:
		p.write("/* ? */")
	}
}

func (p *Printer) printArguments(args []ast.Expression) {
	p.write("(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		p.PrintExpression(arg)
	}
	p.write(")")
}

func literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
