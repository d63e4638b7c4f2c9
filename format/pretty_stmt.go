package format

import "github.com/miru-lang/miru/ast"

// PrintStatement writes one statement at the current indent level.
func (p *Printer) PrintStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		p.write("{")
		p.newline()
		p.indent++
		for _, stmt := range n.Statements {
			p.PrintStatement(stmt)
			p.newline()
		}
		p.indent--
		p.write("}")
	case *ast.IfStatement:
		p.write("if (")
		p.PrintExpression(n.Condition)
		p.write(") ")
		p.printBranch(n.IfBlock)
		if n.ElseBlock != nil {
			if _, empty := n.ElseBlock.(*ast.EmptyStatement); !empty {
				p.write(" else ")
				p.printBranch(n.ElseBlock)
			}
		}
	case *ast.ForStatement:
		p.write("for (")
		if n.Variable != nil {
			p.write(n.Variable.Type().String())
			p.write(" ")
			p.write(n.Variable.Name())
			p.write(" : ")
		}
		p.PrintExpression(n.Collection)
		p.write(") ")
		p.printBranch(n.LoopBlock)
	case *ast.WhileStatement:
		p.write("while (")
		p.PrintExpression(n.Condition)
		p.write(") ")
		p.printBranch(n.LoopBlock)
	case *ast.DoWhileStatement:
		p.write("do ")
		p.printBranch(n.LoopBlock)
		p.write(" while (")
		p.PrintExpression(n.Condition)
		p.write(");")
	case *ast.ReturnStatement:
		if n.Expression == nil {
			p.write("return;")
			return
		}
		p.write("return ")
		p.PrintExpression(n.Expression)
		p.write(";")
	case *ast.ExpressionStatement:
		p.PrintExpression(n.Expression)
		p.write(";")
	case *ast.ContinueStatement:
		if n.Label != "" {
			p.write("continue " + n.Label + ";")
		} else {
			p.write("continue;")
		}
	case *ast.LabeledStatement:
		p.write(n.Label + ":")
		p.newline()
		p.PrintStatement(n.Statement)
	case *ast.EmptyStatement:
		p.write(";")
	default:
		p.write("/* ? */;")
	}
}

// printBranch keeps single statements on their own indented line while
// blocks print inline after the keyword.
func (p *Printer) printBranch(s ast.Statement) {
	if _, isBlock := s.(*ast.BlockStatement); isBlock {
		p.PrintStatement(s)
		return
	}
	p.newline()
	p.indent++
	p.PrintStatement(s)
	p.indent--
}
