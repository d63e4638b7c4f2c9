// Package format renders synthesized AST trees as readable source text,
// mainly for CLI output and debugging of generated methods.
package format

import (
	"io"
	"strings"

	"github.com/miru-lang/miru/ast"
)

// Printer writes statement and expression trees as indented source text.
type Printer struct {
	w           io.Writer
	indent      int
	indentStr   string
	atLineStart bool
	err         error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	if p.atLineStart && s != "\n" {
		_, p.err = io.WriteString(p.w, strings.Repeat(p.indentStr, p.indent))
		p.atLineStart = false
	}
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *Printer) newline() {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, "\n")
	}
	p.atLineStart = true
}

// PrintMethod writes a full method: signature, then body.
func (p *Printer) PrintMethod(m *ast.MethodNode) error {
	p.write(modifierString(m.Modifiers()))
	p.write(m.ReturnType().String())
	p.write(" ")
	p.write(m.Name())
	p.write("(")
	for i, param := range m.Parameters() {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Type().String())
		p.write(" ")
		p.write(param.Name())
	}
	p.write(") ")
	if m.Code() != nil {
		p.PrintStatement(m.Code())
	} else {
		p.write("{ }")
	}
	p.newline()
	return p.err
}

func modifierString(modifiers int) string {
	var sb strings.Builder
	if modifiers&ast.AccPublic != 0 {
		sb.WriteString("public ")
	}
	if modifiers&ast.AccProtected != 0 {
		sb.WriteString("protected ")
	}
	if modifiers&ast.AccPrivate != 0 {
		sb.WriteString("private ")
	}
	if modifiers&ast.AccStatic != 0 {
		sb.WriteString("static ")
	}
	if modifiers&ast.AccFinal != 0 {
		sb.WriteString("final ")
	}
	if modifiers&ast.AccAbstract != 0 {
		sb.WriteString("abstract ")
	}
	return sb.String()
}

// MethodString renders a method to a string.
func MethodString(m *ast.MethodNode) string {
	var sb strings.Builder
	NewPrinter(&sb).PrintMethod(m)
	return sb.String()
}

// StatementString renders a statement to a string.
func StatementString(s ast.Statement) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.PrintStatement(s)
	p.newline()
	return sb.String()
}

// ExpressionString renders an expression to a string.
func ExpressionString(e ast.Expression) string {
	var sb strings.Builder
	NewPrinter(&sb).PrintExpression(e)
	return sb.String()
}
