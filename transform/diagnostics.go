// Package transform contains AST rewrites: a general statement replacer, an
// annotation-driven toString generator and a tail-call return rewrite built
// on the replacer.
package transform

import (
	"fmt"

	"github.com/miru-lang/miru/ast"
)

// Diagnostic is one user-facing message attached to a node. Precondition
// failures abandon generation for the offending declaration only; sibling
// declarations continue.
type Diagnostic struct {
	Node *ast.BaseNode
	Msg  string
}

func (d Diagnostic) String() string {
	if d.Node != nil && d.Node.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: %s", d.Node.Pos.Line, d.Node.Pos.Column, d.Msg)
	}
	return d.Msg
}

// Diagnostics collects messages across one transformation run.
type Diagnostics struct {
	errors []Diagnostic
}

func (d *Diagnostics) AddError(node *ast.BaseNode, format string, args ...any) {
	d.errors = append(d.errors, Diagnostic{Node: node, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diagnostics) HasErrors() bool      { return len(d.errors) > 0 }
func (d *Diagnostics) Errors() []Diagnostic { return d.errors }
